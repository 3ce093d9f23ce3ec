package generator

import (
	"fmt"
	"time"

	"github.com/gymchain/models"
)

// Date-of-birth range for the member population. The beta draw biases
// birth dates toward the recent end, producing a younger-skewed crowd.
var (
	dobRangeStart = time.Date(1945, 1, 1, 0, 0, 0, 0, time.UTC)
	dobRangeEnd   = time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)
)

const dobSkewStrength = 4

// GenerateMembers produces the member population for each branch. The
// per-branch count is uniform in [MinMembers, MaxMembers]; join dates
// follow a long tail anchored at the branch opening; email and phone
// are unique across all branches via the identity registry.
func (p *Pipeline) GenerateMembers(branches []models.Branch) ([]models.Member, error) {
	var members []models.Member
	memberID := uint(1)

	for _, branch := range branches {
		numMembers := p.rng.IntRange(p.cfg.MinMembers, p.cfg.MaxMembers)

		for i := 0; i < numMembers; i++ {
			// First names are drawn independently of gender; gofakeit
			// exposes no gendered first-name variant.
			gender := "M"
			if p.rng.Chance(0.5) {
				gender = "F"
			}

			email, err := p.registry.UniqueEmail(p.rng)
			if err != nil {
				return nil, fmt.Errorf("branch %d: %w", branch.BranchID, err)
			}
			phone, err := p.registry.UniquePhone(p.rng)
			if err != nil {
				return nil, fmt.Errorf("branch %d: %w", branch.BranchID, err)
			}

			members = append(members, models.Member{
				MemberID:    memberID,
				BranchID:    branch.BranchID,
				FirstName:   p.faker.FirstName(),
				LastName:    p.faker.LastName(),
				DateOfBirth: p.skewedBirthDate(dobRangeStart, dobRangeEnd, dobSkewStrength),
				Gender:      gender,
				Email:       email,
				Phone:       phone,
				JoinDate:    p.longTailDate(branch.OpeningDate, p.horizonDay()),
			})
			memberID++
		}
	}

	return members, nil
}

// skewedBirthDate draws a date in [start, end] biased toward end.
// Larger skew means a stronger bias toward recent dates.
func (p *Pipeline) skewedBirthDate(start, end time.Time, skew float64) time.Time {
	daysRange := int(atMidnight(end).Sub(atMidnight(start)).Hours() / 24)
	frac := p.rng.Beta(skew, 1)
	return atMidnight(start).AddDate(0, 0, int(frac*float64(daysRange)))
}

// longTailDate draws a date in [start, end] with an exponential shape:
// most values land shortly after start with a decaying tail toward end.
func (p *Pipeline) longTailDate(start, end time.Time) time.Time {
	daysRange := int(atMidnight(end).Sub(atMidnight(start)).Hours() / 24)
	if daysRange <= 0 {
		return atMidnight(start)
	}
	day := int(p.rng.Exponential(float64(daysRange) / 3.0))
	if day > daysRange {
		day = daysRange
	}
	return atMidnight(start).AddDate(0, 0, day)
}
