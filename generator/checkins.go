package generator

import (
	"math"
	"sort"
	"time"

	"github.com/gymchain/models"
)

// Visit volume per membership period, keyed by period duration.
const (
	baseVisitsShort  = 20  // periods up to 30 days
	baseVisitsMedium = 60  // periods up to 90 days
	baseVisitsLong   = 150 // longer periods

	visitCountStdFraction = 0.4
)

// ratingDist is a 5-point categorical distribution over visit ratings.
type ratingDist struct {
	ratings []int
	weights []float64
}

var defaultRatingDist = ratingDist{
	ratings: []int{5, 4, 3, 2, 1},
	weights: []float64{0.3, 0.4, 0.2, 0.08, 0.02},
}

// Branch-specific rating spreads: branch 4 is the crowd favorite,
// branch 7 collects the complaints.
var branchRatingDists = map[uint]ratingDist{
	4: {[]int{5, 4, 3, 2, 1}, []float64{0.65, 0.3, 0.04, 0.009, 0.001}},
	1: {[]int{5, 4, 3, 2, 1}, []float64{0.4, 0.4, 0.15, 0.04, 0.01}},
	5: {[]int{5, 4, 3, 2, 1}, []float64{0.3, 0.4, 0.2, 0.09, 0.01}},
	2: {[]int{5, 4, 3, 2, 1}, []float64{0.2, 0.45, 0.25, 0.08, 0.02}},
	6: {[]int{5, 4, 3, 2, 1}, []float64{0.15, 0.3, 0.3, 0.15, 0.1}},
	3: {[]int{5, 4, 3, 2, 1}, []float64{0.1, 0.25, 0.3, 0.25, 0.1}},
	7: {[]int{5, 4, 3, 2, 1}, []float64{0.05, 0.1, 0.2, 0.4, 0.25}},
}

// Monthly activity curve: new-year resolution spike, summer slump.
var monthlyActivity = map[time.Month]float64{
	time.January: 1.3, time.February: 1.3, time.March: 1.2,
	time.April: 0.9, time.May: 1.1, time.June: 1.2,
	time.July: 0.7, time.August: 0.7, time.September: 1.1,
	time.October: 1.0, time.November: 0.8, time.December: 0.8,
}

// Day-of-week activity curve.
var weekdayActivity = map[time.Weekday]float64{
	time.Monday: 1.2, time.Tuesday: 1.1, time.Wednesday: 1.1,
	time.Thursday: 1.0, time.Friday: 0.7, time.Saturday: 0.9,
	time.Sunday: 1.0,
}

// timeSlot is a time-of-day bucket with a relative popularity weight.
type timeSlot struct {
	startHour int
	endHour   int
	weight    float64
}

// GenerateCheckIns produces gym visits for every member, walking their
// membership periods in chronological order. Visit volume follows the
// period length, a seasonal curve, and branch noise; visit dates get a
// weekly rhythm through weekday-weighted sampling; per-day caps keep
// same-day clustering plausible. Overlap between a member's visits is
// only reduced by those caps, not rejected outright.
func (p *Pipeline) GenerateCheckIns(members []models.Member, payments []models.Membership) []models.CheckIn {
	var checkIns []models.CheckIn
	checkInID := uint(1)

	// One no-rating probability per branch, fixed for the whole run.
	nullProb := make(map[uint]float64)
	for _, m := range members {
		if _, ok := nullProb[m.BranchID]; !ok {
			nullProb[m.BranchID] = p.rng.FloatRange(0.5, 0.6)
		}
	}

	paymentsByMember := make(map[uint][]models.Membership)
	for _, pay := range payments {
		paymentsByMember[pay.MemberID] = append(paymentsByMember[pay.MemberID], pay)
	}

	for _, member := range members {
		periods := paymentsByMember[member.MemberID]
		sort.Slice(periods, func(i, j int) bool {
			return periods[i].StartDate.Before(periods[j].StartDate)
		})

		for _, period := range periods {
			// Check-outs may not spill past the membership period's
			// final day, nor past the horizon.
			periodEnd := atMidnight(period.EndDate).Add(24*time.Hour - time.Second)
			if periodEnd.After(p.cfg.HorizonEnd) {
				periodEnd = p.cfg.HorizonEnd
			}

			for _, visit := range p.periodVisits(period) {
				checkInTime := p.visitCheckInTime(visit, period.BranchID)
				checkOutTime := checkInTime.Add(p.workoutDuration())
				if checkOutTime.After(periodEnd) {
					checkOutTime = periodEnd
				}

				checkIns = append(checkIns, models.CheckIn{
					CheckInID:    checkInID,
					MemberID:     member.MemberID,
					CheckInTime:  checkInTime,
					CheckOutTime: checkOutTime,
					Rating:       p.visitRating(period.BranchID, nullProb[period.BranchID]),
					BranchID:     period.BranchID,
				})
				checkInID++
			}
		}
	}

	return checkIns
}

// periodVisits picks the visit dates for one membership period,
// already capped per day. The returned dates are sorted and may
// repeat up to the day's cap.
func (p *Pipeline) periodVisits(period models.Membership) []time.Time {
	baseVisits := baseVisitsLong
	switch {
	case period.DurationDays <= 30:
		baseVisits = baseVisitsShort
	case period.DurationDays <= 90:
		baseVisits = baseVisitsMedium
	}

	seasonal := p.seasonalMultiplier(period.StartDate, period.BranchID)
	raw := p.rng.Normal(float64(baseVisits), float64(baseVisits)*visitCountStdFraction)
	numVisits := int(math.Max(1, raw*seasonal))

	periodEnd := minDate(period.EndDate, p.horizonDay())

	// Oversample candidate dates, then down-select with weekday weights
	// to shape the weekly rhythm.
	candidates := make([]time.Time, numVisits*2)
	weights := make([]float64, numVisits*2)
	for i := range candidates {
		candidates[i] = p.rng.DateBetween(period.StartDate, periodEnd)
		weights[i] = p.weekdayMultiplier(candidates[i], period.BranchID)
	}

	visitDates := make([]time.Time, numVisits)
	for i := range visitDates {
		visitDates[i] = candidates[p.rng.WeightedIndex(weights)]
	}
	sort.Slice(visitDates, func(i, j int) bool { return visitDates[i].Before(visitDates[j]) })

	var visits []time.Time
	for i := 0; i < len(visitDates); {
		j := i
		for j < len(visitDates) && visitDates[j].Equal(visitDates[i]) {
			j++
		}
		count := j - i

		// Almost all days allow 1-2 visits; the rare outlier day
		// allows up to 5.
		maxToday := p.rng.IntRange(1, 2)
		if !p.rng.Chance(0.98) {
			maxToday = p.rng.IntRange(3, 5)
		}
		if count > maxToday {
			count = maxToday
		}
		for k := 0; k < count; k++ {
			visits = append(visits, visitDates[i])
		}
		i = j
	}
	return visits
}

// seasonalMultiplier scales visit volume by month with branch noise.
func (p *Pipeline) seasonalMultiplier(date time.Time, branchID uint) float64 {
	base, ok := monthlyActivity[date.Month()]
	if !ok {
		base = 1.0
	}

	noise := p.rng.FloatRange(0.90, 1.08)
	switch branchID {
	case 4, 5:
		noise *= 1.08
	case 6, 7:
		noise *= 0.90
	}
	return base * noise
}

// weekdayMultiplier shapes the weekly rhythm per branch.
func (p *Pipeline) weekdayMultiplier(date time.Time, branchID uint) float64 {
	weekday := date.Weekday()
	multiplier, ok := weekdayActivity[weekday]
	if !ok {
		multiplier = 1.0
	}

	switch branchID {
	case 3, 7:
		if weekday == time.Saturday || weekday == time.Sunday {
			multiplier *= 1.1
		}
	case 1:
		if weekday == time.Friday {
			multiplier *= 1.2
		}
	}
	return multiplier
}

// visitCheckInTime picks a time of day from weighted peak buckets.
func (p *Pipeline) visitCheckInTime(visitDate time.Time, branchID uint) time.Time {
	slots := []timeSlot{
		{6, 8, 10},   // morning
		{9, 11, 8},   // mid morning
		{11, 13, 12}, // lunch time
		{14, 17, 15}, // afternoon
		{18, 21, 40}, // evening
		{21, 23, 10}, // late evening
		{0, 5, 5},    // night owls
	}

	switch branchID {
	case 1, 4:
		slots[4].weight += 5 // evening even busier
	case 7:
		slots[5].weight += 5 // late-evening crowd
	}

	weights := make([]float64, len(slots))
	for i, slot := range slots {
		weights[i] = slot.weight
	}
	slot := slots[p.rng.WeightedIndex(weights)]

	hour := p.rng.IntRange(slot.startHour, slot.endHour)
	minute := []int{0, 15, 30, 45}[p.rng.Intn(4)]
	second := p.rng.Intn(60)

	return atMidnight(visitDate).Add(
		time.Duration(hour)*time.Hour +
			time.Duration(minute)*time.Minute +
			time.Duration(second)*time.Second)
}

// workoutDuration draws a visit length: mostly 30-150 minutes, with
// small tails of very short and very long workouts.
func (p *Pipeline) workoutDuration() time.Duration {
	prob := p.rng.Float64()
	var seconds int
	switch {
	case prob < 0.9:
		seconds = p.rng.IntRange(1800, 9000)
	case prob < 0.95:
		seconds = p.rng.IntRange(1, 1800)
	default:
		seconds = p.rng.IntRange(9000, 18000)
	}
	return time.Duration(seconds) * time.Second
}

// visitRating returns nil with the branch's no-response probability,
// otherwise a draw from the branch's rating spread.
func (p *Pipeline) visitRating(branchID uint, nullProb float64) *int {
	if p.rng.Chance(nullProb) {
		return nil
	}
	dist, ok := branchRatingDists[branchID]
	if !ok {
		dist = defaultRatingDist
	}
	rating := dist.ratings[p.rng.WeightedIndex(dist.weights)]
	return &rating
}
