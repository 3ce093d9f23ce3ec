package generator

import (
	"time"

	"github.com/gymchain/models"
)

var paymentMethods = []string{"Credit Card", "Cash", "PayPal", "Debit Card"}

// First payments lean toward card payments; renewals pick uniformly.
var paymentMethodWeights = []float64{0.29, 0.13, 0.24, 0.34}

// Renewal behavior per member: the walk continues with a probability
// drawn once per member from this band.
const (
	renewalProbMin = 0.7
	renewalProbMax = 0.8

	// Most renewals land in a window around the prior period's end;
	// the rest lapse for 30-180 days before coming back.
	onTimeRenewalChance = 0.8
	renewalWindowBefore = 7  // days before prior end
	renewalWindowAfter  = 30 // days after prior end
	longLapseMinDays    = 30
	longLapseMaxDays    = 180
)

// GeneratePayments produces the chronological membership payment
// stream for every member. Each member gets at least one payment
// anchored at their join date; the stream then advances through a
// renewal walk until the member churns or the payment date would pass
// the horizon. Consecutive periods never overlap: the next start is at
// least the prior end plus one day.
func (p *Pipeline) GeneratePayments(members []models.Member, types []models.MembershipType) []models.Membership {
	var payments []models.Membership
	paymentID := uint(1)
	horizon := p.horizonDay()

	for _, member := range members {
		renewalProb := p.rng.FloatRange(renewalProbMin, renewalProbMax)

		mt := types[p.rng.Intn(len(types))]
		paymentDate := minDate(atMidnight(member.JoinDate), horizon)
		startDate := paymentDate
		endDate := startDate.AddDate(0, 0, mt.MembershipDuration)

		payments = append(payments, models.Membership{
			MembershipID:     paymentID,
			MemberID:         member.MemberID,
			MembershipTypeID: mt.MembershipTypeID,
			StartDate:        startDate,
			EndDate:          endDate,
			PaymentDate:      paymentDate,
			PaymentAmount:    mt.MembershipPrice,
			PaymentMethod:    paymentMethods[p.rng.WeightedIndex(paymentMethodWeights)],
			BranchID:         member.BranchID,
			DurationDays:     mt.MembershipDuration,
		})
		paymentID++
		currentEnd := endDate

		for {
			if !p.rng.Chance(renewalProb) {
				break
			}

			mt = types[p.rng.Intn(len(types))]

			if p.rng.Chance(onTimeRenewalChance) {
				windowStart := currentEnd.AddDate(0, 0, -renewalWindowBefore)
				windowEnd := currentEnd.AddDate(0, 0, renewalWindowAfter)
				paymentDate = p.rng.DateBetween(windowStart, windowEnd)
			} else {
				paymentDate = currentEnd.AddDate(0, 0, p.rng.IntRange(longLapseMinDays, longLapseMaxDays))
			}

			if paymentDate.After(horizon) {
				break
			}

			// The new period can't overlap the prior one, and can't
			// start beyond the horizon either.
			startDate = maxDate(currentEnd.AddDate(0, 0, 1), paymentDate)
			if startDate.After(horizon) {
				break
			}
			endDate = startDate.AddDate(0, 0, mt.MembershipDuration)

			payments = append(payments, models.Membership{
				MembershipID:     paymentID,
				MemberID:         member.MemberID,
				MembershipTypeID: mt.MembershipTypeID,
				StartDate:        startDate,
				EndDate:          endDate,
				PaymentDate:      paymentDate,
				PaymentAmount:    mt.MembershipPrice,
				PaymentMethod:    paymentMethods[p.rng.Intn(len(paymentMethods))],
				BranchID:         member.BranchID,
				DurationDays:     mt.MembershipDuration,
			})
			paymentID++
			currentEnd = endDate
		}
	}

	return payments
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
