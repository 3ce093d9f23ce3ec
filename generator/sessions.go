package generator

import (
	"log"
	"time"

	"github.com/gymchain/models"
)

// Scheduling rules for class sessions.
const (
	// Minimum gap between any two same-branch sessions on a day.
	sessionGap = 30 * time.Minute

	// Placement attempts per day before the day is abandoned.
	maxPlacementAttempts = 50

	sessionCompletedChance = 0.9
)

var sessionCapacities = []int{10, 15, 20}

// Sessions run in a morning or an evening block.
var sessionTimeSlots = [][2]int{{7, 10}, {18, 20}}

// GenerateSessions produces the class session calendar for every
// branch across the horizon. A trainer teaches at most once per day;
// same-branch sessions on a day keep a 30-minute gap between their
// time ranges (the conflict domain is the branch schedule, not the
// individual trainer). Branches without trainers are skipped with a
// warning rather than failing the run.
func (p *Pipeline) GenerateSessions(branches []models.Branch, trainers []models.Trainer, classes []models.Class) []models.ClassSession {
	var sessions []models.ClassSession
	sessionID := uint(1)

	trainersByBranch := make(map[uint][]models.Trainer)
	for _, t := range trainers {
		trainersByBranch[t.BranchID] = append(trainersByBranch[t.BranchID], t)
	}

	for _, branch := range branches {
		branchTrainers := trainersByBranch[branch.BranchID]
		if len(branchTrainers) == 0 {
			log.Printf("  ⚠ Branch %d has no trainers, skipping session scheduling", branch.BranchID)
			continue
		}

		weeklySessions := p.weeklySessionTarget(len(branchTrainers))
		maxPerDay := weeklySessions / 7
		if maxPerDay > 3 {
			maxPerDay = 3
		}
		if maxPerDay < 1 {
			maxPerDay = 1
		}

		if len(classes) == 0 {
			log.Printf("  ⚠ Class catalog is empty, skipping session scheduling")
			break
		}

		horizon := p.horizonDay()
		for day := atMidnight(p.cfg.HorizonStart); !day.After(horizon); day = day.AddDate(0, 0, 1) {
			sessionsToday := p.rng.IntRange(1, maxPerDay)
			scheduledTrainers := make(map[uint]bool)
			var daySessions []models.ClassSession

			for attempts := 0; len(daySessions) < sessionsToday && attempts < maxPlacementAttempts; attempts++ {
				trainer, ok := p.pickAvailableTrainer(branchTrainers, scheduledTrainers, day)
				if !ok {
					break
				}

				class := classes[p.rng.Intn(len(classes))]

				slot := sessionTimeSlots[p.rng.Intn(len(sessionTimeSlots))]
				hour := p.rng.IntRange(slot[0], slot[1]-1)
				minute := 30 * p.rng.Intn(2)
				start := day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
				end := start.Add(time.Duration(class.Duration) * time.Minute)

				if conflictsWithDay(start, end, daySessions) {
					continue
				}

				scheduledTrainers[trainer.TrainerID] = true
				status := models.SessionCancelled
				if p.rng.Chance(sessionCompletedChance) {
					status = models.SessionCompleted
				}

				daySessions = append(daySessions, models.ClassSession{
					SessionID:   sessionID,
					ClassID:     class.ClassID,
					TrainerID:   trainer.TrainerID,
					StartTime:   start,
					EndTime:     end,
					Capacity:    sessionCapacities[p.rng.Intn(len(sessionCapacities))],
					Status:      status,
					SessionDate: day,
					BranchID:    branch.BranchID,
				})
				sessionID++
			}

			sessions = append(sessions, daySessions...)
		}
	}

	return sessions
}

// weeklySessionTarget sizes the branch's weekly calendar from its
// trainer headcount.
func (p *Pipeline) weeklySessionTarget(trainerCount int) int {
	switch {
	case trainerCount >= 4:
		return p.rng.IntRange(25, 30)
	case trainerCount >= 2:
		return p.rng.IntRange(18, 20)
	default:
		return p.rng.IntRange(8, 10)
	}
}

// pickAvailableTrainer chooses a random trainer not yet scheduled
// today who had already joined by the session day.
func (p *Pipeline) pickAvailableTrainer(branchTrainers []models.Trainer, scheduled map[uint]bool, day time.Time) (models.Trainer, bool) {
	var available []models.Trainer
	for _, t := range branchTrainers {
		if !scheduled[t.TrainerID] && !t.JoinDate.After(day) {
			available = append(available, t)
		}
	}
	if len(available) == 0 {
		return models.Trainer{}, false
	}
	return available[p.rng.Intn(len(available))], true
}

// conflictsWithDay reports whether [start, end) lands within the
// 30-minute gap of any session already on the day's branch schedule.
func conflictsWithDay(start, end time.Time, daySessions []models.ClassSession) bool {
	for _, existing := range daySessions {
		if start.Before(existing.EndTime.Add(sessionGap)) && end.After(existing.StartTime.Add(-sessionGap)) {
			return true
		}
	}
	return false
}
