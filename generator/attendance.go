package generator

import (
	"math"
	"sort"
	"time"

	"github.com/gymchain/models"
)

// Daily limit on session attendances per member.
const maxSessionsPerMemberPerDay = 5

// rateBand is the attendance-rate range for a class type.
type rateBand struct {
	min, max float64
}

var classTypeRateBands = map[string]rateBand{
	models.ClassTypeCardio:      {0.8, 0.98},
	models.ClassTypeStrength:    {0.6, 0.85},
	models.ClassTypeFlexibility: {0.7, 0.95},
	models.ClassTypeStretching:  {0.65, 0.9},
}

var defaultRateBand = rateBand{0.7, 0.98}

// memberDayState tracks one member's load within a single calendar
// date while sessions are being filled.
type memberDayState struct {
	count int
	slots [][2]time.Time
}

// GenerateAttendance allocates members to completed sessions. Sessions
// are folded in (date, start time) order; per-date state carries each
// member's attendance count and occupied time ranges, so nobody is
// double-booked or pushed past the daily cap. A member is eligible for
// a session only when one of their check-ins at the session's branch
// covers the session's full time range.
func (p *Pipeline) GenerateAttendance(sessions []models.ClassSession, checkIns []models.CheckIn, classes []models.Class) []models.ClassAttendance {
	classTypes := make(map[uint]string, len(classes))
	for _, c := range classes {
		classTypes[c.ClassID] = c.ClassType
	}

	checkInsByBranch := make(map[uint][]models.CheckIn)
	for _, ci := range checkIns {
		checkInsByBranch[ci.BranchID] = append(checkInsByBranch[ci.BranchID], ci)
	}

	var completed []models.ClassSession
	for _, s := range sessions {
		if s.Status == models.SessionCompleted {
			completed = append(completed, s)
		}
	}
	// Strict chronological + intra-day start-time order; the per-date
	// member state depends on it.
	sort.Slice(completed, func(i, j int) bool {
		if !completed[i].SessionDate.Equal(completed[j].SessionDate) {
			return completed[i].SessionDate.Before(completed[j].SessionDate)
		}
		if !completed[i].StartTime.Equal(completed[j].StartTime) {
			return completed[i].StartTime.Before(completed[j].StartTime)
		}
		return completed[i].SessionID < completed[j].SessionID
	})

	var attendance []models.ClassAttendance
	memberState := make(map[uint]*memberDayState)
	var currentDate time.Time

	for _, session := range completed {
		if !session.SessionDate.Equal(currentDate) {
			currentDate = session.SessionDate
			memberState = make(map[uint]*memberDayState)
		}

		eligible := eligibleMembers(checkInsByBranch[session.BranchID], session.StartTime, session.EndTime)
		if len(eligible) == 0 {
			continue
		}

		var available []uint
		for _, memberID := range eligible {
			state, ok := memberState[memberID]
			if !ok {
				available = append(available, memberID)
				continue
			}
			if state.count >= maxSessionsPerMemberPerDay {
				continue
			}
			if overlapsAny(session.StartTime, session.EndTime, state.slots) {
				continue
			}
			available = append(available, memberID)
		}
		if len(available) == 0 {
			continue
		}

		band, ok := classTypeRateBands[classTypes[session.ClassID]]
		if !ok {
			band = defaultRateBand
		}
		rate := p.rng.FloatRange(band.min, band.max)

		attendeeCount := int(math.Round(float64(session.Capacity) * rate))
		if attendeeCount > len(available) {
			attendeeCount = len(available)
		}
		if attendeeCount < 1 {
			attendeeCount = 1
		}

		// Sample without replacement.
		p.rng.Shuffle(len(available), func(i, j int) {
			available[i], available[j] = available[j], available[i]
		})
		selected := available[:attendeeCount]

		for _, memberID := range selected {
			state, ok := memberState[memberID]
			if !ok {
				state = &memberDayState{}
				memberState[memberID] = state
			}
			state.count++
			state.slots = append(state.slots, [2]time.Time{session.StartTime, session.EndTime})

			attendance = append(attendance, models.ClassAttendance{
				MemberID:       memberID,
				SessionID:      session.SessionID,
				ClassID:        session.ClassID,
				BranchID:       session.BranchID,
				SessionStart:   session.StartTime,
				SessionEnd:     session.EndTime,
				AttendanceRate: rate,
			})
		}
	}

	return attendance
}

// eligibleMembers returns, in first-seen order, the distinct members
// whose check-in interval fully covers [sessionStart, sessionEnd].
func eligibleMembers(branchCheckIns []models.CheckIn, sessionStart, sessionEnd time.Time) []uint {
	seen := make(map[uint]bool)
	var members []uint
	for _, ci := range branchCheckIns {
		if ci.CheckInTime.After(sessionStart) || ci.CheckOutTime.Before(sessionEnd) {
			continue
		}
		if !seen[ci.MemberID] {
			seen[ci.MemberID] = true
			members = append(members, ci.MemberID)
		}
	}
	return members
}

func overlapsAny(start, end time.Time, slots [][2]time.Time) bool {
	for _, slot := range slots {
		if start.Before(slot[1]) && end.After(slot[0]) {
			return true
		}
	}
	return false
}

// EnforceSessionCapacity truncates any session's attendance beyond its
// capacity, keeping first-seen order. The allocator already respects
// capacity; this guards the invariant against join mistakes upstream.
func (p *Pipeline) EnforceSessionCapacity(attendance []models.ClassAttendance, sessions []models.ClassSession) []models.ClassAttendance {
	capacities := make(map[uint]int, len(sessions))
	for _, s := range sessions {
		capacities[s.SessionID] = s.Capacity
	}

	counts := make(map[uint]int)
	result := attendance[:0]
	for _, a := range attendance {
		capacity, ok := capacities[a.SessionID]
		if !ok {
			capacity = math.MaxInt
		}
		if counts[a.SessionID] >= capacity {
			continue
		}
		counts[a.SessionID]++
		result = append(result, a)
	}
	return result
}

// AssignAttendanceRatings back-fills ratings on attendance rows in a
// single dedicated pass. The expected rating follows the session's
// attendance rate (full classes rate better), shifted by a per-branch
// bias and a per-class bias; a minority of classes get a wide bias to
// create standout-popular and standout-unpopular classes. Ratings are
// then nulled out per branch, stratified by rating value, to simulate
// non-response.
func (p *Pipeline) AssignAttendanceRatings(attendance []models.ClassAttendance) {
	branchOrder, classOrder := biasKeys(attendance)

	branchBias := make(map[uint]float64, len(branchOrder))
	for _, branchID := range branchOrder {
		branchBias[branchID] = p.rng.FloatRange(-0.5, 0.5)
	}

	classBias := make(map[uint]float64, len(classOrder))
	for _, classID := range classOrder {
		if p.rng.Chance(0.3) {
			classBias[classID] = p.rng.FloatRange(-3.0, 3.0)
		} else {
			classBias[classID] = p.rng.FloatRange(-1.5, 1.5)
		}
	}

	for _, branchID := range branchOrder {
		var rows []int
		for i := range attendance {
			if attendance[i].BranchID == branchID {
				rows = append(rows, i)
			}
		}

		for _, i := range rows {
			mean := expectedRating(attendance[i].AttendanceRate)
			mean += branchBias[branchID] + classBias[attendance[i].ClassID]
			mean = clamp(mean, 1.0, 5.0)

			rating := int(math.Round(clamp(p.rng.Normal(mean, 0.8), 1, 5)))
			attendance[i].Rating = &rating
		}

		p.nullOutStratified(attendance, rows, p.rng.FloatRange(0.4, 0.5))
	}
}

// expectedRating maps an attendance rate to a mean rating on the 1-5
// scale: 0.9 full → ~4.5, 0.7 → ~3.0, below 0.6 it falls off fast.
func expectedRating(rate float64) float64 {
	switch {
	case rate >= 0.8:
		return 3.5 + (rate-0.8)*2.0/0.2
	case rate >= 0.6:
		return 2.5 + (rate-0.6)*1.0/0.2
	default:
		return 1.5 + (rate-0.5)*1.0/0.1
	}
}

// nullOutStratified nulls a fraction of the given rows' ratings within
// each rating bucket, so non-response doesn't skew the distribution.
func (p *Pipeline) nullOutStratified(attendance []models.ClassAttendance, rows []int, fraction float64) {
	buckets := make(map[int][]int)
	for _, i := range rows {
		if attendance[i].Rating != nil {
			r := *attendance[i].Rating
			buckets[r] = append(buckets[r], i)
		}
	}

	for rating := 1; rating <= 5; rating++ {
		bucket := buckets[rating]
		if len(bucket) == 0 {
			continue
		}
		p.rng.Shuffle(len(bucket), func(i, j int) {
			bucket[i], bucket[j] = bucket[j], bucket[i]
		})
		nullCount := int(math.Round(fraction * float64(len(bucket))))
		for _, i := range bucket[:nullCount] {
			attendance[i].Rating = nil
		}
	}
}

// biasKeys collects distinct branch and class ids in first-seen order,
// so bias draws stay deterministic under a fixed seed.
func biasKeys(attendance []models.ClassAttendance) (branches, classes []uint) {
	seenBranch := make(map[uint]bool)
	seenClass := make(map[uint]bool)
	for _, a := range attendance {
		if !seenBranch[a.BranchID] {
			seenBranch[a.BranchID] = true
			branches = append(branches, a.BranchID)
		}
		if !seenClass[a.ClassID] {
			seenClass[a.ClassID] = true
			classes = append(classes, a.ClassID)
		}
	}
	return branches, classes
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
