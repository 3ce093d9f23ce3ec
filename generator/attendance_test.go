package generator

import (
	"math"
	"testing"
	"time"

	"github.com/gymchain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(hour, minute int) time.Time {
	return time.Date(2023, 6, 5, hour, minute, 0, 0, time.UTC)
}

// allDayCheckIns returns one covering check-in per member id.
func allDayCheckIns(branchID uint, memberIDs ...uint) []models.CheckIn {
	var checkIns []models.CheckIn
	for i, id := range memberIDs {
		checkIns = append(checkIns, models.CheckIn{
			CheckInID:    uint(i + 1),
			MemberID:     id,
			BranchID:     branchID,
			CheckInTime:  day(6, 0),
			CheckOutTime: day(22, 0),
		})
	}
	return checkIns
}

func TestGenerateAttendanceOnlyCoveringMembers(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	sessions := []models.ClassSession{{
		SessionID:   1,
		ClassID:     1,
		TrainerID:   1,
		StartTime:   day(18, 0),
		EndTime:     day(18, 45),
		Capacity:    20,
		Status:      models.SessionCompleted,
		SessionDate: day(0, 0),
		BranchID:    1,
	}}

	checkIns := []models.CheckIn{
		// Covers the session.
		{CheckInID: 1, MemberID: 1, BranchID: 1, CheckInTime: day(17, 0), CheckOutTime: day(19, 30)},
		// Leaves mid-session.
		{CheckInID: 2, MemberID: 2, BranchID: 1, CheckInTime: day(17, 0), CheckOutTime: day(18, 20)},
		// Arrives mid-session.
		{CheckInID: 3, MemberID: 3, BranchID: 1, CheckInTime: day(18, 10), CheckOutTime: day(20, 0)},
		// Covers the time range but at a different branch.
		{CheckInID: 4, MemberID: 4, BranchID: 2, CheckInTime: day(17, 0), CheckOutTime: day(19, 30)},
	}

	attendance := p.GenerateAttendance(sessions, checkIns, testClasses())
	require.Len(t, attendance, 1)
	assert.Equal(t, uint(1), attendance[0].MemberID)
	assert.Equal(t, uint(1), attendance[0].SessionID)
}

func TestGenerateAttendanceSkipsCancelledSessions(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	sessions := []models.ClassSession{{
		SessionID:   1,
		ClassID:     1,
		TrainerID:   1,
		StartTime:   day(18, 0),
		EndTime:     day(18, 45),
		Capacity:    20,
		Status:      models.SessionCancelled,
		SessionDate: day(0, 0),
		BranchID:    1,
	}}

	attendance := p.GenerateAttendance(sessions, allDayCheckIns(1, 1, 2, 3), testClasses())
	assert.Empty(t, attendance)
}

func TestGenerateAttendanceRespectsCapacity(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	sessions := []models.ClassSession{{
		SessionID:   1,
		ClassID:     1,
		TrainerID:   1,
		StartTime:   day(18, 0),
		EndTime:     day(18, 45),
		Capacity:    10,
		Status:      models.SessionCompleted,
		SessionDate: day(0, 0),
		BranchID:    1,
	}}

	memberIDs := make([]uint, 50)
	for i := range memberIDs {
		memberIDs[i] = uint(i + 1)
	}
	attendance := p.GenerateAttendance(sessions, allDayCheckIns(1, memberIDs...), testClasses())

	require.NotEmpty(t, attendance)
	assert.LessOrEqual(t, len(attendance), 10)

	// With eligible members to spare, the attendee count is exactly
	// round(capacity × rate).
	rate := attendance[0].AttendanceRate
	assert.GreaterOrEqual(t, rate, 0.8)
	assert.LessOrEqual(t, rate, 0.98)
	assert.Equal(t, int(math.Round(10*rate)), len(attendance))

	seen := make(map[uint]bool)
	for _, a := range attendance {
		require.False(t, seen[a.MemberID], "member %d attends session twice", a.MemberID)
		seen[a.MemberID] = true
	}
}

func TestGenerateAttendanceClipsToEligibleCount(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	// Capacity 20 with a 0.8-0.98 rate band wants at least 16
	// attendees; only 3 members are eligible, so all 3 attend.
	sessions := []models.ClassSession{{
		SessionID:   1,
		ClassID:     1,
		TrainerID:   1,
		StartTime:   day(18, 0),
		EndTime:     day(18, 45),
		Capacity:    20,
		Status:      models.SessionCompleted,
		SessionDate: day(0, 0),
		BranchID:    1,
	}}

	attendance := p.GenerateAttendance(sessions, allDayCheckIns(1, 1, 2, 3), testClasses())
	assert.Len(t, attendance, 3)
}

func TestGenerateAttendanceDailyCapPerMember(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	// Seven non-overlapping completed sessions on one day; a single
	// member covering the whole day can attend at most five.
	var sessions []models.ClassSession
	for i := 0; i < 7; i++ {
		start := day(7+i*2, 0)
		sessions = append(sessions, models.ClassSession{
			SessionID:   uint(i + 1),
			ClassID:     1,
			TrainerID:   1,
			StartTime:   start,
			EndTime:     start.Add(45 * time.Minute),
			Capacity:    10,
			Status:      models.SessionCompleted,
			SessionDate: day(0, 0),
			BranchID:    1,
		})
	}

	attendance := p.GenerateAttendance(sessions, allDayCheckIns(1, 1), testClasses())
	assert.LessOrEqual(t, len(attendance), maxSessionsPerMemberPerDay)
}

func TestGenerateAttendanceNoOverlappingSessionsPerMember(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	// Two overlapping completed sessions: one member can only be in one.
	sessions := []models.ClassSession{
		{SessionID: 1, ClassID: 1, TrainerID: 1, StartTime: day(18, 0), EndTime: day(18, 45),
			Capacity: 10, Status: models.SessionCompleted, SessionDate: day(0, 0), BranchID: 1},
		{SessionID: 2, ClassID: 2, TrainerID: 2, StartTime: day(18, 30), EndTime: day(19, 30),
			Capacity: 10, Status: models.SessionCompleted, SessionDate: day(0, 0), BranchID: 1},
	}

	attendance := p.GenerateAttendance(sessions, allDayCheckIns(1, 1), testClasses())
	assert.LessOrEqual(t, len(attendance), 1)
}

func TestEnforceSessionCapacityTruncates(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	sessions := []models.ClassSession{{SessionID: 1, Capacity: 2}}
	attendance := []models.ClassAttendance{
		{MemberID: 1, SessionID: 1},
		{MemberID: 2, SessionID: 1},
		{MemberID: 3, SessionID: 1},
	}

	result := p.EnforceSessionCapacity(attendance, sessions)
	require.Len(t, result, 2)
	assert.Equal(t, uint(1), result[0].MemberID)
	assert.Equal(t, uint(2), result[1].MemberID)
}

func TestAssignAttendanceRatingsBoundedOrNull(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	var attendance []models.ClassAttendance
	for i := 0; i < 500; i++ {
		attendance = append(attendance, models.ClassAttendance{
			MemberID:       uint(i + 1),
			SessionID:      uint(i/10 + 1),
			ClassID:        uint(i%3 + 1),
			BranchID:       uint(i%2 + 1),
			AttendanceRate: 0.6 + 0.35*float64(i%10)/10,
		})
	}

	p.AssignAttendanceRatings(attendance)

	rated, nulled := 0, 0
	for _, a := range attendance {
		if a.Rating == nil {
			nulled++
			continue
		}
		rated++
		assert.GreaterOrEqual(t, *a.Rating, 1)
		assert.LessOrEqual(t, *a.Rating, 5)
	}
	// The stratified null-out removes 40-50% per branch.
	assert.Greater(t, rated, 0)
	assert.Greater(t, nulled, len(attendance)/4)
	assert.Less(t, nulled, len(attendance)*3/4)
}
