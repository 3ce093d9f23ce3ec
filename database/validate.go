package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gymchain/generator"
	"github.com/gymchain/models"
)

// Number of violations reported before the rest are elided.
const maxReportedViolations = 20

var validGenders = map[string]bool{"M": true, "F": true, "Other": true}

var validStatuses = map[string]bool{
	models.SessionCompleted: true,
	models.SessionCancelled: true,
}

// ValidateDataset checks a generated dataset against the destination
// schema's invariants before anything is written: bounded ratings,
// ordered time ranges, resolvable foreign keys, populated identity
// fields, and nothing beyond the data horizon. Returns an error
// listing sample violations if any check fails.
func ValidateDataset(ds *generator.Dataset, ref generator.Reference, horizonEnd time.Time) error {
	var violations []string
	add := func(format string, args ...interface{}) {
		if len(violations) < maxReportedViolations {
			violations = append(violations, fmt.Sprintf(format, args...))
		} else if len(violations) == maxReportedViolations {
			violations = append(violations, "... (further violations elided)")
		}
	}

	branchIDs := make(map[uint]bool, len(ref.Branches))
	for _, b := range ref.Branches {
		branchIDs[b.BranchID] = true
	}
	typeIDs := make(map[uint]bool, len(ref.MembershipTypes))
	for _, t := range ref.MembershipTypes {
		typeIDs[t.MembershipTypeID] = true
	}
	classIDs := make(map[uint]bool, len(ref.Classes))
	for _, c := range ref.Classes {
		classIDs[c.ClassID] = true
	}
	trainerIDs := make(map[uint]bool, len(ref.Trainers))
	for _, t := range ref.Trainers {
		trainerIDs[t.TrainerID] = true
	}

	memberIDs := make(map[uint]bool, len(ds.Members))
	for _, m := range ds.Members {
		memberIDs[m.MemberID] = true
		if !branchIDs[m.BranchID] {
			add("member %d: unknown branch %d", m.MemberID, m.BranchID)
		}
		if m.Email == "" {
			add("member %d: empty email", m.MemberID)
		}
		if m.Phone == "" {
			add("member %d: empty phone", m.MemberID)
		}
		if !validGenders[m.Gender] {
			add("member %d: invalid gender %q", m.MemberID, m.Gender)
		}
		if m.JoinDate.After(horizonEnd) {
			add("member %d: join date %s beyond horizon", m.MemberID, m.JoinDate.Format("2006-01-02"))
		}
	}

	lastEnd := make(map[uint]time.Time)
	for _, p := range ds.Memberships {
		if !memberIDs[p.MemberID] {
			add("membership %d: unknown member %d", p.MembershipID, p.MemberID)
		}
		if !typeIDs[p.MembershipTypeID] {
			add("membership %d: unknown membership type %d", p.MembershipID, p.MembershipTypeID)
		}
		if p.EndDate.Before(p.StartDate) {
			add("membership %d: end date before start date", p.MembershipID)
		}
		if p.PaymentAmount < 0 {
			add("membership %d: negative payment amount", p.MembershipID)
		}
		if p.PaymentDate.After(horizonEnd) {
			add("membership %d: payment date beyond horizon", p.MembershipID)
		}
		// Rows arrive grouped per member in chronological order;
		// consecutive periods of one member must never overlap.
		if prev, ok := lastEnd[p.MemberID]; ok && !p.StartDate.After(prev) {
			add("membership %d: overlaps previous period of member %d", p.MembershipID, p.MemberID)
		}
		lastEnd[p.MemberID] = p.EndDate
	}

	for _, ci := range ds.CheckIns {
		if !memberIDs[ci.MemberID] {
			add("checkin %d: unknown member %d", ci.CheckInID, ci.MemberID)
		}
		if !ci.CheckOutTime.After(ci.CheckInTime) {
			add("checkin %d: checkout not after checkin", ci.CheckInID)
		}
		if ci.CheckOutTime.After(horizonEnd) {
			add("checkin %d: checkout beyond horizon", ci.CheckInID)
		}
		if ci.Rating != nil && (*ci.Rating < 1 || *ci.Rating > 5) {
			add("checkin %d: visit rating %d out of range", ci.CheckInID, *ci.Rating)
		}
	}

	sessionIDs := make(map[uint]bool, len(ds.Sessions))
	capacities := make(map[uint]int, len(ds.Sessions))
	for _, s := range ds.Sessions {
		sessionIDs[s.SessionID] = true
		capacities[s.SessionID] = s.Capacity
		if !classIDs[s.ClassID] {
			add("session %d: unknown class %d", s.SessionID, s.ClassID)
		}
		if !trainerIDs[s.TrainerID] {
			add("session %d: unknown trainer %d", s.SessionID, s.TrainerID)
		}
		if !s.EndTime.After(s.StartTime) {
			add("session %d: end time not after start time", s.SessionID)
		}
		if s.Capacity <= 0 {
			add("session %d: non-positive capacity %d", s.SessionID, s.Capacity)
		}
		if !validStatuses[s.Status] {
			add("session %d: invalid status %q", s.SessionID, s.Status)
		}
	}

	attendeeCounts := make(map[uint]int)
	seenPairs := make(map[[2]uint]bool, len(ds.Attendance))
	for _, a := range ds.Attendance {
		if !memberIDs[a.MemberID] {
			add("attendance (%d, %d): unknown member", a.MemberID, a.SessionID)
		}
		if !sessionIDs[a.SessionID] {
			add("attendance (%d, %d): unknown session", a.MemberID, a.SessionID)
		}
		if a.Rating != nil && (*a.Rating < 1 || *a.Rating > 5) {
			add("attendance (%d, %d): class rating %d out of range", a.MemberID, a.SessionID, *a.Rating)
		}
		pair := [2]uint{a.MemberID, a.SessionID}
		if seenPairs[pair] {
			add("attendance (%d, %d): duplicate pair", a.MemberID, a.SessionID)
		}
		seenPairs[pair] = true
		attendeeCounts[a.SessionID]++
	}
	for sessionID, count := range attendeeCounts {
		if capacity, ok := capacities[sessionID]; ok && count > capacity {
			add("session %d: %d attendees over capacity %d", sessionID, count, capacity)
		}
	}

	if len(violations) > 0 {
		return fmt.Errorf("dataset failed validation with %d+ violations:\n  %s",
			len(violations), strings.Join(violations, "\n  "))
	}

	log.Println("  ✓ Dataset passed validation")
	return nil
}
