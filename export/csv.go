package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gymchain/generator"
	"github.com/gymchain/models"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// Manifest describes one export run.
type Manifest struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Seed        uint64         `json:"seed"`
	RowCounts   map[string]int `json:"row_counts"`
}

// WriteDataset writes one CSV per table into dir, reference catalogs
// included, plus a manifest.json describing the run. Nullable ratings
// export as empty cells.
func WriteDataset(dir string, ds *generator.Dataset, ref generator.Reference, seed uint64) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	rows := map[string][][]string{
		"branch":           branchRows(ref.Branches),
		"membership_type":  membershipTypeRows(ref.MembershipTypes),
		"class":            classRows(ref.Classes),
		"trainers":         trainerRows(ref.Trainers),
		"members":          memberRows(ds.Members),
		"memberships":      membershipRows(ds.Memberships),
		"checkins":         checkInRows(ds.CheckIns),
		"class_sessions":   sessionRows(ds.Sessions),
		"class_attendance": attendanceRows(ds.Attendance),
	}

	manifest := &Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Seed:        seed,
		RowCounts:   make(map[string]int, len(rows)),
	}

	for _, schema := range Schemas() {
		tableRows := rows[schema.Name]
		if err := writeTable(dir, schema, tableRows); err != nil {
			return nil, err
		}
		manifest.RowCounts[schema.Name] = len(tableRows)
		log.Printf("  ✓ Exported %s.csv (%d rows)", schema.Name, len(tableRows))
	}

	if err := writeManifest(dir, manifest); err != nil {
		return nil, err
	}
	log.Printf("  ✓ Wrote manifest.json (run %s)", manifest.RunID)

	return manifest, nil
}

func writeTable(dir string, schema TableSchema, rows [][]string) error {
	path := filepath.Join(dir, schema.Name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(schema.FinalHeader()); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", schema.Name, err)
	}
	for _, row := range rows {
		filtered, err := schema.FilterRow(row)
		if err != nil {
			return err
		}
		if err := w.Write(filtered); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", schema.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", schema.Name, err)
	}
	return f.Close()
}

func writeManifest(dir string, manifest *Manifest) error {
	path := filepath.Join(dir, "manifest.json")
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func branchRows(branches []models.Branch) [][]string {
	rows := make([][]string, 0, len(branches))
	for _, b := range branches {
		rows = append(rows, []string{
			fmtUint(b.BranchID), b.BranchName, b.City, b.StreetAddress, b.OpeningDate.Format(dateLayout),
		})
	}
	return rows
}

func membershipTypeRows(types []models.MembershipType) [][]string {
	rows := make([][]string, 0, len(types))
	for _, t := range types {
		rows = append(rows, []string{
			fmtUint(t.MembershipTypeID), t.MembershipType, fmtAmount(t.MembershipPrice), strconv.Itoa(t.MembershipDuration),
		})
	}
	return rows
}

func classRows(classes []models.Class) [][]string {
	rows := make([][]string, 0, len(classes))
	for _, c := range classes {
		rows = append(rows, []string{
			fmtUint(c.ClassID), c.ClassName, c.ClassType, strconv.Itoa(c.Duration),
		})
	}
	return rows
}

func trainerRows(trainers []models.Trainer) [][]string {
	rows := make([][]string, 0, len(trainers))
	for _, t := range trainers {
		rows = append(rows, []string{
			fmtUint(t.TrainerID), fmtUint(t.BranchID), t.FirstName, t.LastName, t.Gender,
			t.DateOfBirth.Format(dateLayout), t.Specialisation, t.JoinDate.Format(dateLayout),
		})
	}
	return rows
}

func memberRows(members []models.Member) [][]string {
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			fmtUint(m.MemberID), fmtUint(m.BranchID), m.FirstName, m.LastName,
			m.DateOfBirth.Format(dateLayout), m.Gender, m.Email, m.Phone, m.JoinDate.Format(dateLayout),
		})
	}
	return rows
}

func membershipRows(memberships []models.Membership) [][]string {
	rows := make([][]string, 0, len(memberships))
	for _, p := range memberships {
		rows = append(rows, []string{
			fmtUint(p.MembershipID), fmtUint(p.MemberID), fmtUint(p.MembershipTypeID), fmtUint(p.BranchID),
			p.StartDate.Format(dateLayout), p.EndDate.Format(dateLayout), p.PaymentDate.Format(dateLayout),
			fmtAmount(p.PaymentAmount), p.PaymentMethod, strconv.Itoa(p.DurationDays),
		})
	}
	return rows
}

func checkInRows(checkIns []models.CheckIn) [][]string {
	rows := make([][]string, 0, len(checkIns))
	for _, ci := range checkIns {
		rows = append(rows, []string{
			fmtUint(ci.CheckInID), fmtUint(ci.MemberID), fmtUint(ci.BranchID),
			ci.CheckInTime.Format(datetimeLayout), ci.CheckOutTime.Format(datetimeLayout), fmtRating(ci.Rating),
		})
	}
	return rows
}

func sessionRows(sessions []models.ClassSession) [][]string {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			fmtUint(s.SessionID), fmtUint(s.ClassID), fmtUint(s.TrainerID), fmtUint(s.BranchID),
			s.SessionDate.Format(dateLayout), s.StartTime.Format(datetimeLayout), s.EndTime.Format(datetimeLayout),
			strconv.Itoa(s.Capacity), s.Status,
		})
	}
	return rows
}

func attendanceRows(attendance []models.ClassAttendance) [][]string {
	rows := make([][]string, 0, len(attendance))
	for _, a := range attendance {
		rows = append(rows, []string{
			fmtUint(a.MemberID), fmtUint(a.SessionID), fmtRating(a.Rating),
		})
	}
	return rows
}

func fmtUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func fmtAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func fmtRating(r *int) string {
	if r == nil {
		return ""
	}
	return strconv.Itoa(*r)
}
