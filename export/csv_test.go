package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gymchain/generator"
	"github.com/gymchain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() (*generator.Dataset, generator.Reference) {
	opened := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	rating := 4

	ref := generator.Reference{
		Branches: []models.Branch{
			{BranchID: 1, BranchName: "Central", City: "London", StreetAddress: "1 High Street", OpeningDate: opened},
		},
		MembershipTypes: []models.MembershipType{
			{MembershipTypeID: 1, MembershipType: "Monthly", MembershipPrice: 29.99, MembershipDuration: 30},
		},
		Classes: []models.Class{
			{ClassID: 1, ClassName: "Spin Studio", ClassType: models.ClassTypeCardio, Duration: 45},
		},
		Trainers: []models.Trainer{
			{TrainerID: 1, BranchID: 1, FirstName: "Jo", LastName: "Hart", Gender: "F",
				DateOfBirth: time.Date(1985, 4, 2, 0, 0, 0, 0, time.UTC), Specialisation: models.ClassTypeCardio, JoinDate: opened},
		},
	}

	ds := &generator.Dataset{
		Members: []models.Member{
			{MemberID: 1, BranchID: 1, FirstName: "Sam", LastName: "Reed", Gender: "M",
				DateOfBirth: time.Date(1990, 7, 15, 0, 0, 0, 0, time.UTC),
				Email:       "samreed@gmail.com", Phone: "0712345678",
				JoinDate: time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
		Memberships: []models.Membership{
			{MembershipID: 1, MemberID: 1, MembershipTypeID: 1, BranchID: 1,
				StartDate:   time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC),
				EndDate:     time.Date(2022, 3, 3, 0, 0, 0, 0, time.UTC),
				PaymentDate: time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC),
				PaymentAmount: 29.99, PaymentMethod: "Credit Card", DurationDays: 30},
		},
		CheckIns: []models.CheckIn{
			{CheckInID: 1, MemberID: 1, BranchID: 1,
				CheckInTime:  time.Date(2022, 2, 3, 18, 15, 0, 0, time.UTC),
				CheckOutTime: time.Date(2022, 2, 3, 19, 30, 0, 0, time.UTC),
				Rating:       &rating},
			{CheckInID: 2, MemberID: 1, BranchID: 1,
				CheckInTime:  time.Date(2022, 2, 5, 7, 0, 0, 0, time.UTC),
				CheckOutTime: time.Date(2022, 2, 5, 8, 10, 0, 0, time.UTC)},
		},
		Sessions: []models.ClassSession{
			{SessionID: 1, ClassID: 1, TrainerID: 1, BranchID: 1,
				SessionDate: time.Date(2022, 2, 3, 0, 0, 0, 0, time.UTC),
				StartTime:   time.Date(2022, 2, 3, 18, 30, 0, 0, time.UTC),
				EndTime:     time.Date(2022, 2, 3, 19, 15, 0, 0, time.UTC),
				Capacity:    15, Status: models.SessionCompleted},
		},
		Attendance: []models.ClassAttendance{
			{MemberID: 1, SessionID: 1, Rating: &rating},
		},
	}
	return ds, ref
}

func TestWriteDatasetProducesAllTables(t *testing.T) {
	dir := t.TempDir()
	ds, ref := sampleData()

	manifest, err := WriteDataset(dir, ds, ref, 42)
	require.NoError(t, err)

	for _, schema := range Schemas() {
		path := filepath.Join(dir, schema.Name+".csv")
		assert.FileExists(t, path)
	}

	assert.NotEmpty(t, manifest.RunID)
	assert.Equal(t, uint64(42), manifest.Seed)
	assert.Equal(t, 1, manifest.RowCounts["members"])
	assert.Equal(t, 2, manifest.RowCounts["checkins"])
}

func TestWriteDatasetHeadersAndValues(t *testing.T) {
	dir := t.TempDir()
	ds, ref := sampleData()

	_, err := WriteDataset(dir, ds, ref, 42)
	require.NoError(t, err)

	records := readCSV(t, filepath.Join(dir, "checkins.csv"))
	require.Len(t, records, 3)

	schema, _ := SchemaFor("checkins")
	assert.Equal(t, schema.FinalHeader(), records[0])
	assert.Equal(t, []string{"1", "1", "2022-02-03 18:15:00", "2022-02-03 19:30:00", "4"}, records[1])
	// Null rating exports as an empty cell.
	assert.Equal(t, "", records[2][4])

	records = readCSV(t, filepath.Join(dir, "memberships.csv"))
	require.Len(t, records, 2)
	assert.Equal(t, []string{"1", "1", "1", "2022-02-01", "2022-03-03", "2022-02-01", "29.99", "Credit Card"}, records[1])
}

func TestWriteDatasetManifestParses(t *testing.T) {
	dir := t.TempDir()
	ds, ref := sampleData()

	written, err := WriteDataset(dir, ds, ref, 7)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)

	var manifest Manifest
	require.NoError(t, json.Unmarshal(data, &manifest))
	assert.Equal(t, written.RunID, manifest.RunID)
	assert.Equal(t, written.RowCounts, manifest.RowCounts)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}
