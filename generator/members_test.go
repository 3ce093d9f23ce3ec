package generator

import (
	"testing"
	"time"

	"github.com/gymchain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		HorizonStart: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		HorizonEnd:   time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
		MinMembers:   30,
		MaxMembers:   50,
		Seed:         42,
	}
}

func testBranches() []models.Branch {
	return []models.Branch{
		{BranchID: 1, BranchName: "Central", City: "London", StreetAddress: "1 High Street", OpeningDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
		{BranchID: 2, BranchName: "North", City: "Leeds", StreetAddress: "2 Call Lane", OpeningDate: time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestGenerateMembersCountsPerBranch(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	members, err := p.GenerateMembers(testBranches())
	require.NoError(t, err)

	perBranch := make(map[uint]int)
	for _, m := range members {
		perBranch[m.BranchID]++
	}
	require.Len(t, perBranch, 2)
	for branchID, count := range perBranch {
		assert.GreaterOrEqual(t, count, 30, "branch %d", branchID)
		assert.LessOrEqual(t, count, 50, "branch %d", branchID)
	}
}

func TestGenerateMembersFieldInvariants(t *testing.T) {
	cfg := testConfig()
	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	branches := testBranches()
	openings := make(map[uint]time.Time)
	for _, b := range branches {
		openings[b.BranchID] = b.OpeningDate
	}

	members, err := p.GenerateMembers(branches)
	require.NoError(t, err)
	require.NotEmpty(t, members)

	emails := make(map[string]bool)
	phones := make(map[string]bool)
	for _, m := range members {
		assert.Contains(t, []string{"M", "F"}, m.Gender)
		assert.NotEmpty(t, m.FirstName)
		assert.NotEmpty(t, m.LastName)

		require.False(t, emails[m.Email], "duplicate email %s", m.Email)
		require.False(t, phones[m.Phone], "duplicate phone %s", m.Phone)
		emails[m.Email] = true
		phones[m.Phone] = true

		assert.False(t, m.DateOfBirth.Before(dobRangeStart))
		assert.False(t, m.DateOfBirth.After(dobRangeEnd))

		assert.False(t, m.JoinDate.Before(openings[m.BranchID]),
			"member %d joined before branch opening", m.MemberID)
		assert.False(t, m.JoinDate.After(cfg.HorizonEnd))
	}
}

func TestGenerateMembersBirthDatesSkewYoung(t *testing.T) {
	cfg := testConfig()
	cfg.MinMembers = 300
	cfg.MaxMembers = 300
	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	members, err := p.GenerateMembers(testBranches()[:1])
	require.NoError(t, err)

	midpoint := dobRangeStart.AddDate(0, 0, int(dobRangeEnd.Sub(dobRangeStart).Hours()/24/2))
	younger := 0
	for _, m := range members {
		if m.DateOfBirth.After(midpoint) {
			younger++
		}
	}
	// Beta(4, 1) puts ~94% of the mass above the midpoint.
	assert.Greater(t, younger, len(members)*3/4)
}

func TestGenerateMembersDeterministicUnderSeed(t *testing.T) {
	p1, err := NewPipeline(testConfig())
	require.NoError(t, err)
	p2, err := NewPipeline(testConfig())
	require.NoError(t, err)

	m1, err := p1.GenerateMembers(testBranches())
	require.NoError(t, err)
	m2, err := p2.GenerateMembers(testBranches())
	require.NoError(t, err)

	assert.Equal(t, m1, m2)
}
