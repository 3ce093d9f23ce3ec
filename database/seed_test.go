package database

import (
	"testing"

	"github.com/gymchain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBranchesAreWellFormed(t *testing.T) {
	branches := DefaultBranches()
	require.Len(t, branches, 7)

	names := make(map[string]bool)
	addresses := make(map[string]bool)
	for i, b := range branches {
		assert.Equal(t, uint(i+1), b.BranchID)
		assert.NotEmpty(t, b.City)
		assert.False(t, b.OpeningDate.IsZero())

		require.False(t, names[b.BranchName], "duplicate branch name %s", b.BranchName)
		require.False(t, addresses[b.StreetAddress], "duplicate address %s", b.StreetAddress)
		names[b.BranchName] = true
		addresses[b.StreetAddress] = true
	}
}

func TestDefaultMembershipTypesAreWellFormed(t *testing.T) {
	types := DefaultMembershipTypes()
	require.NotEmpty(t, types)

	for _, mt := range types {
		assert.Greater(t, mt.MembershipPrice, 0.0)
		assert.Greater(t, mt.MembershipDuration, 0)
	}
}

func TestDefaultClassesStayWithinDurationBounds(t *testing.T) {
	classes := DefaultClasses()
	require.NotEmpty(t, classes)

	validTypes := map[string]bool{
		models.ClassTypeCardio:      true,
		models.ClassTypeStrength:    true,
		models.ClassTypeFlexibility: true,
		models.ClassTypeStretching:  true,
	}
	for _, c := range classes {
		assert.True(t, validTypes[c.ClassType], "class %s has unknown type %s", c.ClassName, c.ClassType)
		assert.GreaterOrEqual(t, c.Duration, 30)
		assert.LessOrEqual(t, c.Duration, 60)
	}
}

func TestGenerateTrainersPerBranch(t *testing.T) {
	branches := DefaultBranches()
	trainers := GenerateTrainers(branches, 42)

	perBranch := make(map[uint]int)
	openings := make(map[uint]int64)
	for _, b := range branches {
		openings[b.BranchID] = b.OpeningDate.Unix()
	}

	for _, tr := range trainers {
		perBranch[tr.BranchID]++
		assert.NotEmpty(t, tr.FirstName)
		assert.Contains(t, []string{"M", "F"}, tr.Gender)
		assert.GreaterOrEqual(t, tr.JoinDate.Unix(), openings[tr.BranchID],
			"trainer %d joined before the branch opened", tr.TrainerID)
	}

	require.Len(t, perBranch, len(branches))
	for branchID, count := range perBranch {
		assert.GreaterOrEqual(t, count, 2, "branch %d", branchID)
		assert.LessOrEqual(t, count, 5, "branch %d", branchID)
	}
}

func TestGenerateTrainersDeterministicUnderSeed(t *testing.T) {
	branches := DefaultBranches()
	assert.Equal(t, GenerateTrainers(branches, 42), GenerateTrainers(branches, 42))
}
