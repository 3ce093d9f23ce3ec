package generator

import (
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gymchain/models"
)

// Config holds the tunables shared by every generation stage.
type Config struct {
	// HorizonStart and HorizonEnd bound every generated date and
	// timestamp. HorizonEnd is an instant (end of the final day).
	HorizonStart time.Time
	HorizonEnd   time.Time

	// MinMembers and MaxMembers bound the per-branch member count.
	MinMembers int
	MaxMembers int

	// Seed drives every random draw. Zero seeds from the clock.
	Seed uint64
}

// Reference holds the static catalogs the pipeline consumes.
type Reference struct {
	Branches        []models.Branch
	MembershipTypes []models.MembershipType
	Classes         []models.Class
	Trainers        []models.Trainer
}

// Dataset is the output of one generation run. Each stage fully
// produces its slice before the next stage starts; nothing is mutated
// afterwards except the attendance rating back-fill pass.
type Dataset struct {
	Members     []models.Member
	Memberships []models.Membership
	CheckIns    []models.CheckIn
	Sessions    []models.ClassSession
	Attendance  []models.ClassAttendance
}

// Pipeline runs the generation stages in dependency order as a single
// synchronous pass over in-memory collections.
type Pipeline struct {
	cfg      Config
	rng      *RNG
	faker    *gofakeit.Faker
	registry *IdentityRegistry
}

// NewPipeline creates a pipeline for one generation run.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if !cfg.HorizonEnd.After(cfg.HorizonStart) {
		return nil, fmt.Errorf("horizon end %s is not after horizon start %s",
			cfg.HorizonEnd.Format("2006-01-02"), cfg.HorizonStart.Format("2006-01-02"))
	}
	if cfg.MinMembers < 1 || cfg.MaxMembers < cfg.MinMembers {
		return nil, fmt.Errorf("invalid member count range [%d, %d]", cfg.MinMembers, cfg.MaxMembers)
	}
	return &Pipeline{
		cfg:      cfg,
		rng:      NewRNG(cfg.Seed),
		faker:    gofakeit.New(cfg.Seed),
		registry: NewIdentityRegistry(),
	}, nil
}

// Run executes the full pipeline: members, membership payments,
// check-ins, class sessions, and class attendance.
func (p *Pipeline) Run(ref Reference) (*Dataset, error) {
	if len(ref.Branches) == 0 {
		return nil, fmt.Errorf("no branches to generate for")
	}
	if len(ref.MembershipTypes) == 0 {
		return nil, fmt.Errorf("membership type catalog is empty")
	}

	members, err := p.GenerateMembers(ref.Branches)
	if err != nil {
		return nil, fmt.Errorf("failed to generate members: %w", err)
	}
	log.Printf("  ✓ Generated %d members across %d branches", len(members), len(ref.Branches))

	memberships := p.GeneratePayments(members, ref.MembershipTypes)
	log.Printf("  ✓ Generated %d membership payments", len(memberships))

	checkIns := p.GenerateCheckIns(members, memberships)
	log.Printf("  ✓ Generated %d check-ins", len(checkIns))

	sessions := p.GenerateSessions(ref.Branches, ref.Trainers, ref.Classes)
	log.Printf("  ✓ Generated %d class sessions", len(sessions))

	attendance := p.GenerateAttendance(sessions, checkIns, ref.Classes)
	attendance = p.EnforceSessionCapacity(attendance, sessions)
	p.AssignAttendanceRatings(attendance)
	log.Printf("  ✓ Generated %d attendance records", len(attendance))

	return &Dataset{
		Members:     members,
		Memberships: memberships,
		CheckIns:    checkIns,
		Sessions:    sessions,
		Attendance:  attendance,
	}, nil
}

// horizonDay is the last whole calendar day inside the horizon.
func (p *Pipeline) horizonDay() time.Time {
	return atMidnight(p.cfg.HorizonEnd)
}
