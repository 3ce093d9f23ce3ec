package generator

import (
	"fmt"
	"strings"
)

// maxIdentityAttempts bounds the retry loops for unique contact
// fields. Exhausting it means the configured volume no longer fits the
// address space, which would corrupt downstream uniqueness invariants,
// so the run aborts instead of producing duplicates.
const maxIdentityAttempts = 1000

var emailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "icloud.com"}

const usernameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// IdentityRegistry tracks every contact value handed out during a run
// so email and phone stay globally unique across branches. It is
// passed into the entity generator explicitly rather than living as
// process-wide state, which keeps runs composable.
type IdentityRegistry struct {
	emails map[string]struct{}
	phones map[string]struct{}
}

// NewIdentityRegistry creates an empty registry.
func NewIdentityRegistry() *IdentityRegistry {
	return &IdentityRegistry{
		emails: make(map[string]struct{}),
		phones: make(map[string]struct{}),
	}
}

// UniqueEmail generates a realistic-looking email address not seen
// before in this run.
func (reg *IdentityRegistry) UniqueEmail(rng *RNG) (string, error) {
	for attempt := 0; attempt < maxIdentityAttempts; attempt++ {
		var sb strings.Builder
		for i, n := 0, rng.IntRange(6, 12); i < n; i++ {
			sb.WriteByte(usernameAlphabet[rng.Intn(len(usernameAlphabet))])
		}
		email := fmt.Sprintf("%s@%s", sb.String(), emailDomains[rng.Intn(len(emailDomains))])

		if _, taken := reg.emails[email]; !taken {
			reg.emails[email] = struct{}{}
			return email, nil
		}
	}
	return "", fmt.Errorf("email address space exhausted after %d attempts (%d issued)",
		maxIdentityAttempts, len(reg.emails))
}

// UniquePhone generates a unique 10-digit UK-style mobile number
// starting with "07".
func (reg *IdentityRegistry) UniquePhone(rng *RNG) (string, error) {
	for attempt := 0; attempt < maxIdentityAttempts; attempt++ {
		digits := make([]byte, 8)
		for i := range digits {
			digits[i] = byte('0' + rng.Intn(10))
		}
		phone := "07" + string(digits)

		if _, taken := reg.phones[phone]; !taken {
			reg.phones[phone] = struct{}{}
			return phone, nil
		}
	}
	return "", fmt.Errorf("phone number space exhausted after %d attempts (%d issued)",
		maxIdentityAttempts, len(reg.phones))
}
