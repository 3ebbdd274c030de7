package license

import "github.com/iniyantalkies/milkdiary/internal/domain"

// ─── Key Sets ───────────────────────────────────────────────────────────────
// Keys are handed out over WhatsApp by the admin. Trial keys grant 30
// days; the two paid keys grant a year each. Plaintext comparison is
// deliberate — there is no server to validate against.

// trialKeys is the fixed allow-list of 30-day trial keys.
var trialKeys = []string{
	"MDT-4829", "MDT-7314", "MDT-9056", "MDT-1642", "MDT-8891",
	"MDT-2407", "MDT-6735", "MDT-5189", "MDT-7924", "MDT-3461",
	"MDT-9502", "MDT-1847", "MDT-6279", "MDT-4038", "MDT-8695",
	"MDT-2754", "MDT-9146", "MDT-5308", "MDT-7612", "MDT-4983",
	"MDT-6027", "MDT-8359", "MDT-1476", "MDT-9204", "MDT-3581",
	"MDT-7460", "MDT-5819", "MDT-2648", "MDT-9037", "MDT-4172",
	"MDT-6958", "MDT-1209", "MDT-8746", "MDT-5021", "MDT-3894",
	"MDT-9617", "MDT-2485", "MDT-7306", "MDT-1568", "MDT-8429",
	"MDT-6073", "MDT-9351", "MDT-4206", "MDT-7982", "MDT-2619",
	"MDT-5847", "MDT-9031", "MDT-1765", "MDT-6428", "MDT-8193",
}

// Paid license keys.
const (
	keyYear1 = "MDP-583204"
	keyYear2 = "MDP-102938"
)

// KeyRule classifies a presented key. Rules are evaluated in order;
// the first match wins.
type KeyRule struct {
	Match     func(key string) bool
	Tier      domain.Tier
	GrantDays int
}

// DefaultRules returns the built-in rule table.
func DefaultRules() []KeyRule {
	trial := make(map[string]struct{}, len(trialKeys))
	for _, k := range trialKeys {
		trial[k] = struct{}{}
	}
	return []KeyRule{
		{
			Match:     func(key string) bool { _, ok := trial[key]; return ok },
			Tier:      domain.TierTrial,
			GrantDays: 30,
		},
		{
			Match:     func(key string) bool { return key == keyYear1 },
			Tier:      domain.TierPaidYear1,
			GrantDays: 365,
		},
		{
			Match:     func(key string) bool { return key == keyYear2 },
			Tier:      domain.TierPaidYear2,
			GrantDays: 365,
		},
	}
}
