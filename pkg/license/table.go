package license

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/seatsync/pkg/logging"
)

// Table maps free-text license labels to tier codes. Lookups are
// case-insensitive and whitespace-trimmed, and the mapping is many-to-one:
// several labels may denote the same tier. Misses never fail; they log an
// advisory warning and fall back to a default.
type Table struct {
	codes  map[string]Tier
	logger *zerolog.Logger
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger used for mapping warnings and notices.
func WithLogger(logger *zerolog.Logger) Option {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithAliases merges additional label mappings into the table. Aliases are
// normalized on insertion and override earlier entries for the same label.
func WithAliases(aliases map[string]Tier) Option {
	return func(t *Table) {
		for label, code := range aliases {
			t.codes[normalizeLabel(label)] = code
		}
	}
}

// DefaultTable returns a Table with the canonical labels and the common
// aliases seen in roster exports.
func DefaultTable(opts ...Option) *Table {
	return NewTable(map[string]Tier{
		"Stakeholder":  TierStakeholder,
		"Basic":        TierBasic,
		"Basic Plus":   TierBasicPlus,
		"Basic+":       TierBasicPlus,
		"Pro":          TierPro,
		"Professional": TierPro,
	}, opts...)
}

// NewTable builds a Table from a label to tier mapping. Labels are
// normalized on insertion, so callers may supply any casing.
func NewTable(labels map[string]Tier, opts ...Option) *Table {
	t := &Table{
		codes:  make(map[string]Tier, len(labels)),
		logger: logging.Default(),
	}
	for label, code := range labels {
		t.codes[normalizeLabel(label)] = code
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Code resolves a license label to its tier code. Unknown labels resolve to
// TierStakeholder with a warning. Never fails.
func (t *Table) Code(label string) Tier {
	norm := normalizeLabel(label)
	if code, ok := t.codes[norm]; ok {
		return code
	}
	t.logger.Warn().
		Str("license", label).
		Str("fallback", TierStakeholder.String()).
		Msg("unrecognized license label")
	return TierStakeholder
}

// Label resolves a tier code to its canonical label. Codes outside the
// canonical range resolve to UnknownLabel with a warning. Never fails.
func (t *Table) Label(code Tier) string {
	if !code.Canonical() {
		t.logger.Warn().
			Int("tier", int(code)).
			Msg("unrecognized license tier code")
	}
	return code.String()
}

// Known reports whether a label resolves without the fallback.
func (t *Table) Known(label string) bool {
	_, ok := t.codes[normalizeLabel(label)]
	return ok
}

// Labels returns every label in the table, normalized and sorted.
func (t *Table) Labels() []string {
	labels := make([]string, 0, len(t.codes))
	for label := range t.codes {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Equivalent reports whether a label maps to the given tier code. A blank
// label is never equivalent to anything.
func (t *Table) Equivalent(label string, code Tier) bool {
	if strings.TrimSpace(label) == "" {
		return false
	}
	return t.Code(label) == code
}

// FloorForNew resolves the tier to create a new user at. The directory
// rejects creation at the stakeholder tier, so labels mapping to
// TierStakeholder are floored to TierBasic with a notice; the user can be
// lowered manually afterward.
func (t *Table) FloorForNew(label string) Tier {
	code := t.Code(label)
	if code == TierStakeholder {
		t.logger.Info().
			Str("license", label).
			Str("substitute", TierBasic.String()).
			Msg("cannot create user at stakeholder tier, substituting basic")
		return TierBasic
	}
	return code
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
