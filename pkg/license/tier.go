// Package license maps between human-readable license labels and normalized
// tier codes. The mapping is configuration data, not control flow: a Table is
// constructed once (defaults plus optional organization-specific aliases) and
// passed into the reconciliation engine, so separate passes and tests can use
// distinct tables.
package license

// Tier is a normalized license level in the remote directory.
type Tier int

// Canonical tiers, lowest to highest.
const (
	// TierStakeholder is the view-only tier. The directory cannot create
	// users at this tier; see Table.FloorForNew.
	TierStakeholder Tier = iota
	// TierBasic is the standard tier.
	TierBasic
	// TierBasicPlus is the standard tier with extended features.
	TierBasicPlus
	// TierPro is the full-featured tier.
	TierPro
)

// UnknownLabel is returned for tier codes outside the canonical range.
// Legacy codes do appear in directory snapshots and are preserved, not
// rejected, so formatting must handle them.
const UnknownLabel = "Unknown"

// tierLabels is the fixed reverse table from canonical code to label.
var tierLabels = map[Tier]string{
	TierStakeholder: "Stakeholder",
	TierBasic:       "Basic",
	TierBasicPlus:   "Basic Plus",
	TierPro:         "Pro",
}

// String returns the canonical label for t, or UnknownLabel for codes
// outside the canonical range.
func (t Tier) String() string {
	if label, ok := tierLabels[t]; ok {
		return label
	}
	return UnknownLabel
}

// Canonical reports whether t is one of the four defined tiers.
func (t Tier) Canonical() bool {
	_, ok := tierLabels[t]
	return ok
}
