package directory

import (
	"strings"

	"github.com/agentstation/seatsync/pkg/license"
)

// LicenseSource tags who controls a user's tier.
type LicenseSource string

// Canonical license sources.
const (
	// SourceSubscription marks a tier managed by an upstream subscription.
	// Direct updates to such users are accepted by the directory but may
	// never take effect.
	SourceSubscription LicenseSource = "subscription"
	// SourceDirect marks a tier assignable through the directory API.
	SourceDirect LicenseSource = "direct"
)

// External reports whether the tier is controlled outside the directory.
func (s LicenseSource) External() bool {
	return s == SourceSubscription
}

// User is the directory's current record for an identity. ID is assigned
// by the directory and is never known before creation. TierCode is usually
// one of the canonical tiers but legacy codes appear in the wild and are
// preserved as-is.
type User struct {
	ID            string        `json:"id" yaml:"id"`
	Email         string        `json:"email" yaml:"email"`
	DisplayName   string        `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	TierCode      license.Tier  `json:"tier" yaml:"tier"`
	LicenseSource LicenseSource `json:"license_source,omitempty" yaml:"license_source,omitempty"`
}

// Key returns the normalized identity key for the user: the email trimmed
// and lowercased, matching roster.Record.Key.
func (u User) Key() string {
	return strings.ToLower(strings.TrimSpace(u.Email))
}
