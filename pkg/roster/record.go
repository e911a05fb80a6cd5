// Package roster loads desired user records from CSV exports. A roster is
// the target state for a reconciliation pass: one record per identity,
// with the license label the identity should hold.
package roster

import (
	"strings"

	"github.com/agentstation/utc"
)

// Record is one row of desired state. Email is the identity key used to
// join against the directory snapshot. License is the requested label as
// it appeared in the export; resolution to a tier code happens later.
// Status, Source and the dates are informational and do not affect
// reconciliation.
type Record struct {
	Email       string   `json:"email" yaml:"email"`
	DisplayName string   `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	License     string   `json:"license" yaml:"license"`
	Status      string   `json:"status,omitempty" yaml:"status,omitempty"`
	Source      string   `json:"source,omitempty" yaml:"source,omitempty"`
	CreatedAt   utc.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	LastSeenAt  utc.Time `json:"last_seen_at,omitempty" yaml:"last_seen_at,omitempty"`
}

// Key returns the normalized identity key for the record: the email
// trimmed and lowercased.
func (r Record) Key() string {
	return strings.ToLower(strings.TrimSpace(r.Email))
}
