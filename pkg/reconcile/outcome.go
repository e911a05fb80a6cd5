package reconcile

// Action classifies what a pass decided for one desired record. The set is
// closed; consumers switch over it exhaustively when formatting or counting.
type Action string

// Actions, one per record.
const (
	// ActionAdd means the identity was absent from the directory.
	ActionAdd Action = "add"
	// ActionUpdate means the identity existed at a different tier.
	ActionUpdate Action = "update"
	// ActionNoChange means the directory already matched the desired state.
	ActionNoChange Action = "nochange"
	// ActionFailed means the create or update call failed for this record.
	// The rest of the pass continues.
	ActionFailed Action = "failed"
)

// String returns the action name.
func (a Action) String() string {
	return string(a)
}

// Base status texts. Qualifiers for tier substitution and
// subscription-managed licenses are appended by the engine.
const (
	StatusWillAdd      = "Will be added"
	StatusAdded        = "Added successfully"
	StatusFailedAdd    = "Failed to add"
	StatusWillUpdate   = "Will be updated"
	StatusUpdated      = "Updated successfully"
	StatusFailedUpdate = "Failed to update"
	StatusUnchanged    = "Already up to date"
)

// Outcome is the terminal classification of one desired record. Exactly one
// Outcome is produced per processed record, in input order, and it is never
// mutated after the classification step that produced it.
type Outcome struct {
	Action      Action `json:"action" yaml:"action"`
	Email       string `json:"email" yaml:"email"`
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	// PriorLicense is the label of the directory's current tier. Set for
	// updates and no-ops; empty for adds, where there is no prior state.
	PriorLicense string `json:"prior_license,omitempty" yaml:"prior_license,omitempty"`
	// NewLicense is the requested label as it appeared in the roster.
	NewLicense string `json:"new_license" yaml:"new_license"`
	Status     string `json:"status" yaml:"status"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	Success    bool   `json:"success" yaml:"success"`
	// RemoteID is the directory's id for the user, when known: always for
	// updates and no-ops, after a successful create for adds.
	RemoteID string `json:"remote_id,omitempty" yaml:"remote_id,omitempty"`
}
