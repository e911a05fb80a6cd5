// Package directory defines the remote directory's user model and the
// client capabilities the reconciliation engine consumes. The engine never
// talks to the wire itself; it depends on a Client that can fetch the full
// user snapshot and apply single-user mutations. The HTTP implementation
// lives in internal/dirclient.
package directory

import (
	"context"

	"github.com/agentstation/seatsync/pkg/license"
)

// Client is the set of directory capabilities a reconciliation pass uses.
//
// FetchUsers must return the complete, deduplicated user set; pagination
// and retries are the implementation's concern. A fetch failure is fatal to
// the pass, so implementations should not return partial snapshots.
//
// CreateUser and UpdateUserTier mutate a single user. The directory may
// accept a call without the change becoming visible (tiers managed by an
// upstream subscription are the known case); a nil error therefore means
// "the directory accepted the call", not "the change is in effect".
type Client interface {
	FetchUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, email, displayName string, tier license.Tier) (User, error)
	UpdateUserTier(ctx context.Context, id string, tier license.Tier) error
}
