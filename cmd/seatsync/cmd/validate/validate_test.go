package validate

import (
	"testing"

	"github.com/agentstation/seatsync"
	"github.com/agentstation/seatsync/internal/appcontext"
	"github.com/agentstation/seatsync/internal/testutil"
	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/logging"
)

// mockApp returns an app context building seatsync instances over the
// given roster, with flag overrides applied on top.
func mockApp(roster string) *appcontext.Mock {
	return &appcontext.Mock{
		SeatsyncWithOptionsFunc: func(opts ...seatsync.Option) (seatsync.Seatsync, error) {
			base := []seatsync.Option{
				seatsync.WithRoster(roster),
				seatsync.WithLogger(logging.NewNopLogger()),
			}
			return seatsync.New(append(base, opts...)...)
		},
	}
}

func TestExecuteValidate(t *testing.T) {
	roster := testutil.WriteRoster(t, `email,name,license,status
alice@example.com,Alice Nguyen,Pro,active
bob@example.com,Bob Alvarez,Basic Plus,active
`)

	if err := ExecuteValidate(mockApp(roster), &Flags{}); err != nil {
		t.Fatalf("ExecuteValidate() error: %v", err)
	}
}

func TestExecuteValidateUnknownLabels(t *testing.T) {
	// Unknown labels are warnings, not errors: the pass would still run,
	// substituting the fallback tier.
	roster := testutil.WriteRoster(t, `email,name,license,status
alice@example.com,Alice Nguyen,Enterprise,active
`)

	if err := ExecuteValidate(mockApp(roster), &Flags{}); err != nil {
		t.Fatalf("ExecuteValidate() error: %v", err)
	}
}

func TestExecuteValidateRosterFlag(t *testing.T) {
	configured := testutil.WriteRoster(t, "name,license\nBroken,Basic\n")
	override := testutil.WriteRoster(t, `email,name,license,status
alice@example.com,Alice Nguyen,Pro,active
`)

	// The --roster flag replaces the configured roster entirely, so the
	// broken configured file is never read.
	if err := ExecuteValidate(mockApp(configured), &Flags{Roster: override}); err != nil {
		t.Fatalf("ExecuteValidate() error: %v", err)
	}
}

func TestExecuteValidateMalformedRoster(t *testing.T) {
	roster := testutil.WriteRoster(t, "name,license\nNo Email,Basic\n")

	err := ExecuteValidate(mockApp(roster), &Flags{})
	if err == nil {
		t.Fatal("expected error for roster without an email column")
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestExecuteValidateMissingRoster(t *testing.T) {
	err := ExecuteValidate(mockApp("/nonexistent/roster.csv"), &Flags{})
	if err == nil {
		t.Fatal("expected error for missing roster")
	}
	if !errors.IsIOError(err) {
		t.Errorf("expected IO error, got %v", err)
	}
}

func TestExecuteValidateTierMap(t *testing.T) {
	roster := testutil.WriteRoster(t, `email,name,license,status
alice@example.com,Alice Nguyen,Premium,active
`)
	tierMap := testutil.WriteTierMap(t, "Premium: Pro\n")

	// With the alias loaded, Premium resolves and validation is clean.
	if err := ExecuteValidate(mockApp(roster), &Flags{TierMap: tierMap}); err != nil {
		t.Fatalf("ExecuteValidate() error: %v", err)
	}

	if err := ExecuteValidate(mockApp(roster), &Flags{TierMap: "/nonexistent/tiers.yaml"}); err == nil {
		t.Error("expected error for missing tier map file")
	}
}
