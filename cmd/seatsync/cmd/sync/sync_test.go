package sync

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/seatsync"
	"github.com/agentstation/seatsync/internal/appcontext"
	"github.com/agentstation/seatsync/internal/testutil"
	"github.com/agentstation/seatsync/pkg/directory"
	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/license"
	"github.com/agentstation/seatsync/pkg/logging"
	"github.com/agentstation/seatsync/pkg/reconcile"
)

const testToken = "cmd-test-token"

// mockApp returns an app context whose seatsync instances are wired to the
// given roster and directory stub, with command flag overrides applied on
// top the same way the real App does.
func mockApp(roster string, server *testutil.DirectoryServer) *appcontext.Mock {
	return &appcontext.Mock{
		SeatsyncWithOptionsFunc: func(opts ...seatsync.Option) (seatsync.Seatsync, error) {
			base := []seatsync.Option{
				seatsync.WithRoster(roster),
				seatsync.WithDirectory(server.URL(), testToken),
				seatsync.WithLogger(logging.NewNopLogger()),
			}
			return seatsync.New(append(base, opts...)...)
		},
	}
}

func TestExecuteSync(t *testing.T) {
	roster := testutil.WriteRoster(t, `email,name,license,status
alice@example.com,Alice Nguyen,Pro,active
carol@example.com,Carol Shaw,Basic,active
`)
	server := testutil.NewDirectoryServer(t, testToken,
		directory.User{ID: "u-001", Email: "alice@example.com", TierCode: license.TierBasic, LicenseSource: directory.SourceDirect},
	)

	reportPath := filepath.Join(t.TempDir(), "pass.json")
	flags := &Flags{Report: reportPath}

	if err := ExecuteSync(context.Background(), mockApp(roster, server), flags); err != nil {
		t.Fatalf("ExecuteSync() error: %v", err)
	}

	if created := server.Created(); len(created) != 1 || created[0] != "carol@example.com" {
		t.Errorf("Created() = %v, expected [carol@example.com]", created)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var summary reconcile.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if summary.Added != 1 || summary.Updated != 1 || summary.Failed != 0 {
		t.Errorf("report counts = %d/%d/%d added/updated/failed, expected 1/1/0",
			summary.Added, summary.Updated, summary.Failed)
	}
	if summary.RunID == "" {
		t.Error("report missing run id")
	}
}

func TestExecuteSyncDryRun(t *testing.T) {
	roster := testutil.WriteRoster(t, `email,name,license,status
carol@example.com,Carol Shaw,Basic,active
`)
	server := testutil.NewDirectoryServer(t, testToken)

	flags := &Flags{DryRun: true}
	if err := ExecuteSync(context.Background(), mockApp(roster, server), flags); err != nil {
		t.Fatalf("ExecuteSync() error: %v", err)
	}

	if created := server.Created(); len(created) != 0 {
		t.Errorf("dry run created users: %v", created)
	}
}

// failingDirectory rejects every mutation so passes complete with failures.
type failingDirectory struct{}

func (failingDirectory) FetchUsers(context.Context) ([]directory.User, error) {
	return nil, nil
}

func (failingDirectory) CreateUser(context.Context, string, string, license.Tier) (directory.User, error) {
	return directory.User{}, errors.NewAPIError("create user", 500, "internal server error")
}

func (failingDirectory) UpdateUserTier(context.Context, string, license.Tier) error {
	return errors.NewAPIError("update license", 500, "internal server error")
}

func TestExecuteSyncPartialFailure(t *testing.T) {
	roster := testutil.WriteRoster(t, `email,name,license,status
alice@example.com,Alice Nguyen,Pro,active
carol@example.com,Carol Shaw,Basic,active
`)

	app := &appcontext.Mock{
		SeatsyncWithOptionsFunc: func(opts ...seatsync.Option) (seatsync.Seatsync, error) {
			base := []seatsync.Option{
				seatsync.WithRoster(roster),
				seatsync.WithDirectoryClient(failingDirectory{}),
				seatsync.WithLogger(logging.NewNopLogger()),
			}
			return seatsync.New(append(base, opts...)...)
		},
	}

	err := ExecuteSync(context.Background(), app, &Flags{})
	if err == nil {
		t.Fatal("expected partial failure error")
	}

	var partial *errors.PartialFailureError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialFailureError, got %v", err)
	}
	if partial.Failed != 2 || partial.Total != 2 {
		t.Errorf("partial failure = %d of %d, expected 2 of 2", partial.Failed, partial.Total)
	}
}

func TestBuildSeatsyncOptions(t *testing.T) {
	opts, err := BuildSeatsyncOptions(&Flags{})
	if err != nil {
		t.Fatalf("BuildSeatsyncOptions() error: %v", err)
	}
	if len(opts) != 0 {
		t.Errorf("empty flags produced %d options, expected 0", len(opts))
	}

	opts, err = BuildSeatsyncOptions(&Flags{Roster: "roster.csv", Endpoint: "https://directory.example.com", Token: "t"})
	if err != nil {
		t.Fatalf("BuildSeatsyncOptions() error: %v", err)
	}
	if len(opts) != 2 {
		t.Errorf("roster+directory flags produced %d options, expected 2", len(opts))
	}

	tierMap := testutil.WriteTierMap(t, "Premium: Pro\n")
	opts, err = BuildSeatsyncOptions(&Flags{TierMap: tierMap})
	if err != nil {
		t.Fatalf("BuildSeatsyncOptions() error: %v", err)
	}
	if len(opts) != 1 {
		t.Errorf("tier map flag produced %d options, expected 1", len(opts))
	}

	if _, err := BuildSeatsyncOptions(&Flags{TierMap: "/nonexistent/tiers.yaml"}); err == nil {
		t.Error("expected error for missing tier map file")
	}
}
