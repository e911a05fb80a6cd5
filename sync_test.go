package seatsync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/agentstation/seatsync/pkg/directory"
	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/license"
	"github.com/agentstation/seatsync/pkg/reconcile"
)

// Compile-time interface check to ensure proper implementation.
var _ directory.Client = (*fakeDirectory)(nil)

// fakeDirectory is an in-memory directory.Client for facade tests. The
// snapshot is fixed at construction; creates and updates are recorded but
// never fold back into the snapshot.
type fakeDirectory struct {
	mu         sync.Mutex
	users      []directory.User
	nextID     int
	created    []directory.User
	updated    map[string]license.Tier
	fetchErr   error
	failCreate map[string]error
}

func newFakeDirectory(users ...directory.User) *fakeDirectory {
	return &fakeDirectory{
		users:      users,
		nextID:     100,
		updated:    make(map[string]license.Tier),
		failCreate: make(map[string]error),
	}
}

func (f *fakeDirectory) FetchUsers(_ context.Context) ([]directory.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]directory.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeDirectory) CreateUser(_ context.Context, email, displayName string, tier license.Tier) (directory.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failCreate[email]; ok {
		return directory.User{}, err
	}
	f.nextID++
	user := directory.User{
		ID:            fmt.Sprintf("u-%d", f.nextID),
		Email:         email,
		DisplayName:   displayName,
		TierCode:      tier,
		LicenseSource: directory.SourceDirect,
	}
	f.created = append(f.created, user)
	return user, nil
}

func (f *fakeDirectory) UpdateUserTier(_ context.Context, id string, tier license.Tier) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated[id] = tier
	return nil
}

func (f *fakeDirectory) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func (f *fakeDirectory) updatedTier(id string) (license.Tier, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tier, ok := f.updated[id]
	return tier, ok
}

// writeRoster writes a CSV roster into a temp dir and returns its path.
func writeRoster(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	content := "Email,Name,License\n"
	for _, row := range rows {
		content += row + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write roster: %v", err)
	}
	return path
}

// recordingSink captures everything a pass emits.
type recordingSink struct {
	mu        sync.Mutex
	outcomes  []reconcile.Outcome
	summaries []*reconcile.Summary
}

func (r *recordingSink) OnOutcome(o reconcile.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recordingSink) OnSummary(s *reconcile.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, s)
}

func TestSyncApplyPass(t *testing.T) {
	roster := writeRoster(t,
		"dana@example.com,Dana,Pro",
		"erin@example.com,Erin,Pro",
		"frank@example.com,Frank,Pro",
		"grace@example.com,Grace,Stakeholder",
	)
	fake := newFakeDirectory(
		directory.User{ID: "u-1", Email: "erin@example.com", TierCode: license.TierBasic},
		directory.User{ID: "u-2", Email: "frank@example.com", TierCode: license.TierPro},
	)

	ss, err := New(WithRoster(roster), WithDirectoryClient(fake))
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}

	summary, err := ss.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	if summary.Added != 2 || summary.Updated != 1 || summary.Unchanged != 1 || summary.Failed != 0 {
		t.Errorf("Unexpected counts: %s", summary.String())
	}
	if summary.TotalProcessed != 4 || len(summary.Outcomes) != 4 {
		t.Errorf("Expected 4 processed outcomes, got %d and %d", summary.TotalProcessed, len(summary.Outcomes))
	}
	if summary.TotalDesired != 4 || summary.TotalRemote != 2 {
		t.Errorf("Expected desired=4 remote=2, got %d and %d", summary.TotalDesired, summary.TotalRemote)
	}

	// Outcomes preserve roster order
	wantEmails := []string{"dana@example.com", "erin@example.com", "frank@example.com", "grace@example.com"}
	for i, want := range wantEmails {
		if summary.Outcomes[i].Email != want {
			t.Errorf("Outcome %d: expected %s, got %s", i, want, summary.Outcomes[i].Email)
		}
	}

	// Dana and Grace created; Grace floored up from the view-only tier
	if fake.createCount() != 2 {
		t.Fatalf("Expected 2 creates, got %d", fake.createCount())
	}
	if fake.created[1].TierCode != license.TierBasic {
		t.Errorf("Expected stakeholder request created at Basic, got %v", fake.created[1].TierCode)
	}

	// Erin moved from Basic to Pro
	if tier, ok := fake.updatedTier("u-1"); !ok || tier != license.TierPro {
		t.Errorf("Expected u-1 updated to Pro, got %v (updated=%v)", tier, ok)
	}
	if _, ok := fake.updatedTier("u-2"); ok {
		t.Error("Expected no update for user already at requested tier")
	}

	// Histogram is keyed by requested label
	if summary.LicenseCounts["Pro"] != 3 || summary.LicenseCounts["Stakeholder"] != 1 {
		t.Errorf("Unexpected license counts: %v", summary.LicenseCounts)
	}
}

func TestSyncPreview(t *testing.T) {
	roster := writeRoster(t,
		"dana@example.com,Dana,Pro",
		"erin@example.com,Erin,Pro",
	)
	fake := newFakeDirectory(
		directory.User{ID: "u-1", Email: "erin@example.com", TierCode: license.TierBasic},
	)

	ss, err := New(WithRoster(roster), WithDirectoryClient(fake))
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}

	summary, err := ss.Sync(context.Background(), SyncWithPreview(true))
	if err != nil {
		t.Fatalf("Preview sync failed: %v", err)
	}

	if !summary.Preview {
		t.Error("Expected summary to be marked as preview")
	}
	if summary.Added != 1 || summary.Updated != 1 {
		t.Errorf("Unexpected counts: %s", summary.String())
	}
	if summary.Outcomes[0].Status != reconcile.StatusWillAdd {
		t.Errorf("Expected %q, got %q", reconcile.StatusWillAdd, summary.Outcomes[0].Status)
	}

	// Preview never touches the directory
	if fake.createCount() != 0 {
		t.Errorf("Expected no creates in preview, got %d", fake.createCount())
	}
	if _, ok := fake.updatedTier("u-1"); ok {
		t.Error("Expected no updates in preview")
	}
}

func TestSyncFailuresContinuePass(t *testing.T) {
	roster := writeRoster(t,
		"alice@example.com,Alice,Pro",
		"bob@example.com,Bob,Basic",
		"carol@example.com,Carol,Pro",
	)
	fake := newFakeDirectory(
		directory.User{ID: "u-9", Email: "carol@example.com", TierCode: license.TierBasic},
	)
	fake.failCreate["bob@example.com"] = errors.New("quota exceeded")

	ss, err := New(WithRoster(roster), WithDirectoryClient(fake))
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}

	summary, err := ss.Sync(context.Background())
	if err != nil {
		t.Fatalf("Expected pass to complete despite record failure, got %v", err)
	}

	if summary.Added != 1 || summary.Failed != 1 || summary.Updated != 1 {
		t.Errorf("Unexpected counts: %s", summary.String())
	}
	if !summary.HasFailures() {
		t.Error("Expected HasFailures to be true")
	}
	failed := summary.Outcomes[1]
	if failed.Action != reconcile.ActionFailed || failed.Error == "" {
		t.Errorf("Expected failed outcome with error, got %+v", failed)
	}
}

func TestSyncMissingRoster(t *testing.T) {
	ss, err := New(
		WithRoster(filepath.Join(t.TempDir(), "absent.csv")),
		WithDirectoryClient(newFakeDirectory()),
	)
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}

	if _, err := ss.Sync(context.Background()); !errors.IsIOError(err) {
		t.Errorf("Expected IO error for missing roster, got %v", err)
	}
}

func TestSyncWithoutDirectory(t *testing.T) {
	ss, err := New(WithRoster(writeRoster(t, "a@example.com,A,Pro")))
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}

	_, err = ss.Sync(context.Background())
	var verr *errors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected validation error without directory client, got %v", err)
	}
}

func TestSyncCanceledContext(t *testing.T) {
	roster := writeRoster(t,
		"alice@example.com,Alice,Pro",
		"bob@example.com,Bob,Pro",
	)
	ss, err := New(WithRoster(roster), WithDirectoryClient(newFakeDirectory()))
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := ss.Sync(ctx)
	if !errors.IsCanceled(err) {
		t.Fatalf("Expected canceled error, got %v", err)
	}

	// A canceled pass still reports the partial summary
	if summary == nil {
		t.Fatal("Expected partial summary from canceled pass")
	}
	if summary.TotalProcessed != 0 || len(summary.Outcomes) != 0 {
		t.Errorf("Expected no records processed before cancellation, got %d", summary.TotalProcessed)
	}
}

func TestSyncSinksReceiveResults(t *testing.T) {
	roster := writeRoster(t, "alice@example.com,Alice,Pro")
	instanceSink := &recordingSink{}
	passSink := &recordingSink{}

	ss, err := New(
		WithRoster(roster),
		WithDirectoryClient(newFakeDirectory()),
		WithSink(instanceSink),
	)
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}

	if _, err := ss.Sync(context.Background(), SyncWithSink(passSink)); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	for name, sink := range map[string]*recordingSink{"instance": instanceSink, "pass": passSink} {
		if len(sink.outcomes) != 1 {
			t.Errorf("%s sink: expected 1 outcome, got %d", name, len(sink.outcomes))
		}
		if len(sink.summaries) != 1 {
			t.Errorf("%s sink: expected 1 summary, got %d", name, len(sink.summaries))
		}
	}

	// A second pass reaches the instance sink but not the per-pass sink
	if _, err := ss.Sync(context.Background()); err != nil {
		t.Fatalf("Second sync failed: %v", err)
	}
	if len(instanceSink.summaries) != 2 {
		t.Errorf("Expected instance sink on every pass, got %d summaries", len(instanceSink.summaries))
	}
	if len(passSink.summaries) != 1 {
		t.Errorf("Expected pass sink on one pass only, got %d summaries", len(passSink.summaries))
	}
}

func TestHooksFire(t *testing.T) {
	roster := writeRoster(t,
		"alice@example.com,Alice,Pro",
		"bob@example.com,Bob,Basic",
		"carol@example.com,Carol,Pro",
	)
	fake := newFakeDirectory(
		directory.User{ID: "u-9", Email: "carol@example.com", TierCode: license.TierBasic},
	)
	fake.failCreate["bob@example.com"] = errors.New("quota exceeded")

	ss, err := New(WithRoster(roster), WithDirectoryClient(fake))
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}

	var added, updated, failed, completed int
	var completedSummary *reconcile.Summary
	ss.OnUserAdded(func(o reconcile.Outcome) {
		added++
		if o.Email != "alice@example.com" {
			t.Errorf("Unexpected added hook email: %s", o.Email)
		}
	})
	ss.OnUserUpdated(func(o reconcile.Outcome) { updated++ })
	ss.OnRecordFailed(func(o reconcile.Outcome) { failed++ })
	ss.OnPassCompleted(func(s *reconcile.Summary) {
		completed++
		completedSummary = s
	})

	if _, err := ss.Sync(context.Background()); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	if added != 1 || updated != 1 || failed != 1 {
		t.Errorf("Expected hooks added=1 updated=1 failed=1, got %d/%d/%d", added, updated, failed)
	}
	if completed != 1 || completedSummary == nil {
		t.Errorf("Expected one completion hook with summary, got %d", completed)
	}
}

func TestAutoSyncLifecycle(t *testing.T) {
	roster := writeRoster(t, "alice@example.com,Alice,Pro")
	fake := newFakeDirectory()

	ss, err := New(
		WithRoster(roster),
		WithDirectoryClient(fake),
		WithAutoSyncInterval(10*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}
	t.Cleanup(func() { _ = ss.AutoSyncOff() })

	if err := ss.AutoSyncOn(); err != nil {
		t.Fatalf("AutoSyncOn failed: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for fake.createCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if fake.createCount() == 0 {
		t.Fatal("Expected background sync to run at least once")
	}

	if err := ss.AutoSyncOff(); err != nil {
		t.Fatalf("AutoSyncOff failed: %v", err)
	}

	// Let any in-flight pass drain, then confirm the loop stopped
	time.Sleep(100 * time.Millisecond)
	before := fake.createCount()
	time.Sleep(150 * time.Millisecond)
	if after := fake.createCount(); after != before {
		t.Errorf("Expected no syncs after AutoSyncOff, got %d more", after-before)
	}

	// Stopping twice is safe
	if err := ss.AutoSyncOff(); err != nil {
		t.Errorf("Second AutoSyncOff failed: %v", err)
	}
}

func TestAutoSyncRequiresInterval(t *testing.T) {
	ss, err := New(
		WithRoster(writeRoster(t, "a@example.com,A,Pro")),
		WithDirectoryClient(newFakeDirectory()),
		WithAutoSyncInterval(0),
	)
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}

	err = ss.AutoSyncOn()
	var verr *errors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected validation error for zero interval, got %v", err)
	}
}
