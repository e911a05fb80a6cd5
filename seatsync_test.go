package seatsync

import (
	"context"
	"strings"
	"testing"

	"github.com/agentstation/seatsync/pkg/directory"
	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/license"
	"github.com/agentstation/seatsync/pkg/roster"
)

func TestNewWithDefaults(t *testing.T) {
	ss, err := New()
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}

	// No roster configured
	if _, err := ss.Roster(); !errors.IsValidationError(err) {
		t.Errorf("Expected validation error without roster path, got %v", err)
	}

	// No directory configured
	if _, err := ss.Directory(context.Background()); !errors.IsValidationError(err) {
		t.Errorf("Expected validation error without directory client, got %v", err)
	}
}

func TestNewOptionErrorIsWrapped(t *testing.T) {
	_, err := New(WithRoster(""))
	if err == nil {
		t.Fatal("Expected error for empty roster path")
	}
	if !strings.Contains(err.Error(), "applying options") {
		t.Errorf("Expected wrapped option error, got %v", err)
	}
}

func TestNewRequiresDirectoryToken(t *testing.T) {
	_, err := New(WithDirectory("https://directory.example.com", ""))
	if !errors.Is(err, errors.ErrTokenRequired) {
		t.Errorf("Expected ErrTokenRequired, got %v", err)
	}
}

func TestNewRejectsNilOverrides(t *testing.T) {
	cases := []struct {
		name string
		opt  Option
	}{
		{"reader", WithRosterReader(nil)},
		{"client", WithDirectoryClient(nil)},
		{"table", WithTable(nil)},
		{"sink", WithSink(nil)},
		{"logger", WithLogger(nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.opt); err == nil {
				t.Errorf("Expected error for nil %s", tc.name)
			}
		})
	}
}

func TestRosterReadsConfiguredFile(t *testing.T) {
	path := writeRoster(t,
		"alice@example.com,Alice,Pro",
		"bob@example.com,Bob,Basic",
	)
	ss, err := New(WithRoster(path))
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}

	records, err := ss.Roster()
	if err != nil {
		t.Fatalf("Roster failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Email != "alice@example.com" || records[0].License != "Pro" {
		t.Errorf("Unexpected first record: %+v", records[0])
	}
}

func TestRosterUsesConfiguredReader(t *testing.T) {
	path := writeRoster(t, "alice@example.com,Alice,Pro")
	ss, err := New(
		WithRoster(path),
		WithRosterReader(roster.NewReader()),
	)
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}
	if _, err := ss.Roster(); err != nil {
		t.Errorf("Roster with custom reader failed: %v", err)
	}
}

func TestDirectoryReturnsSnapshot(t *testing.T) {
	fake := newFakeDirectory(
		directory.User{ID: "u-1", Email: "alice@example.com", TierCode: license.TierPro},
		directory.User{ID: "u-2", Email: "bob@example.com", TierCode: license.TierBasic},
	)
	ss, err := New(WithDirectoryClient(fake))
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}

	users, err := ss.Directory(context.Background())
	if err != nil {
		t.Fatalf("Directory failed: %v", err)
	}
	if len(users) != 2 || users[0].ID != "u-1" {
		t.Errorf("Unexpected snapshot: %+v", users)
	}
}

func TestDirectoryAcceptsNilContext(t *testing.T) {
	ss, err := New(WithDirectoryClient(newFakeDirectory()))
	if err != nil {
		t.Fatalf("Failed to create seatsync: %v", err)
	}
	//nolint:staticcheck // nil context is part of the contract under test
	if _, err := ss.Directory(nil); err != nil {
		t.Errorf("Directory with nil context failed: %v", err)
	}
}
