package table

import (
	"strings"
	"testing"

	"github.com/agentstation/seatsync/pkg/license"
	"github.com/agentstation/seatsync/pkg/logging"
	"github.com/agentstation/seatsync/pkg/roster"
)

func TestTiersData(t *testing.T) {
	tbl := license.NewTable(map[string]license.Tier{
		"Pro":        license.TierPro,
		"Basic Plus": license.TierBasicPlus,
	}, license.WithLogger(logging.NewNopLogger()))

	data := TiersData(tbl)

	if len(data.Headers) != 3 || data.Headers[0] != "Label" {
		t.Errorf("Unexpected headers: %v", data.Headers)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(data.Rows))
	}

	// Labels are sorted and title-cased back from their normalized form
	if data.Rows[0][0] != "Basic Plus" || data.Rows[0][1] != "Basic Plus" || data.Rows[0][2] != "2" {
		t.Errorf("Unexpected first row: %v", data.Rows[0])
	}
	if data.Rows[1][0] != "Pro" || data.Rows[1][2] != "3" {
		t.Errorf("Unexpected second row: %v", data.Rows[1])
	}
}

func TestRosterData(t *testing.T) {
	tbl := license.DefaultTable(license.WithLogger(logging.NewNopLogger()))
	records := []roster.Record{
		{Email: "alice@example.com", DisplayName: "Alice", License: "Pro"},
		{Email: "bob@example.com", DisplayName: "Bob", License: "Enterprise"},
	}

	data := RosterData(records, tbl)

	if len(data.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(data.Rows))
	}
	if data.Rows[0][0] != "1" || data.Rows[0][1] != "alice@example.com" {
		t.Errorf("Unexpected first row: %v", data.Rows[0])
	}
	if !strings.Contains(data.Rows[0][4], "Pro") {
		t.Errorf("Expected known label to resolve, got %q", data.Rows[0][4])
	}

	// Unknown labels are flagged with the fallback tier
	if !strings.Contains(data.Rows[1][4], "fallback") || !strings.Contains(data.Rows[1][4], "Stakeholder") {
		t.Errorf("Expected fallback marker for unknown label, got %q", data.Rows[1][4])
	}
}
