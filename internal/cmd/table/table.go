// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"fmt"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/seatsync/internal/cmd/emoji"
	"github.com/agentstation/seatsync/pkg/license"
	"github.com/agentstation/seatsync/pkg/roster"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents rows prepared for table output.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// TiersData converts a license table to table format: one row per known
// label with the canonical tier it resolves to.
func TiersData(t *license.Table) Data {
	caser := cases.Title(language.English)

	labels := t.Labels()
	rows := make([][]string, 0, len(labels))
	for _, label := range labels {
		code := t.Code(label)
		rows = append(rows, []string{
			caser.String(label),
			code.String(),
			strconv.Itoa(int(code)),
		})
	}

	return Data{
		Headers:         []string{"Label", "Tier", "Code"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
}

// RosterData converts parsed roster records to table format, resolving
// each license label against the active table. Labels the table does not
// know are flagged; the engine would fall back to the stakeholder tier
// for them.
func RosterData(records []roster.Record, t *license.Table) Data {
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		var resolution string
		if t.Known(rec.License) {
			resolution = fmt.Sprintf("%s %s", emoji.Success, t.Code(rec.License).String())
		} else {
			resolution = fmt.Sprintf("%s %s (fallback)", emoji.Warning, license.TierStakeholder.String())
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.Email,
			rec.DisplayName,
			rec.License,
			resolution,
		})
	}

	return Data{
		Headers:         []string{"#", "Email", "Name", "License", "Resolves To"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
}
