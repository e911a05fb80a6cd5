package license_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/seatsync/pkg/errors"
	"github.com/agentstation/seatsync/pkg/license"
	"github.com/agentstation/seatsync/pkg/logging"
)

func writeTierMap(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAliases(t *testing.T) {
	path := writeTierMap(t, "Premium: Pro\nViewer: Stakeholder\nStandard: Basic\n")

	aliases, err := license.LoadAliases(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]license.Tier{
		"Premium":  license.TierPro,
		"Viewer":   license.TierStakeholder,
		"Standard": license.TierBasic,
	}, aliases)

	// The overlay composes with the default table
	table := license.DefaultTable(
		license.WithLogger(logging.NewNopLogger()),
		license.WithAliases(aliases),
	)
	assert.Equal(t, license.TierPro, table.Code("premium"))
	assert.Equal(t, license.TierPro, table.Code("Pro"))
}

func TestLoadAliasesCanonicalValuesAccepted(t *testing.T) {
	// Values resolve through the default table, so its aliases work too
	path := writeTierMap(t, "Full: Professional\n")

	aliases, err := license.LoadAliases(path)
	require.NoError(t, err)
	assert.Equal(t, license.TierPro, aliases["Full"])
}

func TestLoadAliasesRejectsUnknownCanonical(t *testing.T) {
	path := writeTierMap(t, "Premium: Enterprise\n")

	_, err := license.LoadAliases(path)
	require.Error(t, err)

	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Premium", verr.Field)
}

func TestLoadAliasesMissingFile(t *testing.T) {
	_, err := license.LoadAliases(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errors.IsIOError(err))
}

func TestLoadAliasesMalformedYAML(t *testing.T) {
	path := writeTierMap(t, "Premium: [broken\n")

	_, err := license.LoadAliases(path)
	require.Error(t, err)

	var perr *errors.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestTableKnown(t *testing.T) {
	table := license.DefaultTable(license.WithLogger(logging.NewNopLogger()))

	assert.True(t, table.Known("Pro"))
	assert.True(t, table.Known("  basic plus  "))
	assert.False(t, table.Known("Enterprise"))
	assert.False(t, table.Known(""))
}

func TestTableLabels(t *testing.T) {
	table := license.NewTable(map[string]license.Tier{
		"Pro":   license.TierPro,
		"Basic": license.TierBasic,
	}, license.WithLogger(logging.NewNopLogger()))

	assert.Equal(t, []string{"basic", "pro"}, table.Labels())
}
