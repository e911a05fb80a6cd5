package license

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/seatsync/pkg/errors"
)

// LoadAliases reads a YAML overlay of organization-specific label aliases.
// The file maps alias to canonical label:
//
//	Premium: Pro
//	Viewer: Stakeholder
//
// Canonical labels are resolved through the default table; an alias
// pointing at a label the default table does not know is rejected, since a
// silent fallback here would misassign every user carrying that alias.
func LoadAliases(path string) (map[string]Tier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read tier map", path, err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	base := DefaultTable()
	aliases := make(map[string]Tier, len(raw))
	for alias, canonical := range raw {
		if !base.Known(canonical) {
			return nil, &errors.ValidationError{
				Field:   alias,
				Value:   canonical,
				Message: "tier map value is not a canonical license label",
			}
		}
		aliases[alias] = base.Code(canonical)
	}
	return aliases, nil
}
