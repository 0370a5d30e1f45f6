package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// presetFile is the on-disk shape of an override file. Each genre entry is
// decoded lazily so that absent fields keep their current values.
type presetFile struct {
	Presets map[string]yaml.Node `yaml:"presets"`
}

// Load builds the preset catalog.
// Search order: customPath -> ~/.gameforge/presets.yaml -> ./presets.yaml -> embedded defaults.
// Override files may redefine any subset of genres; unspecified genres and
// fields keep the built-in values. Errors from an explicit customPath are
// returned; implicitly discovered files degrade silently to the next source.
func Load(customPath string) (Catalog, error) {
	c := Catalog{presets: DefaultPresets()}

	// Embedded defaults first; a broken embed leaves the hardcoded table
	if err := c.apply(defaultPresetsYAML); err != nil {
		return c, nil
	}

	// Custom path wins and reports its errors
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return c, fmt.Errorf("failed to read presets %s: %w", customPath, err)
		}
		if err := c.apply(data); err != nil {
			return c, fmt.Errorf("failed to parse presets %s: %w", customPath, err)
		}
		return c, nil
	}

	// Try user config directory
	if userPath := userPresetsPath(); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := c.apply(data); err == nil {
				return c, nil
			}
		}
	}

	// Try working directory
	if data, err := os.ReadFile("presets.yaml"); err == nil {
		if err := c.apply(data); err == nil {
			return c, nil
		}
	}

	return c, nil
}

// apply merges an override document into the catalog. Genre names are
// normalized; names outside the supported set are ignored. A decode error
// in any genre rejects the whole file and leaves the catalog untouched.
func (c *Catalog) apply(data []byte) error {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}

	staged := make(map[Genre]Preset, len(c.presets))
	for g, p := range c.presets {
		staged[g] = p
	}

	for name, node := range f.Presets {
		g := Genre(strings.ToLower(strings.TrimSpace(name)))
		p, ok := staged[g]
		if !ok {
			continue
		}
		if err := node.Decode(&p); err != nil {
			return err
		}
		p.Genre = g
		staged[g] = p
	}

	c.presets = staged
	return nil
}

// userPresetsPath returns the path to the user presets file, or empty if
// home is unavailable.
func userPresetsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gameforge", "presets.yaml")
}
