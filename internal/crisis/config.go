package crisis

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load creates a Detector from a YAML tier file. Keywords in the file
// extend the built-in tiers; they never replace them, so an override
// file cannot silently drop a built-in phrase.
// Empty path falls back to ~/.quietharbor/keywords.yaml.
// Missing file returns the built-in detector.
func Load(path string) (*Detector, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return NewDefault(), nil
		}
		path = filepath.Join(home, ".quietharbor", "keywords.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefault(), nil
		}
		return nil, err
	}

	var extra Tiers
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, err
	}

	return New(merge(DefaultTiers, extra)), nil
}

// merge appends extra keywords to the base tiers, skipping duplicates.
func merge(base, extra Tiers) Tiers {
	return Tiers{
		Critical: appendNew(base.Critical, extra.Critical),
		High:     appendNew(base.High, extra.High),
		Medium:   appendNew(base.Medium, extra.Medium),
	}
}

func appendNew(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	out := make([]string, 0, len(base)+len(extra))
	for _, kw := range base {
		seen[kw] = true
		out = append(out, kw)
	}
	for _, kw := range extra {
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}
