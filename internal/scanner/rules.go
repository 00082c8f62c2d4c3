package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rules control what the manifest scan looks for. The defaults target the
// dialer secret-code intent filter: a <data> element carrying the
// android_secret_code scheme, with the code itself in android:host.
type Rules struct {
	Marker        string   `yaml:"marker"`
	Attribute     string   `yaml:"attribute"`
	ManifestPaths []string `yaml:"manifest-paths"`
}

func DefaultRules() Rules {
	return Rules{
		Marker:    "android_secret_code",
		Attribute: `android:host="([^"]*)"`,
		ManifestPaths: []string{
			"AndroidManifest.xml",
			filepath.Join("resources", "AndroidManifest.xml"),
		},
	}
}

// LoadRules reads a YAML rules file on top of the defaults, so a file only
// needs to name the fields it overrides.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("failed to read rules file: %v", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("failed to parse rules YAML: %v", err)
	}

	if err := rules.validate(); err != nil {
		return rules, err
	}
	return rules, nil
}

func (r Rules) validate() error {
	if r.Marker == "" {
		return fmt.Errorf("rules: marker must not be empty")
	}
	re, err := regexp.Compile(r.Attribute)
	if err != nil {
		return fmt.Errorf("rules: invalid attribute pattern: %v", err)
	}
	if re.NumSubexp() < 1 {
		return fmt.Errorf("rules: attribute pattern needs a capture group for the value")
	}
	if len(r.ManifestPaths) == 0 {
		return fmt.Errorf("rules: at least one manifest path is required")
	}
	return nil
}
