// Package zlob_test provides YAML-driven testing for the root zlob API,
// mirroring the teacher's fixture-loading idiom (helpers_test.go /
// gitignore_test.go) for pattern-matching scenarios instead of gitignore
// ones.
//
// Test Structure:
//   - YAML test files in testdata/ define path-list matching scenarios
//   - Each YAML file contains one or more named scenarios
//   - Each scenario contains one or more pattern/paths/flags/want cases
//   - Command-line filtering (-f) runs only the named files
package zlob_test

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"strings"

	yaml "github.com/goccy/go-yaml"
)

//nolint:gochecknoglobals // test flag needs to be global for reuse across Test* functions.
var testFilter = flag.String("f", "", "YAML file to validate (e.g. 'basic.yaml')")

// PathCase is a single pattern/paths/flags/want assertion within a scenario.
type PathCase struct {
	Pattern     string   `yaml:"pattern"`
	Paths       []string `yaml:"paths"`
	Flags       []string `yaml:"flags"`
	Want        []string `yaml:"want"`
	Description string   `yaml:"description"`
}

// Scenario groups related PathCases under one name, mirroring the teacher's
// GitIgnore test-group shape.
type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Cases       []PathCase `yaml:"cases"`
}

// Scenarios is one YAML file's worth of Scenario groups.
type Scenarios []Scenario

// ParseFilter parses a comma-separated filter string into trimmed names.
func ParseFilter(filter string) []string {
	if filter == "" {
		return nil
	}

	names := strings.Split(strings.TrimSpace(filter), ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}

	return names
}

// BaseNameWithoutExt extracts the base filename without its extension.
func BaseNameWithoutExt(filename string) string {
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}

// ShouldIncludeFile reports whether filename passes filter (no filter means
// include everything).
func ShouldIncludeFile(filename string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}

	return slices.Contains(filter, BaseNameWithoutExt(filename))
}

// YamlFiles discovers and returns the YAML fixture files under dir that
// pass filter.
func YamlFiles(dir string, filter []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []string

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}

		if ShouldIncludeFile(e.Name(), filter) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}

	if len(out) == 0 {
		return nil, errors.New("no files found")
	}

	return out, nil
}

// LoadScenarios reads and parses a YAML fixture file into Scenarios.
func LoadScenarios(path string) (Scenarios, error) {
	data, err := os.ReadFile(path) //nolint:gosec // test fixture path, not attacker controlled.
	if err != nil {
		return nil, err
	}

	var spec Scenarios
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	return spec, nil
}
