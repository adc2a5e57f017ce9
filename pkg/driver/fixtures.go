package driver

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"mypl/interpreter-go/pkg/diagnostics"
	"mypl/interpreter-go/pkg/logger"
)

// FixtureFileName describes one end-to-end fixture directory.
const FixtureFileName = "fixture.yml"

// Fixture is an end-to-end program with its expected observable behaviour.
type Fixture struct {
	Name        string
	Dir         string
	Description string
	Entry       string
	Stdin       string
	Expect      FixtureExpectation
}

// FixtureExpectation lists what a fixture run must produce.
type FixtureExpectation struct {
	Stdout        string `yaml:"stdout"`
	Exit          int    `yaml:"exit"`
	Error         string `yaml:"error"`
	ErrorContains string `yaml:"errorContains"`
}

type fixtureFile struct {
	Description string             `yaml:"description"`
	Entry       string             `yaml:"entry"`
	Stdin       string             `yaml:"stdin"`
	Expect      FixtureExpectation `yaml:"expect"`
}

// FixtureResult is what a fixture run actually produced.
type FixtureResult struct {
	Stdout string
	Exit   int
	Err    error
}

// LoadFixture reads dir/fixture.yml.
func LoadFixture(dir string) (*Fixture, error) {
	data, err := os.ReadFile(filepath.Join(dir, FixtureFileName))
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	var raw fixtureFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("fixture: parse %s: %w", dir, err)
	}
	entry := raw.Entry
	if entry == "" {
		entry = "main.mypl"
	}
	if raw.Expect.Error != "" {
		if _, ok := diagnostics.ParseKind(raw.Expect.Error); !ok {
			return nil, fmt.Errorf("fixture: %s: unknown error kind %q", dir, raw.Expect.Error)
		}
	}
	return &Fixture{
		Name:        filepath.Base(dir),
		Dir:         dir,
		Description: raw.Description,
		Entry:       entry,
		Stdin:       raw.Stdin,
		Expect:      raw.Expect,
	}, nil
}

// LoadFixtures loads every fixture directory directly under root, sorted by
// name.
func LoadFixtures(root string) ([]*Fixture, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	fixtures := make([]*Fixture, 0, len(names))
	for _, name := range names {
		fx, err := LoadFixture(filepath.Join(root, name))
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, fx)
	}
	return fixtures, nil
}

// Run executes the fixture the way the CLI would: errors are rendered to
// stdout and map to exit code 1.
func (f *Fixture) Run() FixtureResult {
	var out bytes.Buffer
	_, err := RunFile(filepath.Join(f.Dir, f.Entry), Options{
		Stdin:  strings.NewReader(f.Stdin),
		Stdout: &out,
		Logger: logger.Discard(),
	})
	result := FixtureResult{Err: err}
	if err != nil {
		out.WriteString(err.Error())
		out.WriteString("\n")
		result.Exit = 1
	}
	result.Stdout = out.String()
	return result
}

// Verify compares a result against the fixture's expectations.
func (f *Fixture) Verify(res FixtureResult) error {
	var problems []string
	if res.Exit != f.Expect.Exit {
		problems = append(problems, fmt.Sprintf("exit code: want %d, got %d (err: %v)", f.Expect.Exit, res.Exit, res.Err))
	}
	if f.Expect.Error != "" {
		want, _ := diagnostics.ParseKind(f.Expect.Error)
		got, ok := diagnostics.KindOf(res.Err)
		if !ok || got != want {
			problems = append(problems, fmt.Sprintf("error kind: want %s, got %v", want, res.Err))
		}
	}
	if f.Expect.ErrorContains != "" && (res.Err == nil || !strings.Contains(res.Err.Error(), f.Expect.ErrorContains)) {
		problems = append(problems, fmt.Sprintf("error message: want substring %q, got %v", f.Expect.ErrorContains, res.Err))
	}
	if f.Expect.Error == "" && f.Expect.ErrorContains == "" && res.Stdout != f.Expect.Stdout {
		problems = append(problems, fmt.Sprintf("stdout: want %q, got %q", f.Expect.Stdout, res.Stdout))
	}
	if f.Expect.Error != "" && f.Expect.Stdout != "" && !strings.HasPrefix(res.Stdout, f.Expect.Stdout) {
		problems = append(problems, fmt.Sprintf("stdout before error: want prefix %q, got %q", f.Expect.Stdout, res.Stdout))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
