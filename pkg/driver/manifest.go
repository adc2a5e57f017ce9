package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"mypl/interpreter-go/pkg/logger"
)

// ManifestFileName is the project manifest looked up by `mypl run`.
const ManifestFileName = "mypl.yml"

// ErrManifestNotFound is returned when no manifest exists up to the root.
var ErrManifestNotFound = errors.New(ManifestFileName + " not found")

// Manifest represents the parsed contents of mypl.yml.
type Manifest struct {
	Path    string
	Name    string
	Version string
	Main    string
	Stdin   string
	Log     LogConfig
}

// LogConfig selects the logging level and format for runs of this project.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type manifestFile struct {
	Name    string    `yaml:"name"`
	Version string    `yaml:"version"`
	Main    string    `yaml:"main"`
	Stdin   string    `yaml:"stdin"`
	Log     LogConfig `yaml:"log"`
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := &Manifest{
		Path:    absPath,
		Name:    strings.TrimSpace(raw.Name),
		Version: strings.TrimSpace(raw.Version),
		Main:    strings.TrimSpace(raw.Main),
		Stdin:   strings.TrimSpace(raw.Stdin),
		Log:     raw.Log,
	}
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

var (
	namePattern    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+([-+][0-9A-Za-z.-]+)?$`)
)

func (m *Manifest) validate() error {
	var issues []string
	if m.Name == "" {
		issues = append(issues, "name is required")
	} else if !namePattern.MatchString(m.Name) {
		issues = append(issues, fmt.Sprintf("name %q must start with a letter and contain only letters, digits, '_' or '-'", m.Name))
	}
	if m.Version != "" && !versionPattern.MatchString(m.Version) {
		issues = append(issues, fmt.Sprintf("version %q must look like MAJOR.MINOR.PATCH", m.Version))
	}
	if m.Main == "" {
		issues = append(issues, "main is required")
	} else if filepath.IsAbs(m.Main) {
		issues = append(issues, "main must be relative to the manifest directory")
	}
	if m.Stdin != "" && filepath.IsAbs(m.Stdin) {
		issues = append(issues, "stdin must be relative to the manifest directory")
	}
	if m.Log.Level != "" {
		if _, err := logger.ParseLevel(m.Log.Level); err != nil {
			issues = append(issues, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", m.Log.Level))
		}
	}
	switch strings.ToLower(m.Log.Format) {
	case "", "text", "json":
	default:
		issues = append(issues, fmt.Sprintf("log.format %q is not one of text, json", m.Log.Format))
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// Dir returns the directory holding the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// MainPath resolves the entry program relative to the manifest.
func (m *Manifest) MainPath() string {
	return filepath.Join(m.Dir(), filepath.FromSlash(m.Main))
}

// StdinPath resolves the configured input file, or "" when unset.
func (m *Manifest) StdinPath() string {
	if m.Stdin == "" {
		return ""
	}
	return filepath.Join(m.Dir(), filepath.FromSlash(m.Stdin))
}

// LoggerConfig converts the manifest's log settings, starting from base.
func (m *Manifest) LoggerConfig(base logger.Config) logger.Config {
	if m.Log.Level != "" {
		if level, err := logger.ParseLevel(m.Log.Level); err == nil {
			base.Level = level
		}
	}
	if m.Log.Format != "" {
		base.Format = strings.ToLower(m.Log.Format)
	}
	return base
}

// FindManifest walks upward from start looking for mypl.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}
