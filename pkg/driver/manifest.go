package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project file the CLI looks for.
const ManifestFileName = "lox.yml"

var (
	ErrManifestNotFound = errors.New("manifest: lox.yml not found")
	ErrNoTarget         = errors.New("manifest: no targets defined")
)

// Manifest represents the parsed contents of lox.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Targets     map[string]*TargetSpec
	TargetOrder []string
	Options     Options
}

// TargetSpec describes a runnable script. Main is relative to the manifest
// directory for local targets and to the repository root for git targets.
type TargetSpec struct {
	Name   string
	Main   string
	Git    string
	Rev    string
	Tag    string
	Branch string
}

// IsGit reports whether the target is fetched from a repository.
func (t *TargetSpec) IsGit() bool {
	return t != nil && t.Git != ""
}

// CheckMode selects how static check findings affect a run.
type CheckMode string

const (
	CheckOff    CheckMode = "off"
	CheckWarn   CheckMode = "warn"
	CheckStrict CheckMode = "strict"
)

// IsValid reports whether the mode is recognised.
func (m CheckMode) IsValid() bool {
	switch m {
	case CheckOff, CheckWarn, CheckStrict:
		return true
	default:
		return false
	}
}

// ParseCheckMode parses a mode name; the empty string means off.
func ParseCheckMode(s string) (CheckMode, error) {
	mode := CheckMode(strings.ToLower(strings.TrimSpace(s)))
	if mode == "" {
		return CheckOff, nil
	}
	if !mode.IsValid() {
		return "", fmt.Errorf("unknown check mode %q (want off, warn or strict)", s)
	}
	return mode, nil
}

// Options holds project-wide interpreter settings.
type Options struct {
	Check    CheckMode
	PrintAST bool
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
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses lox.yml from disk, returning a validated manifest.
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

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks up from start until it finds lox.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("manifest: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

// Dir returns the directory containing the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*TargetSpec, error) {
	if m == nil || len(m.TargetOrder) == 0 {
		return nil, ErrNoTarget
	}
	return m.Targets[m.TargetOrder[0]], nil
}

// FindTarget looks up a target by name, ignoring case.
func (m *Manifest) FindTarget(name string) (*TargetSpec, bool) {
	if m == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if target, ok := m.Targets[name]; ok {
		return target, true
	}
	for _, key := range m.TargetOrder {
		if strings.EqualFold(key, name) {
			return m.Targets[key], true
		}
	}
	return nil, false
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if !m.Options.Check.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("options.check has unsupported value %q", m.Options.Check))
	}
	for _, name := range m.TargetOrder {
		target := m.Targets[name]
		if target.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main entrypoint", name))
		}
		if !target.IsGit() && (target.Rev != "" || target.Tag != "" || target.Branch != "") {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q sets rev, tag or branch without git", name))
		}
		pins := 0
		for _, pin := range []string{target.Rev, target.Tag, target.Branch} {
			if pin != "" {
				pins++
			}
		}
		if pins > 1 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q may set only one of rev, tag or branch", name))
		}
		if filepath.IsAbs(target.Main) && target.IsGit() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q main must be relative to the repository root", name))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type manifestFile struct {
	Name    string      `yaml:"name"`
	Version string      `yaml:"version"`
	Targets targetMap   `yaml:"targets"`
	Options optionsYAML `yaml:"options"`
}

type optionsYAML struct {
	Check    string `yaml:"check"`
	PrintAST bool   `yaml:"print_ast"`
}

type targetYAML struct {
	Main   string `yaml:"main"`
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
}

// targetMap keeps targets in document order so the first one can serve as
// the default.
type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		entry := new(targetYAML)
		if valueNode.Kind == yaml.ScalarNode && valueNode.Tag != "!!null" {
			// Shorthand: `name: path/to/main.lox`.
			entry.Main = valueNode.Value
		} else {
			if err := checkTargetFields(key, valueNode); err != nil {
				return err
			}
			if err := valueNode.Decode(entry); err != nil {
				return fmt.Errorf("manifest: target %q: %w", key, err)
			}
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

var targetFields = map[string]bool{
	"main":   true,
	"git":    true,
	"rev":    true,
	"tag":    true,
	"branch": true,
}

// checkTargetFields rejects unknown keys in a target body. Node.Decode does
// not inherit the decoder's KnownFields setting.
func checkTargetFields(target string, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		field := node.Content[i]
		if !targetFields[field.Value] {
			return fmt.Errorf("manifest: target %q: line %d: field %s not found", target, field.Line, field.Value)
		}
	}
	return nil
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:        path,
		Name:        strings.TrimSpace(mf.Name),
		Version:     strings.TrimSpace(mf.Version),
		Targets:     make(map[string]*TargetSpec, len(mf.Targets.items)),
		TargetOrder: make([]string, 0, len(mf.Targets.items)),
		Options: Options{
			Check:    CheckMode(strings.ToLower(strings.TrimSpace(mf.Options.Check))),
			PrintAST: mf.Options.PrintAST,
		},
	}
	if result.Options.Check == "" {
		result.Options.Check = CheckOff
	}
	for _, item := range mf.Targets.items {
		if item.spec == nil {
			continue
		}
		if _, exists := result.Targets[item.name]; exists {
			continue
		}
		result.Targets[item.name] = &TargetSpec{
			Name:   item.name,
			Main:   strings.TrimSpace(item.spec.Main),
			Git:    strings.TrimSpace(item.spec.Git),
			Rev:    strings.TrimSpace(item.spec.Rev),
			Tag:    strings.TrimSpace(item.spec.Tag),
			Branch: strings.TrimSpace(item.spec.Branch),
		}
		result.TargetOrder = append(result.TargetOrder, item.name)
	}
	return result
}
