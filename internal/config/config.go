// internal/config/config.go
//
// This package handles configuration and the weeklog directory layout.
// Templates and generated pages live side by side in weeklog/ under the
// project root. An optional weeklog/weeklog.yaml overrides the defaults.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/weeklog/internal/page"
)

const (
	// WeeklogDir is the directory holding templates and generated pages
	WeeklogDir = "weeklog"

	// ConfigFileName is the optional YAML file inside WeeklogDir
	ConfigFileName = "weeklog.yaml"

	// WeekPlaceholder is substituted with YYYY-MM-DD in output patterns
	WeekPlaceholder = "{week}"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// PageConfig declares one template and the dated page generated from it.
type PageConfig struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
	Output   string `yaml:"output"`
}

// ProjectConfig models weeklog/weeklog.yaml.
type ProjectConfig struct {
	Version int          `yaml:"version"`
	OutDir  string       `yaml:"out_dir"`
	Marker  string       `yaml:"marker"`
	LogFile string       `yaml:"log_file"`
	Pages   []PageConfig `yaml:"pages"`
}

// Config holds the runtime configuration for a generator run.
type Config struct {
	// ProjectDir is the root the weeklog directory is resolved against
	ProjectDir string

	// ConfigPath is where the YAML file was (or would have been) read from
	ConfigPath string

	Project ProjectConfig
}

// DefaultPages returns the English and Chinese Berlin pages.
func DefaultPages() []PageConfig {
	return []PageConfig{
		{Name: "en", Template: "week-template-berlin.html", Output: "week-" + WeekPlaceholder + ".html"},
		{Name: "zh", Template: "week-template-berlin-zh.html", Output: "week-" + WeekPlaceholder + "-zh.html"},
	}
}

// NewConfig loads configuration for projectDir. configPath may be empty, in
// which case weeklog/weeklog.yaml is used when present.
func NewConfig(projectDir, configPath string) (*Config, error) {
	projectDir = filepath.Clean(projectDir)
	if strings.TrimSpace(configPath) == "" {
		configPath = filepath.Join(projectDir, WeeklogDir, ConfigFileName)
	} else {
		configPath = resolvePath(projectDir, configPath)
	}
	cfg := &Config{
		ProjectDir: projectDir,
		ConfigPath: configPath,
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitWeeklogDir creates the output directory, including parents. An
// existing directory is not an error.
func InitWeeklogDir(dir string) error {
	// os.MkdirAll creates parent directories as needed (like mkdir -p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: ensure %s: %w", dir, err)
	}
	return nil
}

// OutDir returns the absolute directory pages are read from and written to.
func (c *Config) OutDir() string {
	return resolvePath(c.ProjectDir, c.Project.OutDir)
}

// Marker returns the substring identifying the week constant line.
func (c *Config) Marker() string {
	return c.Project.Marker
}

// Pages returns the configured pages in render order.
func (c *Config) Pages() []PageConfig {
	return c.Project.Pages
}

// TemplatePath resolves a page template against the output directory.
func (c *Config) TemplatePath(p PageConfig) string {
	return resolvePath(c.OutDir(), p.Template)
}

// OutputPath returns the dated output file for week (YYYY-MM-DD).
func (c *Config) OutputPath(p PageConfig, week string) string {
	return resolvePath(c.OutDir(), strings.ReplaceAll(p.Output, WeekPlaceholder, week))
}

// LogPath returns the run log location, or "" unless weeklog.yaml sets
// log_file.
func (c *Config) LogPath() string {
	if c.Project.LogFile == "" {
		return ""
	}
	return resolvePath(c.OutDir(), c.Project.LogFile)
}

func (c *Config) loadProjectConfig() error {
	path := c.ConfigPath
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		OutDir:  WeeklogDir,
		Marker:  page.DefaultMarker,
		Pages:   DefaultPages(),
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.OutDir) == "" {
		pc.OutDir = WeeklogDir
	}
	if pc.Marker == "" {
		pc.Marker = page.DefaultMarker
	}
	if len(pc.Pages) == 0 {
		pc.Pages = DefaultPages()
	}
}

func (pc *ProjectConfig) normalize() {
	pc.OutDir = strings.TrimSpace(pc.OutDir)
	pc.LogFile = strings.TrimSpace(pc.LogFile)
	for i := range pc.Pages {
		pc.Pages[i].normalize()
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if strings.TrimSpace(pc.Marker) == "" {
		return fmt.Errorf("marker must not be blank")
	}
	names := make(map[string]bool, len(pc.Pages))
	outputs := make(map[string]bool, len(pc.Pages))
	for i := range pc.Pages {
		if err := pc.Pages[i].validate(); err != nil {
			return fmt.Errorf("pages[%d]: %w", i, err)
		}
		name := strings.ToLower(pc.Pages[i].Name)
		if names[name] {
			return fmt.Errorf("pages[%d]: duplicate name %q", i, pc.Pages[i].Name)
		}
		names[name] = true
		output := filepath.Clean(pc.Pages[i].Output)
		if outputs[output] {
			return fmt.Errorf("pages[%d]: output %q is already used by another page", i, pc.Pages[i].Output)
		}
		outputs[output] = true
	}
	return nil
}

func (p *PageConfig) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Template = strings.TrimSpace(p.Template)
	p.Output = strings.TrimSpace(p.Output)
}

func (p PageConfig) validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Template == "" {
		return fmt.Errorf("template is required")
	}
	if !strings.Contains(p.Output, WeekPlaceholder) {
		return fmt.Errorf("output must contain %s", WeekPlaceholder)
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
