package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"stlcopy/internal/domain"
)

// DefaultConfigFile is the per-directory configuration file name.
const DefaultConfigFile = ".stlcopy.yaml"

// AppName is used for the XDG configuration directory.
const AppName = "stlcopy"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Root is one named search location.
type Root struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`

	// Restricted roots apply the allow-list filename filter.
	Restricted bool `yaml:"restricted,omitempty"`

	// The print-queue root is searched recursively in file mode and is
	// also the destination base of file-mode copies.
	PrintQueue bool `yaml:"printQueue,omitempty"`
}

// Config holds the deployment-specific locations and the copy size cap.
// Keyword sets are fixed by the workflow and intentionally absent here.
type Config struct {
	Roots      []Root  `yaml:"roots"`
	ModelBase  string  `yaml:"modelBase"`
	TissueBase string  `yaml:"tissueBase"`
	SizeCapMiB float64 `yaml:"sizeCapMiB"`
}

// Default mirrors the reference lab deployment.
func Default() Config {
	return Config{
		Roots: []Root{
			{Label: "Model Material", Path: `\\Skdla-sa-nas01\skdla-sa\3Shape Design Output\Model Material`},
			{Label: "Exocad", Path: `\\Skdla-sa-nas01\skdla-sa\CAD-Data -- Exocad`, Restricted: true},
			{Label: "InHouse Printing", Path: `\\KDC-LABSERVER\CadCam\! INHOUSE PRINTING !`, PrintQueue: true},
		},
		ModelBase:  `\\KDC-LABSERVER\CadCam\! INHOUSE PRINTING !\.MODELS`,
		TissueBase: `\\KDC-LABSERVER\CadCam\! INHOUSE PRINTING !\TISSUE`,
		SizeCapMiB: 620,
	}
}

// Load reads a configuration file. A missing file yields
// ErrConfigNotFound so callers can decide whether that is fatal.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, ErrConfigNotFound
		}
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// Resolve loads the effective configuration: an explicit path must
// exist; otherwise the search order is .stlcopy.yaml in the current
// directory, then the XDG config directory, then built-in defaults.
func Resolve(explicit string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if cwd, err := os.Getwd(); err == nil {
		cfg, err := Load(filepath.Join(cwd, DefaultConfigFile))
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return Config{}, err
		}
	}
	cfg, err := Load(DefaultPath())
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return Config{}, err
	}

	cfg = Default()
	cfg.applyEnv()
	return cfg, nil
}

// DefaultPath is the XDG location of the configuration file.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// applyEnv lets the deployment override the destinations and the size
// cap without touching the config file.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("STLCOPY_MODEL_BASE")); v != "" {
		c.ModelBase = v
	}
	if v := strings.TrimSpace(os.Getenv("STLCOPY_TISSUE_BASE")); v != "" {
		c.TissueBase = v
	}
	if v := strings.TrimSpace(os.Getenv("STLCOPY_SIZE_CAP_MIB")); v != "" {
		if mib, err := strconv.ParseFloat(v, 64); err == nil && mib > 0 {
			c.SizeCapMiB = mib
		}
	}
}

// Validate checks the structural requirements; path existence is
// checked at use time because network shares come and go.
func (c Config) Validate() error {
	if len(c.Roots) == 0 {
		return errors.New("at least one search root is required")
	}
	seen := make(map[string]struct{})
	queues := 0
	for _, root := range c.Roots {
		if root.Label == "" || root.Path == "" {
			return errors.New("every search root needs a label and a path")
		}
		if _, dup := seen[root.Label]; dup {
			return fmt.Errorf("duplicate search root label: %s", root.Label)
		}
		seen[root.Label] = struct{}{}
		if root.PrintQueue {
			queues++
		}
	}
	if queues > 1 {
		return errors.New("only one print-queue root is allowed")
	}
	if c.ModelBase == "" || c.TissueBase == "" {
		return errors.New("modelBase and tissueBase are required")
	}
	if c.SizeCapMiB <= 0 {
		return errors.New("sizeCapMiB must be positive")
	}
	return nil
}

// SizeCapBytes converts the configured cap to bytes.
func (c Config) SizeCapBytes() int64 {
	return int64(c.SizeCapMiB * 1024 * 1024)
}

// SearchRoots converts the configured roots to domain values.
func (c Config) SearchRoots() []domain.SearchRoot {
	roots := make([]domain.SearchRoot, 0, len(c.Roots))
	for _, root := range c.Roots {
		roots = append(roots, domain.SearchRoot{
			Label:      root.Label,
			Path:       root.Path,
			Restricted: root.Restricted,
			PrintQueue: root.PrintQueue,
		})
	}
	return roots
}

// RootsByLabel returns the subset of roots matching the given labels,
// or every non-print-queue root when labels is empty.
func (c Config) RootsByLabel(labels []string) ([]domain.SearchRoot, error) {
	all := c.SearchRoots()
	if len(labels) == 0 {
		var roots []domain.SearchRoot
		for _, root := range all {
			if !root.PrintQueue {
				roots = append(roots, root)
			}
		}
		return roots, nil
	}

	var roots []domain.SearchRoot
	for _, label := range labels {
		found := false
		for _, root := range all {
			if strings.EqualFold(root.Label, label) {
				roots = append(roots, root)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown search root: %s", label)
		}
	}
	return roots, nil
}

// PrintQueueRoot returns the root used by file search mode.
func (c Config) PrintQueueRoot() (domain.SearchRoot, bool) {
	for _, root := range c.SearchRoots() {
		if root.PrintQueue {
			return root, true
		}
	}
	return domain.SearchRoot{}, false
}
