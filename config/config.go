package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NickyBoy89/cfc/symbol"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked for when no path is given
const DefaultFileName = "cfc.yaml"

// Config describes a compilation: the parcels to compile and where to find
// their declarations
type Config struct {
	// Name of the class every non-inert class ultimately inherits from
	RootClass string `yaml:"root_class"`
	// File extensions of declaration files, including the dot
	Extensions []string      `yaml:"extensions"`
	Exclude    ExcludeConfig `yaml:"exclude"`
	Parcels    []Parcel      `yaml:"parcels"`
}

// ExcludeConfig defines directories to skip while looking for declarations
type ExcludeConfig struct {
	Dirs []string `yaml:"dirs"`
}

// Parcel configures a single parcel. A parcel is either compiled from its
// source dirs, or was compiled elsewhere and is only read from its include dirs
type Parcel struct {
	Name     string `yaml:"name"`
	Nickname string `yaml:"nickname"`
	// Names of the parcels this one's classes may inherit from
	Prerequisites []string `yaml:"prerequisites"`
	SourceDirs    []string `yaml:"source_dirs"`
	IncludeDirs   []string `yaml:"include_dirs"`
}

// Included reports whether the parcel is only read from include dirs
func (p Parcel) Included() bool {
	return len(p.IncludeDirs) > 0
}

// Default returns a Config with sensible defaults, and no parcels
func Default() *Config {
	return &Config{
		RootClass:  symbol.DefaultRootClass,
		Extensions: []string{".java"},
		Exclude: ExcludeConfig{
			Dirs: []string{".git", "build", "testdata"},
		},
	}
}

// Load reads configuration from file, falling back to defaults.
// If configPath is empty, it looks for cfc.yaml in the current directory.
// Relative directories in the file are relative to the file itself.
func Load(configPath string) (*Config, error) {
	defaults := Default()

	if configPath == "" {
		configPath = DefaultFileName
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No config file, use defaults
			return defaults, nil
		}
		return nil, err
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	fileCfg.resolveDirs(filepath.Dir(configPath))

	// Apply defaults for missing fields
	defaults.Merge(&fileCfg)
	return defaults, nil
}

// LoadFromDir loads configuration from the specified directory.
func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, DefaultFileName))
}

func (c *Config) resolveDirs(base string) {
	resolve := func(dirs []string) {
		for ind, dir := range dirs {
			if !filepath.IsAbs(dir) {
				dirs[ind] = filepath.Join(base, dir)
			}
		}
	}
	for ind := range c.Parcels {
		resolve(c.Parcels[ind].SourceDirs)
		resolve(c.Parcels[ind].IncludeDirs)
	}
}

// Merge combines another config into this one, with other taking precedence.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.RootClass != "" {
		c.RootClass = other.RootClass
	}
	if len(other.Extensions) > 0 {
		c.Extensions = other.Extensions
	}
	if len(other.Exclude.Dirs) > 0 {
		c.Exclude.Dirs = other.Exclude.Dirs
	}
	if len(other.Parcels) > 0 {
		c.Parcels = other.Parcels
	}
}

// Validate checks that the parcels are complete and that every prerequisite
// names a configured parcel
func (c *Config) Validate() error {
	if len(c.Parcels) == 0 {
		return errors.New("no parcels configured")
	}
	names := make([]string, 0, len(c.Parcels))
	for _, parcel := range c.Parcels {
		if parcel.Name == "" {
			return errors.New("parcel without a name")
		}
		if slices.Contains(names, parcel.Name) {
			return fmt.Errorf("parcel '%s' configured twice", parcel.Name)
		}
		if len(parcel.SourceDirs) == 0 && len(parcel.IncludeDirs) == 0 {
			return fmt.Errorf("parcel '%s' has no source or include dirs", parcel.Name)
		}
		if len(parcel.SourceDirs) > 0 && len(parcel.IncludeDirs) > 0 {
			return fmt.Errorf("parcel '%s' has both source and include dirs", parcel.Name)
		}
		names = append(names, parcel.Name)
	}
	for _, parcel := range c.Parcels {
		for _, prereq := range parcel.Prerequisites {
			if !slices.Contains(names, prereq) {
				return fmt.Errorf("parcel '%s' requires unknown parcel '%s'", parcel.Name, prereq)
			}
		}
	}
	return nil
}

// IsExcludedDir checks if a directory should be skipped.
func (c *Config) IsExcludedDir(dir string) bool {
	return slices.Contains(c.Exclude.Dirs, filepath.Base(dir))
}

// IsSourceFile checks if a file has one of the declaration extensions.
func (c *Config) IsSourceFile(path string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(c.Extensions, func(candidate string) bool {
		return strings.EqualFold(candidate, ext)
	})
}
