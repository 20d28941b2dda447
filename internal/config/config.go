// Package config handles loading, validating and saving the scheme
// configuration document.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is one input-method scheme. It is read-only once loaded.
type Config struct {
	Info          Info          `yaml:"info"`
	Data          Data          `yaml:"data,omitempty"`
	Form          Form          `yaml:"form"`
	Pronunciation Pronunciation `yaml:"pronunciation"`
	Encoder       Encoder       `yaml:"encoder"`
}

// Info describes the scheme.
type Info struct {
	Name        string `yaml:"name"`
	Author      string `yaml:"author,omitempty"`
	Version     string `yaml:"version,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Data points at the inputs of an encoding run. Locations are local paths
// or URLs.
type Data struct {
	Repertoire string `yaml:"repertoire,omitempty"`
	Dictionary string `yaml:"dictionary,omitempty"`
	Characters string `yaml:"characters,omitempty"` // character set tier, e.g. "general"
}

// Form configures the glyph half of the scheme.
type Form struct {
	Mapping        map[string]string `yaml:"mapping"`            // element → key
	Grouping       map[string]string `yaml:"grouping,omitempty"` // alias root → primary root
	Degenerator    Degenerator       `yaml:"degenerator,omitempty"`
	Classifier     map[string]string `yaml:"classifier,omitempty"` // stroke feature → class
	Selector       []string          `yaml:"selector,omitempty"`
	StrictTieBreak bool              `yaml:"strict_tie_break,omitempty"`
}

// Degenerator lists the stroke features compared as another feature.
type Degenerator struct {
	Feature map[string]string `yaml:"feature,omitempty"`
}

// Pronunciation configures the sound half of the scheme.
type Pronunciation struct {
	Analyzer  string            `yaml:"analyzer,omitempty"`
	Tables    []string          `yaml:"tables,omitempty"`    // rule table merge order
	Overrides map[string]string `yaml:"overrides,omitempty"` // rules merged last
	Mapping   map[string]string `yaml:"mapping,omitempty"`   // element → key
}

// Encoder turns elements into codes.
type Encoder struct {
	MaxLength int        `yaml:"max_length"`
	CharRules []CharRule `yaml:"char_rules"`
	WordRules []WordRule `yaml:"word_rules,omitempty"`
}

// CharRule applies to characters with at least MinRoots roots.
type CharRule struct {
	MinRoots int      `yaml:"min_roots"`
	Elements []string `yaml:"elements"`
}

// WordRule applies to words of at least MinLength characters. Formula is a
// sequence of letter pairs: an upper-case character index (A first, Z last)
// and a lower-case code position (a first, z last).
type WordRule struct {
	MinLength int    `yaml:"min_length"`
	Formula   string `yaml:"formula"`
}

// Parse decodes a YAML document, fills defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses the config at location.
func Load(ctx context.Context, location string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Roots returns every element of the form mapping and grouping, sorted.
// The scheme analyzer keeps only those naming characters.
func (c *Config) Roots() []string {
	seen := make(map[string]bool, len(c.Form.Mapping)+len(c.Form.Grouping))
	for e := range c.Form.Mapping {
		seen[e] = true
	}
	for e := range c.Form.Grouping {
		seen[e] = true
	}
	roots := make([]string, 0, len(seen))
	for e := range seen {
		roots = append(roots, e)
	}
	sort.Strings(roots)
	return roots
}

// Key returns the key of a glyph or phonetic element.
func (c *Config) Key(element string) (string, bool) {
	if k, ok := c.Form.Mapping[element]; ok {
		return k, true
	}
	k, ok := c.Pronunciation.Mapping[element]
	return k, ok
}

// Primary resolves a grouped root to the root it shares a key with.
func (c *Config) Primary(root string) string {
	if p, ok := c.Form.Grouping[root]; ok {
		return p
	}
	return root
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chai"), nil
}

// EnsureConfigDir creates dir if it doesn't exist. An empty dir means the
// default configuration directory.
func EnsureConfigDir(dir string) (string, error) {
	if dir == "" {
		var err error
		if dir, err = GetConfigDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
