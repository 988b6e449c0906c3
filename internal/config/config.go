// Package config provides configuration management for mcsfix using Viper
// for loading from files, environment variables, and command-line flags.
//
// The configuration system supports a YAML file (.mcsfix.yml), environment
// variable overrides with the MCSFIX_ prefix, and validation. It carries the
// project layout, the header and URL values stamped into files, the border
// geometry, and the test declaration keywords the passes look for.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/fisty/mcsfix/internal/border"
	"github.com/fisty/mcsfix/internal/header"
	"github.com/fisty/mcsfix/internal/urls"
)

type Config struct {
	Project ProjectConfig `mapstructure:"project" yaml:"project"`
	Header  HeaderConfig  `mapstructure:"header" yaml:"header"`
	Border  BorderConfig  `mapstructure:"border" yaml:"border"`
	URLs    URLsConfig    `mapstructure:"urls" yaml:"urls"`
	Names   NamesConfig   `mapstructure:"names" yaml:"names"`
	Braces  BracesConfig  `mapstructure:"braces" yaml:"braces"`
	Write   WriteConfig   `mapstructure:"write" yaml:"write"`
}

type ProjectConfig struct {
	Root        string   `mapstructure:"root" yaml:"root"`
	Extension   string   `mapstructure:"extension" yaml:"extension"`
	ExcludeDirs []string `mapstructure:"exclude_dirs" yaml:"exclude_dirs"`
}

type HeaderConfig struct {
	RepoURL     string        `mapstructure:"repo_url" yaml:"repo_url"`
	DocsBase    string        `mapstructure:"docs_base" yaml:"docs_base"`
	AuthorURL   string        `mapstructure:"author_url" yaml:"author_url"`
	Attribution string        `mapstructure:"attribution" yaml:"attribution"`
	Fallback    string        `mapstructure:"fallback" yaml:"fallback"`
	Rules       []header.Rule `mapstructure:"rules" yaml:"rules"`
}

type BorderConfig struct {
	Width         int      `mapstructure:"width" yaml:"width"`
	Indent        string   `mapstructure:"indent" yaml:"indent"`
	KnownSections []string `mapstructure:"known_sections" yaml:"known_sections"`
	FlushKeywords []string `mapstructure:"flush_keywords" yaml:"flush_keywords"`
}

type URLsConfig struct {
	RepoURL  string `mapstructure:"repo_url" yaml:"repo_url"`
	DocsBase string `mapstructure:"docs_base" yaml:"docs_base"`
}

type NamesConfig struct {
	Keyword   string            `mapstructure:"keyword" yaml:"keyword"`
	Compounds map[string]string `mapstructure:"compounds" yaml:"compounds"`
}

type BracesConfig struct {
	Keyword string `mapstructure:"keyword" yaml:"keyword"`
}

type WriteConfig struct {
	Retries    uint          `mapstructure:"retries" yaml:"retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay" yaml:"retry_delay"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg, viper.New())
	return cfg
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, wrapUnmarshal(err)
	}

	applyDefaults(&config, v)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func applyDefaults(config *Config, v *viper.Viper) {
	hdr := header.DefaultConfig()
	brd := border.DefaultConfig()
	u := urls.DefaultConfig()

	// Apply default values for ProjectConfig if not set
	if config.Project.Root == "" {
		config.Project.Root = "."
	}
	if config.Project.Extension == "" {
		config.Project.Extension = ".zig"
	}
	if !v.IsSet("project.exclude_dirs") && len(config.Project.ExcludeDirs) == 0 {
		config.Project.ExcludeDirs = []string{".zig-cache", "zig-out"}
	}

	// Apply default values for HeaderConfig if not set
	if config.Header.RepoURL == "" {
		config.Header.RepoURL = hdr.RepoURL
	}
	if config.Header.DocsBase == "" {
		config.Header.DocsBase = hdr.DocsBase
	}
	if config.Header.AuthorURL == "" {
		config.Header.AuthorURL = hdr.AuthorURL
	}
	if config.Header.Attribution == "" {
		config.Header.Attribution = hdr.Attribution
	}
	if config.Header.Fallback == "" {
		config.Header.Fallback = hdr.Fallback
	}
	if len(config.Header.Rules) == 0 {
		config.Header.Rules = hdr.Rules
	}

	// Apply default values for BorderConfig if not set
	if config.Border.Width == 0 {
		config.Border.Width = brd.Width
	}
	if !v.IsSet("border.indent") && config.Border.Indent == "" {
		config.Border.Indent = brd.Indent
	}
	if len(config.Border.KnownSections) == 0 {
		config.Border.KnownSections = brd.KnownSections
	}

	// The URL pass follows the header values unless configured on its own
	if config.URLs.RepoURL == "" {
		config.URLs.RepoURL = config.Header.RepoURL
	}
	if config.URLs.DocsBase == "" {
		if v.IsSet("header.docs_base") {
			config.URLs.DocsBase = docsSiteRoot(config.Header.DocsBase)
		} else {
			config.URLs.DocsBase = u.DocsBase
		}
	}

	if config.Names.Keyword == "" {
		config.Names.Keyword = "test"
	}
	if config.Names.Compounds == nil {
		config.Names.Compounds = map[string]string{}
	}
	if config.Braces.Keyword == "" {
		config.Braces.Keyword = "test"
	}

	// Apply default values for WriteConfig if not set
	if !v.IsSet("write.retries") {
		config.Write.Retries = 3
	}
	if !v.IsSet("write.retry_delay") {
		config.Write.RetryDelay = 50 * time.Millisecond
	}
}

// docsSiteRoot drops the trailing docs segment of a header docs base. The
// URL pass keeps the old link's path, which already starts with "docs/".
func docsSiteRoot(base string) string {
	return strings.TrimSuffix(strings.TrimSuffix(base, "/"), "/docs")
}

// HeaderOptions builds the header pass configuration.
func (c *Config) HeaderOptions() header.Config {
	return header.Config{
		ProjectRoot:   c.Project.Root,
		RepoURL:       c.Header.RepoURL,
		DocsBase:      c.Header.DocsBase,
		AuthorURL:     c.Header.AuthorURL,
		Attribution:   c.Header.Attribution,
		Rules:         c.Header.Rules,
		Fallback:      c.Header.Fallback,
		KnownSections: c.Border.KnownSections,
	}
}

// BorderOptions builds the border engine configuration.
func (c *Config) BorderOptions() border.Config {
	return border.Config{
		Width:         c.Border.Width,
		Indent:        c.Border.Indent,
		KnownSections: c.Border.KnownSections,
		FlushKeywords: c.Border.FlushKeywords,
	}
}

// URLOptions builds the URL pass configuration.
func (c *Config) URLOptions() urls.Config {
	return urls.Config{
		RepoURL:  c.URLs.RepoURL,
		DocsBase: c.URLs.DocsBase,
	}
}
