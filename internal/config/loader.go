package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".wordcrawl"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the configuration file.
//
// Design decision: MaxDepth and PopularWordCount are pointers because zero
// is a meaningful value for both, and an absent key must leave the default
// in place. JSON files load through the same struct since JSON is valid YAML.
type File struct {
	StartPages             []string `yaml:"startPages,omitempty"`
	IgnoredURLs            []string `yaml:"ignoredUrls,omitempty"`
	IgnoredWords           []string `yaml:"ignoredWords,omitempty"`
	Parallelism            int      `yaml:"parallelism,omitempty"`
	ImplementationOverride string   `yaml:"implementationOverride,omitempty"`
	MaxDepth               *int     `yaml:"maxDepth,omitempty"`
	TimeoutSeconds         float64  `yaml:"timeoutSeconds,omitempty"`
	PopularWordCount       *int     `yaml:"popularWordCount,omitempty"`
	RateLimit              float64  `yaml:"rateLimit,omitempty"`
	StemLanguage           string   `yaml:"stemLanguage,omitempty"`
	ProfileOutputPath      string   `yaml:"profileOutputPath,omitempty"`
	ResultPath             string   `yaml:"resultPath,omitempty"`
	CorpusPath             string   `yaml:"corpusPath,omitempty"`
}

// LoadConfigFile loads crawl settings from a YAML (or JSON) file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	// Relative corpus paths are relative to the config file, not the cwd.
	if cf.CorpusPath != "" && !filepath.IsAbs(cf.CorpusPath) {
		cf.CorpusPath = filepath.Join(filepath.Dir(path), cf.CorpusPath)
	}

	return &cf, nil
}

// Apply copies every value set in the file onto cfg.
// Values absent from the file keep whatever cfg already holds.
func (cf *File) Apply(cfg *Config) {
	if len(cf.StartPages) > 0 {
		cfg.StartPages = append([]string(nil), cf.StartPages...)
	}
	if len(cf.IgnoredURLs) > 0 {
		cfg.IgnoredURLs = append([]string(nil), cf.IgnoredURLs...)
	}
	if len(cf.IgnoredWords) > 0 {
		cfg.IgnoredWords = append([]string(nil), cf.IgnoredWords...)
	}
	if cf.Parallelism != 0 {
		cfg.Parallelism = cf.Parallelism
	}
	if cf.ImplementationOverride != "" {
		cfg.ImplementationOverride = cf.ImplementationOverride
	}
	if cf.MaxDepth != nil {
		cfg.MaxDepth = *cf.MaxDepth
	}
	if cf.TimeoutSeconds != 0 {
		cfg.Timeout = time.Duration(cf.TimeoutSeconds * float64(time.Second))
	}
	if cf.PopularWordCount != nil {
		cfg.PopularWordCount = *cf.PopularWordCount
	}
	if cf.RateLimit != 0 {
		cfg.RateLimit = cf.RateLimit
	}
	if cf.StemLanguage != "" {
		cfg.StemLanguage = cf.StemLanguage
	}
	if cf.ProfileOutputPath != "" {
		cfg.ProfileOutputPath = cf.ProfileOutputPath
	}
	if cf.ResultPath != "" {
		cfg.ResultPath = cf.ResultPath
	}
	if cf.CorpusPath != "" {
		cfg.CorpusPath = cf.CorpusPath
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .wordcrawl in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .wordcrawl in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
