// Package config loads and saves the lexscan configuration file. Pipeline
// stages never see the Config itself; callers convert it into the plain
// values each stage takes.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/lawcorpus/lexscan"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the config file looked for in the working directory
// before falling back to the per-user location.
const DefaultFilename = "lexscan.yaml"

// CatalogConfig names one catalog feed and the kind of its documents.
type CatalogConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Kind string `yaml:"kind"`
}

// ResolveConfig controls how catalog locations become canonical URLs.
type ResolveConfig struct {
	BaseOrigin    string            `yaml:"base_origin"`
	LegacyOrigins map[string]string `yaml:"legacy_origins,omitempty"`
}

// SyncConfig controls catalog reconciliation against origin inventories.
type SyncConfig struct {
	OriginPreference []string `yaml:"origin_preference"`
}

// FetchConfig bounds document fetching.
type FetchConfig struct {
	Concurrency int     `yaml:"concurrency"`
	RPS         float64 `yaml:"rps"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// Timeout returns the fetch timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// ChunkConfig configures how documents are split for indexing. Window and
// Overlap apply to the "window" strategy; Lines and Step to "lines".
type ChunkConfig struct {
	Strategy string `yaml:"strategy"`
	Window   int    `yaml:"window"`
	Overlap  int    `yaml:"overlap"`
	Lines    int    `yaml:"lines"`
	Step     int    `yaml:"step"`
}

// SnippetConfig configures snippet extraction during scans.
type SnippetConfig struct {
	Window int `yaml:"window"`
	Max    int `yaml:"max"`
}

// IndexConfig names where build artifacts are published.
type IndexConfig struct {
	Dir string `yaml:"dir"`
}

// HistoryConfig names the scan history database.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// Config is the root configuration structure.
type Config struct {
	Catalogs []CatalogConfig `yaml:"catalogs"`
	Resolve  ResolveConfig   `yaml:"resolve"`
	Sync     SyncConfig      `yaml:"sync"`
	Fetch    FetchConfig     `yaml:"fetch"`
	Chunk    ChunkConfig     `yaml:"chunk"`
	Snippet  SnippetConfig   `yaml:"snippet"`
	Index    IndexConfig     `yaml:"index"`
	History  HistoryConfig   `yaml:"history"`
}

// ParseCatalogs converts configured catalog entries into domain catalogs.
// Returns EINVALID if any entry is incomplete or names an unknown kind.
func ParseCatalogs(entries []CatalogConfig) ([]lexscan.Catalog, error) {
	catalogs := make([]lexscan.Catalog, 0, len(entries))
	for _, e := range entries {
		cat := lexscan.Catalog{Name: e.Name, URL: e.URL, Kind: lexscan.DocumentKind(e.Kind)}
		if err := cat.Validate(); err != nil {
			return nil, err
		}
		catalogs = append(catalogs, cat)
	}
	return catalogs, nil
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./lexscan.yaml first, then ~/.config/lexscan/config.yaml.
// If neither exists, it writes defaults to the per-user path and returns them.
func LoadDefault() (*Config, string, error) {
	if _, err := os.Stat(DefaultFilename); err == nil {
		cfg, err := Load(DefaultFilename)
		return cfg, DefaultFilename, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lexscan", "config.yaml"), nil
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "lexscan.db"
	}
	return filepath.Join(home, ".config", "lexscan", "history.db")
}

func defaultConfig() *Config {
	cfg := &Config{
		Catalogs: []CatalogConfig{
			{Name: "textbooks", URL: "https://texts.lawcorpus.org/catalogs/textbooks.json", Kind: "textbook"},
			{Name: "laws", URL: "https://texts.lawcorpus.org/catalogs/laws.json", Kind: "law"},
			{Name: "rules", URL: "https://texts.lawcorpus.org/catalogs/rules.json", Kind: "rule"},
		},
		Resolve: ResolveConfig{
			BaseOrigin: "https://texts.lawcorpus.org",
			LegacyOrigins: map[string]string{
				"http://lawcorpus.org":              "https://texts.lawcorpus.org",
				"https://lawcorpus.sourceforge.net": "https://texts.lawcorpus.org",
			},
		},
		Sync: SyncConfig{
			OriginPreference: []string{
				"https://texts.lawcorpus.org",
				"https://mirror.lawcorpus.org",
			},
		},
		Fetch:   FetchConfig{Concurrency: 8, RPS: 4, TimeoutSecs: 10},
		Chunk:   ChunkConfig{Strategy: "window", Window: 2000, Overlap: 200, Lines: 40, Step: 30},
		Snippet: SnippetConfig{Window: 160, Max: 3},
		Index:   IndexConfig{Dir: "lexscan-index"},
		History: HistoryConfig{Path: defaultHistoryPath()},
	}
	return cfg
}

func applyDefaults(cfg *Config) {
	def := defaultConfig()
	if len(cfg.Catalogs) == 0 {
		cfg.Catalogs = def.Catalogs
	}
	if cfg.Resolve.BaseOrigin == "" {
		cfg.Resolve.BaseOrigin = def.Resolve.BaseOrigin
	}
	if len(cfg.Sync.OriginPreference) == 0 {
		cfg.Sync.OriginPreference = def.Sync.OriginPreference
	}
	if cfg.Fetch.Concurrency == 0 {
		cfg.Fetch.Concurrency = def.Fetch.Concurrency
	}
	if cfg.Fetch.RPS == 0 {
		cfg.Fetch.RPS = def.Fetch.RPS
	}
	if cfg.Fetch.TimeoutSecs == 0 {
		cfg.Fetch.TimeoutSecs = def.Fetch.TimeoutSecs
	}
	if cfg.Chunk.Strategy == "" {
		cfg.Chunk.Strategy = def.Chunk.Strategy
	}
	if cfg.Chunk.Window == 0 {
		cfg.Chunk.Window = def.Chunk.Window
	}
	if cfg.Chunk.Overlap == 0 {
		cfg.Chunk.Overlap = def.Chunk.Overlap
	}
	if cfg.Chunk.Lines == 0 {
		cfg.Chunk.Lines = def.Chunk.Lines
	}
	if cfg.Chunk.Step == 0 {
		cfg.Chunk.Step = def.Chunk.Step
	}
	if cfg.Snippet.Window == 0 {
		cfg.Snippet.Window = def.Snippet.Window
	}
	if cfg.Snippet.Max == 0 {
		cfg.Snippet.Max = def.Snippet.Max
	}
	if cfg.Index.Dir == "" {
		cfg.Index.Dir = def.Index.Dir
	}
	if cfg.History.Path == "" {
		cfg.History.Path = def.History.Path
	}
}
