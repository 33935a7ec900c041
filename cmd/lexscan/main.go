package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lawcorpus/lexscan"
	"github.com/lawcorpus/lexscan/bleve"
	"github.com/lawcorpus/lexscan/chunk"
	"github.com/lawcorpus/lexscan/config"
	"github.com/lawcorpus/lexscan/fs"
	lexhttp "github.com/lawcorpus/lexscan/http"
	"github.com/lawcorpus/lexscan/index"
	"github.com/lawcorpus/lexscan/resolve"
	"github.com/lawcorpus/lexscan/scan"
	lexslog "github.com/lawcorpus/lexscan/slog"
	"github.com/lawcorpus/lexscan/sqlite"
	"github.com/lawcorpus/lexscan/textutil"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Index artifact names inside the output directory.
const (
	indexDirname   = "index.bleve"
	chunkStoreName = "chunks.jsonl"
)

// Main represents the program.
type Main struct {
	// Config file path. Empty means the default lookup order. Set before
	// calling Run().
	ConfigPath string

	// Stdin feeds the interactive command. Defaults to os.Stdin.
	Stdin io.Reader

	// SQLite database holding the scan history.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ScanLog lexscan.ScanLogService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lexscan"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lexscan --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	// Load configuration
	configPath := m.ConfigPath
	if cli.Config != "" {
		configPath = cli.Config
	}
	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, _, err = config.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(stderr, cli.Verbose)

	catalogs, err := config.ParseCatalogs(cfg.Catalogs)
	if err != nil {
		return fmt.Errorf("invalid catalog configuration: %w", err)
	}
	deps.Catalogs = catalogs
	deps.OriginPreference = cfg.Sync.OriginPreference

	resolver, err := resolve.New(cfg.Resolve.BaseOrigin, cfg.Resolve.LegacyOrigins)
	if err != nil {
		return fmt.Errorf("invalid resolver configuration: %w", err)
	}
	deps.Resolver = resolver

	// Open the scan history database
	dbPath := cfg.History.Path
	if path := os.Getenv("LEXSCAN_DB"); path != "" {
		dbPath = path
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LEXSCAN_DB to use a different history database path\n")
		return fmt.Errorf("failed to open history database at %q: %w", dbPath, err)
	}
	defer m.Close()

	m.ScanLog = sqlite.NewScanLogService(m.DB)
	deps.DB = m.DB
	deps.ScanLog = m.ScanLog

	// Wire shared pipeline collaborators with logging decorators
	var fetcher lexscan.Fetcher = lexhttp.NewFetcher(lexhttp.WithTimeout(cfg.Fetch.Timeout()))
	fetcher = lexslog.NewLoggingFetcher(fetcher, logger)

	var source lexscan.CatalogSource = lexhttp.NewCatalogClient(nil)
	source = lexslog.NewLoggingCatalogSource(source, logger)
	deps.Source = source

	var inventory lexscan.InventorySource = lexhttp.NewInventoryService(nil)
	inventory = lexslog.NewLoggingInventorySource(inventory, logger)
	deps.Inventory = inventory

	normalizer := textutil.NewNormalizer()
	limiter := scan.NewOriginLimiter(cfg.Fetch.RPS)

	// Wire command-specific dependencies based on command
	switch cmd {
	case "scan", "interactive":
		deps.Scanner = &scan.Scanner{
			Catalogs:     catalogs,
			Source:       source,
			Resolver:     resolver,
			Fetcher:      fetcher,
			Normalizer:   normalizer,
			Limiter:      limiter,
			Concurrency:  cfg.Fetch.Concurrency,
			SnippetWidth: cfg.Snippet.Window,
			SnippetMax:   cfg.Snippet.Max,
		}

	case "build":
		chunker, err := newChunker(cfg.Chunk, cli.Build)
		if err != nil {
			return err
		}
		outDir := cli.Build.Out
		if outDir == "" {
			outDir = cfg.Index.Dir
		}
		indexPath := filepath.Join(outDir, indexDirname)
		storePath := filepath.Join(outDir, chunkStoreName)
		deps.Builder = &index.Builder{
			Catalogs:       catalogs,
			Source:         source,
			Resolver:       resolver,
			Fetcher:        fetcher,
			Normalizer:     normalizer,
			Chunker:        chunker,
			Engine:         bleve.NewEngine(indexPath),
			Store:          fs.NewChunkStore(storePath),
			Manifests:      fs.NewManifestWriter(outDir),
			Limiter:        limiter,
			Concurrency:    cfg.Fetch.Concurrency,
			IndexPath:      indexPath,
			ChunkStorePath: storePath,
		}
	}

	return kongCtx.Run(deps)
}

// newLogger builds the CLI logger. Pipeline decorators log at info level,
// so the default warn level keeps them quiet unless --verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newChunker builds the chunker for a build run from the configured
// parameters and any flag overrides.
func newChunker(cfg config.ChunkConfig, flags BuildCmd) (lexscan.Chunker, error) {
	strategy := cfg.Strategy
	if flags.Strategy != "" {
		strategy = flags.Strategy
	}

	window, overlap := cfg.Window, cfg.Overlap
	if flags.Window > 0 {
		window = flags.Window
	}
	if flags.Overlap > 0 {
		overlap = flags.Overlap
	}

	lines, step := cfg.Lines, cfg.Step
	if flags.Lines > 0 {
		lines = flags.Lines
	}
	if flags.Step > 0 {
		step = flags.Step
	}

	switch strategy {
	case "window":
		return chunk.NewWindowChunker(window, overlap)
	case "lines":
		return chunk.NewLineChunker(lines, step)
	}
	return nil, lexscan.Errorf(lexscan.EINVALID, "unknown chunk strategy %q", strategy)
}
