package main

import (
	"context"
	"io"

	"github.com/lawcorpus/lexscan"
	"github.com/lawcorpus/lexscan/index"
	"github.com/lawcorpus/lexscan/resolve"
	"github.com/lawcorpus/lexscan/scan"
	"github.com/lawcorpus/lexscan/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Catalogs  []lexscan.Catalog
	Source    lexscan.CatalogSource
	Resolver  *resolve.Resolver
	Inventory lexscan.InventorySource
	Scanner   *scan.Scanner
	Builder   *index.Builder
	ScanLog   lexscan.ScanLogService

	// OriginPreference orders origins for sync reconciliation.
	OriginPreference []string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Path to the configuration file" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Scan        ScanCmd        `cmd:"" help:"Scan the corpus for a query"`
	Build       BuildCmd       `cmd:"" help:"Build the offline search index"`
	Sync        SyncCmd        `cmd:"" help:"Reconcile catalogs against origin inventories"`
	History     HistoryCmd     `cmd:"" help:"List recent scans"`
	Catalogs    CatalogsCmd    `cmd:"" help:"List configured catalogs"`
	Interactive InteractiveCmd `cmd:"" help:"Scan interactively, one query per line"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	Query       string `arg:"" help:"Query text; quote a phrase to match it verbatim"`
	Mode        string `default:"all" enum:"all,any" help:"How multiple tokens combine (all|any)"`
	Window      int    `help:"Snippet width in runes"`
	MaxSnippets int    `help:"Maximum snippets per document"`
	Concurrency int    `short:"c" help:"Concurrent fetch limit"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Out      string `help:"Output directory for index artifacts"`
	Strategy string `help:"Chunking strategy: window or lines (defaults to the configured one)"`
	Window   int    `help:"Chunk width in runes (window strategy)"`
	Overlap  int    `help:"Chunk overlap in runes (window strategy)"`
	Lines    int    `help:"Chunk height in lines (lines strategy)"`
	Step     int    `help:"Lines advanced between chunks (lines strategy)"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	JSON bool `help:"Emit the reconciliation report as JSON"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int `default:"20" help:"Maximum records to list"`
}

// CatalogsCmd is the "catalogs" subcommand.
type CatalogsCmd struct{}

// InteractiveCmd is the "interactive" subcommand.
type InteractiveCmd struct {
	Mode string `default:"all" enum:"all,any" help:"How multiple tokens combine (all|any)"`
}
