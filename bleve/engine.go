// Package bleve adapts the Bleve search library to the index engine
// contract. The engine's ranking behavior and on-disk layout are opaque to
// the rest of the module; only the build lifecycle is managed here.
package bleve

import (
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/lawcorpus/lexscan"
)

var _ lexscan.IndexEngine = (*Engine)(nil)

// Engine builds a Bleve index on disk. A build writes to a temporary
// directory next to the final path and renames it into place on Finish, so
// readers never observe a half-built index.
type Engine struct {
	path string
	tmp  string
	idx  bleve.Index
}

// NewEngine returns an Engine that will build its index at path.
func NewEngine(path string) *Engine {
	return &Engine{path: path}
}

// Begin opens a fresh index at a temporary path, accepting records with
// exactly the given fields.
func (e *Engine) Begin(fields []string) error {
	if e.idx != nil {
		return lexscan.Errorf(lexscan.EENGINE, "index build already in progress")
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0755); err != nil {
		return lexscan.Errorf(lexscan.EENGINE, "create index directory: %v", err)
	}

	tmp := e.path + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return lexscan.Errorf(lexscan.EENGINE, "clear temporary index: %v", err)
	}

	idx, err := bleve.New(tmp, buildMapping(fields))
	if err != nil {
		return lexscan.Errorf(lexscan.EENGINE, "create index: %v", err)
	}

	e.tmp = tmp
	e.idx = idx
	return nil
}

// Add indexes one record under ref.
func (e *Engine) Add(ref string, record map[string]string) error {
	if e.idx == nil {
		return lexscan.Errorf(lexscan.EENGINE, "no index build in progress")
	}
	if err := e.idx.Index(ref, record); err != nil {
		return lexscan.Errorf(lexscan.EENGINE, "index record %s: %v", ref, err)
	}
	return nil
}

// Finish seals the index and renames it to its final path, replacing any
// previous index there.
func (e *Engine) Finish() error {
	if e.idx == nil {
		return lexscan.Errorf(lexscan.EENGINE, "no index build in progress")
	}
	if err := e.idx.Close(); err != nil {
		e.idx = nil
		return lexscan.Errorf(lexscan.EENGINE, "close index: %v", err)
	}
	e.idx = nil

	if err := os.RemoveAll(e.path); err != nil {
		return lexscan.Errorf(lexscan.EENGINE, "clear previous index: %v", err)
	}
	if err := os.Rename(e.tmp, e.path); err != nil {
		return lexscan.Errorf(lexscan.EENGINE, "publish index: %v", err)
	}
	e.tmp = ""
	return nil
}

// Abort discards a partially built index. Safe to call when no build is in
// progress.
func (e *Engine) Abort() error {
	if e.idx != nil {
		_ = e.idx.Close()
		e.idx = nil
	}
	if e.tmp != "" {
		if err := os.RemoveAll(e.tmp); err != nil {
			return lexscan.Errorf(lexscan.EENGINE, "remove temporary index: %v", err)
		}
		e.tmp = ""
	}
	return nil
}

// Name identifies the engine implementation.
func (e *Engine) Name() string {
	return "bleve"
}

// Version reports the linked Bleve module version for build manifests, or
// "unknown" outside a module build.
func (e *Engine) Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == "github.com/blevesearch/bleve/v2" {
			return dep.Version
		}
	}
	return "unknown"
}

// buildMapping restricts indexing to the given fields. Record keys outside
// the field list are ignored rather than dynamically indexed.
func buildMapping(fields []string) mapping.IndexMapping {
	dm := bleve.NewDocumentMapping()
	dm.Dynamic = false
	for _, field := range fields {
		dm.AddFieldMappingsAt(field, bleve.NewTextFieldMapping())
	}
	im := bleve.NewIndexMapping()
	im.DefaultMapping = dm
	return im
}
