// Package index builds the offline search index artifacts: the engine
// index, the chunk metadata store, and the build manifest. A build is
// all-or-nothing; a failed build leaves previously published artifacts
// untouched.
package index

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/lawcorpus/lexscan"
	"github.com/lawcorpus/lexscan/catalog"
	"github.com/lawcorpus/lexscan/resolve"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the fetch phase when Builder.Concurrency is
// unset.
const DefaultConcurrency = 8

// DefaultFields returns the record fields indexed by default.
func DefaultFields() []string {
	return []string{"text", "title", "kind", "jurisdiction"}
}

// Builder drives one index build: catalogs are normalized and resolved,
// documents fetched with bounded concurrency, then chunked and written to
// the engine and chunk store in catalog order. The index phase is
// sequential so a rebuild over identical inputs produces identical
// artifacts.
type Builder struct {
	Catalogs   []lexscan.Catalog
	Source     lexscan.CatalogSource
	Resolver   *resolve.Resolver
	Fetcher    lexscan.Fetcher
	Normalizer lexscan.TextNormalizer
	Chunker    lexscan.Chunker
	Engine     lexscan.IndexEngine
	Store      lexscan.ChunkStore
	Manifests  lexscan.ManifestWriter

	// Limiter, when set, bounds the per-origin request rate during the
	// fetch phase.
	Limiter lexscan.OriginLimiter

	Concurrency int

	// Fields lists the record fields passed to Engine.Begin. Empty means
	// DefaultFields.
	Fields []string

	// IndexPath and ChunkStorePath name the artifact locations for the
	// manifest. The engine and store must already target these paths.
	IndexPath      string
	ChunkStorePath string
}

// BuildStats counts the work done by one build run.
type BuildStats struct {
	CatalogItems       int
	DocumentsAttempted int
	DocumentsIndexed   int
	DocumentsFailed    int
	ChunksProduced     int
	SkippedCatalogs    int
	SkippedDescriptors int
}

// Result is the outcome of a successful build.
type Result struct {
	BuildStats
	ManifestPath string
	Elapsed      time.Duration
}

// ProgressEvent reports progress during a build.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Catalog   string
	URL       string
	Chunks    int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCatalogSkipped
	ProgressDocumentFetched
	ProgressDocumentFailed
	ProgressDocumentIndexed
	ProgressFinished
)

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(event ProgressEvent)

// buildJob is one resolved document queued for fetching.
type buildJob struct {
	position int
	doc      lexscan.ResolvedDocument
}

// fetchResult holds the outcome of fetching a single document.
type fetchResult struct {
	position int
	doc      lexscan.ResolvedDocument
	fetched  *lexscan.FetchedText
	err      error
}

// Build runs one build. Catalog and per-document fetch failures are
// counted and skipped; an engine or store failure aborts the build and
// discards the partial artifacts. A build that ends with nothing to index
// fails with ENOTFOUND and publishes nothing.
func (b *Builder) Build(ctx context.Context, progress ProgressFunc) (*Result, error) {
	started := time.Now()
	res := &Result{}

	jobs, err := b.collectJobs(ctx, &res.BuildStats, progress)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, lexscan.Errorf(lexscan.ENOTFOUND, "no usable documents across %d catalogs", len(b.Catalogs))
	}

	total := len(jobs)
	res.DocumentsAttempted = total
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	fetched := b.fetchAll(ctx, jobs, &res.BuildStats, progress)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	usable := 0
	for _, f := range fetched {
		if f != nil {
			usable++
		}
	}
	if usable == 0 {
		return nil, lexscan.Errorf(lexscan.ENOTFOUND, "all %d documents failed to fetch", total)
	}

	if err := b.index(jobs, fetched, &res.BuildStats, progress); err != nil {
		return nil, err
	}

	manifestPath, err := b.Manifests.WriteManifest(&lexscan.BuildManifest{
		Engine:             b.Engine.Name(),
		EngineVersion:      b.Engine.Version(),
		BuiltAt:            time.Now().UTC(),
		CatalogItems:       res.CatalogItems,
		DocumentsAttempted: res.DocumentsAttempted,
		DocumentsIndexed:   res.DocumentsIndexed,
		ChunksProduced:     res.ChunksProduced,
		IndexPath:          b.IndexPath,
		ChunkStorePath:     b.ChunkStorePath,
	})
	if err != nil {
		return nil, err
	}
	res.ManifestPath = manifestPath

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	res.Elapsed = time.Since(started)
	return res, nil
}

// collectJobs normalizes every catalog and resolves each descriptor into a
// deduplicated, catalog-ordered job list. Deduplication uses an exact set:
// the build must be reproducible, so a probabilistic filter has no place
// here.
func (b *Builder) collectJobs(ctx context.Context, stats *BuildStats, progress ProgressFunc) ([]buildJob, error) {
	seen := make(map[string]struct{})
	var jobs []buildJob

	for _, cat := range b.Catalogs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		payload, err := b.Source.FetchCatalog(ctx, cat)
		if err != nil {
			stats.SkippedCatalogs++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressCatalogSkipped, Catalog: cat.Name, Error: err})
			}
			continue
		}

		parsed, err := catalog.Parse(payload, cat.Kind)
		if err != nil {
			stats.SkippedCatalogs++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressCatalogSkipped, Catalog: cat.Name, Error: err})
			}
			continue
		}

		stats.CatalogItems += len(parsed.Descriptors) + parsed.Skipped
		stats.SkippedDescriptors += parsed.Skipped

		for _, d := range parsed.Descriptors {
			canonical, err := b.Resolver.Resolve(d.SourceLocation)
			if err != nil {
				stats.SkippedDescriptors++
				continue
			}
			if _, ok := seen[canonical]; ok {
				continue
			}
			seen[canonical] = struct{}{}
			jobs = append(jobs, buildJob{
				position: len(jobs),
				doc: lexscan.ResolvedDocument{
					CanonicalURL: canonical,
					Title:        d.Title,
					Kind:         d.Kind,
					Jurisdiction: d.Jurisdiction,
				},
			})
		}
	}

	return jobs, nil
}

// fetchAll fetches every job with bounded concurrency and returns the
// fetched texts in job position order. Failed positions are nil.
func (b *Builder) fetchAll(ctx context.Context, jobs []buildJob, stats *BuildStats, progress ProgressFunc) []*lexscan.FetchedText {
	total := len(jobs)

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan fetchResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, job := range jobs {
			job := job
			g.Go(func() error {
				resultCh <- b.fetchDocument(gctx, job)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	fetched := make([]*lexscan.FetchedText, total)
	for result := range resultCh {
		completed.Add(1)

		if result.err != nil {
			stats.DocumentsFailed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressDocumentFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       result.doc.CanonicalURL,
					Error:     result.err,
				})
			}
			continue
		}

		fetched[result.position] = result.fetched
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressDocumentFetched,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.doc.CanonicalURL,
			})
		}
	}

	return fetched
}

// fetchDocument fetches a single document, honoring the per-origin limiter.
func (b *Builder) fetchDocument(ctx context.Context, job buildJob) fetchResult {
	result := fetchResult{position: job.position, doc: job.doc}

	if b.Limiter != nil {
		if u, err := url.Parse(job.doc.CanonicalURL); err == nil {
			if err := b.Limiter.Wait(ctx, u.Host); err != nil {
				result.err = err
				return result
			}
		}
	}

	fetched, err := b.Fetcher.FetchText(ctx, job.doc)
	if err != nil {
		result.err = err
		return result
	}

	result.fetched = fetched
	return result
}

// index runs the sequential index phase: chunks are produced and written
// in job position order so that chunk IDs and record order reproduce
// across rebuilds. Any engine or store failure aborts both artifacts.
func (b *Builder) index(jobs []buildJob, fetched []*lexscan.FetchedText, stats *BuildStats, progress ProgressFunc) error {
	fields := b.Fields
	if len(fields) == 0 {
		fields = DefaultFields()
	}

	if err := b.Engine.Begin(fields); err != nil {
		return b.abort(err)
	}

	for _, job := range jobs {
		f := fetched[job.position]
		if f == nil {
			continue
		}

		text := f.Text
		if b.Normalizer != nil {
			text = b.Normalizer.Normalize(text)
		}

		chunks := b.Chunker.Chunk(job.doc, text)
		if len(chunks) == 0 {
			continue
		}

		for _, c := range chunks {
			record := map[string]string{
				"text":         c.Text,
				"title":        c.Title,
				"kind":         string(c.Kind),
				"jurisdiction": c.Jurisdiction,
			}
			if err := b.Engine.Add(c.ID, record); err != nil {
				return b.abort(err)
			}
			if err := b.Store.Append(c); err != nil {
				return b.abort(err)
			}
		}

		stats.DocumentsIndexed++
		stats.ChunksProduced += len(chunks)
		if progress != nil {
			progress(ProgressEvent{
				Type:   ProgressDocumentIndexed,
				URL:    job.doc.CanonicalURL,
				Chunks: len(chunks),
			})
		}
	}

	if err := b.Engine.Finish(); err != nil {
		_ = b.Store.Abort()
		return err
	}
	return b.Store.Commit()
}

// abort discards both partial artifacts and returns the causing error.
func (b *Builder) abort(cause error) error {
	_ = b.Engine.Abort()
	_ = b.Store.Abort()
	return cause
}
