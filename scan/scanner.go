// Package scan orchestrates live corpus scans. A scan fetches the
// configured catalogs, resolves and deduplicates their entries, fetches
// every document with bounded concurrency, and matches the query against
// each text as it arrives. Nothing is cached between runs; every scan
// re-reads the corpus.
package scan

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/lawcorpus/lexscan"
	"github.com/lawcorpus/lexscan/bloom"
	"github.com/lawcorpus/lexscan/catalog"
	"github.com/lawcorpus/lexscan/match"
	"github.com/lawcorpus/lexscan/resolve"
	"golang.org/x/sync/errgroup"
)

// Scanner defaults.
const (
	DefaultConcurrency  = 8
	DefaultSnippetWidth = 160
	DefaultSnippetMax   = 3
)

// Dedupe filter sizing. Skipping a document on a false positive loses a
// result, so the rate is kept well below the crawl-style defaults.
const (
	dedupeExpectedDocuments = 10000
	dedupeFalsePositiveRate = 0.0001
)

// State tracks where a scan run is in its lifecycle.
type State int

// Scan lifecycle states.
const (
	StateIdle State = iota
	StateFetchingCatalogs
	StateScanning
	StateDone
	StateFailed
)

// String returns the state name for logs and progress displays.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingCatalogs:
		return "fetching catalogs"
	case StateScanning:
		return "scanning"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Scanner orchestrates one corpus scan per Scan call. All fields except
// Normalizer and Limiter are required.
type Scanner struct {
	Catalogs     []lexscan.Catalog
	Source       lexscan.CatalogSource
	Resolver     *resolve.Resolver
	Fetcher      lexscan.Fetcher
	Normalizer   lexscan.TextNormalizer
	Limiter      lexscan.OriginLimiter
	Concurrency  int
	SnippetWidth int
	SnippetMax   int
}

// Result holds the outcome of a scan run.
type Result struct {
	Groups             []lexscan.ResultGroup
	State              State
	DocumentsScanned   int
	DocumentsFailed    int
	MatchedDocuments   int
	SkippedCatalogs    int
	SkippedDescriptors int
	BytesScanned       int64
	Elapsed            time.Duration
}

// ProgressEvent reports progress during a scan run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Catalog   string
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCatalogSkipped
	ProgressDocumentScanned
	ProgressDocumentFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scan progress.
type ProgressFunc func(event ProgressEvent)

// scanJob is one resolved document queued for fetching.
type scanJob struct {
	position int
	doc      lexscan.ResolvedDocument
}

// scanResult holds the outcome of scanning a single document.
type scanResult struct {
	position int
	doc      lexscan.ResolvedDocument
	spans    []lexscan.MatchSpan
	snippets []lexscan.Snippet
	bytes    int
	digest   string
	err      error
}

// Scan runs the query against the whole corpus. Unreadable catalogs and
// unresolvable or failing documents are counted, never fatal; the run
// fails only on an invalid query or a canceled context. The progress
// callback, if provided, receives events as scanning proceeds.
func (s *Scanner) Scan(ctx context.Context, q lexscan.Query, progress ProgressFunc) (*Result, error) {
	started := time.Now()

	if err := q.Validate(); err != nil {
		return nil, err
	}

	res := &Result{State: StateFetchingCatalogs}

	jobs, err := s.collectJobs(ctx, res, progress)
	if err != nil {
		res.State = StateFailed
		res.Elapsed = time.Since(started)
		return res, err
	}

	total := len(jobs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	res.State = StateScanning

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan scanResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, job := range jobs {
			job := job
			g.Go(func() error {
				resultCh <- s.scanDocument(gctx, job, q)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect into position order so results stay in catalog order no
	// matter which document finished first.
	results := make([]scanResult, total)
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if result.err != nil {
			res.DocumentsFailed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressDocumentFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       result.doc.CanonicalURL,
					Error:     result.err,
				})
			}
		} else {
			res.DocumentsScanned++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressDocumentScanned,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       result.doc.CanonicalURL,
				})
			}
		}
	}

	if err := ctx.Err(); err != nil {
		res.State = StateFailed
		res.Elapsed = time.Since(started)
		return res, err
	}

	byKind := make(map[lexscan.DocumentKind][]lexscan.SearchResultItem)
	for _, result := range results {
		if result.err != nil {
			continue
		}
		res.BytesScanned += int64(result.bytes)
		if len(result.spans) == 0 {
			continue
		}
		res.MatchedDocuments++
		byKind[result.doc.Kind] = append(byKind[result.doc.Kind], lexscan.SearchResultItem{
			Document:   result.doc,
			Spans:      result.spans,
			Snippets:   result.snippets,
			ByteLength: result.bytes,
			Digest:     result.digest,
		})
	}

	// Groups render in kind presentation order; kinds without matches are
	// omitted.
	for _, kind := range lexscan.Kinds() {
		if items, ok := byKind[kind]; ok {
			res.Groups = append(res.Groups, lexscan.ResultGroup{Kind: kind, Items: items})
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	res.State = StateDone
	res.Elapsed = time.Since(started)
	return res, nil
}

// collectJobs fetches and parses every catalog, resolves each descriptor,
// and queues one job per previously unseen canonical URL. Catalog and
// descriptor failures are counted on res; only context cancellation is an
// error.
func (s *Scanner) collectJobs(ctx context.Context, res *Result, progress ProgressFunc) ([]scanJob, error) {
	seen := bloom.NewFilter(dedupeExpectedDocuments, dedupeFalsePositiveRate)
	var jobs []scanJob

	for _, cat := range s.Catalogs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		payload, err := s.Source.FetchCatalog(ctx, cat)
		if err != nil {
			res.SkippedCatalogs++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressCatalogSkipped, Catalog: cat.Name, Error: err})
			}
			continue
		}

		parsed, err := catalog.Parse(payload, cat.Kind)
		if err != nil {
			res.SkippedCatalogs++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressCatalogSkipped, Catalog: cat.Name, Error: err})
			}
			continue
		}
		res.SkippedDescriptors += parsed.Skipped

		for _, d := range parsed.Descriptors {
			canonical, err := s.Resolver.Resolve(d.SourceLocation)
			if err != nil {
				res.SkippedDescriptors++
				continue
			}
			if seen.TestAndAdd(canonical) {
				continue
			}
			jobs = append(jobs, scanJob{
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

// scanDocument fetches and matches a single document.
func (s *Scanner) scanDocument(ctx context.Context, job scanJob, q lexscan.Query) scanResult {
	result := scanResult{position: job.position, doc: job.doc}

	if s.Limiter != nil {
		if u, err := url.Parse(job.doc.CanonicalURL); err == nil {
			if err := s.Limiter.Wait(ctx, u.Host); err != nil {
				result.err = err
				return result
			}
		}
	}

	fetched, err := s.Fetcher.FetchText(ctx, job.doc)
	if err != nil {
		result.err = err
		return result
	}

	result.bytes = fetched.ByteLength
	result.digest = fetched.Digest

	text := fetched.Text
	if s.Normalizer != nil {
		text = s.Normalizer.Normalize(text)
	}

	spans := match.Find(q, text)
	if len(spans) == 0 {
		return result
	}

	width := s.SnippetWidth
	if width <= 0 {
		width = DefaultSnippetWidth
	}
	max := s.SnippetMax
	if max <= 0 {
		max = DefaultSnippetMax
	}

	result.spans = spans
	result.snippets = match.SelectSnippets(spans, text, q.Terms(), width, max)
	return result
}
