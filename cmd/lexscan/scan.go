package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lawcorpus/lexscan"
	"github.com/lawcorpus/lexscan/match"
	"github.com/lawcorpus/lexscan/scan"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	mode, err := lexscan.ParseMatchMode(c.Mode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexscan.ErrorMessage(err))
		return err
	}
	q := lexscan.ParseQuery(c.Query, mode)

	// Apply user-specified overrides
	if c.Concurrency > 0 {
		deps.Scanner.Concurrency = c.Concurrency
	}
	if c.Window > 0 {
		deps.Scanner.SnippetWidth = c.Window
	}
	if c.MaxSnippets > 0 {
		deps.Scanner.SnippetMax = c.MaxSnippets
	}

	started := time.Now()

	progress := func(event scan.ProgressEvent) {
		switch event.Type {
		case scan.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scanning %d documents\n", event.Total)
		case scan.ProgressCatalogSkipped:
			fmt.Fprintf(deps.Stderr, "  skip catalog %s: %v\n", event.Catalog, event.Error)
		case scan.ProgressDocumentFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", scan.TruncateURL(event.URL, 60), event.Error)
		}
	}

	res, err := deps.Scanner.Scan(deps.Ctx, q, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexscan.ErrorMessage(err))
		return err
	}

	renderResult(deps.Stdout, res)

	recordScan(deps, q, res, started)
	return nil
}

// recordScan persists a completed run to the history log. Recording
// failures are reported but never fail the scan itself.
func recordScan(deps *Dependencies, q lexscan.Query, res *scan.Result, started time.Time) {
	if deps.ScanLog == nil {
		return
	}
	rec := &lexscan.ScanRecord{
		Query:            q.Raw,
		Mode:             q.Mode,
		DocumentsScanned: res.DocumentsScanned,
		DocumentsFailed:  res.DocumentsFailed,
		MatchedDocuments: res.MatchedDocuments,
		BytesScanned:     res.BytesScanned,
		ElapsedMS:        res.Elapsed.Milliseconds(),
		StartedAt:        started,
	}
	if err := deps.ScanLog.CreateScanRecord(deps.Ctx, rec); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: scan not recorded: %s\n", lexscan.ErrorMessage(err))
	}
}

// renderResult prints kind-grouped matches followed by the run footer.
func renderResult(w io.Writer, res *scan.Result) {
	for _, group := range res.Groups {
		fmt.Fprintf(w, "\n%s\n", strings.ToUpper(string(group.Kind))+"S")
		for _, item := range group.Items {
			title := item.Document.Title
			if title == "" {
				title = item.Document.CanonicalURL
			}
			fmt.Fprintf(w, "  %s (%d matches, %s)\n", title, len(item.Spans), scan.FormatBytes(int64(item.ByteLength)))
			fmt.Fprintf(w, "    %s  %s\n", item.Document.CanonicalURL, shortDigest(item.Digest))
			for _, sn := range item.Snippets {
				fmt.Fprintf(w, "    ...%s...\n", oneLine(highlight(sn.Text, sn.Terms)))
			}
		}
	}

	if res.MatchedDocuments == 0 {
		if res.DocumentsFailed > 0 {
			fmt.Fprintf(w, "\nNo matches; %d documents could not be scanned.\n", res.DocumentsFailed)
		} else {
			fmt.Fprintf(w, "\nNo matches.\n")
		}
	}

	fmt.Fprintf(w, "\nScanned %d documents (%s) in %s",
		res.DocumentsScanned, scan.FormatBytes(res.BytesScanned), res.Elapsed.Round(time.Millisecond))
	if res.MatchedDocuments > 0 {
		fmt.Fprintf(w, ", %d matched", res.MatchedDocuments)
	}
	if res.DocumentsFailed > 0 {
		fmt.Fprintf(w, ", %d failed", res.DocumentsFailed)
	}
	fmt.Fprintln(w)
}

// highlight brackets each term occurrence so matches stay visible when the
// output is piped or paged. Occurrences are found the same way scan spans
// are, so what was matched is exactly what gets bracketed.
func highlight(text string, terms []string) string {
	spans := match.Find(lexscan.Query{Tokens: terms, Mode: lexscan.MatchAny}, text)
	if len(spans) == 0 {
		return text
	}

	runes := []rune(text)
	var b strings.Builder
	pos := 0
	for _, span := range spans {
		if span.Start < pos {
			continue
		}
		b.WriteString(string(runes[pos:span.Start]))
		b.WriteString("[")
		b.WriteString(string(runes[span.Start:span.End]))
		b.WriteString("]")
		pos = span.End
	}
	b.WriteString(string(runes[pos:]))
	return b.String()
}

// oneLine collapses whitespace so a snippet renders as a single line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// shortDigest abbreviates a content digest for display.
func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
