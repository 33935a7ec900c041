package main

import (
	"fmt"
	"time"

	"github.com/lawcorpus/lexscan"
	"github.com/lawcorpus/lexscan/index"
	"github.com/lawcorpus/lexscan/scan"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	progress := func(event index.ProgressEvent) {
		switch event.Type {
		case index.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Building index from %d documents\n", event.Total)
		case index.ProgressCatalogSkipped:
			fmt.Fprintf(deps.Stderr, "  skip catalog %s: %v\n", event.Catalog, event.Error)
		case index.ProgressDocumentFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", scan.TruncateURL(event.URL, 60), event.Error)
		}
	}

	res, err := deps.Builder.Build(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d of %d documents (%d chunks) in %s\n",
		res.DocumentsIndexed, res.DocumentsAttempted, res.ChunksProduced, res.Elapsed.Round(time.Millisecond))
	if res.DocumentsFailed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d documents could not be fetched\n", res.DocumentsFailed)
	}
	if res.SkippedCatalogs > 0 || res.SkippedDescriptors > 0 {
		fmt.Fprintf(deps.Stdout, "  skipped %d catalogs and %d catalog entries\n",
			res.SkippedCatalogs, res.SkippedDescriptors)
	}
	fmt.Fprintf(deps.Stdout, "Manifest written to %s\n", res.ManifestPath)

	return nil
}
