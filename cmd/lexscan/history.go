package main

import (
	"fmt"
	"time"

	"github.com/lawcorpus/lexscan"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	records, err := deps.ScanLog.FindScanRecords(deps.Ctx, lexscan.ScanRecordFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexscan.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No scans recorded. Use 'lexscan scan' to run one.")
		return nil
	}

	for _, rec := range records {
		elapsed := time.Duration(rec.ElapsedMS) * time.Millisecond
		fmt.Fprintf(deps.Stdout, "%s  %s %q  %d matched / %d scanned  %s\n",
			rec.StartedAt.Format("2006-01-02 15:04"), rec.Mode, rec.Query,
			rec.MatchedDocuments, rec.DocumentsScanned, elapsed)
	}

	return nil
}
