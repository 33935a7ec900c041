package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lawcorpus/lexscan"
	"github.com/lawcorpus/lexscan/catalog"
	"github.com/lawcorpus/lexscan/resolve"
)

// Reconciliation verdicts for one catalog entry.
const (
	syncOK           = "ok"
	syncMoved        = "moved"
	syncMissing      = "missing"
	syncUnresolvable = "unresolvable"
)

// syncReport is the reconciliation outcome across all catalogs.
type syncReport struct {
	Origins         int              `json:"origins"`
	InventoryFiles  int              `json:"inventoryFiles"`
	Checked         int              `json:"checked"`
	OK              int              `json:"ok"`
	Moved           int              `json:"moved"`
	Missing         int              `json:"missing"`
	Unresolvable    int              `json:"unresolvable"`
	SkippedCatalogs int              `json:"skippedCatalogs"`
	SkippedEntries  int              `json:"skippedEntries"`
	Items           []syncReportItem `json:"items"`
}

// syncReportItem is the verdict for one catalog entry.
type syncReportItem struct {
	Catalog   string `json:"catalog"`
	Title     string `json:"title"`
	Location  string `json:"location"`
	Canonical string `json:"canonical,omitempty"`
	Inventory string `json:"inventory,omitempty"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	inv, err := deps.Inventory.DiscoverInventory(deps.Ctx, deps.OriginPreference)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexscan.ErrorMessage(err))
		return err
	}

	report := buildSyncReport(deps, inv)

	if c.JSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(data))
		return nil
	}

	renderSyncReport(deps.Stdout, report)
	return nil
}

// buildSyncReport checks every catalog entry against the discovered
// inventory. Each entry gets exactly one verdict: its resolved URL matches
// the preferred inventory candidate (ok), differs from it (moved), has no
// candidate (missing), or cannot be resolved at all.
func buildSyncReport(deps *Dependencies, inv lexscan.SyncInventory) *syncReport {
	report := &syncReport{
		Origins:        len(deps.OriginPreference),
		InventoryFiles: len(inv),
	}

	for _, cat := range deps.Catalogs {
		payload, err := deps.Source.FetchCatalog(deps.Ctx, cat)
		if err != nil {
			report.SkippedCatalogs++
			continue
		}
		parsed, err := catalog.Parse(payload, cat.Kind)
		if err != nil {
			report.SkippedCatalogs++
			continue
		}
		report.SkippedEntries += parsed.Skipped

		for _, d := range parsed.Descriptors {
			item := syncReportItem{Catalog: cat.Name, Title: d.Title, Location: d.SourceLocation}
			report.Checked++

			canonical, err := deps.Resolver.Resolve(d.SourceLocation)
			if err != nil {
				item.Status = syncUnresolvable
				item.Reason = lexscan.ErrorMessage(err)
				report.Unresolvable++
				report.Items = append(report.Items, item)
				continue
			}
			item.Canonical = canonical

			entry, ok := resolve.PickCandidate(inv, d.SourceLocation, deps.OriginPreference)
			switch {
			case !ok:
				item.Status = syncMissing
				report.Missing++
			case entry.URL == canonical:
				item.Status = syncOK
				item.Inventory = entry.URL
				report.OK++
			default:
				item.Status = syncMoved
				item.Inventory = entry.URL
				report.Moved++
			}
			report.Items = append(report.Items, item)
		}
	}

	return report
}

// renderSyncReport prints the human-readable report. Entries whose catalog
// location already agrees with the inventory are summarized, not listed.
func renderSyncReport(w io.Writer, report *syncReport) {
	fmt.Fprintf(w, "Discovered %d files across %d origins\n", report.InventoryFiles, report.Origins)

	for _, item := range report.Items {
		switch item.Status {
		case syncMoved:
			fmt.Fprintf(w, "  moved  %s (%s)\n", item.Title, item.Catalog)
			fmt.Fprintf(w, "    catalog:   %s\n", item.Canonical)
			fmt.Fprintf(w, "    inventory: %s\n", item.Inventory)
		case syncMissing:
			fmt.Fprintf(w, "  missing  %s (%s)\n", item.Title, item.Catalog)
			fmt.Fprintf(w, "    %s\n", item.Canonical)
		case syncUnresolvable:
			fmt.Fprintf(w, "  unresolvable  %s (%s): %s\n", item.Title, item.Catalog, item.Reason)
		}
	}

	fmt.Fprintf(w, "Checked %d catalog entries: %d ok, %d moved, %d missing, %d unresolvable\n",
		report.Checked, report.OK, report.Moved, report.Missing, report.Unresolvable)
	if report.SkippedCatalogs > 0 {
		fmt.Fprintf(w, "  %d catalogs could not be read\n", report.SkippedCatalogs)
	}
}
