package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lawcorpus/lexscan"
	"github.com/lawcorpus/lexscan/scan"
)

// Run executes the interactive command. Each line read from stdin starts a
// scan that supersedes the previous one; a superseded scan never prints.
func (c *InteractiveCmd) Run(deps *Dependencies) error {
	mode, err := lexscan.ParseMatchMode(c.Mode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexscan.ErrorMessage(err))
		return err
	}

	supervisor := scan.NewSupervisor(func(ctx context.Context, q lexscan.Query) (*scan.Result, error) {
		return deps.Scanner.Scan(ctx, q, nil)
	})

	publish := func(q lexscan.Query, res *scan.Result, err error) {
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lexscan.ErrorMessage(err))
			return
		}
		renderResult(deps.Stdout, res)
		recordScan(deps, q, res, time.Now().Add(-res.Elapsed))
	}

	fmt.Fprintln(deps.Stdout, `Enter a query per line ("quit" exits); a new query cancels the running one.`)

	reader := bufio.NewScanner(deps.Stdin)
	for reader.Scan() {
		line := strings.TrimSpace(reader.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			// Drop the in-flight scan so quitting is immediate.
			supervisor.Cancel()
			supervisor.Wait()
			return nil
		}
		supervisor.Submit(deps.Ctx, lexscan.ParseQuery(line, mode), publish)
	}

	// On end of input let the last scan finish and publish, so piped
	// queries still print their results.
	supervisor.Wait()
	return reader.Err()
}
