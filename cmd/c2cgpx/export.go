package main

import (
	"fmt"

	"github.com/fwojciec/c2cgpx"
	"github.com/fwojciec/c2cgpx/crawl"
	"github.com/fwojciec/c2cgpx/fs"
)

// Run executes the export.
func (c *ExportCmd) Run(deps *Dependencies) error {
	typ, filter, err := c2cgpx.ParseSearchURL(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", c2cgpx.ErrorMessage(err))
		return err
	}

	output := c.Output
	if output == "" {
		output = string(typ) + ".gpx"
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d %s\n", event.Total, typ)
		case crawl.ProgressFetched:
			fmt.Fprintf(deps.Stdout, "%s %d\n", crawl.FormatProgress(event.Completed, event.Total), event.DocumentID)
		case crawl.ProgressRetrying:
			deps.Logger.Warn("retrying document", "type", typ, "id", event.DocumentID, "attempt", event.Attempt, "err", event.Error)
		case crawl.ProgressSkipped:
			deps.Logger.Warn("skipping document", "type", typ, "id", event.DocumentID, "reason", c2cgpx.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Exporter.Export(deps.Ctx, typ, filter, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", c2cgpx.ErrorMessage(err))
		return err
	}

	n, size, err := fs.WriteWaypoints(output, deps.Writer, result.Waypoints)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", c2cgpx.ErrorMessage(err))
		return err
	}
	deps.Logger.Info("wrote gpx", "path", output, "size", crawl.FormatBytes(size))

	if deps.Metrics != nil {
		deps.Metrics.ObserveSkipped(result.Skipped)
		deps.Metrics.SetWaypoints(n)
		if c.MetricsFile != "" {
			if err := deps.Metrics.WriteTextfile(c.MetricsFile); err != nil {
				fmt.Fprintf(deps.Stderr, "error: writing metrics: %v\n", err)
				return err
			}
		}
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(deps.Stdout, "skipped %d of %d documents\n", len(result.Skipped), result.Total)
	}
	fmt.Fprintf(deps.Stdout, "file %s created with %d waypoints\n", output, n)
	return nil
}
