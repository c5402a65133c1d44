// Package crawl orchestrates exports: it enumerates the documents matching
// a search, fetches them over a bounded worker pool and assembles the
// waypoints.
package crawl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/c2cgpx"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents fetched at once.
const DefaultConcurrency = 2

// Exporter turns a search into waypoints.
type Exporter struct {
	Documents   c2cgpx.DocumentService
	Assembler   c2cgpx.WaypointAssembler
	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of an export.
type Result struct {
	// Waypoints are sorted by document id.
	Waypoints []*c2cgpx.Waypoint

	// Skipped lists documents left out because of missing locales or
	// geometry, in fetch order.
	Skipped []c2cgpx.Skipped

	// Total is the number of documents the search enumerated.
	Total int
}

// ProgressEvent reports progress during an export.
type ProgressEvent struct {
	Type       ProgressType
	Completed  int
	Total      int
	DocumentID int64
	Attempt    int
	Error      error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressFetched
	ProgressRetrying
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting export progress.
// Calls are serialized.
type ProgressFunc func(event ProgressEvent)

// Export enumerates the documents of typ matching filter, fetches each one
// and assembles its waypoint. A failed fetch cancels the remaining work and
// aborts the export. Documents that cannot become waypoints are recorded in
// Result.Skipped.
func (e *Exporter) Export(ctx context.Context, typ c2cgpx.DocumentType, filter c2cgpx.Filter, progress ProgressFunc) (*Result, error) {
	r := &reporter{fn: progress}

	ids, err := e.Documents.FindDocumentIDs(ctx, typ, filter)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", typ, err)
	}
	total := len(ids)
	r.emit(ProgressEvent{Type: ProgressStarted, Total: total})

	docs, err := e.fetchAll(ctx, typ, ids, r)
	if err != nil {
		return nil, err
	}

	result := &Result{Total: total}
	for _, doc := range docs {
		wp, err := e.Assembler.Assemble(doc)
		if err != nil {
			if !c2cgpx.Skippable(err) {
				return nil, err
			}
			result.Skipped = append(result.Skipped, c2cgpx.Skipped{
				DocumentID: doc.ID,
				Type:       doc.Type,
				Err:        err,
			})
			r.emit(ProgressEvent{Type: ProgressSkipped, Total: total, DocumentID: doc.ID, Error: err})
			continue
		}
		result.Waypoints = append(result.Waypoints, wp)
	}
	c2cgpx.SortWaypoints(result.Waypoints)

	r.emit(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return result, nil
}

// fetchAll fetches ids concurrently and returns the documents in id order.
func (e *Exporter) fetchAll(ctx context.Context, typ c2cgpx.DocumentType, ids []int64, r *reporter) ([]*c2cgpx.Document, error) {
	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	delays := e.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	docs := make([]*c2cgpx.Document, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, id := range ids {
		g.Go(func() error {
			onRetry := func(attempt int, err error) {
				r.emit(ProgressEvent{Type: ProgressRetrying, Total: len(ids), DocumentID: id, Attempt: attempt, Error: err})
			}
			doc, err := FetchWithRetryDelays(gctx, typ, id, e.Documents.FetchDocument, onRetry, delays)
			if err != nil {
				return fmt.Errorf("fetch %s %d: %w", typ, id, err)
			}
			docs[i] = doc
			r.fetched(id, len(ids))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// reporter serializes progress callbacks and counts fetched documents.
type reporter struct {
	mu        sync.Mutex
	fn        ProgressFunc
	completed int
}

func (r *reporter) emit(ev ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fn != nil {
		r.fn(ev)
	}
}

func (r *reporter) fetched(id int64, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed++
	if r.fn != nil {
		r.fn(ProgressEvent{Type: ProgressFetched, Completed: r.completed, Total: total, DocumentID: id})
	}
}
