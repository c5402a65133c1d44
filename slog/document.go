// Package slog provides logging decorators for c2cgpx services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/c2cgpx"
)

// Ensure LoggingDocumentService implements c2cgpx.DocumentService.
var _ c2cgpx.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with logging.
type LoggingDocumentService struct {
	next   c2cgpx.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next c2cgpx.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

// FindDocumentIDs delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) FindDocumentIDs(ctx context.Context, typ c2cgpx.DocumentType, filter c2cgpx.Filter) (ids []int64, err error) {
	defer func(begin time.Time) {
		s.logger.Info("document search",
			"type", typ,
			"query", filter.Encode(0),
			"count", len(ids),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocumentIDs(ctx, typ, filter)
}

// FetchDocument delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) FetchDocument(ctx context.Context, typ c2cgpx.DocumentType, id int64) (doc *c2cgpx.Document, err error) {
	defer func(begin time.Time) {
		var locales int
		if doc != nil {
			locales = len(doc.Locales)
		}
		s.logger.Info("document fetch",
			"type", typ,
			"id", id,
			"locales", locales,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchDocument(ctx, typ, id)
}
