package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/c2cgpx"
)

// Ensure DocumentService implements c2cgpx.DocumentService.
var _ c2cgpx.DocumentService = (*DocumentService)(nil)

// DocumentService wraps a DocumentService with request metrics.
type DocumentService struct {
	next    c2cgpx.DocumentService
	metrics *Metrics
}

// NewDocumentService creates a new instrumented DocumentService.
func NewDocumentService(next c2cgpx.DocumentService, m *Metrics) *DocumentService {
	return &DocumentService{next: next, metrics: m}
}

// FindDocumentIDs delegates to the wrapped service and records the call.
func (s *DocumentService) FindDocumentIDs(ctx context.Context, typ c2cgpx.DocumentType, filter c2cgpx.Filter) (ids []int64, err error) {
	defer s.observe("search", time.Now(), &err)
	return s.next.FindDocumentIDs(ctx, typ, filter)
}

// FetchDocument delegates to the wrapped service and records the call.
func (s *DocumentService) FetchDocument(ctx context.Context, typ c2cgpx.DocumentType, id int64) (doc *c2cgpx.Document, err error) {
	defer s.observe("document", time.Now(), &err)
	return s.next.FetchDocument(ctx, typ, id)
}

func (s *DocumentService) observe(endpoint string, begin time.Time, err *error) {
	s.metrics.requests.WithLabelValues(endpoint, outcome(*err)).Inc()
	s.metrics.requestDuration.WithLabelValues(endpoint).Observe(time.Since(begin).Seconds())
}
