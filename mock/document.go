package mock

import (
	"context"

	"github.com/fwojciec/c2cgpx"
)

var _ c2cgpx.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of c2cgpx.DocumentService.
type DocumentService struct {
	FindDocumentIDsFn func(ctx context.Context, typ c2cgpx.DocumentType, filter c2cgpx.Filter) ([]int64, error)
	FetchDocumentFn   func(ctx context.Context, typ c2cgpx.DocumentType, id int64) (*c2cgpx.Document, error)
}

func (s *DocumentService) FindDocumentIDs(ctx context.Context, typ c2cgpx.DocumentType, filter c2cgpx.Filter) ([]int64, error) {
	return s.FindDocumentIDsFn(ctx, typ, filter)
}

func (s *DocumentService) FetchDocument(ctx context.Context, typ c2cgpx.DocumentType, id int64) (*c2cgpx.Document, error) {
	return s.FetchDocumentFn(ctx, typ, id)
}
