package mock

import "github.com/fwojciec/c2cgpx"

var _ c2cgpx.Transformer = (*Transformer)(nil)

// Transformer is a mock implementation of c2cgpx.Transformer.
type Transformer struct {
	TransformFn func(text string) string
}

func (t *Transformer) Transform(text string) string {
	return t.TransformFn(text)
}
