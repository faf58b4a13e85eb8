package port

import "context"

// PageSplitter splits a flyer PDF into single-page PDFs.
type PageSplitter interface {
	Split(ctx context.Context, pdf []byte) ([][]byte, error)
}
