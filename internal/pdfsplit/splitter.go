package pdfsplit

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"flyerwatch/internal/port"
)

type splitter struct {
	conf *model.Configuration
}

// New returns a pdfcpu-backed PageSplitter.
func New() port.PageSplitter {
	return &splitter{conf: model.NewDefaultConfiguration()}
}

// Split cuts a flyer PDF into single-page PDFs, one []byte per page.
func (s *splitter) Split(ctx context.Context, pdf []byte) ([][]byte, error) {
	count, err := api.PageCount(bytes.NewReader(pdf), s.conf)
	if err != nil {
		return nil, fmt.Errorf("pdfsplit: page count: %w", err)
	}

	pages := make([][]byte, 0, count)
	for nr := 1; nr <= count; nr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		err := api.Trim(bytes.NewReader(pdf), &buf, []string{strconv.Itoa(nr)}, s.conf)
		if err != nil {
			return nil, fmt.Errorf("pdfsplit: page %d: %w", nr, err)
		}
		pages = append(pages, buf.Bytes())
	}
	return pages, nil
}
