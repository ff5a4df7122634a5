package highlight

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Segmenter is anything that can split a text into segments.
type Segmenter interface {
	Segment(text string) []Segment
}

// SegmentAll segments every text using at most workers goroutines. Result i
// belongs to texts[i]. It stops early and returns ctx.Err() when ctx is
// cancelled.
func SegmentAll(ctx context.Context, s Segmenter, texts []string, workers int) ([][]Segment, error) {
	if workers <= 0 {
		workers = 1
	}

	out := make([][]Segment, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = s.Segment(text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
