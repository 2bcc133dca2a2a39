// Package batch drives bulk barcode rendering in fixed-size chunks so the
// HTTP surface stays responsive while a large code list is processed.
//
// Within a chunk every valid entry renders concurrently with join semantics:
// a chunk is done only when all of its renders have returned, and results
// are written back by original index so the final ordering always matches
// the input order. After each chunk the runner publishes a fresh merged
// snapshot of the entry list together with cumulative progress, then yields
// briefly before the next chunk. Cancellation is honored at chunk
// boundaries only, never mid-render.
package batch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dkotenko/labelforge/internal/session"
	"github.com/dkotenko/labelforge/internal/upc"
)

// Defaults for the runner configuration.
const (
	DefaultChunkSize   = 50
	DefaultConcurrency = 8
	DefaultYieldDelay  = 10 * time.Millisecond
)

// GenerationFailed is the reason recorded on an entry whose render failed.
// The entry is downgraded to invalid for the rest of the pass.
const GenerationFailed = "generation failed"

// Snapshot is the immutable parameterization of one generation pass,
// captured once when the pass starts. A settings change mid-run cannot leak
// into a running pass because every chunk reads from this value.
type Snapshot struct {
	Params   upc.EncoderParams
	WidthPx  int
	HeightPx int
	Format   upc.Format
}

// NewSnapshot derives the pass parameterization from the session settings.
func NewSnapshot(size session.SizeSetting, render session.RenderSettings, dpi float64) Snapshot {
	widthPx, heightPx := upc.MapSize(size.WidthCm, size.HeightCm, dpi)
	return Snapshot{
		Params:   upc.MapEncoderParams(widthPx, heightPx, render.ShowNumbers),
		WidthPx:  widthPx,
		HeightPx: heightPx,
		Format:   render.Format,
	}
}

// RenderFunc produces the artifact for a single code. Injectable for tests;
// the default is upc.Render.
type RenderFunc func(code string, snap Snapshot) (*upc.Artifact, error)

// PublishFunc receives the cumulative progress and the merged entry
// snapshot after each chunk. The slice is owned by the receiver.
type PublishFunc func(p session.Progress, entries []session.Entry)

// Runner executes generation passes.
type Runner struct {
	ChunkSize   int
	Concurrency int
	YieldDelay  time.Duration
	Render      RenderFunc
}

// NewRunner returns a runner with the given chunk size and concurrency,
// falling back to defaults for non-positive values.
func NewRunner(chunkSize, concurrency int, yieldDelay time.Duration) *Runner {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if yieldDelay < 0 {
		yieldDelay = DefaultYieldDelay
	}
	return &Runner{
		ChunkSize:   chunkSize,
		Concurrency: concurrency,
		YieldDelay:  yieldDelay,
		Render:      defaultRender,
	}
}

func defaultRender(code string, snap Snapshot) (*upc.Artifact, error) {
	return upc.Render(code, snap.Params, snap.WidthPx, snap.HeightPx, snap.Format)
}

// Run renders every valid entry and returns the final entry list, which
// preserves the input order. Entries already invalid are skipped and count
// toward neither progress figure. A failed render downgrades just that
// entry; it still counts as processed, and the total computed at pass start
// never shrinks. On cancellation the entries merged so far are returned
// along with the context error.
func (r *Runner) Run(ctx context.Context, entries []session.Entry, snap Snapshot, publish PublishFunc) ([]session.Entry, error) {
	render := r.Render
	if render == nil {
		render = defaultRender
	}

	work := make([]session.Entry, len(entries))
	copy(work, entries)

	total := session.CountValid(work)
	current := 0

	for start := 0; start < len(work); start += r.ChunkSize {
		select {
		case <-ctx.Done():
			return work, ctx.Err()
		default:
		}

		end := start + r.ChunkSize
		if end > len(work) {
			end = len(work)
		}

		artifacts := make([]*upc.Artifact, end-start)
		failures := make([]error, end-start)

		g := new(errgroup.Group)
		g.SetLimit(r.Concurrency)
		for i := start; i < end; i++ {
			if !work[i].Valid {
				continue
			}
			slot := i - start
			code := work[i].Number
			g.Go(func() error {
				artifact, err := render(code, snap)
				if err != nil {
					failures[slot] = err
					return nil
				}
				artifacts[slot] = artifact
				return nil
			})
		}
		// Per-entry failures are recorded in place; nothing aborts a chunk.
		_ = g.Wait()

		merged := make([]session.Entry, len(work))
		copy(merged, work)
		for i := start; i < end; i++ {
			if !merged[i].Valid {
				continue
			}
			slot := i - start
			if failures[slot] != nil {
				merged[i].Valid = false
				merged[i].Error = GenerationFailed
				merged[i].Artifact = nil
			} else {
				merged[i].Artifact = artifacts[slot]
			}
			if current < total {
				current++
			}
		}
		work = merged

		if publish != nil {
			snapshot := make([]session.Entry, len(work))
			copy(snapshot, work)
			publish(session.Progress{Current: current, Total: total}, snapshot)
		}

		if end < len(work) && r.YieldDelay > 0 {
			timer := time.NewTimer(r.YieldDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return work, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return work, nil
}
