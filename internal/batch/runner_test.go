package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotenko/labelforge/internal/session"
	"github.com/dkotenko/labelforge/internal/upc"
)

func testSnapshot() Snapshot {
	return NewSnapshot(session.DefaultSizeSetting(), session.DefaultRenderSettings(), upc.DefaultDPI)
}

func testRunner(chunkSize int, render RenderFunc) *Runner {
	r := NewRunner(chunkSize, 4, 0)
	r.Render = render
	return r
}

func fakeRender(code string, _ Snapshot) (*upc.Artifact, error) {
	return &upc.Artifact{Format: upc.FormatPNG, Data: []byte(code)}, nil
}

func makeEntries(n int) []session.Entry {
	entries := make([]session.Entry, n)
	for i := range entries {
		entries[i] = session.Entry{Number: fmt.Sprintf("%012d", i), Valid: true}
	}
	return entries
}

func TestRunnerRun(t *testing.T) {
	t.Run("preserves input order across chunks", func(t *testing.T) {
		entries := makeEntries(23)
		r := testRunner(5, func(code string, snap Snapshot) (*upc.Artifact, error) {
			// Vary completion order within a chunk.
			time.Sleep(time.Duration(code[11]%3) * time.Millisecond)
			return fakeRender(code, snap)
		})

		out, err := r.Run(context.Background(), entries, testSnapshot(), nil)
		require.NoError(t, err)
		require.Len(t, out, 23)
		for i, e := range out {
			assert.Equal(t, fmt.Sprintf("%012d", i), e.Number)
			require.NotNil(t, e.Artifact)
			assert.Equal(t, e.Number, string(e.Artifact.Data))
		}
	})

	t.Run("progress is monotonic and reaches total exactly at the last chunk", func(t *testing.T) {
		entries := makeEntries(12)
		r := testRunner(5, fakeRender)

		var published []session.Progress
		out, err := r.Run(context.Background(), entries, testSnapshot(), func(p session.Progress, _ []session.Entry) {
			published = append(published, p)
		})
		require.NoError(t, err)
		require.Len(t, out, 12)

		require.Len(t, published, 3)
		prev := 0
		for _, p := range published {
			assert.Equal(t, 12, p.Total)
			assert.GreaterOrEqual(t, p.Current, prev)
			prev = p.Current
		}
		assert.Equal(t, 12, published[len(published)-1].Current)
		for _, p := range published[:len(published)-1] {
			assert.Less(t, p.Current, 12)
		}
	})

	t.Run("invalid entries are skipped and not counted", func(t *testing.T) {
		entries := makeEntries(4)
		entries[1].Valid = false
		entries[1].Error = "must be exactly 12 digits, got 3 characters"

		var rendered atomic.Int32
		r := testRunner(10, func(code string, snap Snapshot) (*upc.Artifact, error) {
			rendered.Add(1)
			return fakeRender(code, snap)
		})

		var last session.Progress
		out, err := r.Run(context.Background(), entries, testSnapshot(), func(p session.Progress, _ []session.Entry) {
			last = p
		})
		require.NoError(t, err)

		assert.Equal(t, int32(3), rendered.Load())
		assert.Equal(t, session.Progress{Current: 3, Total: 3}, last)
		assert.Nil(t, out[1].Artifact)
		assert.False(t, out[1].Valid)
	})

	t.Run("a failed render downgrades only that entry", func(t *testing.T) {
		entries := makeEntries(3)
		r := testRunner(10, func(code string, snap Snapshot) (*upc.Artifact, error) {
			if code == entries[1].Number {
				return nil, errors.New("checksum mismatch")
			}
			return fakeRender(code, snap)
		})

		var last session.Progress
		out, err := r.Run(context.Background(), entries, testSnapshot(), func(p session.Progress, _ []session.Entry) {
			last = p
		})
		require.NoError(t, err)

		assert.False(t, out[1].Valid)
		assert.Equal(t, GenerationFailed, out[1].Error)
		assert.Nil(t, out[1].Artifact)

		assert.True(t, out[0].Valid)
		assert.NotNil(t, out[0].Artifact)
		assert.True(t, out[2].Valid)

		// The failed entry still counts as processed; total never shrinks.
		assert.Equal(t, session.Progress{Current: 3, Total: 3}, last)
	})

	t.Run("published snapshots are distinct slices", func(t *testing.T) {
		entries := makeEntries(6)
		r := testRunner(3, fakeRender)

		var snapshots [][]session.Entry
		_, err := r.Run(context.Background(), entries, testSnapshot(), func(_ session.Progress, e []session.Entry) {
			snapshots = append(snapshots, e)
		})
		require.NoError(t, err)

		require.Len(t, snapshots, 2)
		assert.NotSame(t, &snapshots[0][0], &snapshots[1][0])

		// The first snapshot must not have been retroactively completed.
		assert.Nil(t, snapshots[0][5].Artifact)
		assert.NotNil(t, snapshots[1][5].Artifact)
	})

	t.Run("cancellation is honored at chunk boundaries", func(t *testing.T) {
		entries := makeEntries(20)
		ctx, cancel := context.WithCancel(context.Background())

		r := testRunner(5, func(code string, snap Snapshot) (*upc.Artifact, error) {
			return fakeRender(code, snap)
		})
		r.YieldDelay = time.Millisecond

		chunks := 0
		out, err := r.Run(ctx, entries, testSnapshot(), func(session.Progress, []session.Entry) {
			chunks++
			if chunks == 2 {
				cancel()
			}
		})
		assert.ErrorIs(t, err, context.Canceled)

		// Two whole chunks finished; no entry was abandoned mid-render.
		assert.NotNil(t, out[9].Artifact)
		assert.Nil(t, out[10].Artifact)
	})

	t.Run("empty entry list completes immediately", func(t *testing.T) {
		r := testRunner(5, fakeRender)
		out, err := r.Run(context.Background(), nil, testSnapshot(), nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("real renderer end to end", func(t *testing.T) {
		entries := []session.Entry{
			{Number: "012345678905", Valid: true},
			{Number: "012345678901", Valid: true}, // wrong check digit
		}
		r := NewRunner(50, 4, 0)

		out, err := r.Run(context.Background(), entries, testSnapshot(), nil)
		require.NoError(t, err)

		assert.True(t, out[0].Valid)
		require.NotNil(t, out[0].Artifact)
		assert.Equal(t, 260, out[0].Artifact.WidthPx)

		assert.False(t, out[1].Valid)
		assert.Equal(t, GenerationFailed, out[1].Error)
	})
}
