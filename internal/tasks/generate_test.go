package tasks

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotenko/labelforge/internal/batch"
	"github.com/dkotenko/labelforge/internal/database"
	"github.com/dkotenko/labelforge/internal/database/jobs"
	"github.com/dkotenko/labelforge/internal/session"
	"github.com/dkotenko/labelforge/internal/upc"
)

func setupJobsRepo(t *testing.T) (*jobs.Repository, func()) {
	t.Helper()
	dbPath := "./test_generate_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	return jobs.NewRepository(db.DB), func() {
		db.Close()
		os.Remove(dbPath)
	}
}

func fakeRunner() *batch.Runner {
	r := batch.NewRunner(10, 2, 0)
	r.Render = func(code string, snap batch.Snapshot) (*upc.Artifact, error) {
		return &upc.Artifact{Format: snap.Format, Data: []byte(code), WidthPx: snap.WidthPx, HeightPx: snap.HeightPx}, nil
	}
	return r
}

func TestGenerateBatchProcessor(t *testing.T) {
	t.Run("renders the session and records a job", func(t *testing.T) {
		repo, cleanup := setupJobsRepo(t)
		defer cleanup()

		store := session.NewStore(time.Hour)
		sess := store.GetOrCreate("sess-1")
		sess.SetEntries([]session.Entry{
			{Number: "012345678905", Valid: true},
			{Number: "bad", Valid: false, Error: "must be exactly 12 digits, got 3 characters"},
			{Number: "123456789012", Valid: true},
		})

		process := GenerateBatchProcessor(store, fakeRunner(), repo)
		err := process(context.Background(), GenerateBatchTask{
			SessionID: "sess-1",
			WidthPx:   260,
			HeightPx:  113,
			Format:    "png",
		})
		require.NoError(t, err)

		entries := sess.Entries()
		assert.NotNil(t, entries[0].Artifact)
		assert.Nil(t, entries[1].Artifact)
		assert.NotNil(t, entries[2].Artifact)

		progress, status := sess.Progress()
		assert.Equal(t, session.StatusIdle, status)
		assert.Equal(t, session.Progress{}, progress)

		recorded, err := repo.Recent(10)
		require.NoError(t, err)
		require.Len(t, recorded, 1)
		assert.Equal(t, "sess-1", recorded[0].SessionID)
		assert.Equal(t, 2, recorded[0].Total)
		assert.Equal(t, 2, recorded[0].Succeeded)
		assert.Equal(t, 0, recorded[0].Failed)
		assert.Equal(t, "png", recorded[0].Format)
	})

	t.Run("missing session is a no-op", func(t *testing.T) {
		store := session.NewStore(time.Hour)
		process := GenerateBatchProcessor(store, fakeRunner(), nil)

		err := process(context.Background(), GenerateBatchTask{SessionID: "gone", WidthPx: 260, HeightPx: 113, Format: "png"})
		assert.NoError(t, err)
	})

	t.Run("rejects an unknown format", func(t *testing.T) {
		store := session.NewStore(time.Hour)
		store.GetOrCreate("sess-2")
		process := GenerateBatchProcessor(store, fakeRunner(), nil)

		err := process(context.Background(), GenerateBatchTask{SessionID: "sess-2", WidthPx: 260, HeightPx: 113, Format: "gif"})
		assert.Error(t, err)
	})

	t.Run("refuses to start over a running pass", func(t *testing.T) {
		store := session.NewStore(time.Hour)
		sess := store.GetOrCreate("sess-3")
		require.NoError(t, sess.BeginPass())

		process := GenerateBatchProcessor(store, fakeRunner(), nil)
		err := process(context.Background(), GenerateBatchTask{SessionID: "sess-3", WidthPx: 260, HeightPx: 113, Format: "png"})
		assert.ErrorIs(t, err, session.ErrPassRunning)
	})
}
