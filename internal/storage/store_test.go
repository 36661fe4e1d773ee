package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/sim"
	"github.com/san-kum/warpfield/internal/starfield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T) (starfield.Config, *sim.Result) {
	t.Helper()
	fc := starfield.DefaultConfig()
	fc.Stars = 4
	fc.Seed = 42
	res, err := sim.New().Run(context.Background(), fc, sim.Config{
		Frames:      10,
		SampleEvery: 5,
		Input:       hal.Fixed(5),
	})
	require.NoError(t, err)
	res.Metrics["recycle_rate"] = 0.5
	return fc, res
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	fc, res := record(t)

	runID, err := st.Save(NewMetadata("test", fc, 5, 5, res), res.Snapshots)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "test_"))

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, uint64(42), meta.Seed)
	assert.Equal(t, 4, meta.Stars)
	assert.Equal(t, 10, meta.Frames)
	assert.Equal(t, "signed", meta.Recycle)
	assert.Equal(t, 0.5, meta.Metrics["recycle_rate"])
	assert.Equal(t, res.Stats, meta.Stats)

	snaps, err := st.LoadSnapshots(runID)
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	for i, snap := range snaps {
		assert.Equal(t, res.Snapshots[i].Frame, snap.Frame)
		assert.Equal(t, res.Snapshots[i].Stars, snap.Stars)
	}
}

func TestStoreUniqueIDs(t *testing.T) {
	st := New(t.TempDir())
	fc, res := record(t)
	meta := NewMetadata("same", fc, 5, 5, res)

	a, err := st.Save(meta, res.Snapshots)
	require.NoError(t, err)
	b, err := st.Save(meta, res.Snapshots)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	fc, res := record(t)
	_, err = st.Save(NewMetadata("one", fc, 5, 5, res), res.Snapshots)
	require.NoError(t, err)
	_, err = st.Save(NewMetadata("two", fc, 5, 5, res), res.Snapshots)
	require.NoError(t, err)

	// stray entries are skipped
	require.NoError(t, os.Mkdir(filepath.Join(dir, "junk"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "one", runs[0].Name)
	assert.Equal(t, "two", runs[1].Name)
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())

	_, err := st.Load("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.LoadSnapshots("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, st.ExportCSV("nope", &bytes.Buffer{}), ErrNotFound)
}

func TestStoreExportCSV(t *testing.T) {
	st := New(t.TempDir())
	fc, res := record(t)
	runID, err := st.Save(NewMetadata("csv", fc, 5, 5, res), res.Snapshots)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, st.ExportCSV(runID, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "frame,star,x,y,z,pz", lines[0])
	// three snapshots of four stars
	assert.Len(t, lines, 1+3*4)
	assert.True(t, strings.HasPrefix(lines[1], "0,0,"))
}

func TestStoreEmptySnapshots(t *testing.T) {
	st := New(t.TempDir())
	fc, res := record(t)
	runID, err := st.Save(NewMetadata("bare", fc, 5, 0, res), nil)
	require.NoError(t, err)

	snaps, err := st.LoadSnapshots(runID)
	require.NoError(t, err)
	assert.Empty(t, snaps)
}
