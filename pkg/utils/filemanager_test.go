package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestDiscoverInputFilesSorted(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Analog__b.csv"))
	touch(t, filepath.Join(dir, "Analog__a.csv"))
	touch(t, filepath.Join(dir, "Talkgroups__x.csv"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Analog__dir.csv"), 0755))

	fm := NewFileManager(dir, "")
	files, err := fm.DiscoverInputFiles("Analog__*.csv")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "Analog__a.csv", filepath.Base(files[0]))
	assert.Equal(t, "Analog__b.csv", filepath.Base(files[1]))
}

func TestValidateInputDir(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, NewFileManager(dir, "").ValidateInputDir())

	assert.Error(t, NewFileManager(filepath.Join(dir, "missing"), "").ValidateInputDir())

	file := filepath.Join(dir, "file.csv")
	touch(t, file)
	assert.Error(t, NewFileManager(file, "").ValidateInputDir())
}

func TestEnsureOutputDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	fm := NewFileManager("", out)
	dir, err := fm.EnsureOutputDir("878")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "878"), dir)
	assert.True(t, FileExists(dir))
}

func TestSummaryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	summary := RunSummary{
		RunID:     NewRunID(),
		StartTime: start,
		EndTime:   start.Add(2 * time.Second),
		SortMode:  "alpha",
		Inputs:    []string{"Analog__a.csv"},
		Channels:  3,
		Radios: []RadioSummary{
			{ID: "878", Name: "Anytone 878UVii", Channels: 3, Files: []string{"878/Channel.CSV"}},
		},
	}

	path, err := WriteSummary(summary, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SummaryFileName), path)

	got, err := ReadSummary(path)
	require.NoError(t, err)
	assert.Equal(t, summary.RunID, got.RunID)
	assert.True(t, summary.StartTime.Equal(got.StartTime))
	assert.Equal(t, summary.Radios, got.Radios)

	_, err = uuid.Parse(got.RunID)
	assert.NoError(t, err)
}
