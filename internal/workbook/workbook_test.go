package workbook

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteThenReadSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codeplug.xlsx")
	sheets := []Sheet{
		{Name: "Talkgroups__BM", Rows: [][]string{{"Local", "2"}, {"Worldwide", "91"}}},
		{Name: "Analog__Home", Rows: [][]string{
			{"Zone", "Channel Name", "RX Freq", "TX Freq"},
			{"Home;HM", "Simplex 1", "146.520", "146.520"},
		}},
		{Name: "_notes", Rows: [][]string{{"ignored"}}},
	}
	require.NoError(t, Write(path, sheets))

	got, err := ReadSheets(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, sheets[0], got[0])
	assert.Equal(t, sheets[1], got[1])
}

func TestReadSheetsSkipsHidden(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hidden.xlsx")
	f := excelize.NewFile()
	_, err := f.NewSheet("Analog__Hidden")
	require.NoError(t, err)
	require.NoError(t, f.SetCellStr("Analog__Hidden", "A1", "Zone"))
	require.NoError(t, f.SetSheetVisible("Analog__Hidden", false))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := ReadSheets(path)
	require.NoError(t, err)
	for _, s := range got {
		assert.NotEqual(t, "Analog__Hidden", s.Name)
	}
}

func TestWriteRequiresSheets(t *testing.T) {
	assert.Error(t, Write(filepath.Join(t.TempDir(), "x.xlsx"), nil))
}

func TestReadSheetsMissingFile(t *testing.T) {
	_, err := ReadSheets(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}
