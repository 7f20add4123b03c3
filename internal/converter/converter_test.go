package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mycodeplug/dzcb/internal/config"
	"github.com/mycodeplug/dzcb/internal/k7abd"
	"github.com/mycodeplug/dzcb/pkg/utils"
)

func writeInputs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func sampleInputs(t *testing.T) string {
	return writeInputs(t, map[string]string{
		"Talkgroups__a.csv":        "Local,2\nWorldwide,91\n",
		"Analog__simplex.csv":      "Zone,Channel Name,RX Freq,TX Freq\nSimplex,2M Call,146.520,146.520\n",
		"Digital-Others__hs.csv":   "Zone Name,Channel Name,RX Freq,TX Freq,Talk Group\nSimplex,HS WW,433.450,438.450,Worldwide\n",
		"Digital-Repeaters__r.csv": "Zone Name,RX Freq,TX Freq,Color Code,Local,Worldwide\nKC0XYZ,146.940,146.340,1,2,1\n",
	})
}

func testConfig(in, out string) *config.Config {
	cfg := config.Default()
	cfg.InputDir = in
	cfg.OutputDir = out
	return cfg
}

func TestRunWritesEveryRadio(t *testing.T) {
	out := t.TempDir()
	cfg := testConfig(sampleInputs(t), out)
	cfg.WriteSummary = true
	cfg.WriteWorkbook = true

	result := New(cfg, nil, "test").Run()
	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Equal(t, 4, result.Stats.Sources)
	assert.Zero(t, result.Stats.SkippedRows)
	require.Len(t, result.Outputs, 2)

	for _, id := range []string{"878", "890"} {
		for _, name := range []string{"TalkGroups.CSV", "Channel.CSV", "Zone.CSV", "ScanList.CSV"} {
			assert.FileExists(t, filepath.Join(out, id, name))
		}
		assert.FileExists(t, filepath.Join(out, id+".xlsx"))
	}

	summary, err := utils.ReadSummary(result.SummaryFile)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, summary.RunID)
	assert.Equal(t, "test", summary.Version)
	assert.Equal(t, "alpha", summary.SortMode)
	assert.Equal(t, 4, summary.Channels)
	assert.Equal(t, 2, summary.Zones)
	require.Len(t, summary.Radios, 2)
	assert.Equal(t, "878", summary.Radios[0].ID)
	assert.Contains(t, summary.Radios[0].Files, "878/Channel.CSV")
	assert.Equal(t, 2, summary.Radios[0].Contacts)
}

func TestRunWorkbookMirrorsCSV(t *testing.T) {
	out := t.TempDir()
	cfg := testConfig(sampleInputs(t), out)
	cfg.Radios = []string{"878"}
	cfg.WriteWorkbook = true

	result := New(cfg, nil, "test").Run()
	require.NoError(t, result.Error)
	require.Equal(t, []string{filepath.Join(out, "878.xlsx")}, result.Workbooks)

	f, err := excelize.OpenFile(result.Workbooks[0])
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"TalkGroups", "Channel", "Zone", "ScanList"}, f.GetSheetList())

	rows, err := f.GetRows("Channel")
	require.NoError(t, err)
	assert.Equal(t, result.Outputs[0].Tables[1].Header, rows[0])
	assert.Len(t, rows, len(result.Outputs[0].Tables[1].Rows)+1)
}

func TestRunNoOptionalOutputs(t *testing.T) {
	out := t.TempDir()
	result := New(testConfig(sampleInputs(t), out), nil, "test").Run()
	require.NoError(t, result.Error)
	assert.Empty(t, result.SummaryFile)
	assert.Empty(t, result.Workbooks)
	assert.NoFileExists(t, filepath.Join(out, utils.SummaryFileName))
}

func TestRunTagsLogsWithRunID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	result := New(testConfig(sampleInputs(t), t.TempDir()), zap.New(core), "test").Run()
	require.NoError(t, result.Error)

	require.NotZero(t, logs.Len())
	for _, entry := range logs.All() {
		assert.Equal(t, result.RunID, entry.ContextMap()["run_id"], entry.Message)
	}
	assert.Equal(t, 1, logs.FilterMessage("Conversion complete").Len())
}

func TestRunInvalidInputDir(t *testing.T) {
	out := t.TempDir()
	result := New(testConfig(filepath.Join(out, "missing"), out), nil, "test").Run()
	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Error, k7abd.ErrInputDir)
}

func TestRunEmptyInputDir(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	out := t.TempDir()
	result := New(testConfig(t.TempDir(), out), zap.New(core), "test").Run()
	require.NoError(t, result.Error)
	assert.Equal(t, 1, logs.FilterMessage("No K7ABD input files found").Len())
	assert.FileExists(t, filepath.Join(out, "878", "Channel.CSV"))
}

// bigScanList produces a zone with more channels than a scan list holds.
func bigScanList(t *testing.T) string {
	var b strings.Builder
	b.WriteString("Zone,Channel Name,RX Freq,TX Freq\n")
	for i := 0; i < 51; i++ {
		freq := fmt.Sprintf("%.3f", 146.000+float64(i)*0.015)
		fmt.Fprintf(&b, "Big,Ch %02d,%s,%s\n", i, freq, freq)
	}
	return writeInputs(t, map[string]string{"Analog__big.csv": b.String()})
}

func TestRunValidationWarnings(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := testConfig(bigScanList(t), t.TempDir())

	result := New(cfg, zap.New(core), "test").Run()
	require.NoError(t, result.Error)
	assert.Equal(t, 2, result.Stats.ValidationWarnings)
	assert.Equal(t, 2, logs.FilterField(zap.String("rule", "members")).Len())
}

func TestRunStrictAbortsBeforeWriting(t *testing.T) {
	out := t.TempDir()
	cfg := testConfig(bigScanList(t), out)
	cfg.Strict = true

	result := New(cfg, nil, "test").Run()
	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Error, ErrValidation)
	assert.NoDirExists(t, filepath.Join(out, "878"))
}

func TestRunInvalidSettings(t *testing.T) {
	cfg := testConfig(t.TempDir(), t.TempDir())
	cfg.Sort = "random"
	assert.Error(t, New(cfg, nil, "test").Run().Error)

	cfg = testConfig(t.TempDir(), t.TempDir())
	cfg.Radios = []string{"868"}
	assert.Error(t, New(cfg, nil, "test").Run().Error)
}
