package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycodeplug/dzcb/internal/anytone"
	"github.com/mycodeplug/dzcb/pkg/utils"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func inputDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"Talkgroups__a.csv":        "Local,2\n",
		"Analog__simplex.csv":      "Zone,Channel Name,RX Freq,TX Freq\nSimplex,2M Call,146.520,146.520\n",
		"Digital-Repeaters__r.csv": "Zone Name,RX Freq,TX Freq,Color Code,Local\nKC0XYZ,442.100,447.100,1,2\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestConvert(t *testing.T) {
	out := t.TempDir()
	stdout, err := execute(t, "convert", inputDir(t), out, "--radio", "890", "--summary")
	require.NoError(t, err)

	assert.Contains(t, stdout, "=== dzcb ===")
	assert.Contains(t, stdout, "Anytone 890")
	assert.FileExists(t, filepath.Join(out, "890", "Channel.CSV"))
	assert.NoDirExists(t, filepath.Join(out, "878"))

	summary, err := utils.ReadSummary(filepath.Join(out, utils.SummaryFileName))
	require.NoError(t, err)
	assert.Equal(t, Version, summary.Version)
	require.Len(t, summary.Radios, 1)
	assert.Equal(t, "890", summary.Radios[0].ID)
}

func TestConvertFlags(t *testing.T) {
	out := t.TempDir()
	_, err := execute(t, "convert", inputDir(t), out, "--radio", "878,890", "--sort", "repeaters-first", "--xlsx")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "878.xlsx"))
	assert.FileExists(t, filepath.Join(out, "890.xlsx"))
}

func TestConvertConfigFile(t *testing.T) {
	in, out := inputDir(t), t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "dzcb.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("input_dir: "+in+"\noutput_dir: "+out+"\nradios: [\"878\"]\n"), 0644))

	_, err := execute(t, "--config", cfgPath, "convert")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "878", "Zone.CSV"))
	assert.NoDirExists(t, filepath.Join(out, "890"))
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"convert"}},
		{"bad radio", []string{"convert", t.TempDir(), t.TempDir(), "--radio", "868"}},
		{"bad sort", []string{"convert", t.TempDir(), t.TempDir(), "--sort", "random"}},
		{"input dir does not exist", []string{"convert", filepath.Join(t.TempDir(), "nope"), t.TempDir()}},
		{"too many args", []string{"convert", "a", "b", "c"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			assert.Error(t, err)
		})
	}
}

func TestRadios(t *testing.T) {
	stdout, err := execute(t, "radios")
	require.NoError(t, err)
	for _, r := range anytone.Radios() {
		assert.Contains(t, stdout, r.Name)
	}
	assert.Contains(t, stdout, "136.000-174.000")
	assert.NotContains(t, stdout, "Channel.CSV")

	stdout, err = execute(t, "radios", "--fields")
	require.NoError(t, err)
	assert.Contains(t, stdout, "878 Channel.CSV (49 columns)")
	assert.Contains(t, stdout, "890 Channel.CSV (77 columns)")
	assert.Contains(t, stdout, "  Zone Hide \n")
}

func TestVersion(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Version:    "+Version)
}
