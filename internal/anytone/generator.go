// =============================================================================
// dzcb - Anytone CPS Generator
// =============================================================================
//
// Writes one directory per radio below the output directory:
//
//   <output>/878/TalkGroups.CSV
//   <output>/878/Channel.CSV
//   <output>/878/Zone.CSV
//   <output>/878/ScanList.CSV
//
// The CPS expects Windows line endings, so every file is written with CRLF.
// Radios are generated one after the other; when one fails, the files of the
// radios generated before it stay on disk.
//
// =============================================================================

package anytone

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mycodeplug/dzcb/internal/models"
)

// Output describes what was generated for one radio.
type Output struct {
	Radio *Radio

	// Dir is the radio's output directory.
	Dir string

	// Files are the written file paths, in table order.
	Files []string

	Tables []Table

	// Codeplug is the codeplug after filtering to the radio's bands.
	Codeplug models.Codeplug
}

// Contacts returns the number of talkgroup rows written.
func (o *Output) Contacts() int {
	for _, t := range o.Tables {
		if t.Name == TableTalkgroups {
			return len(t.Rows)
		}
	}
	return 0
}

// Generator writes CPS files for a codeplug.
type Generator struct {
	log *zap.Logger
}

// NewGenerator creates a Generator. A nil logger discards log output.
func NewGenerator(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log}
}

// Generate writes the codeplug for one radio to outDir/<radioID>.
//
// RETURNS:
//   - The generated output.
//   - An error wrapping ErrUnknownRadio for an unsupported id, or an error
//     if a directory or file cannot be written.
func (g *Generator) Generate(cp models.Codeplug, outDir, radioID string) (*Output, error) {
	radio, err := Lookup(radioID)
	if err != nil {
		return nil, err
	}
	log := g.log.With(zap.String("radio", radio.ID))
	log.Info("Generating codeplug", zap.String("name", radio.Name), zap.String("cps", radio.Version))

	filtered := radio.Filter(cp)
	if dropped := len(cp.Channels) - len(filtered.Channels); dropped > 0 {
		log.Info("Dropped channels outside radio bands", zap.Int("count", dropped))
	}

	tables, err := render(filtered, radio)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s codeplug: %w", radio.ID, err)
	}

	dir := filepath.Join(outDir, radio.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	out := &Output{Radio: radio, Dir: dir, Tables: tables, Codeplug: filtered}
	for _, table := range tables {
		path := filepath.Join(dir, table.FileName())
		if err := WriteCSV(path, table); err != nil {
			return nil, err
		}
		out.Files = append(out.Files, path)
		log.Info("Wrote file", zap.String("file", table.FileName()), zap.Int("rows", len(table.Rows)))
	}
	return out, nil
}

// GenerateAll generates every radio in order and stops at the first error.
func (g *Generator) GenerateAll(cp models.Codeplug, outDir string, radioIDs []string) ([]*Output, error) {
	outputs := make([]*Output, 0, len(radioIDs))
	for _, id := range radioIDs {
		out, err := g.Generate(cp, outDir, id)
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// WriteCSV writes a table with a header row and CRLF line endings.
func WriteCSV(path string, table Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.UseCRLF = true
	records := make([][]string, 0, len(table.Rows)+1)
	records = append(records, table.Header)
	records = append(records, table.Rows...)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return file.Close()
}
