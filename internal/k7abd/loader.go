package k7abd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mycodeplug/dzcb/internal/csvparser"
	"github.com/mycodeplug/dzcb/internal/models"
	"github.com/mycodeplug/dzcb/internal/workbook"
	"github.com/mycodeplug/dzcb/pkg/utils"
)

// ErrInputDir is returned by Load when the input directory is unusable.
var ErrInputDir = errors.New("invalid input directory")

// =============================================================================
// CATEGORIES
// =============================================================================

// Category is one of the four K7ABD input file kinds.
type Category int

const (
	CategoryTalkgroups Category = iota
	CategoryAnalog
	CategoryDigitalOthers
	CategoryDigitalRepeaters
)

// Categories lists the input categories in the order they are loaded.
var Categories = []Category{
	CategoryTalkgroups,
	CategoryAnalog,
	CategoryDigitalOthers,
	CategoryDigitalRepeaters,
}

// Prefix returns the file name prefix of the category.
func (c Category) Prefix() string {
	switch c {
	case CategoryTalkgroups:
		return "Talkgroups__"
	case CategoryAnalog:
		return "Analog__"
	case CategoryDigitalOthers:
		return "Digital-Others__"
	case CategoryDigitalRepeaters:
		return "Digital-Repeaters__"
	}
	return ""
}

func (c Category) String() string {
	return strings.TrimSuffix(c.Prefix(), "__")
}

// =============================================================================
// SINGLE FILE ENTRY POINTS
// =============================================================================

// ParseTalkgroupsCSV reads a talkgroup file from r.
func (p *Parser) ParseTalkgroupsCSV(r io.Reader, source string) (Talkgroups, error) {
	records, err := csvparser.ReadRecords(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return p.ParseTalkgroups(records, source), nil
}

// ParseAnalogCSV reads an analog channel file from r.
func (p *Parser) ParseAnalogCSV(r io.Reader, source string) (*ZoneMap, error) {
	table, err := csvparser.ParseTable(r, source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return p.ParseAnalog(table), nil
}

// ParseDigitalOthersCSV reads a digital channel file from r.
func (p *Parser) ParseDigitalOthersCSV(r io.Reader, source string) (*ZoneMap, error) {
	table, err := csvparser.ParseTable(r, source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return p.ParseDigitalOthers(table), nil
}

// ParseDigitalRepeatersCSV reads a repeater file from r.
func (p *Parser) ParseDigitalRepeatersCSV(r io.Reader, source string) (*ZoneMap, error) {
	table, err := csvparser.ParseTable(r, source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return p.ParseDigitalRepeaters(table), nil
}

// =============================================================================
// DIRECTORY LOADING
// =============================================================================

// Input is everything read from one input directory.
type Input struct {
	Talkgroups Talkgroups

	// RepeaterZones holds the repeater templates, keyed by zone name.
	RepeaterZones *ZoneMap

	// OtherZones holds analog and digital-others channels, keyed by zone.
	OtherZones *ZoneMap

	// Sources lists the files and workbook sheets read, in load order.
	Sources []string

	// Issues lists the rows that were dropped.
	Issues []*RowError
}

// source is one CSV file or workbook sheet of a category.
type source struct {
	// key orders sources within a category.
	key     string
	name    string
	records [][]string
}

// Load reads every K7ABD input in dir.
//
// For each category, CSV files named "<prefix>*.csv" and sheets named
// "<prefix>*" inside "*.xlsx" workbooks are read in name order. Talkgroup
// sources are consumed before any channel source.
//
// RETURNS:
//   - The parsed input. Dropped rows are reported in Input.Issues.
//   - An error wrapping ErrInputDir if dir is unusable, or an error if a
//     file cannot be read.
func Load(dir string, sortMode models.SortMode, log *zap.Logger) (*Input, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fm := utils.NewFileManager(dir, "")
	if err := fm.ValidateInputDir(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}

	sheets, err := readWorkbooks(fm, log)
	if err != nil {
		return nil, err
	}

	sources := make(map[Category][]source, len(Categories))
	for _, cat := range Categories {
		found, err := collectSources(fm, cat, sheets)
		if err != nil {
			return nil, err
		}
		sources[cat] = found
	}

	p := NewParser(log, sortMode)
	in := &Input{
		RepeaterZones: NewZoneMap(),
		OtherZones:    NewZoneMap(),
	}
	for _, cat := range Categories {
		for _, src := range sources[cat] {
			log.Info("Reading input", zap.String("category", cat.String()), zap.String("source", src.name))
			in.Sources = append(in.Sources, src.name)

			if cat == CategoryTalkgroups {
				p.ParseTalkgroups(src.records, src.name)
				continue
			}
			table := csvparser.NewTable(src.records, src.name)
			switch cat {
			case CategoryAnalog:
				in.OtherZones.Merge(p.ParseAnalog(table))
			case CategoryDigitalOthers:
				in.OtherZones.Merge(p.ParseDigitalOthers(table))
			case CategoryDigitalRepeaters:
				in.RepeaterZones.Merge(p.ParseDigitalRepeaters(table))
			}
		}
	}

	in.Talkgroups = p.Talkgroups()
	in.Issues = p.Issues()
	log.Debug("Loaded input directory",
		zap.String("dir", dir),
		zap.Int("sources", len(in.Sources)),
		zap.Int("talkgroups", len(in.Talkgroups)),
		zap.Int("repeater_zones", in.RepeaterZones.Len()),
		zap.Int("other_zones", in.OtherZones.Len()),
		zap.Int("skipped", len(in.Issues)),
	)
	return in, nil
}

// collectSources gathers the CSV files and workbook sheets of a category,
// sorted by name.
func collectSources(fm *utils.FileManager, cat Category, sheets []source) ([]source, error) {
	files, err := fm.DiscoverInputFiles(cat.Prefix() + "*.csv")
	if err != nil {
		return nil, err
	}

	var found []source
	for _, path := range files {
		records, err := readCSVFile(path)
		if err != nil {
			return nil, err
		}
		base := filepath.Base(path)
		found = append(found, source{
			key:     strings.TrimSuffix(base, filepath.Ext(base)),
			name:    base,
			records: records,
		})
	}
	for _, sheet := range sheets {
		if strings.HasPrefix(sheet.key, cat.Prefix()) {
			found = append(found, sheet)
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].key < found[j].key })
	return found, nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	records, err := csvparser.ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// readWorkbooks reads the sheets of every workbook in the input directory.
func readWorkbooks(fm *utils.FileManager, log *zap.Logger) ([]source, error) {
	books, err := fm.DiscoverInputFiles("*.xlsx")
	if err != nil {
		return nil, err
	}

	var sheets []source
	for _, path := range books {
		base := filepath.Base(path)
		// Lock files left behind by spreadsheet editors.
		if strings.HasPrefix(base, "~$") {
			continue
		}
		read, err := workbook.ReadSheets(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", base, err)
		}
		for _, sheet := range read {
			sheets = append(sheets, source{
				key:     sheet.Name,
				name:    base + ":" + sheet.Name,
				records: sheet.Rows,
			})
		}
		log.Debug("Read workbook", zap.String("file", base), zap.Int("sheets", len(read)))
	}
	return sheets, nil
}
