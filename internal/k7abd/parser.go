// =============================================================================
// dzcb - K7ABD Input Parser
// =============================================================================
//
// This module interprets the four K7ABD input categories:
//
//   | Category            | Header | One row is                        |
//   |---------------------|--------|-----------------------------------|
//   | Talkgroups__*       | no     | talkgroup name, DMR ID[P]         |
//   | Analog__*           | yes    | one FM channel                    |
//   | Digital-Others__*   | yes    | one DMR channel with one talkgroup|
//   | Digital-Repeaters__*| yes    | one repeater + talkgroup matrix   |
//
// ERROR HANDLING:
//   A row that cannot be interpreted is logged as a warning and dropped; the
//   rest of the file is still parsed. Dropped rows are also kept on the
//   Parser as RowErrors so callers can report them.
//
// ORDERING:
//   Talkgroup files must be parsed before any channel file, because channel
//   rows reference talkgroups by name.
//
// =============================================================================

package k7abd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mycodeplug/dzcb/internal/models"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrMissingColumn is reported when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrUnknownTalkgroup is reported when a row references a talkgroup
	// that no talkgroup file defines.
	ErrUnknownTalkgroup = errors.New("unknown talkgroup")
)

// RowError describes one dropped row (or ignored cell) of an input file.
type RowError struct {
	// Source is the file or sheet name.
	Source string

	// Row is the 1-based row number within the source.
	Row int

	// Name identifies the channel, repeater or talkgroup, if known.
	Name string

	Err error
}

func (e *RowError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s row %d (%s): %v", e.Source, e.Row, e.Name, e.Err)
	}
	return fmt.Sprintf("%s row %d: %v", e.Source, e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// =============================================================================
// PARSER
// =============================================================================

// Talkgroups maps talkgroup names to contacts.
type Talkgroups map[string]models.Contact

// Parser holds the state of one conversion run: the talkgroup table
// accumulated so far and the rows that were dropped.
type Parser struct {
	log        *zap.Logger
	sortMode   models.SortMode
	talkgroups Talkgroups
	issues     []*RowError
}

// NewParser creates a Parser. A nil logger discards log output.
func NewParser(log *zap.Logger, sortMode models.SortMode) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{
		log:        log,
		sortMode:   sortMode,
		talkgroups: make(Talkgroups),
	}
}

// Talkgroups returns a copy of the talkgroup table parsed so far.
func (p *Parser) Talkgroups() Talkgroups {
	out := make(Talkgroups, len(p.talkgroups))
	for k, v := range p.talkgroups {
		out[k] = v
	}
	return out
}

// Issues returns every row error recorded so far.
func (p *Parser) Issues() []*RowError {
	return append([]*RowError(nil), p.issues...)
}

// warn logs and records a row error.
func (p *Parser) warn(e *RowError) {
	p.issues = append(p.issues, e)
	p.log.Warn("Skipping input",
		zap.String("file", e.Source),
		zap.Int("row", e.Row),
		zap.String("name", e.Name),
		zap.Error(e.Err),
	)
}

// lookupTalkgroup resolves a talkgroup name on a timeslot.
func (p *Parser) lookupTalkgroup(name string, ts models.Timeslot) (models.Talkgroup, error) {
	contact, ok := p.talkgroups[name]
	if !ok {
		return models.Talkgroup{}, fmt.Errorf("%w %q", ErrUnknownTalkgroup, name)
	}
	return models.NewTalkgroup(contact, ts), nil
}

// =============================================================================
// FIELD HELPERS
// =============================================================================

// splitZone splits "Zone Name;CODE" into name and code.
func splitZone(s string) (string, string) {
	name, code, _ := strings.Cut(s, ";")
	return strings.TrimSpace(name), strings.TrimSpace(code)
}

// parseFrequency parses a frequency in MHz.
func parseFrequency(column, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", column, value, err)
	}
	return f, nil
}

// parseBool accepts the usual spreadsheet spellings of "true".
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "true", "1":
		return true
	}
	return false
}

// isOff reports whether a tone column means "no tone".
func isOff(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "off")
}
