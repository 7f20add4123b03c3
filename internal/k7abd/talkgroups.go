package k7abd

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mycodeplug/dzcb/internal/models"
)

// ParseTalkgroups reads a headerless talkgroup file: one "name,dmrid" pair
// per line. A trailing P or p on the ID marks a private call contact.
//
// The talkgroups are merged into the parser's table, replacing earlier
// definitions with the same name, and the ones from this file are returned.
func (p *Parser) ParseTalkgroups(records [][]string, source string) Talkgroups {
	parsed := make(Talkgroups)
	for i, record := range records {
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		contact, err := parseTalkgroupRecord(record)
		if err != nil {
			name := ""
			if len(record) > 0 {
				name = strings.TrimSpace(record[0])
			}
			p.warn(&RowError{Source: source, Row: i + 1, Name: name, Err: err})
			continue
		}
		parsed[contact.Name] = contact
		p.talkgroups[contact.Name] = contact
	}
	p.log.Debug("Loaded talkgroups", zap.String("file", source), zap.Int("count", len(parsed)))
	return parsed
}

func parseTalkgroupRecord(record []string) (models.Contact, error) {
	if len(record) < 2 {
		return models.Contact{}, fmt.Errorf("expected name and DMR ID, got %d column(s)", len(record))
	}
	name := strings.TrimSpace(record[0])
	id := strings.TrimSpace(record[1])

	kind := models.GroupCall
	if strings.HasSuffix(strings.ToUpper(id), "P") {
		id = id[:len(id)-1]
		kind = models.PrivateCall
	}

	dmrid, err := strconv.Atoi(id)
	if err != nil {
		return models.Contact{}, fmt.Errorf("invalid DMR ID %q: %w", record[1], err)
	}
	return models.Contact{Name: name, DMRID: dmrid, Kind: kind}, nil
}
