package k7abd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mycodeplug/dzcb/internal/csvparser"
	"github.com/mycodeplug/dzcb/internal/models"
)

// repeaterColumns are the Digital-Repeaters__ columns that are not part of
// the talkgroup matrix.
var repeaterColumns = map[string]bool{
	"Zone Name":  true,
	"RX Freq":    true,
	"TX Freq":    true,
	"Power":      true,
	"Color Code": true,
	"Comment":    true,
}

// ParseDigitalRepeaters reads a Digital-Repeaters__ table.
//
// Each row describes one repeater and produces one template channel named
// after the zone. Every column besides Zone Name, RX Freq, TX Freq, Power,
// Color Code and Comment is a talkgroup name; its cell is "-" when the
// talkgroup is not carried, or the timeslot ("1" or "2") it is carried on.
//
//   Zone Name,RX Freq,TX Freq,Color Code,Local,Worldwide
//   KC0XYZ;XYZ,146.940,146.340,1,2,-
//
// A row with a blank or zero RX Freq is an unequipped repeater slot and is
// skipped without a warning.
func (p *Parser) ParseDigitalRepeaters(table *csvparser.Table) *ZoneMap {
	zones := NewZoneMap()
	for _, row := range table.Rows {
		zone, ch, ok := p.parseRepeaterRow(table, row)
		if !ok {
			continue
		}
		zones.Set(zone, ch)
	}
	p.log.Debug("Loaded repeaters", zap.String("file", table.Source), zap.Int("count", zones.Len()))
	return zones
}

func (p *Parser) parseRepeaterRow(table *csvparser.Table, row csvparser.Row) (string, models.Channel, bool) {
	fail := func(name string, err error) (string, models.Channel, bool) {
		p.warn(&RowError{Source: table.Source, Row: row.Number, Name: name, Err: err})
		return "", models.Channel{}, false
	}

	zoneFull, err := requireColumn(row, "Zone Name")
	if err != nil {
		return fail("", err)
	}
	zone, code := splitZone(zoneFull)

	rxStr, err := requireColumn(row, "RX Freq")
	if err != nil {
		return fail(zone, err)
	}
	if strings.TrimSpace(rxStr) == "" {
		p.log.Info("Skipping repeater with no frequency", zap.String("file", table.Source), zap.String("zone", zone))
		return "", models.Channel{}, false
	}
	rx, err := parseFrequency("RX Freq", rxStr)
	if err != nil {
		return fail(zone, err)
	}
	if rx == 0 {
		p.log.Info("Skipping repeater with no frequency", zap.String("file", table.Source), zap.String("zone", zone))
		return "", models.Channel{}, false
	}
	txStr, err := requireColumn(row, "TX Freq")
	if err != nil {
		return fail(zone, err)
	}
	tx, err := parseFrequency("TX Freq", txStr)
	if err != nil {
		return fail(zone, err)
	}
	colorCode, err := strconv.Atoi(optional(row, "Color Code", "1"))
	if err != nil {
		return fail(zone, fmt.Errorf("invalid Color Code: %w", err))
	}

	var static []models.Talkgroup
	for _, column := range table.Headers {
		if repeaterColumns[column] {
			continue
		}
		cell, ok := row.Get(column)
		if !ok || cell == "-" {
			continue
		}
		contact, known := p.talkgroups[column]
		if !known {
			p.warn(&RowError{
				Source: table.Source,
				Row:    row.Number,
				Name:   zone,
				Err:    fmt.Errorf("%w %q", ErrUnknownTalkgroup, column),
			})
			continue
		}
		ts, err := models.ParseTimeslot(cell)
		if err != nil {
			p.log.Info("Skipping talkgroup on repeater",
				zap.String("zone", zone), zap.String("talkgroup", column), zap.Error(err))
			continue
		}
		static = append(static, models.NewTalkgroup(contact, ts))
	}
	if p.sortMode == models.SortAlpha {
		sort.SliceStable(static, func(i, j int) bool { return static[i].Name < static[j].Name })
	}

	ch := models.NewDigitalChannel(zone, rx, models.RoundOffset(rx, tx))
	ch.Code = code
	ch.Power = models.ParsePower(optional(row, "Power", "High"))
	ch.Digital.ColorCode = colorCode
	ch.Digital.StaticTalkgroups = static
	return zone, ch, true
}
