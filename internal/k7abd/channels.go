package k7abd

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mycodeplug/dzcb/internal/csvparser"
	"github.com/mycodeplug/dzcb/internal/models"
)

// requireColumn returns the value of a column that every row must have.
func requireColumn(row csvparser.Row, column string) (string, error) {
	v, ok := row.Get(column)
	if !ok {
		return "", fmt.Errorf("%w %q", ErrMissingColumn, column)
	}
	return v, nil
}

// optional returns the value of an optional column, or def when the column
// is absent or blank.
func optional(row csvparser.Row, column, def string) string {
	if v, ok := row.Get(column); ok && v != "" {
		return v
	}
	return def
}

// frequencies parses the RX Freq and TX Freq columns and derives the offset.
func frequencies(row csvparser.Row) (rx, offset float64, err error) {
	rxStr, err := requireColumn(row, "RX Freq")
	if err != nil {
		return 0, 0, err
	}
	txStr, err := requireColumn(row, "TX Freq")
	if err != nil {
		return 0, 0, err
	}
	rx, err = parseFrequency("RX Freq", rxStr)
	if err != nil {
		return 0, 0, err
	}
	tx, err := parseFrequency("TX Freq", txStr)
	if err != nil {
		return 0, 0, err
	}
	return rx, models.RoundOffset(rx, tx), nil
}

// =============================================================================
// ANALOG
// =============================================================================

// ParseAnalog reads an Analog__ table.
//
// REQUIRED COLUMNS: Zone, Channel Name, RX Freq, TX Freq
//
// OPTIONAL COLUMNS (default):
//   Power (High), Bandwidth (25), CTCSS Decode (Off), CTCSS Encode (Off),
//   TX Prohibit (Off), APRS RX (Off), APRS PTT Mode (Off),
//   APRS Report Type (Off), APRS Report Channel (1), APRS Mute (0),
//   APRS TX Path (0)
func (p *Parser) ParseAnalog(table *csvparser.Table) *ZoneMap {
	zones := NewZoneMap()
	for _, row := range table.Rows {
		zone, ch, err := parseAnalogRow(row)
		if err != nil {
			p.warn(&RowError{Source: table.Source, Row: row.Number, Name: row.GetOr("Channel Name", ""), Err: err})
			continue
		}
		zones.Append(zone, ch)
	}
	p.log.Debug("Loaded analog channels", zap.String("file", table.Source), zap.Int("count", zones.ChannelCount()))
	return zones
}

func parseAnalogRow(row csvparser.Row) (string, models.Channel, error) {
	zoneFull, err := requireColumn(row, "Zone")
	if err != nil {
		return "", models.Channel{}, err
	}
	name, err := requireColumn(row, "Channel Name")
	if err != nil {
		return "", models.Channel{}, err
	}
	rx, offset, err := frequencies(row)
	if err != nil {
		return "", models.Channel{}, err
	}
	zone, code := splitZone(zoneFull)

	defaults := models.DefaultAPRS()
	ch := models.NewAnalogChannel(name, rx, offset)
	ch.Code = code
	ch.Power = models.ParsePower(optional(row, "Power", "High"))
	ch.RxOnly = parseBool(optional(row, "TX Prohibit", "Off"))
	ch.Analog.Bandwidth = models.ParseBandwidth(optional(row, "Bandwidth", "25"))
	if tone := optional(row, "CTCSS Decode", "Off"); !isOff(tone) {
		ch.Analog.ToneDecode = tone
	}
	if tone := optional(row, "CTCSS Encode", "Off"); !isOff(tone) {
		ch.Analog.ToneEncode = tone
	}
	ch.Analog.APRS = models.APRS{
		RX:            optional(row, "APRS RX", defaults.RX),
		PTTMode:       optional(row, "APRS PTT Mode", defaults.PTTMode),
		ReportType:    optional(row, "APRS Report Type", defaults.ReportType),
		ReportChannel: optional(row, "APRS Report Channel", defaults.ReportChannel),
		Mute:          optional(row, "APRS Mute", defaults.Mute),
		TxPath:        optional(row, "APRS TX Path", defaults.TxPath),
	}
	return zone, ch, nil
}

// =============================================================================
// DIGITAL OTHERS
// =============================================================================

// ParseDigitalOthers reads a Digital-Others__ table: DMR channels bound to a
// single talkgroup, typically simplex and hotspot channels.
//
// REQUIRED COLUMNS: Channel Name, RX Freq, TX Freq, Talk Group
//
// OPTIONAL COLUMNS (default):
//   Zone Name or Zone (""), Color Code (1), TimeSlot (1), Power (High)
func (p *Parser) ParseDigitalOthers(table *csvparser.Table) *ZoneMap {
	zones := NewZoneMap()
	for _, row := range table.Rows {
		zone, ch, err := p.parseDigitalRow(row)
		if err != nil {
			p.warn(&RowError{Source: table.Source, Row: row.Number, Name: row.GetOr("Channel Name", ""), Err: err})
			continue
		}
		zones.Append(zone, ch)
	}
	p.log.Debug("Loaded digital channels", zap.String("file", table.Source), zap.Int("count", zones.ChannelCount()))
	return zones
}

func (p *Parser) parseDigitalRow(row csvparser.Row) (string, models.Channel, error) {
	zoneFull, _ := row.Lookup("Zone Name", "Zone")
	zone, code := splitZone(zoneFull)

	name, err := requireColumn(row, "Channel Name")
	if err != nil {
		return "", models.Channel{}, err
	}
	rx, offset, err := frequencies(row)
	if err != nil {
		return "", models.Channel{}, err
	}
	tgName, err := requireColumn(row, "Talk Group")
	if err != nil {
		return "", models.Channel{}, err
	}
	colorCode, err := strconv.Atoi(optional(row, "Color Code", "1"))
	if err != nil {
		return "", models.Channel{}, fmt.Errorf("invalid Color Code: %w", err)
	}
	ts, err := models.ParseTimeslot(optional(row, "TimeSlot", "1"))
	if err != nil {
		return "", models.Channel{}, err
	}
	tg, err := p.lookupTalkgroup(tgName, ts)
	if err != nil {
		return "", models.Channel{}, err
	}

	ch := models.NewDigitalChannel(name, rx, offset)
	ch.Code = code
	ch.Power = models.ParsePower(optional(row, "Power", "High"))
	ch.Digital.ColorCode = colorCode
	ch.Digital.Talkgroup = &tg
	return zone, ch, nil
}
