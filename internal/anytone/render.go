package anytone

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mycodeplug/dzcb/internal/models"
)

// Table is one rendered CPS file.
type Table struct {
	// Name is the file name without extension, e.g. "Channel".
	Name   string
	Header []string
	Rows   [][]string
}

// FileName returns the name the CPS expects for the table's file.
func (t Table) FileName() string {
	return t.Name + ".CSV"
}

// Table names in the order they are written.
const (
	TableTalkgroups = "TalkGroups"
	TableChannels   = "Channel"
	TableZones      = "Zone"
	TableScanLists  = "ScanList"
)

// Render filters the codeplug to the radio's bands and lays it out as the
// four CPS tables: talkgroups, channels, zones and scan lists.
func Render(cp models.Codeplug, radio *Radio) ([]Table, error) {
	return render(radio.Filter(cp), radio)
}

func render(cp models.Codeplug, radio *Radio) ([]Table, error) {
	talkgroups := Table{Name: TableTalkgroups, Header: radio.Talkgroups.Header()}
	for i, c := range models.UniquifyContacts(cp.ContactList()) {
		row, err := radio.Talkgroups.Row(talkgroupValues(i, c))
		if err != nil {
			return nil, fmt.Errorf("talkgroup %q: %w", c.Name, err)
		}
		talkgroups.Rows = append(talkgroups.Rows, row)
	}

	channels := Table{Name: TableChannels, Header: radio.Channels.Header()}
	for i, ch := range cp.Channels {
		row, err := radio.Channels.Row(channelValues(i, ch, radio))
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w", ch.ShortName(), err)
		}
		channels.Rows = append(channels.Rows, row)
	}

	zones := Table{Name: TableZones, Header: radio.Zones.Header()}
	for i, z := range cp.Zones {
		row, err := radio.Zones.Row(zoneValues(i, z, radio.ExpandMembers))
		if err != nil {
			return nil, fmt.Errorf("zone %q: %w", z.Name, err)
		}
		zones.Rows = append(zones.Rows, row)
	}

	scanlists := Table{Name: TableScanLists, Header: radio.ScanLists.Header()}
	for i, s := range cp.ScanLists {
		row, err := radio.ScanLists.Row(scanListValues(i, s, radio.ExpandMembers))
		if err != nil {
			return nil, fmt.Errorf("scan list %q: %w", s.Name, err)
		}
		scanlists.Rows = append(scanlists.Rows, row)
	}

	return []Table{talkgroups, channels, zones, scanlists}, nil
}

// =============================================================================
// ROW VALUES
// =============================================================================

func formatFrequency(mhz float64) string {
	return strconv.FormatFloat(mhz, 'f', 5, 64)
}

func index(i int) string {
	return strconv.Itoa(i + 1)
}

func onOff(b bool) string {
	if b {
		return on
	}
	return off
}

func talkgroupValues(i int, c models.Contact) map[string]string {
	return map[string]string{
		"No.":        index(i),
		"Radio ID":   strconv.Itoa(c.DMRID),
		"Name":       c.Name,
		"Call Type":  c.CallType(),
		"Call Alert": none,
	}
}

func channelValues(i int, ch models.Channel, radio *Radio) map[string]string {
	v := map[string]string{
		"No.":                index(i),
		"Channel Name":       ch.ShortName(),
		"Receive Frequency":  formatFrequency(ch.Frequency),
		"Transmit Frequency": formatFrequency(ch.TxFrequency()),
		"Transmit Power":     string(ch.Power),
		"PTT Prohibit":       onOff(ch.RxOnly),
		"Scan List":          none,
	}
	if ch.ScanList != "" {
		v["Scan List"] = ch.ScanList
	}
	set := func(k Key, value string) {
		if col, ok := radio.Column(k); ok {
			v[col] = value
		}
	}

	switch ch.Kind {
	case models.Analog:
		a := ch.Analog
		v["Channel Type"] = "A-Analog"
		set(KeyBandwidth, string(a.Bandwidth)+"K")
		v["CTCSS/DCS Decode"] = off
		v["CTCSS/DCS Encode"] = off
		v["Squelch Mode"] = "Carrier"
		if a.ToneDecode != "" {
			v["CTCSS/DCS Decode"] = a.ToneDecode
			v["Squelch Mode"] = "CTCSS/DCS"
		}
		if a.ToneEncode != "" {
			v["CTCSS/DCS Encode"] = a.ToneEncode
		}
		v["Busy Lock/TX Permit"] = off
		set(KeyAPRSRX, a.APRS.RX)
		v["Analog APRS PTT Mode"] = a.APRS.PTTMode
		v["Digital APRS PTT Mode"] = off
		v["APRS Report Type"] = a.APRS.ReportType
		v["Digital APRS Report Channel"] = a.APRS.ReportChannel
		set(KeyAPRSMute, a.APRS.Mute)
		set(KeyAPRSTxPath, a.APRS.TxPath)

	case models.Digital:
		d := ch.Digital
		v["Channel Type"] = "D-Digital"
		set(KeyBandwidth, string(models.Bandwidth12_5)+"K")
		set(KeyColorCode, strconv.Itoa(d.ColorCode))
		if ch.HasOffset() {
			v["Busy Lock/TX Permit"] = "Same Color Code"
			set(KeyDMRMode, "1")
		} else {
			v["Busy Lock/TX Permit"] = "Always"
			set(KeyDMRMode, "0")
		}
		set(KeyDuplex, onOff(!ch.HasOffset()))
		set(KeyThroughMode, onOff(!ch.HasOffset()))
		if tg := d.Talkgroup; tg != nil {
			set(KeyContact, tg.Name)
			set(KeyContactCallType, tg.CallType())
			set(KeyContactID, strconv.Itoa(tg.DMRID))
			v["Slot"] = strconv.Itoa(int(tg.Timeslot))
		}
		if d.GroupList != nil {
			v["Receive Group List"] = d.GroupList.Name
		}
	}
	return v
}

// memberValues formats a member list column, plus its RX and TX frequency
// columns when expand is set.
func memberValues(v map[string]string, column string, members []models.Channel, expand bool) {
	names := make([]string, len(members))
	rx := make([]string, len(members))
	tx := make([]string, len(members))
	for i, ch := range members {
		names[i] = ch.ShortName()
		rx[i] = formatFrequency(ch.Frequency)
		tx[i] = formatFrequency(ch.TxFrequency())
	}
	v[column] = strings.Join(names, "|")
	if expand {
		v[column+" RX Frequency"] = strings.Join(rx, "|")
		v[column+" TX Frequency"] = strings.Join(tx, "|")
	}
}

func zoneValues(i int, z models.Zone, expand bool) map[string]string {
	v := map[string]string{
		"No.":       index(i),
		"Zone Name": z.Name,
	}
	members := z.UniqueChannels()
	memberValues(v, "Zone Channel Member", members, expand)
	if len(members) > 0 {
		memberValues(v, "A Channel", members[:1], expand)
		memberValues(v, "B Channel", members[:1], expand)
	}
	return v
}

func scanListValues(i int, s models.ScanList, expand bool) map[string]string {
	v := map[string]string{
		"No.":            index(i),
		"Scan List Name": s.Name,
	}
	members := s.UniqueChannels()
	if len(members) > ScanListMax {
		members = members[:ScanListMax]
	}
	memberValues(v, "Scan Channel Member", members, expand)
	return v
}
