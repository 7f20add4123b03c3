// =============================================================================
// dzcb - Domain Model: Channels
// =============================================================================
//
// A Channel is a tagged union of the two channel variants the radios know
// about. Fields shared by both variants live directly on Channel; variant
// specific fields live in the Analog and Digital sub-structures, and only the
// one selected by Kind is meaningful.
//
// SHORT NAMES:
//   The radios display and reference channels by a name of at most 16
//   characters. ShortName truncates the full name and, when DedupKey > 0,
//   appends " N" while still fitting in 16 characters:
//
//     Name: "Seattle Downtown Repeater", DedupKey: 0 -> "Seattle Downtown"
//     Name: "Seattle Downtown Repeater", DedupKey: 2 -> "Seattle Downto 2"
//
// =============================================================================

package models

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// NameMax is the maximum channel name length supported by the radios.
const NameMax = 16

// ChannelKind selects the Channel variant.
type ChannelKind int

const (
	Analog ChannelKind = iota
	Digital
)

func (k ChannelKind) String() string {
	if k == Digital {
		return "Digital"
	}
	return "Analog"
}

// Power is a transmit power level.
type Power string

const (
	PowerLow    Power = "Low"
	PowerMedium Power = "Medium"
	PowerHigh   Power = "High"
	PowerTurbo  Power = "Turbo"
)

// ParsePower parses a power level, case-insensitively. Anything unknown,
// including an empty value, is High.
func ParsePower(s string) Power {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return PowerLow
	case "MED", "MEDIUM", "MID":
		return PowerMedium
	case "TURBO":
		return PowerTurbo
	default:
		return PowerHigh
	}
}

// Bandwidth is an analog channel bandwidth in kHz.
type Bandwidth string

const (
	Bandwidth12_5 Bandwidth = "12.5"
	Bandwidth20   Bandwidth = "20"
	Bandwidth25   Bandwidth = "25"
)

// ParseBandwidth accepts "12.5", "20" or "25" with or without a trailing K.
// Anything else is 25.
func ParseBandwidth(s string) Bandwidth {
	s = strings.TrimRight(strings.TrimSpace(s), "Kk")
	switch s {
	case "12.5":
		return Bandwidth12_5
	case "20":
		return Bandwidth20
	default:
		return Bandwidth25
	}
}

// APRS holds analog APRS settings. They are passed through to the radio
// without interpretation.
type APRS struct {
	RX            string
	PTTMode       string
	ReportType    string
	ReportChannel string
	Mute          string
	TxPath        string
}

// DefaultAPRS returns the APRS settings used when an input row omits them.
func DefaultAPRS() APRS {
	return APRS{
		RX:            "Off",
		PTTMode:       "Off",
		ReportType:    "Off",
		ReportChannel: "1",
		Mute:          "0",
		TxPath:        "0",
	}
}

// AnalogFields are the fields specific to FM channels.
type AnalogFields struct {
	Bandwidth Bandwidth

	// ToneDecode and ToneEncode are CTCSS/DCS tones; empty means none.
	ToneDecode string
	ToneEncode string

	APRS APRS
}

// DigitalFields are the fields specific to DMR channels.
type DigitalFields struct {
	ColorCode int

	// Talkgroup is the transmit contact of a finalized channel.
	Talkgroup *Talkgroup

	// StaticTalkgroups is only set on repeater templates, before the
	// assembler expands them into one channel per talkgroup.
	StaticTalkgroups []Talkgroup

	GroupList *GroupList
}

// Channel is an analog or digital channel.
type Channel struct {
	Kind ChannelKind

	Name string

	// Frequency is the receive frequency in MHz.
	Frequency float64

	// Offset is added to Frequency to get the transmit frequency.
	Offset float64

	Power  Power
	RxOnly bool

	// Code is the optional short zone code ("Zone;CODE" in the inputs).
	Code string

	DedupKey int

	// ScanList is the name of the scan list this channel belongs to.
	ScanList string

	Analog  AnalogFields
	Digital DigitalFields
}

// NewAnalogChannel returns an analog channel with default settings.
func NewAnalogChannel(name string, frequency, offset float64) Channel {
	return Channel{
		Kind:      Analog,
		Name:      name,
		Frequency: frequency,
		Offset:    offset,
		Power:     PowerHigh,
		Analog: AnalogFields{
			Bandwidth: Bandwidth25,
			APRS:      DefaultAPRS(),
		},
	}
}

// NewDigitalChannel returns a digital channel with default settings.
func NewDigitalChannel(name string, frequency, offset float64) Channel {
	return Channel{
		Kind:      Digital,
		Name:      name,
		Frequency: frequency,
		Offset:    offset,
		Power:     PowerHigh,
		Digital:   DigitalFields{ColorCode: 1},
	}
}

// RoundOffset returns tx-rx rounded to one decimal place.
func RoundOffset(rx, tx float64) float64 {
	return math.Round((tx-rx)*10) / 10
}

// IsAnalog reports whether c is an analog channel.
func (c Channel) IsAnalog() bool { return c.Kind == Analog }

// IsDigital reports whether c is a digital channel.
func (c Channel) IsDigital() bool { return c.Kind == Digital }

// IsTemplate reports whether c is an unexpanded repeater template.
func (c Channel) IsTemplate() bool {
	return c.Kind == Digital && len(c.Digital.StaticTalkgroups) > 0
}

// TxFrequency returns the transmit frequency in MHz.
func (c Channel) TxFrequency() float64 {
	return c.Frequency + c.Offset
}

// HasOffset reports whether the channel transmits on a different frequency.
func (c Channel) HasOffset() bool {
	return math.Abs(c.Offset) > 0
}

// ShortName returns the name as shown on the radio.
func (c Channel) ShortName() string {
	name := truncate(c.Name, NameMax)
	if c.DedupKey > 0 {
		suffix := fmt.Sprintf(" %d", c.DedupKey)
		name = truncate(name, NameMax-len(suffix)) + suffix
	}
	return name
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// WithDedupKey returns a copy of c with the given dedup key.
func (c Channel) WithDedupKey(key int) Channel {
	c.DedupKey = key
	return c
}

// WithScanList returns a copy of c that references the named scan list.
func (c Channel) WithScanList(name string) Channel {
	c.ScanList = name
	return c
}

// WithTalkgroup returns a concrete channel derived from a repeater template:
// the talkgroup and group list are set, the static talkgroups are cleared,
// and the talkgroup name is appended to the channel name.
func (c Channel) WithTalkgroup(tg Talkgroup, gl *GroupList) Channel {
	c.Name = c.Name + " " + tg.Name
	c.Digital.Talkgroup = &tg
	c.Digital.GroupList = gl
	c.Digital.StaticTalkgroups = nil
	return c
}

// Equal reports whether two channels hold the same values.
func (c Channel) Equal(o Channel) bool {
	if c.Kind != o.Kind ||
		c.Name != o.Name ||
		c.Frequency != o.Frequency ||
		c.Offset != o.Offset ||
		c.Power != o.Power ||
		c.RxOnly != o.RxOnly ||
		c.Code != o.Code ||
		c.DedupKey != o.DedupKey ||
		c.ScanList != o.ScanList ||
		c.Analog != o.Analog {
		return false
	}
	a, b := c.Digital, o.Digital
	if a.ColorCode != b.ColorCode || !slices.Equal(a.StaticTalkgroups, b.StaticTalkgroups) {
		return false
	}
	if (a.Talkgroup == nil) != (b.Talkgroup == nil) {
		return false
	}
	if a.Talkgroup != nil && *a.Talkgroup != *b.Talkgroup {
		return false
	}
	return a.GroupList.Equal(b.GroupList)
}
