package anytone

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mycodeplug/dzcb/internal/models"
)

// ScanListMax is the number of channels an Anytone scan list can hold.
const ScanListMax = 50

// ErrUnknownRadio is returned for radio ids with no configuration.
var ErrUnknownRadio = errors.New("unknown radio")

// Key names a channel column whose name differs between radios.
type Key int

const (
	KeyBandwidth Key = iota
	KeyColorCode
	KeyContact
	KeyContactCallType
	KeyContactID
	KeyDMRMode
	KeyDuplex
	KeyThroughMode
	KeyAPRSRX
	KeyAPRSMute
	KeyAPRSTxPath
)

// Radio is the fixed configuration of one supported radio.
type Radio struct {
	// ID is the identifier used on the command line and as the output
	// directory name.
	ID      string
	Name    string
	Version string

	// ExpandMembers adds RX and TX frequency lists next to every zone and
	// scan list member list.
	ExpandMembers bool

	// Bands are the frequency ranges the hardware can tune.
	Bands []models.Band

	Talkgroups Schema
	Channels   Schema
	Zones      Schema
	ScanLists  Schema

	// Keys maps renamed channel columns to this radio's column names. A
	// missing key means the radio has no such column.
	Keys map[Key]string
}

// Column returns the radio's name for a renamed channel column.
func (r *Radio) Column(k Key) (string, bool) {
	name, ok := r.Keys[k]
	return name, ok && name != ""
}

// Filter returns the part of the codeplug this radio can tune.
func (r *Radio) Filter(cp models.Codeplug) models.Codeplug {
	return cp.FilterFrequencyRanges(r.Bands)
}

func (r *Radio) String() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.Version)
}

// =============================================================================
// SUPPORTED RADIOS
// =============================================================================

var radios = map[string]*Radio{
	"878": {
		ID:            "878",
		Name:          "Anytone 878UVii",
		Version:       "CPS 1.21",
		ExpandMembers: true,
		Bands:         []models.Band{models.VHFCommercial, models.UHFCommercial},
		Talkgroups:    talkgroupSchema,
		Channels:      channelSchema878,
		Zones:         zoneSchema878,
		ScanLists:     scanListSchema,
		Keys: map[Key]string{
			KeyBandwidth:       "Band Width",
			KeyColorCode:       "Color Code",
			KeyContact:         "Contact",
			KeyContactCallType: "Contact Call Type",
			KeyContactID:       "Contact TG/DMR ID",
			KeyDMRMode:         "DMR MODE",
			KeyDuplex:          "Simplex TDMA",
			KeyThroughMode:     "Through Mode",
			KeyAPRSRX:          "Digi APRS RX",
		},
	},
	"890": {
		ID:            "890",
		Name:          "Anytone 890",
		Version:       "Latest",
		ExpandMembers: true,
		Bands:         []models.Band{models.VHFCommercial, models.UHFCommercial},
		Talkgroups:    talkgroupSchema,
		Channels:      channelSchema890,
		Zones:         zoneSchema890,
		ScanLists:     scanListSchema,
		Keys: map[Key]string{
			KeyBandwidth:       "Bandwidth",
			KeyColorCode:       "RX Color Code",
			KeyContact:         "Contact/TG",
			KeyContactCallType: "Contact/TG Call Type",
			KeyContactID:       "Contact/TG TG/DMR ID",
			KeyDMRMode:         "DMR Mode",
			KeyDuplex:          "Digital Duplex",
			KeyAPRSRX:          "APRS RX",
			KeyAPRSMute:        "Ana APRS Mute",
			KeyAPRSTxPath:      "AnaAprsTxPath",
		},
	},
}

// RadioIDs returns the supported radio ids in ascending order.
func RadioIDs() []string {
	ids := make([]string, 0, len(radios))
	for id := range radios {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Radios returns the supported radios ordered by id.
func Radios() []*Radio {
	out := make([]*Radio, 0, len(radios))
	for _, id := range RadioIDs() {
		out = append(out, radios[id])
	}
	return out
}

// Lookup returns the configuration for a radio id.
func Lookup(id string) (*Radio, error) {
	r, ok := radios[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownRadio, id, strings.Join(RadioIDs(), ", "))
	}
	return r, nil
}

// ParseRadioIDs expands a radio selection: an id, "both" or "all" for every
// radio, or a comma separated list. Duplicates are dropped.
func ParseRadioIDs(selection ...string) ([]string, error) {
	var ids []string
	seen := make(map[string]bool)
	for _, s := range selection {
		for _, id := range strings.Split(s, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			var expanded []string
			switch strings.ToLower(id) {
			case "both", "all":
				expanded = RadioIDs()
			default:
				if _, err := Lookup(id); err != nil {
					return nil, err
				}
				expanded = []string{id}
			}
			for _, e := range expanded {
				if !seen[e] {
					seen[e] = true
					ids = append(ids, e)
				}
			}
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no radio selected", ErrUnknownRadio)
	}
	return ids, nil
}
