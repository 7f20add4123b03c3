// =============================================================================
// dzcb - Domain Model: Codeplug
// =============================================================================
//
// The Codeplug is the root artifact produced by the assembler and consumed by
// the output generator. It is never modified after assembly; filtering
// returns a new Codeplug.
//
// =============================================================================

package models

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SORT MODES
// =============================================================================

// SortMode controls zone and channel ordering.
type SortMode string

const (
	// SortAlpha merges same-named zones and sorts everything A-Z.
	SortAlpha SortMode = "alpha"

	// SortRepeatersFirst keeps file order, digital repeater zones first.
	SortRepeatersFirst SortMode = "repeaters-first"

	// SortAnalogFirst keeps file order, analog and digital-others zones first.
	SortAnalogFirst SortMode = "analog-first"
)

// ErrInvalidSortMode is returned by ParseSortMode for unknown modes.
var ErrInvalidSortMode = errors.New("invalid sort mode")

// SortModes lists the accepted sort modes.
func SortModes() []SortMode {
	return []SortMode{SortAlpha, SortRepeatersFirst, SortAnalogFirst}
}

// ParseSortMode validates a sort mode name.
func ParseSortMode(s string) (SortMode, error) {
	mode := SortMode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range SortModes() {
		if m == mode {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: alpha, repeaters-first, analog-first)", ErrInvalidSortMode, s)
}

// =============================================================================
// FREQUENCY BANDS
// =============================================================================

// Band is an inclusive frequency range in MHz.
type Band struct {
	Low  float64
	High float64
}

// Contains reports whether freq lies within the band.
func (b Band) Contains(freq float64) bool {
	return freq >= b.Low && freq <= b.High
}

// Named frequency ranges.
var (
	VHFCommercial = Band{Low: 136.0, High: 174.0}
	UHFCommercial = Band{Low: 400.0, High: 480.0}
	Amateur220    = Band{Low: 219.0, High: 225.0}
)

// FrequencyRanges maps range names to bands.
var FrequencyRanges = map[string]Band{
	"VHF_COMMERCIAL": VHFCommercial,
	"UHF_COMMERCIAL": UHFCommercial,
	"AMATEUR_220":    Amateur220,
}

// IsFrequencyInRange reports whether freq lies within the named range.
// Unknown range names contain nothing.
func IsFrequencyInRange(freq float64, rangeName string) bool {
	band, ok := FrequencyRanges[rangeName]
	return ok && band.Contains(freq)
}

// =============================================================================
// CODEPLUG
// =============================================================================

// Codeplug is the complete set of programmed radio data.
//
// Contacts holds the talkgroups referenced by channels; Talkgroup embeds
// Contact, so each entry is usable wherever a Contact is expected.
type Codeplug struct {
	Contacts   []Talkgroup
	Channels   []Channel
	GroupLists []GroupList
	ScanLists  []ScanList
	Zones      []Zone
}

// ContactList returns the plain contacts, in order.
func (cp Codeplug) ContactList() []Contact {
	contacts := make([]Contact, len(cp.Contacts))
	for i, tg := range cp.Contacts {
		contacts[i] = tg.Contact
	}
	return contacts
}

// FilterFrequencyRanges returns a new codeplug holding only the channels
// whose receive frequency lies in at least one of the bands. Zones and scan
// lists are pruned to the surviving channels and dropped when empty.
func (cp Codeplug) FilterFrequencyRanges(bands []Band) Codeplug {
	inRange := func(freq float64) bool {
		for _, b := range bands {
			if b.Contains(freq) {
				return true
			}
		}
		return false
	}

	channels := make([]Channel, 0, len(cp.Channels))
	keep := make(map[string]bool, len(cp.Channels))
	for _, ch := range cp.Channels {
		if inRange(ch.Frequency) {
			channels = append(channels, ch)
			keep[ch.ShortName()] = true
		}
	}

	filter := func(in []Channel) []Channel {
		out := make([]Channel, 0, len(in))
		for _, ch := range in {
			if keep[ch.ShortName()] {
				out = append(out, ch)
			}
		}
		return out
	}

	zones := make([]Zone, 0, len(cp.Zones))
	for _, z := range cp.Zones {
		fz := Zone{Name: z.Name, ChannelsA: filter(z.ChannelsA), ChannelsB: filter(z.ChannelsB)}
		if len(fz.UniqueChannels()) > 0 {
			zones = append(zones, fz)
		}
	}

	scanlists := make([]ScanList, 0, len(cp.ScanLists))
	for _, s := range cp.ScanLists {
		fs := ScanList{Name: s.Name, Channels: filter(s.Channels)}
		if len(fs.UniqueChannels()) > 0 {
			scanlists = append(scanlists, fs)
		}
	}

	return Codeplug{
		Contacts:   cp.Contacts,
		Channels:   channels,
		GroupLists: cp.GroupLists,
		ScanLists:  scanlists,
		Zones:      zones,
	}
}
