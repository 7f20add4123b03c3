package models

import "slices"

// GroupList is the set of talkgroups receivable on a repeater's channels.
type GroupList struct {
	Name     string
	Contacts []Contact
}

// Equal reports whether two group lists hold the same values. Two nil
// group lists are equal.
func (g *GroupList) Equal(o *GroupList) bool {
	if g == nil || o == nil {
		return g == o
	}
	return g.Name == o.Name && slices.Equal(g.Contacts, o.Contacts)
}

// ScanList is an ordered set of channels scanned together.
type ScanList struct {
	Name     string
	Channels []Channel
}

// UniqueChannels returns the channels deduplicated by short name.
func (s ScanList) UniqueChannels() []Channel {
	return uniqueByShortName(s.Channels)
}

// Zone is a named group of channels selectable on the radio. Each zone has
// independent channel lists for the A and B VFOs.
type Zone struct {
	Name      string
	ChannelsA []Channel
	ChannelsB []Channel
}

// UniqueChannels returns the A channels followed by the B channels,
// deduplicated by short name.
func (z Zone) UniqueChannels() []Channel {
	all := make([]Channel, 0, len(z.ChannelsA)+len(z.ChannelsB))
	all = append(all, z.ChannelsA...)
	all = append(all, z.ChannelsB...)
	return uniqueByShortName(all)
}

// uniqueByShortName keeps the first channel for each short name.
func uniqueByShortName(channels []Channel) []Channel {
	seen := make(map[string]bool, len(channels))
	unique := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		name := ch.ShortName()
		if seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, ch)
	}
	return unique
}
