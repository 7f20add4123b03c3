package k7abd

import "github.com/mycodeplug/dzcb/internal/models"

// ZoneMap maps zone names to channel lists, remembering the order in which
// zone names were first seen.
type ZoneMap struct {
	names    []string
	channels map[string][]models.Channel
}

// NewZoneMap returns an empty ZoneMap.
func NewZoneMap() *ZoneMap {
	return &ZoneMap{channels: make(map[string][]models.Channel)}
}

// Append adds channels to the end of a zone, creating it if needed.
func (z *ZoneMap) Append(zone string, channels ...models.Channel) {
	if _, ok := z.channels[zone]; !ok {
		z.names = append(z.names, zone)
	}
	z.channels[zone] = append(z.channels[zone], channels...)
}

// Set replaces the channels of a zone. A new zone keeps its first-seen
// position; an existing zone keeps its original position.
func (z *ZoneMap) Set(zone string, channels ...models.Channel) {
	if _, ok := z.channels[zone]; !ok {
		z.names = append(z.names, zone)
	}
	z.channels[zone] = append([]models.Channel(nil), channels...)
}

// Merge appends every zone of other, in other's order.
func (z *ZoneMap) Merge(other *ZoneMap) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		z.Append(name, other.channels[name]...)
	}
}

// Names returns the zone names in first-seen order.
func (z *ZoneMap) Names() []string {
	return append([]string(nil), z.names...)
}

// Channels returns a copy of a zone's channel list.
func (z *ZoneMap) Channels(zone string) []models.Channel {
	return append([]models.Channel(nil), z.channels[zone]...)
}

// Len returns the number of zones.
func (z *ZoneMap) Len() int {
	return len(z.names)
}

// ChannelCount returns the number of channels across all zones.
func (z *ZoneMap) ChannelCount() int {
	n := 0
	for _, chs := range z.channels {
		n += len(chs)
	}
	return n
}
