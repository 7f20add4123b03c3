// =============================================================================
// dzcb - Codeplug Assembler
// =============================================================================
//
// The assembler turns the zone maps produced by the input parser into one
// Codeplug:
//
//   1. Order the zones according to the sort mode.
//   2. Expand every repeater template into one channel per talkgroup, all
//      sharing a new group list.
//   3. Give every channel a short name that no other channel in the run
//      uses, bumping its dedup key until it is free.
//   4. Build one scan list and one zone per input zone.
//
// ORDERING:
//
//   | Mode            | Zone order                                        |
//   |-----------------|---------------------------------------------------|
//   | alpha           | merged by name (other, then repeater), A-Z        |
//   | repeaters-first | repeater zones, then other zones, in file order   |
//   | analog-first    | other zones, then repeater zones, in file order   |
//
// Contacts are always sorted by name. Scan lists and zones are sorted by
// name only in alpha mode.
//
// =============================================================================

package assembler

import (
	"sort"

	"go.uber.org/zap"

	"github.com/mycodeplug/dzcb/internal/k7abd"
	"github.com/mycodeplug/dzcb/internal/models"
)

// zoneEntry is one zone awaiting assembly.
type zoneEntry struct {
	name     string
	channels []models.Channel
}

// shortNames tracks the channel that claimed each short name during one
// assembly.
type shortNames map[string]models.Channel

// claim returns ch with the smallest dedup key whose short name is free or
// already held by an identical channel, and records the claim.
func (s shortNames) claim(ch models.Channel) (models.Channel, bool) {
	for {
		occupant, taken := s[ch.ShortName()]
		if !taken {
			s[ch.ShortName()] = ch
			return ch, true
		}
		if occupant.Equal(ch) {
			return ch, false
		}
		ch = ch.WithDedupKey(ch.DedupKey + 1)
	}
}

// Assembler builds codeplugs. The zero value is not usable; call New.
type Assembler struct {
	log  *zap.Logger
	mode models.SortMode
}

// New creates an Assembler. A nil logger discards log output.
func New(mode models.SortMode, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{log: log, mode: mode}
}

// Build assembles a codeplug using the default logger.
func Build(repeaterZones, otherZones *k7abd.ZoneMap, mode models.SortMode) models.Codeplug {
	return New(mode, nil).Build(repeaterZones, otherZones)
}

// Build assembles a codeplug from the repeater and other zone maps. Either
// map may be nil.
func (a *Assembler) Build(repeaterZones, otherZones *k7abd.ZoneMap) models.Codeplug {
	if repeaterZones == nil {
		repeaterZones = k7abd.NewZoneMap()
	}
	if otherZones == nil {
		otherZones = k7abd.NewZoneMap()
	}

	var (
		cp       models.Codeplug
		claimed  = make(shortNames)
		contacts = make(map[models.Talkgroup]bool)
	)
	addContact := func(tg models.Talkgroup) {
		if !contacts[tg] {
			contacts[tg] = true
			cp.Contacts = append(cp.Contacts, tg)
		}
	}

	for _, zone := range a.orderedZones(repeaterZones, otherZones) {
		var emitted []models.Channel
		for _, ch := range zone.channels {
			if ch.IsTemplate() {
				gl := groupListFor(ch)
				cp.GroupLists = append(cp.GroupLists, *gl)
				for _, tg := range ch.Digital.StaticTalkgroups {
					addContact(tg)
					emitted = append(emitted, ch.WithTalkgroup(tg, gl))
				}
				continue
			}
			if ch.IsDigital() && ch.Digital.Talkgroup != nil {
				addContact(*ch.Digital.Talkgroup)
			}
			emitted = append(emitted, ch)
		}

		final := make([]models.Channel, 0, len(emitted))
		for _, ch := range emitted {
			deduped, fresh := claimed.claim(ch)
			if deduped.DedupKey > 0 && fresh {
				a.log.Debug("Renamed duplicate channel",
					zap.String("zone", zone.name),
					zap.String("name", deduped.Name),
					zap.String("short_name", deduped.ShortName()))
			}
			deduped = deduped.WithScanList(zone.name)
			final = append(final, deduped)
			if fresh {
				cp.Channels = append(cp.Channels, deduped)
			}
		}

		cp.ScanLists = append(cp.ScanLists, models.ScanList{Name: zone.name, Channels: final})
		cp.Zones = append(cp.Zones, models.Zone{Name: zone.name, ChannelsA: final, ChannelsB: final})
	}

	sort.SliceStable(cp.Contacts, func(i, j int) bool {
		x, y := cp.Contacts[i], cp.Contacts[j]
		if x.Name != y.Name {
			return x.Name < y.Name
		}
		if x.DMRID != y.DMRID {
			return x.DMRID < y.DMRID
		}
		return x.Timeslot < y.Timeslot
	})
	if a.mode == models.SortAlpha {
		sort.SliceStable(cp.ScanLists, func(i, j int) bool { return cp.ScanLists[i].Name < cp.ScanLists[j].Name })
		sort.SliceStable(cp.Zones, func(i, j int) bool { return cp.Zones[i].Name < cp.Zones[j].Name })
	}

	a.log.Info("Assembled codeplug",
		zap.String("sort", string(a.mode)),
		zap.Int("contacts", len(cp.Contacts)),
		zap.Int("channels", len(cp.Channels)),
		zap.Int("grouplists", len(cp.GroupLists)),
		zap.Int("scanlists", len(cp.ScanLists)),
		zap.Int("zones", len(cp.Zones)),
	)
	return cp
}

// orderedZones returns the zones in processing order for the sort mode.
func (a *Assembler) orderedZones(repeaterZones, otherZones *k7abd.ZoneMap) []zoneEntry {
	entries := func(zm *k7abd.ZoneMap) []zoneEntry {
		out := make([]zoneEntry, 0, zm.Len())
		for _, name := range zm.Names() {
			out = append(out, zoneEntry{name: name, channels: zm.Channels(name)})
		}
		return out
	}

	switch a.mode {
	case models.SortRepeatersFirst:
		return append(entries(repeaterZones), entries(otherZones)...)
	case models.SortAnalogFirst:
		return append(entries(otherZones), entries(repeaterZones)...)
	}

	merged := k7abd.NewZoneMap()
	merged.Merge(otherZones)
	merged.Merge(repeaterZones)
	zones := entries(merged)
	sort.SliceStable(zones, func(i, j int) bool { return zones[i].name < zones[j].name })
	return zones
}

// groupListFor creates the group list shared by the channels expanded from
// a repeater template.
func groupListFor(tpl models.Channel) *models.GroupList {
	prefix := tpl.Code
	if prefix == "" {
		name := []rune(tpl.Name)
		prefix = string(name[:min(5, len(name))])
	}
	contacts := make([]models.Contact, len(tpl.Digital.StaticTalkgroups))
	for i, tg := range tpl.Digital.StaticTalkgroups {
		contacts[i] = tg.Contact
	}
	return &models.GroupList{Name: prefix + " TGS", Contacts: contacts}
}
