package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycodeplug/dzcb/internal/k7abd"
	"github.com/mycodeplug/dzcb/internal/models"
)

var (
	tg1   = models.NewTalkgroup(models.Contact{Name: "TG1", DMRID: 1, Kind: models.GroupCall}, models.TimeslotOne)
	local = models.NewTalkgroup(models.Contact{Name: "Local", DMRID: 2, Kind: models.GroupCall}, models.TimeslotTwo)
	world = models.NewTalkgroup(models.Contact{Name: "Worldwide", DMRID: 91, Kind: models.GroupCall}, models.TimeslotOne)
)

func repeater(zone, code string, freq float64, tgs ...models.Talkgroup) models.Channel {
	ch := models.NewDigitalChannel(zone, freq, 5)
	ch.Code = code
	ch.Digital.StaticTalkgroups = tgs
	return ch
}

func analog(name string, freq float64) models.Channel {
	return models.NewAnalogChannel(name, freq, 0)
}

func fixture() (*k7abd.ZoneMap, *k7abd.ZoneMap) {
	repeaters := k7abd.NewZoneMap()
	repeaters.Append("Zulu Repeater", repeater("Zulu Repeater", "ZR", 442.1, local, world))
	repeaters.Append("KC0XYZ", repeater("KC0XYZ", "", 146.94, tg1))

	others := k7abd.NewZoneMap()
	others.Append("Simplex", analog("2M Call", 146.52), analog("70CM Call", 446.0))
	hs := models.NewDigitalChannel("HS Local", 433.45, 5)
	hs.Digital.Talkgroup = &local
	others.Append("Hotspot", hs)
	return repeaters, others
}

func names(cp models.Codeplug) (zones, scanlists []string) {
	for _, z := range cp.Zones {
		zones = append(zones, z.Name)
	}
	for _, s := range cp.ScanLists {
		scanlists = append(scanlists, s.Name)
	}
	return zones, scanlists
}

func TestTemplateExpansion(t *testing.T) {
	repeaters := k7abd.NewZoneMap()
	repeaters.Append("KC0XYZ", repeater("KC0XYZ", "", 146.94, tg1))

	cp := Build(repeaters, nil, models.SortAlpha)

	require.Len(t, cp.GroupLists, 1)
	assert.Equal(t, "KC0XY TGS", cp.GroupLists[0].Name)
	assert.Equal(t, []models.Contact{tg1.Contact}, cp.GroupLists[0].Contacts)

	require.Len(t, cp.Channels, 1)
	ch := cp.Channels[0]
	assert.Equal(t, "KC0XYZ TG1", ch.Name)
	assert.False(t, ch.IsTemplate())
	require.NotNil(t, ch.Digital.Talkgroup)
	assert.Equal(t, tg1, *ch.Digital.Talkgroup)
	assert.Equal(t, "KC0XY TGS", ch.Digital.GroupList.Name)
	assert.Equal(t, "KC0XYZ", ch.ScanList)
}

func TestTemplateExpandsIntoOneChannelPerTalkgroup(t *testing.T) {
	tgs := []models.Talkgroup{tg1, local, world}
	repeaters := k7abd.NewZoneMap()
	repeaters.Append("Big", repeater("Big", "BG", 442.5, tgs...))

	cp := Build(repeaters, nil, models.SortRepeatersFirst)

	require.Len(t, cp.Channels, len(tgs))
	gl := cp.Channels[0].Digital.GroupList
	require.NotNil(t, gl)
	assert.Equal(t, "BG TGS", gl.Name)
	assert.Len(t, gl.Contacts, len(tgs))
	for i, ch := range cp.Channels {
		assert.Same(t, gl, ch.Digital.GroupList)
		assert.Equal(t, tgs[i], *ch.Digital.Talkgroup)
	}
}

func TestShortNamesUnique(t *testing.T) {
	others := k7abd.NewZoneMap()
	others.Append("A", analog("Very Long Channel Name One", 146.52), analog("Very Long Channel Name Two", 146.55))
	others.Append("B", analog("Very Long Channel Name Three", 146.58))

	cp := Build(nil, others, models.SortAlpha)

	seen := make(map[string]bool)
	for _, ch := range cp.Channels {
		assert.False(t, seen[ch.ShortName()], "duplicate short name %q", ch.ShortName())
		assert.LessOrEqual(t, len([]rune(ch.ShortName())), models.NameMax)
		seen[ch.ShortName()] = true
	}
	assert.Equal(t, []string{"Very Long Channe", "Very Long Chan 1", "Very Long Chan 2"},
		[]string{cp.Channels[0].ShortName(), cp.Channels[1].ShortName(), cp.Channels[2].ShortName()})
}

func TestIdenticalChannelSharesShortName(t *testing.T) {
	others := k7abd.NewZoneMap()
	others.Append("A", analog("Calling", 146.52))
	others.Append("B", analog("Calling", 146.52))

	cp := Build(nil, others, models.SortAlpha)

	require.Len(t, cp.Channels, 1)
	require.Len(t, cp.Zones, 2)
	assert.Equal(t, "Calling", cp.Zones[1].ChannelsA[0].ShortName())
	assert.Equal(t, "B", cp.Zones[1].ChannelsA[0].ScanList)
}

func TestContactsAlwaysSorted(t *testing.T) {
	for _, mode := range models.SortModes() {
		t.Run(string(mode), func(t *testing.T) {
			repeaters, others := fixture()
			cp := Build(repeaters, others, mode)
			var got []string
			for _, c := range cp.Contacts {
				got = append(got, c.Name)
			}
			assert.Equal(t, []string{"Local", "TG1", "Worldwide"}, got)
		})
	}
}

func TestContactsDistinctPerTimeslot(t *testing.T) {
	localTS1 := models.NewTalkgroup(local.Contact, models.TimeslotOne)
	repeaters := k7abd.NewZoneMap()
	repeaters.Append("R1", repeater("R1", "", 442.1, local))
	repeaters.Append("R2", repeater("R2", "", 443.1, localTS1))

	cp := Build(repeaters, nil, models.SortAlpha)

	require.Len(t, cp.Contacts, 2)
	assert.Equal(t, models.TimeslotOne, cp.Contacts[0].Timeslot)
	assert.Equal(t, models.TimeslotTwo, cp.Contacts[1].Timeslot)
}

func TestZoneOrdering(t *testing.T) {
	tests := []struct {
		mode models.SortMode
		want []string
	}{
		{models.SortAlpha, []string{"Hotspot", "KC0XYZ", "Simplex", "Zulu Repeater"}},
		{models.SortRepeatersFirst, []string{"Zulu Repeater", "KC0XYZ", "Simplex", "Hotspot"}},
		{models.SortAnalogFirst, []string{"Simplex", "Hotspot", "Zulu Repeater", "KC0XYZ"}},
	}
	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			repeaters, others := fixture()
			cp := Build(repeaters, others, tc.mode)
			zones, scanlists := names(cp)
			assert.Equal(t, tc.want, zones)
			assert.Equal(t, tc.want, scanlists)
		})
	}
}

func TestAlphaMergesZonesByName(t *testing.T) {
	repeaters := k7abd.NewZoneMap()
	repeaters.Append("Shared", repeater("Shared", "SH", 442.1, tg1))
	others := k7abd.NewZoneMap()
	others.Append("Shared", analog("Shared FM", 146.52))

	cp := Build(repeaters, others, models.SortAlpha)
	require.Len(t, cp.Zones, 1)
	chs := cp.Zones[0].ChannelsA
	require.Len(t, chs, 2)
	assert.Equal(t, "Shared FM", chs[0].Name)
	assert.Equal(t, "Shared TG1", chs[1].Name)

	cp = Build(repeaters, others, models.SortRepeatersFirst)
	assert.Len(t, cp.Zones, 2)
}

func TestZoneAndScanListMembership(t *testing.T) {
	repeaters, others := fixture()
	cp := Build(repeaters, others, models.SortRepeatersFirst)

	for i, z := range cp.Zones {
		assert.Equal(t, z.ChannelsA, z.ChannelsB)
		assert.Equal(t, z.ChannelsA, cp.ScanLists[i].Channels)
		for _, ch := range z.ChannelsA {
			assert.Equal(t, z.Name, ch.ScanList)
		}
	}
	assert.Equal(t, []string{"Zulu Repeater Local", "Zulu Repeater Worldwide"},
		[]string{cp.Zones[0].ChannelsA[0].Name, cp.Zones[0].ChannelsA[1].Name})
	assert.Equal(t, "ZR TGS", cp.Zones[0].ChannelsA[0].Digital.GroupList.Name)
}

func TestEmptyInput(t *testing.T) {
	cp := Build(nil, nil, models.SortAlpha)
	assert.Empty(t, cp.Channels)
	assert.Empty(t, cp.Zones)
	assert.Empty(t, cp.Contacts)
}
