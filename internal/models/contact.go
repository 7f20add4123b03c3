// =============================================================================
// dzcb - Domain Model: Contacts and Talkgroups
// =============================================================================
//
// Contacts are DMR call targets. A Talkgroup refines a Contact with the
// timeslot it is carried on; the same talkgroup on TS1 and TS2 are two
// distinct values.
//
// All model types are immutable values. Operations that "change" a value
// return a modified copy.
//
// =============================================================================

package models

import (
	"fmt"
	"strings"
)

// ContactKind is the DMR call type of a contact.
type ContactKind string

const (
	// GroupCall addresses a talkgroup.
	GroupCall ContactKind = "Group"

	// PrivateCall addresses a single radio.
	PrivateCall ContactKind = "Private"
)

// Timeslot is one of the two 30ms DMR Tier II timeslots.
type Timeslot int

const (
	TimeslotOne Timeslot = 1
	TimeslotTwo Timeslot = 2
)

// ParseTimeslot converts "1" or "2" into a Timeslot.
func ParseTimeslot(s string) (Timeslot, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return TimeslotOne, nil
	case "2":
		return TimeslotTwo, nil
	default:
		return 0, fmt.Errorf("invalid timeslot %q: must be 1 or 2", s)
	}
}

// Contact is a DMR contact (talkgroup or private call).
type Contact struct {
	Name  string
	DMRID int
	Kind  ContactKind
}

// CallType returns the call type label used by the Anytone CPS,
// e.g. "Group Call".
func (c Contact) CallType() string {
	return string(c.Kind) + " Call"
}

// Talkgroup is a Contact bound to a timeslot.
type Talkgroup struct {
	Contact
	Timeslot Timeslot
}

// NewTalkgroup binds a contact to a timeslot.
func NewTalkgroup(c Contact, ts Timeslot) Talkgroup {
	return Talkgroup{Contact: c, Timeslot: ts}
}

// NameWithTimeslot returns the name with the timeslot appended, unless the
// name already ends with it. TAC channels always get the suffix.
func (t Talkgroup) NameWithTimeslot() string {
	ts := fmt.Sprintf("%d", t.Timeslot)
	if strings.HasSuffix(t.Name, ts) && !strings.HasPrefix(t.Name, "TAC") {
		return t.Name
	}
	return t.Name + " " + ts
}

// UniquifyContacts returns the contacts with duplicate DMR IDs removed.
// The first occurrence of each ID wins and order is preserved.
func UniquifyContacts(contacts []Contact) []Contact {
	seen := make(map[int]bool, len(contacts))
	unique := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if seen[c.DMRID] {
			continue
		}
		seen[c.DMRID] = true
		unique = append(unique, c)
	}
	return unique
}
