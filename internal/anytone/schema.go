// =============================================================================
// dzcb - Anytone CPS Schemas
// =============================================================================
//
// The Anytone CPS imports and exports fixed-column CSV files. Each column
// has a name and, unless the row data must supply it, a default value. The
// column order and names are part of the import contract: the CPS matches
// columns by name and position.
//
// Rows are built by starting from the defaults and overlaying the values
// computed for the entity being written. Columns that are never computed for
// an entity keep their default.
//
// =============================================================================

package anytone

import (
	"errors"
	"fmt"
)

const (
	off  = "Off"
	on   = "On"
	none = "None"
)

// ErrMissingValue is returned when a row lacks a value for a required column.
var ErrMissingValue = errors.New("missing value for required column")

// Field is one CSV column.
type Field struct {
	Name string

	// Default is used when the row does not supply a value.
	Default string

	// Required columns have no default and must be supplied.
	Required bool
}

func required(name string) Field {
	return Field{Name: name, Required: true}
}

func field(name, def string) Field {
	return Field{Name: name, Default: def}
}

// Schema is an ordered list of columns.
type Schema []Field

// Header returns the column names.
func (s Schema) Header() []string {
	header := make([]string, len(s))
	for i, f := range s {
		header[i] = f.Name
	}
	return header
}

// Has reports whether the schema has a column with the given name.
func (s Schema) Has(name string) bool {
	for _, f := range s {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Row lays out values in column order, filling defaults for the columns
// values does not name. Values for columns the schema does not have are
// ignored.
func (s Schema) Row(values map[string]string) ([]string, error) {
	row := make([]string, len(s))
	for i, f := range s {
		v, ok := values[f.Name]
		switch {
		case ok:
			row[i] = v
		case f.Required:
			return nil, fmt.Errorf("%w %q", ErrMissingValue, f.Name)
		default:
			row[i] = f.Default
		}
	}
	return row, nil
}

// =============================================================================
// TALKGROUPS (both radios)
// =============================================================================

var talkgroupSchema = Schema{
	required("No."),
	required("Radio ID"),
	required("Name"),
	required("Call Type"),
	required("Call Alert"),
}

// =============================================================================
// ANYTONE 878UVII (CPS 1.21)
// =============================================================================

var channelSchema878 = Schema{
	required("No."),
	required("Channel Name"),
	required("Receive Frequency"),
	required("Transmit Frequency"),
	required("Channel Type"),
	field("Transmit Power", "High"),
	field("Band Width", "25K"),
	field("CTCSS/DCS Decode", off),
	field("CTCSS/DCS Encode", off),
	field("Contact", ""),
	field("Contact Call Type", "Group Call"),
	field("Contact TG/DMR ID", "0"),
	field("Radio ID", ""),
	field("Busy Lock/TX Permit", "Always"),
	field("Squelch Mode", "Carrier"),
	field("Optional Signal", off),
	field("DTMF ID", "1"),
	field("2Tone ID", "1"),
	field("5Tone ID", "1"),
	field("PTT ID", off),
	field("Color Code", "1"),
	field("Slot", "1"),
	field("Scan List", none),
	field("Receive Group List", none),
	field("PTT Prohibit", off),
	field("Reverse", off),
	field("Simplex TDMA", off),
	field("Slot Suit", off),
	field("AES Digital Encryption", "Normal Encryption"),
	field("Digital Encryption", off),
	field("Call Confirmation", off),
	field("Talk Around(Simplex)", off),
	field("Work Alone", off),
	field("Custom CTCSS", "251.1"),
	field("2TONE Decode", "0"),
	field("Ranging", off),
	field("Through Mode", off),
	field("Digi APRS RX", off),
	field("Analog APRS PTT Mode", off),
	field("Digital APRS PTT Mode", off),
	field("APRS Report Type", off),
	field("Digital APRS Report Channel", "1"),
	field("Correct Frequency[Hz]", "0"),
	field("SMS Confirmation", off),
	field("Exclude Channel From Roaming", "0"),
	field("DMR MODE", "0"),
	field("DataACK Disable", "0"),
	field("R5toneBot", "0"),
	field("R5ToneEot", "0"),
}

var zoneSchema878 = Schema{
	required("No."),
	required("Zone Name"),
	required("Zone Channel Member"),
	required("Zone Channel Member RX Frequency"),
	required("Zone Channel Member TX Frequency"),
	required("A Channel"),
	required("A Channel RX Frequency"),
	required("A Channel TX Frequency"),
	required("B Channel"),
	required("B Channel RX Frequency"),
	required("B Channel TX Frequency"),
}

var scanListSchema = Schema{
	required("No."),
	required("Scan List Name"),
	required("Scan Channel Member"),
	required("Scan Channel Member RX Frequency"),
	required("Scan Channel Member TX Frequency"),
	field("Scan Mode", off),
	field("Priority Channel Select", "Priority Channel Select1"),
	field("Priority Channel 1", "Current Channel"),
	field("Priority Channel 1 RX Frequency", ""),
	field("Priority Channel 1 TX Frequency", ""),
	field("Priority Channel 2", off),
	field("Priority Channel 2 RX Frequency", ""),
	field("Priority Channel 2 TX Frequency", ""),
	field("Revert Channel", "Selected"),
	field("Look Back Time A[s]", "2.0"),
	field("Look Back Time B[s]", "3.0"),
	field("Dropout Delay Time[s]", "3.1"),
	field("Dwell Time[s]", "3.1"),
}

// =============================================================================
// ANYTONE 890
// =============================================================================

var channelSchema890 = Schema{
	required("No."),
	required("Channel Name"),
	required("Receive Frequency"),
	required("Transmit Frequency"),
	required("Channel Type"),

	field("Transmit Power", "High"),
	field("Bandwidth", "25K"),
	field("CTCSS/DCS Decode", off),
	field("CTCSS/DCS Encode", off),

	field("Contact/TG", ""),
	field("Contact/TG Call Type", "Group Call"),
	field("Contact/TG TG/DMR ID", "0"),
	field("Radio ID", ""),

	field("Busy Lock/TX Permit", "Always"),
	field("Squelch Mode", "Carrier"),
	field("Optional Signal", off),
	field("DTMF ID", "1"),
	field("2Tone ID", "1"),
	field("5Tone ID", "1"),
	field("PTT ID", off),
	field("RX Color Code", "1"),
	field("Slot", "1"),
	field("Scan List", none),
	field("Receive Group List", none),

	field("PTT Prohibit", off),
	field("Reverse", off),
	field("Digital Duplex", off),
	field("Slot Suit", off),
	field("AES Encryption Key", "Normal Encryption"),
	field("Digital Encryption", off),
	field("Call Confirmation", off),
	field("Talk Around(Simplex)", off),
	field("Work Alone", off),

	field("Custom CTCSS", "251.1"),
	field("2Tone Decode", "0"),
	field("Ranging", off),

	field("Idle TX", off),
	field("APRS RX", off),
	field("Analog APRS PTT Mode", off),
	field("Digital APRS PTT Mode", off),
	field("APRS Report Type", off),
	field("Digital APRS Report Channel", "1"),

	field("Correct Frequency[Hz]", "0"),
	field("SMS Confirmation", off),
	field("Exclude channel from roaming", "0"),
	field("DMR Mode", "0"),
	field("DataACK Disable", "0"),
	field("5Tone BOT ID", "0"),
	field("5Tone EOT ID", "0"),
	field("Auto Scan", "0"),
	field("Ana APRS Mute", "0"),
	field("Send Talker Alias", "0"),

	field("AnaAprsTxPath", "0"),
	field("ARC4", "0"),
	field("ex_emg_kind", "0"),
	field("Rpga_Mdc", "0"),
	field("DisturEn", "0"),
	field("DisturFreq", "0"),
	field("dmr_crc_ignore", "0"),
	field("compand", "0"),
	field("tx_talkalaes", "0"),
	field("dup_call", "0"),
	field("tx_int", "0"),
	field("BtRxState", "0"),
	field("idle_tx", "0"),

	// NXDN settings, unused for DMR.
	field("nxdn_wn", "0"),
	field("NxdnRpga", "0"),
	field("nxdnSqCon", "0"),
	field("NxdnTxBusy", "0"),
	field("NxDnPttId", "0"),
	field("EnRan", "0"),
	field("DeRan", "0"),
	field("NxdnEncry", "0"),
	field("NxdnGroupId", "0"),
	field("NxdnIdNum", "0"),
	field("NxdnStateNum", "0"),
	field("txcc", "1"),
}

// The trailing space in "Zone Hide " is how the CPS spells it.
var zoneSchema890 = append(append(Schema{}, zoneSchema878...), field("Zone Hide ", "0"))
