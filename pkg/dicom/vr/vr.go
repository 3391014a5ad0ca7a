// Package vr defines DICOM Value Representations and their encoding properties
package vr

// VR represents a DICOM Value Representation
type VR string

// Standard DICOM Value Representations
const (
	AE VR = "AE" // Application Entity (16 bytes max)
	AS VR = "AS" // Age String (4 bytes fixed)
	AT VR = "AT" // Attribute Tag (4 bytes fixed)
	CS VR = "CS" // Code String (16 bytes max)
	DA VR = "DA" // Date (8 bytes fixed)
	DS VR = "DS" // Decimal String (16 bytes max)
	DT VR = "DT" // DateTime (26 bytes max)
	FL VR = "FL" // Floating Point Single (4 bytes fixed)
	FD VR = "FD" // Floating Point Double (8 bytes fixed)
	IS VR = "IS" // Integer String (12 bytes max)
	LO VR = "LO" // Long String (64 bytes max)
	LT VR = "LT" // Long Text (10240 bytes max)
	OB VR = "OB" // Other Byte String
	OD VR = "OD" // Other Double String
	OF VR = "OF" // Other Float String
	OL VR = "OL" // Other Long
	OW VR = "OW" // Other Word String
	PN VR = "PN" // Person Name (64 bytes max per component)
	SH VR = "SH" // Short String (16 bytes max)
	SL VR = "SL" // Signed Long (4 bytes fixed)
	SQ VR = "SQ" // Sequence of Items
	SS VR = "SS" // Signed Short (2 bytes fixed)
	ST VR = "ST" // Short Text (1024 bytes max)
	TM VR = "TM" // Time (16 bytes max)
	UC VR = "UC" // Unlimited Characters
	UI VR = "UI" // Unique Identifier (64 bytes max)
	UL VR = "UL" // Unsigned Long (4 bytes fixed)
	UN VR = "UN" // Unknown
	UR VR = "UR" // Universal Resource Identifier
	US VR = "US" // Unsigned Short (2 bytes fixed)
	UT VR = "UT" // Unlimited Text
)

// Info holds the encoding properties of a VR
type Info struct {
	Text                 bool   // value is character data
	SpecificCharacterSet bool   // text decoded through (0008,0005)
	MultiValue           bool   // values separated by a backslash
	MaxLength            uint32 // per value, 0 when unbounded
	Is16BitLength        bool   // explicit VR header uses a 2 byte length
	Pad                  byte   // pad to even length
	UnitSize             int    // byte swap unit
}

var infos = map[VR]Info{
	AE: {Text: true, MultiValue: true, MaxLength: 16, Is16BitLength: true, Pad: ' ', UnitSize: 1},
	AS: {Text: true, MultiValue: true, MaxLength: 4, Is16BitLength: true, Pad: ' ', UnitSize: 1},
	AT: {MultiValue: true, MaxLength: 4, Is16BitLength: true, UnitSize: 2}, // group and element swap separately
	CS: {Text: true, MultiValue: true, MaxLength: 16, Is16BitLength: true, Pad: ' ', UnitSize: 1},
	DA: {Text: true, MultiValue: true, MaxLength: 8, Is16BitLength: true, Pad: ' ', UnitSize: 1},
	DS: {Text: true, MultiValue: true, MaxLength: 16, Is16BitLength: true, Pad: ' ', UnitSize: 1},
	DT: {Text: true, MultiValue: true, MaxLength: 26, Is16BitLength: true, Pad: ' ', UnitSize: 1},
	FL: {MultiValue: true, MaxLength: 4, Is16BitLength: true, UnitSize: 4},
	FD: {MultiValue: true, MaxLength: 8, Is16BitLength: true, UnitSize: 8},
	IS: {Text: true, MultiValue: true, MaxLength: 12, Is16BitLength: true, Pad: ' ', UnitSize: 1},
	LO: {Text: true, SpecificCharacterSet: true, MultiValue: true, MaxLength: 64, Is16BitLength: true, Pad: ' ', UnitSize: 1},
	LT: {Text: true, SpecificCharacterSet: true, MaxLength: 10240, Is16BitLength: true, Pad: ' ', UnitSize: 1},
	OB: {MaxLength: 1, UnitSize: 1},
	OD: {MaxLength: 8, UnitSize: 8},
	OF: {MaxLength: 4, UnitSize: 4},
	OL: {MaxLength: 4, UnitSize: 4},
	OW: {MaxLength: 2, UnitSize: 2},
	PN: {Text: true, SpecificCharacterSet: true, MultiValue: true, MaxLength: 320, Is16BitLength: true, Pad: ' ', UnitSize: 1},
	SH: {Text: true, SpecificCharacterSet: true, MultiValue: true, MaxLength: 16, Is16BitLength: true, Pad: ' ', UnitSize: 1},
	SL: {MultiValue: true, MaxLength: 4, Is16BitLength: true, UnitSize: 4},
	SQ: {UnitSize: 1},
	SS: {MultiValue: true, MaxLength: 2, Is16BitLength: true, UnitSize: 2},
	ST: {Text: true, SpecificCharacterSet: true, MaxLength: 1024, Is16BitLength: true, Pad: ' ', UnitSize: 1},
	TM: {Text: true, MultiValue: true, MaxLength: 16, Is16BitLength: true, Pad: ' ', UnitSize: 1},
	UC: {Text: true, SpecificCharacterSet: true, MultiValue: true, Pad: ' ', UnitSize: 1},
	UI: {Text: true, MultiValue: true, MaxLength: 64, Is16BitLength: true, UnitSize: 1},
	UL: {MultiValue: true, MaxLength: 4, Is16BitLength: true, UnitSize: 4},
	UN: {UnitSize: 1},
	UR: {Text: true, Pad: ' ', UnitSize: 1},
	US: {MultiValue: true, MaxLength: 2, Is16BitLength: true, UnitSize: 2},
	UT: {Text: true, SpecificCharacterSet: true, Pad: ' ', UnitSize: 1},
}

// Parse returns the VR for a two character code
func Parse(code string) (VR, bool) {
	v := VR(code)
	_, ok := infos[v]
	return v, ok
}

// Info returns the encoding properties, zero value for unknown codes
func (v VR) Info() Info {
	return infos[v]
}

// IsKnown returns true for standard VR codes
func (v VR) IsKnown() bool {
	_, ok := infos[v]
	return ok
}

// IsExplicitLength returns true if the VR uses explicit 2-byte length in explicit VR
// Otherwise uses 4-byte length with 2-byte reserved field
func (v VR) IsExplicitLength() bool {
	info, ok := infos[v]
	if !ok {
		return false
	}
	return info.Is16BitLength
}

// IsString returns true if this VR contains string data
func (v VR) IsString() bool {
	return infos[v].Text
}

// IsBinary returns true if this VR contains binary data
func (v VR) IsBinary() bool {
	switch v {
	case AT, FL, FD, OB, OD, OF, OL, OW, SL, SS, UL, UN, US:
		return true
	default:
		return false
	}
}

// IsBulk returns true for the bulk binary VRs skipped by binary-less copies
func (v VR) IsBulk() bool {
	switch v {
	case OB, OD, OF, OL, OW:
		return true
	default:
		return false
	}
}

// IsSequence returns true if this is a sequence VR
func (v VR) IsSequence() bool {
	return v == SQ
}

// UsesCharacterSet returns true if text is decoded through the specific character set
func (v VR) UsesCharacterSet() bool {
	return infos[v].SpecificCharacterSet
}

// IsMultiValue returns true if values are backslash delimited
func (v VR) IsMultiValue() bool {
	return infos[v].MultiValue
}

// MaxLength returns the maximum length of a single value
func (v VR) MaxLength() uint32 {
	return infos[v].MaxLength
}

// PadChar returns the byte used to pad values to an even length
func (v VR) PadChar() byte {
	return infos[v].Pad
}

// UnitSize returns the byte swap unit
func (v VR) UnitSize() int {
	if u := infos[v].UnitSize; u > 0 {
		return u
	}
	return 1
}

// ValueSize returns the fixed size in bytes for fixed-size VRs, or 0 for variable
func (v VR) ValueSize() int {
	switch v {
	case AT, FL, SL, UL:
		return 4
	case FD:
		return 8
	case SS, US:
		return 2
	default:
		return 0 // Variable
	}
}

// HeaderLength returns the element header size under the given VR encoding
func (v VR) HeaderLength(explicitVR bool) uint32 {
	if !explicitVR {
		return 8
	}
	if v.IsExplicitLength() {
		return 8
	}
	return 12
}

func (v VR) String() string {
	return string(v)
}
