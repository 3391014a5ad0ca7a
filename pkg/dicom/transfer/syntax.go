// Package transfer defines DICOM Transfer Syntaxes
package transfer

import (
	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
)

// Syntax represents a DICOM Transfer Syntax
type Syntax string

// Standard Transfer Syntaxes
const (
	// Uncompressed
	ImplicitVRLittleEndian    Syntax = "1.2.840.10008.1.2"
	ExplicitVRLittleEndian    Syntax = "1.2.840.10008.1.2.1"
	ExplicitVRLittleEndianExt Syntax = "1.2.840.10008.1.2.1.64" // Extended (>4GB)
	ExplicitVRBigEndian       Syntax = "1.2.840.10008.1.2.2"    // Retired

	// JPEG Lossless
	JPEGLossless           Syntax = "1.2.840.10008.1.2.4.57"
	JPEGLosslessFirstOrder Syntax = "1.2.840.10008.1.2.4.70" // Most common

	// JPEG-LS
	JPEGLSLossless     Syntax = "1.2.840.10008.1.2.4.80"
	JPEGLSNearLossless Syntax = "1.2.840.10008.1.2.4.81"

	// JPEG 2000
	JPEG2000Lossless Syntax = "1.2.840.10008.1.2.4.90"
	JPEG2000         Syntax = "1.2.840.10008.1.2.4.91"

	// JPEG Lossy
	JPEGBaseline Syntax = "1.2.840.10008.1.2.4.50"
	JPEGExtended Syntax = "1.2.840.10008.1.2.4.51"

	// Other
	RLELossless        Syntax = "1.2.840.10008.1.2.5"
	DeflatedExplicitVR Syntax = "1.2.840.10008.1.2.1.99"
)

var names = map[Syntax]string{
	ImplicitVRLittleEndian:    "Implicit VR Little Endian",
	ExplicitVRLittleEndian:    "Explicit VR Little Endian",
	ExplicitVRLittleEndianExt: "Explicit VR Little Endian Extended",
	ExplicitVRBigEndian:       "Explicit VR Big Endian (Retired)",
	JPEGLossless:              "JPEG Lossless (Process 14)",
	JPEGLosslessFirstOrder:    "JPEG Lossless First-Order (Process 14, SV1)",
	JPEGLSLossless:            "JPEG-LS Lossless",
	JPEGLSNearLossless:        "JPEG-LS Near-Lossless",
	JPEG2000Lossless:          "JPEG 2000 Lossless",
	JPEG2000:                  "JPEG 2000",
	JPEGBaseline:              "JPEG Baseline (Process 1)",
	JPEGExtended:              "JPEG Extended (Process 2 & 4)",
	RLELossless:               "RLE Lossless",
	DeflatedExplicitVR:        "Deflated Explicit VR Little Endian",
}

// IsExplicitVR returns true if this transfer syntax uses explicit VR
func (s Syntax) IsExplicitVR() bool {
	return s != ImplicitVRLittleEndian
}

// IsLittleEndian returns true if this transfer syntax uses little endian byte order
func (s Syntax) IsLittleEndian() bool {
	return s != ExplicitVRBigEndian
}

// Endian returns the byte order of the encoded dataset
func (s Syntax) Endian() buffer.Endian {
	if s.IsLittleEndian() {
		return buffer.LittleEndian
	}
	return buffer.BigEndian
}

// IsEncapsulated returns true if pixel data is encapsulated (compressed)
func (s Syntax) IsEncapsulated() bool {
	switch s {
	case ImplicitVRLittleEndian, ExplicitVRLittleEndian, ExplicitVRLittleEndianExt, ExplicitVRBigEndian:
		return false
	default:
		return true
	}
}

// IsDeflated returns true if the dataset is zlib deflated after encoding
func (s Syntax) IsDeflated() bool {
	return s == DeflatedExplicitVR
}

// IsKnown returns true for registered transfer syntaxes
func (s Syntax) IsKnown() bool {
	_, ok := names[s]
	return ok
}

// Name returns a human-readable name for the transfer syntax
func (s Syntax) Name() string {
	if n, ok := names[s]; ok {
		return n
	}
	return string(s)
}

// UID returns the transfer syntax UID string
func (s Syntax) UID() string {
	return string(s)
}

// FromUID converts a UID string to a Syntax
func FromUID(uid string) Syntax {
	return Syntax(uid)
}

// Lookup returns the registered syntax for a UID
func Lookup(uid string) (Syntax, bool) {
	s := Syntax(uid)
	return s, s.IsKnown()
}

// All returns the registered transfer syntaxes
func All() []Syntax {
	out := make([]Syntax, 0, len(names))
	for s := range names {
		out = append(out, s)
	}
	return out
}
