// Package uid resolves DICOM unique identifiers against the SOP class and
// transfer syntax registries and generates new identifiers.
package uid

import (
	"crypto/md5"
	"encoding/json"
	"math/big"

	"github.com/google/uuid"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
)

// Type classifies a UID
type Type int

const (
	TypeUnknown Type = iota
	TypeSOPClass
	TypeTransferSyntax
	TypeInstance
)

func (t Type) String() string {
	switch t {
	case TypeSOPClass:
		return "SOP Class"
	case TypeTransferSyntax:
		return "Transfer Syntax"
	case TypeInstance:
		return "SOP Instance"
	default:
		return "Unknown"
	}
}

// UID is a resolved identifier
type UID struct {
	UID  string
	Name string
	Type Type
}

func (u *UID) String() string {
	if u == nil {
		return ""
	}
	return u.UID
}

// Description returns "name (uid)" for registered UIDs
func (u *UID) Description() string {
	if u == nil {
		return ""
	}
	if u.Name == "" {
		return u.UID
	}
	return u.Name + " (" + u.UID + ")"
}

// Common SOP classes
const (
	VerificationSOPClass               = "1.2.840.10008.1.1"
	ComputedRadiographyImageStorage    = "1.2.840.10008.5.1.4.1.1.1"
	DigitalXRayImageStorage            = "1.2.840.10008.5.1.4.1.1.1.1"
	CTImageStorage                     = "1.2.840.10008.5.1.4.1.1.2"
	EnhancedCTImageStorage             = "1.2.840.10008.5.1.4.1.1.2.1"
	UltrasoundImageStorage             = "1.2.840.10008.5.1.4.1.1.6.1"
	SecondaryCaptureImageStorage       = "1.2.840.10008.5.1.4.1.1.7"
	MRImageStorage                     = "1.2.840.10008.5.1.4.1.1.4"
	RawDataStorage                     = "1.2.840.10008.5.1.4.1.1.66"
	BasicTextSRStorage                 = "1.2.840.10008.5.1.4.1.1.88.11"
	EncapsulatedPDFStorage             = "1.2.840.10008.5.1.4.1.1.104.1"
	PositronEmissionTomographyStorage  = "1.2.840.10008.5.1.4.1.1.128"
	DICOSCTImageStorage                = "1.2.840.10008.5.1.4.1.1.501.1"
	DICOSDigitalXRayImageStorage       = "1.2.840.10008.5.1.4.1.1.501.2.1"
	DICOSThreatDetectionReportStorage  = "1.2.840.10008.5.1.4.1.1.501.3"
	PatientRootQueryRetrieveFind       = "1.2.840.10008.5.1.4.1.2.1.1"
	StudyRootQueryRetrieveFind         = "1.2.840.10008.5.1.4.1.2.2.1"
	StudyRootQueryRetrieveMove         = "1.2.840.10008.5.1.4.1.2.2.2"
)

var sopClasses = map[string]string{
	VerificationSOPClass:              "Verification SOP Class",
	ComputedRadiographyImageStorage:   "Computed Radiography Image Storage",
	DigitalXRayImageStorage:           "Digital X-Ray Image Storage - For Presentation",
	CTImageStorage:                    "CT Image Storage",
	EnhancedCTImageStorage:            "Enhanced CT Image Storage",
	UltrasoundImageStorage:            "Ultrasound Image Storage",
	SecondaryCaptureImageStorage:      "Secondary Capture Image Storage",
	MRImageStorage:                    "MR Image Storage",
	RawDataStorage:                    "Raw Data Storage",
	BasicTextSRStorage:                "Basic Text SR Storage",
	EncapsulatedPDFStorage:            "Encapsulated PDF Storage",
	PositronEmissionTomographyStorage: "Positron Emission Tomography Image Storage",
	DICOSCTImageStorage:               "DICOS CT Image Storage",
	DICOSDigitalXRayImageStorage:      "DICOS Digital X-Ray Image Storage - For Presentation",
	DICOSThreatDetectionReportStorage: "DICOS Threat Detection Report Storage",
	PatientRootQueryRetrieveFind:      "Patient Root Query/Retrieve Information Model - FIND",
	StudyRootQueryRetrieveFind:        "Study Root Query/Retrieve Information Model - FIND",
	StudyRootQueryRetrieveMove:        "Study Root Query/Retrieve Information Model - MOVE",
}

// LookupSOPClass returns a registered SOP class
func LookupSOPClass(s string) (*UID, bool) {
	if name, ok := sopClasses[s]; ok {
		return &UID{UID: s, Name: name, Type: TypeSOPClass}, true
	}
	return nil, false
}

// LookupTransferSyntax returns a registered transfer syntax
func LookupTransferSyntax(s string) (*UID, bool) {
	if ts, ok := transfer.Lookup(s); ok {
		return &UID{UID: s, Name: ts.Name(), Type: TypeTransferSyntax}, true
	}
	return nil, false
}

// Lookup resolves s against the SOP class then transfer syntax registries
func Lookup(s string) (*UID, bool) {
	if u, ok := LookupSOPClass(s); ok {
		return u, true
	}
	return LookupTransferSyntax(s)
}

// Resolve returns the registered UID, or an unknown UID carrying s
func Resolve(s string) *UID {
	if u, ok := Lookup(s); ok {
		return u
	}
	return &UID{UID: s, Type: TypeUnknown}
}

// Root is the UUID derived root from PS3.5 B.2
const Root = "2.25."

// MaxLength is the UI value limit
const MaxLength = 64

// FromUUID renders a UUID as a 2.25 decimal UID
func FromUUID(u uuid.UUID) string {
	return Root + new(big.Int).SetBytes(u[:]).String()
}

// New returns a fresh random instance UID
func New() *UID {
	return &UID{UID: FromUUID(uuid.New()), Type: TypeInstance}
}

// FromHash returns a stable instance UID for any JSON serializable value
func FromHash(value any) (*UID, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	hash := md5.Sum(raw)
	u, err := uuid.FromBytes(hash[:])
	if err != nil {
		return nil, err
	}
	return &UID{UID: FromUUID(u), Type: TypeInstance}, nil
}

// IsValid checks UI syntax: dot separated numeric components, no leading
// zeros, at most 64 characters
func IsValid(s string) bool {
	if s == "" || len(s) > MaxLength {
		return false
	}
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '.' {
			comp := s[start:i]
			if comp == "" || (len(comp) > 1 && comp[0] == '0') {
				return false
			}
			start = i + 1
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
