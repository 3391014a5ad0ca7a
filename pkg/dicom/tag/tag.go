// Package tag defines DICOM tags and a dictionary of their VR and multiplicity
package tag

// Tag represents a DICOM tag with Group and Element
type Tag struct {
	Group   uint16
	Element uint16
}

// New creates a new Tag
func New(group, element uint16) Tag {
	return Tag{Group: group, Element: element}
}

// FromUint32 splits a combined ggggeeee value
func FromUint32(v uint32) Tag {
	return Tag{Group: uint16(v >> 16), Element: uint16(v)}
}

// Uint32 returns the combined ggggeeee value, which orders like the tag
func (t Tag) Uint32() uint32 {
	return uint32(t.Group)<<16 | uint32(t.Element)
}

// Equals compares two tags
func (t Tag) Equals(other Tag) bool {
	return t.Group == other.Group && t.Element == other.Element
}

// Less orders tags by group then element
func (t Tag) Less(other Tag) bool {
	return t.Uint32() < other.Uint32()
}

// IsPrivate returns true if this is a private tag (odd group number)
func (t Tag) IsPrivate() bool {
	return t.Group%2 == 1
}

// IsPrivateCreator returns true for the (gggg,0010-00FF) reservation elements
func (t Tag) IsPrivateCreator() bool {
	return t.IsPrivate() && t.Element >= 0x0010 && t.Element <= 0x00FF
}

// IsGroupLength returns true for (gggg,0000) group length elements
func (t Tag) IsGroupLength() bool {
	return t.Element == 0x0000
}

// IsGroup0002 returns true if this tag is in the File Meta Information group
func (t Tag) IsGroup0002() bool {
	return t.Group == 0x0002
}

// IsDelimiter returns true for item and sequence delimitation tags
func (t Tag) IsDelimiter() bool {
	return t.Group == 0xFFFE
}

// GroupLength returns the group length tag for this tag's group
func (t Tag) GroupLength() Tag {
	return Tag{Group: t.Group}
}

// Range bounds
var (
	Min = Tag{0x0000, 0x0000}
	Max = Tag{0xFFFF, 0xFFFF}
)

// Item and delimitation tags
var (
	Item                     = Tag{0xFFFE, 0xE000}
	ItemDelimitationItem     = Tag{0xFFFE, 0xE00D}
	SequenceDelimitationItem = Tag{0xFFFE, 0xE0DD}
)

// File Meta Information (Group 0002)
var (
	FileMetaInformationGroupLength = Tag{0x0002, 0x0000}
	FileMetaInformationVersion     = Tag{0x0002, 0x0001}
	MediaStorageSOPClassUID        = Tag{0x0002, 0x0002}
	MediaStorageSOPInstanceUID     = Tag{0x0002, 0x0003}
	TransferSyntaxUID              = Tag{0x0002, 0x0010}
	ImplementationClassUID         = Tag{0x0002, 0x0012}
	ImplementationVersionName      = Tag{0x0002, 0x0013}
)

// SOP Common and General Study (Group 0008)
var (
	SpecificCharacterSet     = Tag{0x0008, 0x0005}
	ImageType                = Tag{0x0008, 0x0008}
	InstanceCreationDate     = Tag{0x0008, 0x0012}
	InstanceCreationTime     = Tag{0x0008, 0x0013}
	SOPClassUID              = Tag{0x0008, 0x0016}
	SOPInstanceUID           = Tag{0x0008, 0x0018}
	StudyDate                = Tag{0x0008, 0x0020}
	SeriesDate               = Tag{0x0008, 0x0021}
	AcquisitionDate          = Tag{0x0008, 0x0022}
	ContentDate              = Tag{0x0008, 0x0023}
	AcquisitionDateTime      = Tag{0x0008, 0x002A}
	StudyTime                = Tag{0x0008, 0x0030}
	SeriesTime               = Tag{0x0008, 0x0031}
	ContentTime              = Tag{0x0008, 0x0033}
	AccessionNumber          = Tag{0x0008, 0x0050}
	RetrieveAETitle          = Tag{0x0008, 0x0054}
	Modality                 = Tag{0x0008, 0x0060}
	Manufacturer             = Tag{0x0008, 0x0070}
	InstitutionName          = Tag{0x0008, 0x0080}
	ReferringPhysicianName   = Tag{0x0008, 0x0090}
	CodeValue                = Tag{0x0008, 0x0100}
	CodingSchemeDesignator   = Tag{0x0008, 0x0102}
	CodeMeaning              = Tag{0x0008, 0x0104}
	StationName              = Tag{0x0008, 0x1010}
	StudyDescription         = Tag{0x0008, 0x1030}
	SeriesDescription        = Tag{0x0008, 0x103E}
	ManufacturerModelName    = Tag{0x0008, 0x1090}
	ReferencedImageSequence  = Tag{0x0008, 0x1140}
	ReferencedSOPClassUID    = Tag{0x0008, 0x1150}
	ReferencedSOPInstanceUID = Tag{0x0008, 0x1155}
	ReferencedFrameNumber    = Tag{0x0008, 0x1160}
	RetrieveURL              = Tag{0x0008, 0x1190}
	DerivationDescription    = Tag{0x0008, 0x2111}
)

// Patient Module (Group 0010)
var (
	PatientName      = Tag{0x0010, 0x0010}
	PatientID        = Tag{0x0010, 0x0020}
	PatientBirthDate = Tag{0x0010, 0x0030}
	PatientSex       = Tag{0x0010, 0x0040}
	OtherPatientIDs  = Tag{0x0010, 0x1000}
	PatientAge       = Tag{0x0010, 0x1010}
	PatientSize      = Tag{0x0010, 0x1020}
	PatientWeight    = Tag{0x0010, 0x1030}
	PatientComments  = Tag{0x0010, 0x4000}
)

// Acquisition (Group 0018)
var (
	SliceThickness     = Tag{0x0018, 0x0050}
	KVP                = Tag{0x0018, 0x0060}
	DeviceSerialNumber = Tag{0x0018, 0x1000}
	SoftwareVersions   = Tag{0x0018, 0x1020}
	ExposureTime       = Tag{0x0018, 0x1150}
	XRayTubeCurrent    = Tag{0x0018, 0x1151}
	TableSpeed         = Tag{0x0018, 0x9309}
	SpiralPitchFactor  = Tag{0x0018, 0x9311}
)

// Relationship (Group 0020)
var (
	StudyInstanceUID        = Tag{0x0020, 0x000D}
	SeriesInstanceUID       = Tag{0x0020, 0x000E}
	StudyID                 = Tag{0x0020, 0x0010}
	SeriesNumber            = Tag{0x0020, 0x0011}
	InstanceNumber          = Tag{0x0020, 0x0013}
	ImagePositionPatient    = Tag{0x0020, 0x0032}
	ImageOrientationPatient = Tag{0x0020, 0x0037}
	FrameOfReferenceUID     = Tag{0x0020, 0x0052}
	ImageComments           = Tag{0x0020, 0x4000}
	DimensionIndexPointer   = Tag{0x0020, 0x9165}
)

// Image Pixel Module (Group 0028)
var (
	SamplesPerPixel                = Tag{0x0028, 0x0002}
	PhotometricInterpretation      = Tag{0x0028, 0x0004}
	NumberOfFrames                 = Tag{0x0028, 0x0008}
	FrameIncrementPointer          = Tag{0x0028, 0x0009}
	Rows                           = Tag{0x0028, 0x0010}
	Columns                        = Tag{0x0028, 0x0011}
	PixelSpacing                   = Tag{0x0028, 0x0030}
	BitsAllocated                  = Tag{0x0028, 0x0100}
	BitsStored                     = Tag{0x0028, 0x0101}
	HighBit                        = Tag{0x0028, 0x0102}
	PixelRepresentation            = Tag{0x0028, 0x0103}
	SmallestImagePixelValue        = Tag{0x0028, 0x0106}
	LargestImagePixelValue         = Tag{0x0028, 0x0107}
	WindowCenter                   = Tag{0x0028, 0x1050}
	WindowWidth                    = Tag{0x0028, 0x1051}
	RescaleIntercept               = Tag{0x0028, 0x1052}
	RescaleSlope                   = Tag{0x0028, 0x1053}
	RedPaletteColorLookupTableData = Tag{0x0028, 0x1201}
	LUTData                        = Tag{0x0028, 0x3006}
)

// Hanging protocol selector values, one per VR
var (
	SelectorAttribute = Tag{0x0072, 0x0026}
	SelectorCSValue   = Tag{0x0072, 0x0062}
	SelectorISValue   = Tag{0x0072, 0x0064}
	SelectorOBValue   = Tag{0x0072, 0x0065}
	SelectorLOValue   = Tag{0x0072, 0x0066}
	SelectorOFValue   = Tag{0x0072, 0x0067}
	SelectorLTValue   = Tag{0x0072, 0x0068}
	SelectorOWValue   = Tag{0x0072, 0x0069}
	SelectorPNValue   = Tag{0x0072, 0x006A}
	SelectorSHValue   = Tag{0x0072, 0x006C}
	SelectorUCValue   = Tag{0x0072, 0x006D}
	SelectorSTValue   = Tag{0x0072, 0x006E}
	SelectorUTValue   = Tag{0x0072, 0x0070}
	SelectorURValue   = Tag{0x0072, 0x0071}
	SelectorDSValue   = Tag{0x0072, 0x0072}
	SelectorODValue   = Tag{0x0072, 0x0073}
	SelectorFDValue   = Tag{0x0072, 0x0074}
	SelectorOLValue   = Tag{0x0072, 0x0075}
	SelectorFLValue   = Tag{0x0072, 0x0076}
	SelectorULValue   = Tag{0x0072, 0x0078}
	SelectorUSValue   = Tag{0x0072, 0x007A}
	SelectorSLValue   = Tag{0x0072, 0x007C}
	SelectorSSValue   = Tag{0x0072, 0x007E}
	SelectorUIValue   = Tag{0x0072, 0x007F}
)

// Pixel data and padding
var (
	TextValue              = Tag{0x0040, 0xA160}
	FloatPixelData         = Tag{0x7FE0, 0x0008}
	DoubleFloatPixelData   = Tag{0x7FE0, 0x0009}
	PixelData              = Tag{0x7FE0, 0x0010}
	DataSetTrailingPadding = Tag{0xFFFC, 0xFFFC}
)
