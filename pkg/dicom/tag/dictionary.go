package tag

import (
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

// Entry describes a dictionary tag
type Entry struct {
	Tag     Tag
	Keyword string
	VR      vr.VR
	VM      string // value multiplicity, e.g. "1", "2", "1-n"
	Retired bool
	MultiVR bool // VR depends on context (e.g. OB or OW pixel data)
}

// MaxLength is the maximum length of a single value for the entry VR
func (e Entry) MaxLength() uint32 {
	return e.VR.MaxLength()
}

// IsSequence returns true for SQ entries
func (e Entry) IsSequence() bool {
	return e.VR == vr.SQ
}

var dictionary = map[Tag]Entry{}

func add(t Tag, keyword string, v vr.VR, vm string) {
	dictionary[t] = Entry{Tag: t, Keyword: keyword, VR: v, VM: vm}
}

func addMulti(t Tag, keyword string, v vr.VR, vm string) {
	dictionary[t] = Entry{Tag: t, Keyword: keyword, VR: v, VM: vm, MultiVR: true}
}

func addRetired(t Tag, keyword string, v vr.VR, vm string) {
	dictionary[t] = Entry{Tag: t, Keyword: keyword, VR: v, VM: vm, Retired: true}
}

func init() {
	add(FileMetaInformationVersion, "FileMetaInformationVersion", vr.OB, "1")
	add(MediaStorageSOPClassUID, "MediaStorageSOPClassUID", vr.UI, "1")
	add(MediaStorageSOPInstanceUID, "MediaStorageSOPInstanceUID", vr.UI, "1")
	add(TransferSyntaxUID, "TransferSyntaxUID", vr.UI, "1")
	add(ImplementationClassUID, "ImplementationClassUID", vr.UI, "1")
	add(ImplementationVersionName, "ImplementationVersionName", vr.SH, "1")

	add(SpecificCharacterSet, "SpecificCharacterSet", vr.CS, "1-n")
	add(ImageType, "ImageType", vr.CS, "2-n")
	add(InstanceCreationDate, "InstanceCreationDate", vr.DA, "1")
	add(InstanceCreationTime, "InstanceCreationTime", vr.TM, "1")
	add(SOPClassUID, "SOPClassUID", vr.UI, "1")
	add(SOPInstanceUID, "SOPInstanceUID", vr.UI, "1")
	add(StudyDate, "StudyDate", vr.DA, "1")
	add(SeriesDate, "SeriesDate", vr.DA, "1")
	add(AcquisitionDate, "AcquisitionDate", vr.DA, "1")
	add(ContentDate, "ContentDate", vr.DA, "1")
	add(AcquisitionDateTime, "AcquisitionDateTime", vr.DT, "1")
	add(StudyTime, "StudyTime", vr.TM, "1")
	add(SeriesTime, "SeriesTime", vr.TM, "1")
	add(ContentTime, "ContentTime", vr.TM, "1")
	add(AccessionNumber, "AccessionNumber", vr.SH, "1")
	add(RetrieveAETitle, "RetrieveAETitle", vr.AE, "1-n")
	add(Modality, "Modality", vr.CS, "1")
	add(Manufacturer, "Manufacturer", vr.LO, "1")
	add(InstitutionName, "InstitutionName", vr.LO, "1")
	add(ReferringPhysicianName, "ReferringPhysicianName", vr.PN, "1")
	add(CodeValue, "CodeValue", vr.SH, "1")
	add(CodingSchemeDesignator, "CodingSchemeDesignator", vr.SH, "1")
	add(CodeMeaning, "CodeMeaning", vr.LO, "1")
	add(StationName, "StationName", vr.SH, "1")
	add(StudyDescription, "StudyDescription", vr.LO, "1")
	add(SeriesDescription, "SeriesDescription", vr.LO, "1")
	add(ManufacturerModelName, "ManufacturerModelName", vr.LO, "1")
	add(ReferencedImageSequence, "ReferencedImageSequence", vr.SQ, "1")
	add(ReferencedSOPClassUID, "ReferencedSOPClassUID", vr.UI, "1")
	add(ReferencedSOPInstanceUID, "ReferencedSOPInstanceUID", vr.UI, "1")
	add(ReferencedFrameNumber, "ReferencedFrameNumber", vr.IS, "1-n")
	add(RetrieveURL, "RetrieveURL", vr.UR, "1")
	add(DerivationDescription, "DerivationDescription", vr.ST, "1")

	add(PatientName, "PatientName", vr.PN, "1")
	add(PatientID, "PatientID", vr.LO, "1")
	add(PatientBirthDate, "PatientBirthDate", vr.DA, "1")
	add(PatientSex, "PatientSex", vr.CS, "1")
	addRetired(OtherPatientIDs, "OtherPatientIDs", vr.LO, "1-n")
	add(PatientAge, "PatientAge", vr.AS, "1")
	add(PatientSize, "PatientSize", vr.DS, "1")
	add(PatientWeight, "PatientWeight", vr.DS, "1")
	add(PatientComments, "PatientComments", vr.LT, "1")

	add(SliceThickness, "SliceThickness", vr.DS, "1")
	add(KVP, "KVP", vr.DS, "1")
	add(DeviceSerialNumber, "DeviceSerialNumber", vr.LO, "1")
	add(SoftwareVersions, "SoftwareVersions", vr.LO, "1-n")
	add(ExposureTime, "ExposureTime", vr.IS, "1")
	add(XRayTubeCurrent, "XRayTubeCurrent", vr.IS, "1")
	add(TableSpeed, "TableSpeed", vr.FD, "1")
	add(SpiralPitchFactor, "SpiralPitchFactor", vr.FD, "1")

	add(StudyInstanceUID, "StudyInstanceUID", vr.UI, "1")
	add(SeriesInstanceUID, "SeriesInstanceUID", vr.UI, "1")
	add(StudyID, "StudyID", vr.SH, "1")
	add(SeriesNumber, "SeriesNumber", vr.IS, "1")
	add(InstanceNumber, "InstanceNumber", vr.IS, "1")
	add(ImagePositionPatient, "ImagePositionPatient", vr.DS, "3")
	add(ImageOrientationPatient, "ImageOrientationPatient", vr.DS, "6")
	add(FrameOfReferenceUID, "FrameOfReferenceUID", vr.UI, "1")
	add(ImageComments, "ImageComments", vr.LT, "1")
	add(DimensionIndexPointer, "DimensionIndexPointer", vr.AT, "1")

	add(SamplesPerPixel, "SamplesPerPixel", vr.US, "1")
	add(PhotometricInterpretation, "PhotometricInterpretation", vr.CS, "1")
	add(NumberOfFrames, "NumberOfFrames", vr.IS, "1")
	add(FrameIncrementPointer, "FrameIncrementPointer", vr.AT, "1-n")
	add(Rows, "Rows", vr.US, "1")
	add(Columns, "Columns", vr.US, "1")
	add(PixelSpacing, "PixelSpacing", vr.DS, "2")
	add(BitsAllocated, "BitsAllocated", vr.US, "1")
	add(BitsStored, "BitsStored", vr.US, "1")
	add(HighBit, "HighBit", vr.US, "1")
	add(PixelRepresentation, "PixelRepresentation", vr.US, "1")
	addMulti(SmallestImagePixelValue, "SmallestImagePixelValue", vr.US, "1")
	addMulti(LargestImagePixelValue, "LargestImagePixelValue", vr.US, "1")
	add(WindowCenter, "WindowCenter", vr.DS, "1-n")
	add(WindowWidth, "WindowWidth", vr.DS, "1-n")
	add(RescaleIntercept, "RescaleIntercept", vr.DS, "1")
	add(RescaleSlope, "RescaleSlope", vr.DS, "1")
	add(RedPaletteColorLookupTableData, "RedPaletteColorLookupTableData", vr.OW, "1")
	addMulti(LUTData, "LUTData", vr.OW, "1-n")

	add(SelectorAttribute, "SelectorAttribute", vr.AT, "1")
	add(SelectorCSValue, "SelectorCSValue", vr.CS, "1-n")
	add(SelectorISValue, "SelectorISValue", vr.IS, "1-n")
	add(SelectorOBValue, "SelectorOBValue", vr.OB, "1")
	add(SelectorLOValue, "SelectorLOValue", vr.LO, "1-n")
	add(SelectorOFValue, "SelectorOFValue", vr.OF, "1")
	add(SelectorLTValue, "SelectorLTValue", vr.LT, "1")
	add(SelectorOWValue, "SelectorOWValue", vr.OW, "1")
	add(SelectorPNValue, "SelectorPNValue", vr.PN, "1-n")
	add(SelectorSHValue, "SelectorSHValue", vr.SH, "1-n")
	add(SelectorUCValue, "SelectorUCValue", vr.UC, "1-n")
	add(SelectorSTValue, "SelectorSTValue", vr.ST, "1")
	add(SelectorUTValue, "SelectorUTValue", vr.UT, "1")
	add(SelectorURValue, "SelectorURValue", vr.UR, "1")
	add(SelectorDSValue, "SelectorDSValue", vr.DS, "1-n")
	add(SelectorODValue, "SelectorODValue", vr.OD, "1")
	add(SelectorFDValue, "SelectorFDValue", vr.FD, "1-n")
	add(SelectorOLValue, "SelectorOLValue", vr.OL, "1")
	add(SelectorFLValue, "SelectorFLValue", vr.FL, "1-n")
	add(SelectorULValue, "SelectorULValue", vr.UL, "1-n")
	add(SelectorUSValue, "SelectorUSValue", vr.US, "1-n")
	add(SelectorSLValue, "SelectorSLValue", vr.SL, "1-n")
	add(SelectorSSValue, "SelectorSSValue", vr.SS, "1-n")
	add(SelectorUIValue, "SelectorUIValue", vr.UI, "1-n")

	add(TextValue, "TextValue", vr.UT, "1")
	add(FloatPixelData, "FloatPixelData", vr.OF, "1")
	add(DoubleFloatPixelData, "DoubleFloatPixelData", vr.OD, "1")
	addMulti(PixelData, "PixelData", vr.OW, "1")
	add(DataSetTrailingPadding, "DataSetTrailingPadding", vr.OB, "1")
}

// Lookup returns the dictionary entry for a tag. Group lengths and private
// creator elements are synthesized.
func Lookup(t Tag) (Entry, bool) {
	if e, ok := dictionary[t]; ok {
		return e, true
	}
	switch {
	case t.IsGroupLength():
		return Entry{Tag: t, Keyword: "GroupLength", VR: vr.UL, VM: "1"}, true
	case t.IsPrivateCreator():
		return Entry{Tag: t, Keyword: "PrivateCreator", VR: vr.LO, VM: "1"}, true
	}
	return Entry{}, false
}

// Info returns the dictionary entry for a tag, or an UN entry when unknown
func Info(t Tag) Entry {
	if e, ok := Lookup(t); ok {
		return e
	}
	return Entry{Tag: t, Keyword: "", VR: vr.UN, VM: "1-n"}
}

// LookupName returns a human-readable name for known tags
func (t Tag) LookupName() string {
	if e, ok := Lookup(t); ok {
		return e.Keyword
	}
	return ""
}

// Name returns the keyword when known, otherwise the (gggg,eeee) form
func (t Tag) Name() string {
	if name := t.LookupName(); name != "" {
		return name
	}
	if t.IsPrivate() {
		return "Private Tag " + t.String()
	}
	return "Unknown Tag " + t.String()
}
