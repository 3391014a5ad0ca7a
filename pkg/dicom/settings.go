package dicom

// Settings are the collection level flags consulted by attributes
type Settings struct {
	ValidateVRLengths    bool   `yaml:"validate_vr_lengths"`
	ValidateVRValues     bool   `yaml:"validate_vr_values"`
	IgnoreOutOfRangeTags bool   `yaml:"ignore_out_of_range_tags"`
	SpecificCharacterSet string `yaml:"specific_character_set"`
}

// DefaultSettings apply to attributes outside any collection and seed new
// collections
var DefaultSettings = Settings{
	ValidateVRLengths: true,
	ValidateVRValues:  true,
}

// WriteOptions control encoding
type WriteOptions struct {
	// WriteGroupLengths emits a (gggg,0000) UL element ahead of every group
	WriteGroupLengths bool `yaml:"group_lengths"`
	// UndefinedLengthSequences encodes sequences and items with delimiters
	UndefinedLengthSequences bool `yaml:"undefined_length_sequences"`
}

// DumpOptions control Dump output
type DumpOptions struct {
	ShortenLongValues bool // truncate values longer than 64 characters
	Restrict80Chars   bool // cut each line at 80 columns
}

// DefaultDumpOptions shortens long values
var DefaultDumpOptions = DumpOptions{ShortenLongValues: true}
