// Package charset maps DICOM Specific Character Set (0008,0005) terms to text
// encodings.
package charset

import (
	"fmt"
	"strings"

	htmlcharset "golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// Default is the repertoire used when no character set is given
const Default = "ISO_IR 6"

var terms = map[string]encoding.Encoding{
	"ISO_IR 100":      charmap.ISO8859_1,
	"ISO 2022 IR 100": charmap.ISO8859_1,
	"ISO_IR 101":      charmap.ISO8859_2,
	"ISO 2022 IR 101": charmap.ISO8859_2,
	"ISO_IR 109":      charmap.ISO8859_3,
	"ISO 2022 IR 109": charmap.ISO8859_3,
	"ISO_IR 110":      charmap.ISO8859_4,
	"ISO 2022 IR 110": charmap.ISO8859_4,
	"ISO_IR 144":      charmap.ISO8859_5,
	"ISO 2022 IR 144": charmap.ISO8859_5,
	"ISO_IR 127":      charmap.ISO8859_6,
	"ISO 2022 IR 127": charmap.ISO8859_6,
	"ISO_IR 126":      charmap.ISO8859_7,
	"ISO 2022 IR 126": charmap.ISO8859_7,
	"ISO_IR 138":      charmap.ISO8859_8,
	"ISO 2022 IR 138": charmap.ISO8859_8,
	"ISO_IR 148":      charmap.ISO8859_9,
	"ISO 2022 IR 148": charmap.ISO8859_9,
	"ISO_IR 166":      charmap.Windows874,
	"ISO 2022 IR 166": charmap.Windows874,
	"ISO_IR 13":       japanese.ShiftJIS,
	"ISO 2022 IR 13":  japanese.ShiftJIS,
	"ISO 2022 IR 87":  japanese.ISO2022JP,
	"ISO 2022 IR 159": japanese.ISO2022JP,
	"ISO 2022 IR 149": korean.EUCKR,
	"ISO 2022 IR 58":  simplifiedchinese.GBK,
	"ISO_IR 192":      unicode.UTF8,
	"GB18030":         simplifiedchinese.GB18030,
	"GBK":             simplifiedchinese.GBK,
}

// labels used by x/net/html/charset for terms without a direct mapping
var labels = map[string]string{
	"ISO_IR 203": "iso-8859-15",
	"KOI8":       "koi8-r",
}

// Term picks the effective term from a possibly multi-valued (0008,0005)
// value. The first value wins unless it is the default repertoire.
func Term(specificCharacterSet string) string {
	parts := strings.Split(specificCharacterSet, `\`)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" && p != Default && p != "ISO 2022 IR 6" {
			return p
		}
	}
	return ""
}

// IsDefault returns true when text is plain 7 bit ASCII
func IsDefault(specificCharacterSet string) bool {
	return Term(specificCharacterSet) == ""
}

// Lookup returns the encoding for a (0008,0005) value. The default
// repertoire returns a nil encoding.
func Lookup(specificCharacterSet string) (encoding.Encoding, error) {
	term := Term(specificCharacterSet)
	if term == "" {
		return nil, nil
	}
	if enc, ok := terms[term]; ok {
		return enc, nil
	}
	label, ok := labels[term]
	if !ok {
		label = strings.ToLower(term)
	}
	if enc, _ := htmlcharset.Lookup(label); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unsupported specific character set %q", term)
}

// Decode converts encoded bytes to a UTF-8 string
func Decode(b []byte, specificCharacterSet string) (string, error) {
	enc, err := Lookup(specificCharacterSet)
	if err != nil {
		return string(b), err
	}
	if enc == nil {
		return string(b), nil
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b), fmt.Errorf("decode %s: %w", Term(specificCharacterSet), err)
	}
	return string(out), nil
}

// Encode converts a UTF-8 string to the character set
func Encode(s string, specificCharacterSet string) ([]byte, error) {
	enc, err := Lookup(specificCharacterSet)
	if err != nil {
		return []byte(s), err
	}
	if enc == nil {
		return []byte(s), nil
	}
	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return []byte(s), fmt.Errorf("encode %s: %w", Term(specificCharacterSet), err)
	}
	return out, nil
}

// EncodedLength returns the byte length of s once encoded. Characters the
// character set cannot represent count as their UTF-8 length.
func EncodedLength(s string, specificCharacterSet string) int {
	b, _ := Encode(s, specificCharacterSet)
	return len(b)
}
