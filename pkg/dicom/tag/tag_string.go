package tag

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// String returns a string representation of the Tag (GGGG,EEEE)
func (t Tag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.Group, t.Element)
}

// Hex returns the eight character ggggeeee form
func (t Tag) Hex() string {
	return fmt.Sprintf("%08X", t.Uint32())
}

// MarshalJSON returns a JSON representation of the Tag
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Parse accepts "(gggg,eeee)", "gggg,eeee" or "ggggeeee"
func Parse(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimSuffix(s, ")"), "(")
	s = strings.ReplaceAll(s, ",", "")
	if len(s) != 8 {
		return Tag{}, fmt.Errorf("invalid tag %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Tag{}, fmt.Errorf("invalid tag %q: %w", s, err)
	}
	return FromUint32(uint32(v)), nil
}
