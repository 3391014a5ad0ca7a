package dicom

import (
	"encoding/json"
	"strings"
)

// Dump writes one line per attribute, nesting sequence items under prefix
func (c *Collection) Dump(sb *strings.Builder, prefix string, opts DumpOptions) {
	c.Each(func(a Attribute) bool {
		a.Dump(sb, prefix, opts)
		return true
	})
}

// String returns the dump of the collection with default options
func (c *Collection) String() string {
	if c == nil {
		return "<nil>"
	}
	var sb strings.Builder
	c.Dump(&sb, "", DefaultDumpOptions)
	return sb.String()
}

type jsonAttribute struct {
	Tag   string            `json:"tag"`
	Name  string            `json:"name,omitempty"`
	VR    string            `json:"vr"`
	Value any               `json:"value,omitempty"`
	Items []json.RawMessage `json:"items,omitempty"`
}

// MarshalJSON returns the attributes as a tag ordered array. Bulk binary
// values are summarized rather than inlined.
func (c *Collection) MarshalJSON() ([]byte, error) {
	out := make([]jsonAttribute, 0, c.Len())
	for _, a := range c.Attributes() {
		ja := jsonAttribute{
			Tag:  a.Tag().String(),
			Name: a.Tag().Name(),
			VR:   a.VR().String(),
		}
		switch x := a.(type) {
		case *Sequence:
			for _, item := range x.items {
				b, err := item.MarshalJSON()
				if err != nil {
					return nil, err
				}
				ja.Items = append(ja.Items, b)
			}
		default:
			if a.VR().IsBulk() || a.StreamLength() > 1024 {
				ja.Value = a.String()
			} else if !a.IsNull() && !a.IsEmpty() {
				ja.Value = a.Values()
			}
		}
		out = append(out, ja)
	}
	return json.Marshal(out)
}
