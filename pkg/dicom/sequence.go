package dicom

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

// Sequence holds an SQ attribute. Each item is a collection spanning the
// whole tag range. A nil item list is empty; a non nil list without items
// is null.
type Sequence struct {
	attribute
	items []*Collection
}

// NewSQ creates a sequence (SQ) attribute
func NewSQ(t tag.Tag) *Sequence {
	return &Sequence{attribute: newAttribute(t, vr.SQ)}
}

func (s *Sequence) ValueType() reflect.Type {
	return reflect.TypeOf([]*Collection(nil))
}

// Count is the number of items, or one for a null sequence
func (s *Sequence) Count() int {
	if s.IsNull() {
		return 1
	}
	return len(s.items)
}

func (s *Sequence) IsNull() bool {
	return s.items != nil && len(s.items) == 0
}

func (s *Sequence) IsEmpty() bool {
	return s.items == nil
}

func (s *Sequence) SetNullValue() {
	s.items = []*Collection{}
}

func (s *Sequence) SetEmptyValue() {
	s.items = nil
}

// Items returns the sequence items
func (s *Sequence) Items() []*Collection {
	return s.items
}

// Item returns item i or nil
func (s *Sequence) Item(i int) *Collection {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return s.items[i]
}

// AddItem appends a new item inheriting the parent's settings
func (s *Sequence) AddItem() *Collection {
	item := NewCollection(WithSettings(*s.settings()))
	s.items = append(s.items, item)
	return item
}

// AppendItem appends an existing collection as an item
func (s *Sequence) AppendItem(item *Collection) {
	s.items = append(s.items, item)
}

// StreamLength is the defined length encoding of the items in explicit VR
// little endian
func (s *Sequence) StreamLength() uint32 {
	return s.itemsLength(transfer.ExplicitVRLittleEndian, WriteOptions{})
}

func (s *Sequence) itemsLength(ts transfer.Syntax, opts WriteOptions) uint32 {
	var length uint32
	for _, item := range s.items {
		length += 8 + item.CalculateWriteLength(tag.Min, tag.Max, ts, opts)
		if opts.UndefinedLengthSequences {
			length += 8
		}
	}
	return length
}

// CalculateWriteLength includes item headers and, for undefined lengths, the
// item and sequence delimiters
func (s *Sequence) CalculateWriteLength(ts transfer.Syntax, opts WriteOptions) uint32 {
	length := vr.SQ.HeaderLength(ts.IsExplicitVR()) + s.itemsLength(ts, opts)
	if opts.UndefinedLengthSequences {
		length += 8
	}
	return length
}

// ByteBuffer encodes the items with defined lengths
func (s *Sequence) ByteBuffer(ts transfer.Syntax, specificCharacterSet string) (*buffer.ByteBuffer, error) {
	var out bytes.Buffer
	if err := encodeItems(&out, s, ts, WriteOptions{}, specificCharacterSet); err != nil {
		return nil, err
	}
	return buffer.FromBytes(out.Bytes(), ts.Endian()), nil
}

func (s *Sequence) Values() any {
	return s.items
}

// SetValues accepts nil (null), a single *Collection or []*Collection
func (s *Sequence) SetValues(v any) error {
	switch x := v.(type) {
	case nil:
		s.SetNullValue()
	case *Collection:
		s.items = []*Collection{x}
	case []*Collection:
		s.items = append([]*Collection{}, x...)
	default:
		return s.unsupported(fmt.Sprintf("%T", v))
	}
	return nil
}

func (s *Sequence) String() string {
	return fmt.Sprintf("Sequence of %d items", len(s.items))
}

func (s *Sequence) Dump(sb *strings.Builder, prefix string, opts DumpOptions) {
	dumpLine(sb, prefix, s.tag, s.vr, s.String(), opts)
	for i, item := range s.items {
		sb.WriteString(fmt.Sprintf("%s  > Item %d\n", prefix, i+1))
		item.Dump(sb, prefix+"  > ", opts)
	}
}

// Equal compares items pairwise
func (s *Sequence) Equal(other Attribute) bool {
	o, ok := other.(*Sequence)
	if !ok || len(s.items) != len(o.items) {
		return false
	}
	if s.IsNull() != o.IsNull() {
		return false
	}
	for i := range s.items {
		if eq, _ := s.items[i].Equal(o.items[i]); !eq {
			return false
		}
	}
	return true
}

// Copy deep copies every item
func (s *Sequence) Copy(copyBinary bool) Attribute {
	c := &Sequence{attribute: newAttribute(s.tag, s.vr)}
	if s.items == nil {
		return c
	}
	c.items = make([]*Collection, len(s.items))
	for i, item := range s.items {
		c.items[i] = item.Copy(copyBinary, true, true, tag.Max)
	}
	return c
}
