package dicom

import (
	"fmt"

	"github.com/google/btree"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

type entry struct {
	tag  tag.Tag
	attr Attribute
}

func lessEntry(a, b entry) bool {
	return a.tag.Less(b.tag)
}

// Collection owns attributes keyed by tag, iterated in ascending tag order
// and bounded to an inclusive tag range. Attributes reach the collection
// settings through a pointer set on insert and cleared on removal.
//
// A Collection is not safe for concurrent mutation.
type Collection struct {
	tree     *btree.BTreeG[entry]
	start    tag.Tag
	end      tag.Tag
	settings *Settings
}

// Option configures a Collection during construction
type Option func(*Collection)

// WithRange bounds the collection to [start, end]
func WithRange(start, end tag.Tag) Option {
	return func(c *Collection) {
		c.start, c.end = start, end
	}
}

// WithSettings replaces the default settings
func WithSettings(s Settings) Option {
	return func(c *Collection) {
		*c.settings = s
	}
}

// NewCollection creates an empty collection spanning every tag
func NewCollection(opts ...Option) *Collection {
	s := DefaultSettings
	c := &Collection{
		tree:     btree.NewG[entry](16, lessEntry),
		start:    tag.Min,
		end:      tag.Max,
		settings: &s,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start returns the first tag the collection accepts
func (c *Collection) Start() tag.Tag { return c.start }

// End returns the last tag the collection accepts
func (c *Collection) End() tag.Tag { return c.end }

// Settings returns the settings shared with every attribute in the collection
func (c *Collection) Settings() *Settings { return c.settings }

// Len returns the number of attributes
func (c *Collection) Len() int { return c.tree.Len() }

// IsEmpty returns true when the collection holds no attributes
func (c *Collection) IsEmpty() bool { return c.tree.Len() == 0 }

// InRange returns true when t falls inside [start, end]
func (c *Collection) InRange(t tag.Tag) bool {
	return !t.Less(c.start) && !c.end.Less(t)
}

// Lookup returns an existing attribute without creating one
func (c *Collection) Lookup(t tag.Tag) (Attribute, bool) {
	e, ok := c.tree.Get(entry{tag: t})
	if !ok {
		return nil, false
	}
	return e.attr, true
}

// Contains returns true when the tag is present, even with an empty value
func (c *Collection) Contains(t tag.Tag) bool {
	return c.tree.Has(entry{tag: t})
}

// TryGet returns the attribute when it is present and not empty
func (c *Collection) TryGet(t tag.Tag) (Attribute, bool) {
	a, ok := c.Lookup(t)
	if !ok || a.IsEmpty() {
		return nil, false
	}
	return a, true
}

// Get returns the attribute for t, creating an empty one of the dictionary
// VR when absent. Tags outside the range fail with *OutOfRangeTagError, or
// when IgnoreOutOfRangeTags is set, return an attribute that is never added.
func (c *Collection) Get(t tag.Tag) (Attribute, error) {
	if a, ok := c.Lookup(t); ok {
		return a, nil
	}
	if !c.InRange(t) {
		if c.settings.IgnoreOutOfRangeTags {
			return NewAttribute(t), nil
		}
		return nil, &OutOfRangeTagError{Tag: t, Start: c.start, End: c.end}
	}
	a := NewAttribute(t)
	c.insert(a)
	return a, nil
}

// Set stores a under t, replacing and detaching any previous attribute. A
// nil attribute removes t.
func (c *Collection) Set(t tag.Tag, a Attribute) error {
	if a == nil {
		c.Remove(t)
		return nil
	}
	if a.Tag() != t {
		return fmt.Errorf("%w: key %s, attribute %s", ErrTagMismatch, t, a.Tag())
	}
	if !c.InRange(t) {
		if c.settings.IgnoreOutOfRangeTags {
			return nil
		}
		return &OutOfRangeTagError{Tag: t, Start: c.start, End: c.end}
	}
	c.Remove(t)
	c.insert(a)
	return nil
}

// Add stores a under its own tag
func (c *Collection) Add(a Attribute) error {
	return c.Set(a.Tag(), a)
}

func (c *Collection) insert(a Attribute) {
	a.bind(c.settings)
	c.tree.ReplaceOrInsert(entry{tag: a.Tag(), attr: a})
}

// Remove deletes and detaches the attribute for t, returning true if it was
// present
func (c *Collection) Remove(t tag.Tag) bool {
	e, ok := c.tree.Delete(entry{tag: t})
	if ok {
		e.attr.bind(nil)
	}
	return ok
}

// SetValue creates or fetches t and assigns v through SetValues
func (c *Collection) SetValue(t tag.Tag, v any) error {
	a, err := c.Get(t)
	if err != nil {
		return err
	}
	return a.SetValues(v)
}

// Each calls fn for every attribute in ascending tag order until fn returns
// false
func (c *Collection) Each(fn func(Attribute) bool) {
	c.tree.Ascend(func(e entry) bool {
		return fn(e.attr)
	})
}

// Range calls fn for the attributes in [start, stop]
func (c *Collection) Range(start, stop tag.Tag, fn func(Attribute) bool) {
	c.tree.AscendGreaterOrEqual(entry{tag: start}, func(e entry) bool {
		if stop.Less(e.tag) {
			return false
		}
		return fn(e.attr)
	})
}

// Attributes returns the attributes in ascending tag order
func (c *Collection) Attributes() []Attribute {
	attrs := make([]Attribute, 0, c.tree.Len())
	c.Each(func(a Attribute) bool {
		attrs = append(attrs, a)
		return true
	})
	return attrs
}

// SetSpecificCharacterSet records the character set in the settings and the
// (0008,0005) attribute. Sequence items inherit it without the attribute.
func (c *Collection) SetSpecificCharacterSet(cs string) error {
	if c.InRange(tag.SpecificCharacterSet) {
		if cs == "" {
			c.Remove(tag.SpecificCharacterSet)
		} else if err := c.SetValue(tag.SpecificCharacterSet, cs); err != nil {
			return err
		}
	}
	c.inheritCharacterSet(cs)
	return nil
}

func (c *Collection) inheritCharacterSet(cs string) {
	c.settings.SpecificCharacterSet = cs
	c.Each(func(a Attribute) bool {
		if sq, ok := a.(*Sequence); ok {
			for _, item := range sq.items {
				item.inheritCharacterSet(cs)
			}
		}
		return true
	})
}

// Copy returns a deep copy of the attributes before stopTag. Private tags,
// UN attributes and the bulk binary VRs (OB, OD, OF, OL, OW) are left out
// unless requested.
func (c *Collection) Copy(copyBinary, copyPrivate, copyUnknown bool, stopTag tag.Tag) *Collection {
	cp := NewCollection(WithRange(c.start, c.end), WithSettings(*c.settings))
	c.Each(func(a Attribute) bool {
		t := a.Tag()
		if !t.Less(stopTag) {
			return false
		}
		switch {
		case t.IsPrivate() && !copyPrivate:
			return true
		case a.VR() == vr.UN && !copyUnknown:
			return true
		case a.VR().IsBulk() && !copyBinary:
			return true
		}
		cp.insert(a.Copy(copyBinary))
		return true
	})
	return cp
}

// Clone returns a full deep copy
func (c *Collection) Clone() *Collection {
	return c.Copy(true, true, true, tag.Max)
}

// CalculateWriteLength is the encoded size of the non empty attributes in
// [start, stop]. Existing group length attributes are skipped; with
// WriteGroupLengths a 12 byte group length element is counted once per
// group.
func (c *Collection) CalculateWriteLength(start, stop tag.Tag, ts transfer.Syntax, opts WriteOptions) uint32 {
	var length uint32
	group := -1
	c.Range(start, stop, func(a Attribute) bool {
		t := a.Tag()
		if a.IsEmpty() || t.IsGroupLength() {
			return true
		}
		if opts.WriteGroupLengths && int(t.Group) != group {
			group = int(t.Group)
			length += 12
		}
		length += a.CalculateWriteLength(ts, opts)
		return true
	})
	return length
}

// CalculateGroupWriteLength is CalculateWriteLength limited to one group
func (c *Collection) CalculateGroupWriteLength(group uint16, ts transfer.Syntax, opts WriteOptions) uint32 {
	return c.CalculateWriteLength(tag.New(group, 0x0000), tag.New(group, 0xFFFF), ts, opts)
}
