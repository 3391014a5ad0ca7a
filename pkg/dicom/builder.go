package dicom

import (
	"fmt"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/uid"
)

// ImplementationClassUID and ImplementationVersionName identify files this
// package writes
const (
	ImplementationClassUID    = "1.2.826.0.1.3680043.8.498.1"
	ImplementationVersionName = "DCMATTR_GO"
)

// ValueOption populates a collection
type ValueOption func(*Collection) error

// Build creates a collection and applies values in order
func Build(opts []Option, values ...ValueOption) (*Collection, error) {
	c := NewCollection(opts...)
	if err := c.Apply(values...); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply runs each option against c, stopping at the first error
func (c *Collection) Apply(values ...ValueOption) error {
	for _, v := range values {
		if err := v(c); err != nil {
			return err
		}
	}
	return nil
}

// WithValue assigns v to the dictionary VR attribute for t
func WithValue(t tag.Tag, v any) ValueOption {
	return func(c *Collection) error {
		if err := c.SetValue(t, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", t, err)
		}
		return nil
	}
}

// WithAttribute stores a prebuilt attribute
func WithAttribute(a Attribute) ValueOption {
	return func(c *Collection) error {
		return c.Add(a)
	}
}

// WithItems adds a sequence whose items are built from each option list
func WithItems(t tag.Tag, items ...[]ValueOption) ValueOption {
	return func(c *Collection) error {
		sq := NewSQ(t)
		if err := c.Add(sq); err != nil {
			return err
		}
		sq.SetNullValue()
		for i, values := range items {
			if err := sq.AddItem().Apply(values...); err != nil {
				return fmt.Errorf("sequence %s item %d: %w", t, i+1, err)
			}
		}
		return nil
	}
}

// WithCharacterSet sets (0008,0005) and the collection character set
func WithCharacterSet(cs string) ValueOption {
	return func(c *Collection) error {
		return c.SetSpecificCharacterSet(cs)
	}
}

// WithFileMeta adds the group 0002 attributes for a Part 10 file
func WithFileMeta(sopClassUID, sopInstanceUID string, ts transfer.Syntax) ValueOption {
	return func(c *Collection) error {
		return c.Apply(
			WithValue(tag.FileMetaInformationVersion, []byte{0x00, 0x01}),
			WithValue(tag.MediaStorageSOPClassUID, sopClassUID),
			WithValue(tag.MediaStorageSOPInstanceUID, sopInstanceUID),
			WithValue(tag.TransferSyntaxUID, ts.UID()),
			WithValue(tag.ImplementationClassUID, ImplementationClassUID),
			WithValue(tag.ImplementationVersionName, ImplementationVersionName),
		)
	}
}

// WithNewInstance sets SOP Class UID and a generated SOP Instance UID
func WithNewInstance(sopClass *uid.UID) ValueOption {
	return func(c *Collection) error {
		return c.Apply(
			WithValue(tag.SOPClassUID, sopClass),
			WithValue(tag.SOPInstanceUID, uid.New()),
		)
	}
}
