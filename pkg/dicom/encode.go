package dicom

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

// UndefinedLength marks sequences and items closed by a delimiter
const UndefinedLength uint32 = 0xFFFFFFFF

// CountingWriter counts the bytes written through it
type CountingWriter struct {
	Count  atomic.Int64
	Writer io.Writer
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.Writer.Write(p)
	if err == nil {
		c.Count.Add(int64(n))
	}
	return n, err
}

// EncodeCollection writes the non empty attributes of c in ascending tag
// order. Existing group length attributes are dropped; with
// WriteGroupLengths a fresh one leads every group.
func EncodeCollection(w io.Writer, c *Collection, ts transfer.Syntax, opts WriteOptions) (int64, error) {
	cw := &CountingWriter{Writer: w}
	cs := c.settings.SpecificCharacterSet
	group := -1
	var err error
	c.Each(func(a Attribute) bool {
		t := a.Tag()
		if a.IsEmpty() || t.IsGroupLength() {
			return true
		}
		if opts.WriteGroupLengths && int(t.Group) != group {
			group = int(t.Group)
			if err = writeGroupLength(cw, c, t.Group, ts, opts); err != nil {
				return false
			}
		}
		if err = writeElement(cw, a, ts, opts, cs); err != nil {
			err = fmt.Errorf("failed to write element %s: %w", t, err)
			return false
		}
		return true
	})
	return cw.Count.Load(), err
}

// writeGroupLength emits (gggg,0000). Its value excludes the 12 bytes of
// the element itself but covers group lengths nested in sequence items.
func writeGroupLength(w io.Writer, c *Collection, group uint16, ts transfer.Syntax, opts WriteOptions) error {
	gl := NewUL(tag.New(group, 0x0000))
	if err := gl.AppendUInt32(c.CalculateGroupWriteLength(group, ts, opts) - 12); err != nil {
		return err
	}
	return writeElement(w, gl, ts, opts, "")
}

func writeHeader(w io.Writer, t tag.Tag, v vr.VR, length uint32, ts transfer.Syntax) error {
	bb := buffer.New(ts.Endian())
	bb.WriteUint16(t.Group)
	bb.WriteUint16(t.Element)
	switch {
	case !ts.IsExplicitVR() || t.IsDelimiter() || t == tag.Item:
		bb.WriteUint32(length)
	case v.IsExplicitLength():
		if length > 0xFFFF {
			return fmt.Errorf("%s %s: length %d exceeds 16 bit length field", t, v, length)
		}
		bb.Append([]byte(v))
		bb.WriteUint16(uint16(length))
	default:
		bb.Append([]byte(v))
		bb.Append([]byte{0, 0})
		bb.WriteUint32(length)
	}
	_, err := bb.WriteTo(w)
	return err
}

func writeElement(w io.Writer, a Attribute, ts transfer.Syntax, opts WriteOptions, cs string) error {
	if sq, ok := a.(*Sequence); ok {
		length := sq.itemsLength(ts, opts)
		if opts.UndefinedLengthSequences {
			length = UndefinedLength
		}
		if err := writeHeader(w, a.Tag(), vr.SQ, length, ts); err != nil {
			return err
		}
		if err := encodeItems(w, sq, ts, opts, cs); err != nil {
			return err
		}
		if opts.UndefinedLengthSequences {
			return writeHeader(w, tag.SequenceDelimitationItem, "", 0, ts)
		}
		return nil
	}
	bb, err := a.ByteBuffer(ts, cs)
	if err != nil {
		return err
	}
	if err := writeHeader(w, a.Tag(), a.VR(), uint32(bb.Len()), ts); err != nil {
		return err
	}
	_, err = bb.WriteTo(w)
	return err
}

// encodeItems writes the item headers and contents of a sequence, without
// the sequence delimiter
func encodeItems(w io.Writer, sq *Sequence, ts transfer.Syntax, opts WriteOptions, cs string) error {
	for i, item := range sq.items {
		length := item.CalculateWriteLength(tag.Min, tag.Max, ts, opts)
		if opts.UndefinedLengthSequences {
			length = UndefinedLength
		}
		if err := writeHeader(w, tag.Item, "", length, ts); err != nil {
			return err
		}
		if _, err := EncodeCollection(w, item, ts, opts); err != nil {
			return fmt.Errorf("failed to encode sequence item %d: %w", i+1, err)
		}
		if opts.UndefinedLengthSequences {
			if err := writeHeader(w, tag.ItemDelimitationItem, "", 0, ts); err != nil {
				return err
			}
		}
	}
	return nil
}
