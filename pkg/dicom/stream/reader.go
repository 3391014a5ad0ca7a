// Package stream parses and writes raw DICOM data sets: element after
// element in one transfer syntax, without the part 10 preamble.
package stream

import (
	"bufio"
	"compress/flate"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jpfielding/dcmattr.go/pkg/dicom"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

// Common errors
var (
	ErrMalformed   = errors.New("stream: malformed data set")
	ErrUnsupported = errors.New("stream: unsupported encoding")
)

// Options control parsing
type Options struct {
	// DeferThreshold leaves binary values of at least this many bytes in
	// the file as references. Zero reads everything. Only *os.File sources
	// can defer.
	DeferThreshold int64 `yaml:"defer_threshold"`
	// StopTag ends parsing at the first top level element at or after it.
	// The zero tag reads to the end.
	StopTag tag.Tag `yaml:"-"`
	// Settings seed the collection being filled
	Settings dicom.Settings `yaml:"settings"`
}

// DefaultOptions read everything into memory with default validation
var DefaultOptions = Options{Settings: dicom.DefaultSettings}

type position struct {
	r   *bufio.Reader
	off int64
}

func (p *position) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.off += int64(n)
	return n, err
}

type header struct {
	tag    tag.Tag
	vr     vr.VR
	length uint32
}

// Reader parses elements from a data set stream
type Reader struct {
	src  *position
	file *os.File
	ts   transfer.Syntax
	opts Options
}

// NewReader parses r as ts. Deflated syntaxes are inflated on the fly.
func NewReader(r io.Reader, ts transfer.Syntax, opts Options) (*Reader, error) {
	if !ts.IsKnown() {
		return nil, fmt.Errorf("%w: transfer syntax %q", ErrUnsupported, string(ts))
	}
	rd := &Reader{ts: ts, opts: opts}
	if ts.IsDeflated() {
		r = flate.NewReader(r)
	} else if f, ok := r.(*os.File); ok && opts.DeferThreshold > 0 {
		if off, err := f.Seek(0, io.SeekCurrent); err == nil {
			rd.file = f
			rd.src = &position{r: bufio.NewReader(f), off: off}
			return rd, nil
		}
	}
	rd.src = &position{r: bufio.NewReader(r)}
	return rd, nil
}

// Read parses a whole data set from r
func Read(r io.Reader, ts transfer.Syntax, opts Options) (*dicom.Collection, error) {
	rd, err := NewReader(r, ts, opts)
	if err != nil {
		return nil, err
	}
	c := dicom.NewCollection(dicom.WithSettings(opts.Settings))
	if err := rd.ReadCollection(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ReadFile parses the data set stored in path. Deferred values reopen the
// file by name when first used.
func ReadFile(path string, ts transfer.Syntax, opts Options) (*dicom.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, ts, opts)
}

// Offset returns the number of bytes consumed from the source
func (r *Reader) Offset() int64 {
	return r.src.off
}

// ReadCollection adds the elements of the stream to c until the stream
// ends or the stop tag is reached
func (r *Reader) ReadCollection(c *dicom.Collection) error {
	return r.readElements(c, -1, false, true)
}

// readElements fills c until end when end is not negative, until an item
// delimiter when delimited, or else until EOF
func (r *Reader) readElements(c *dicom.Collection, end int64, delimited, top bool) error {
	for end < 0 || r.src.off < end {
		h, err := r.readHeader()
		if errors.Is(err, io.EOF) && end < 0 && !delimited {
			return nil
		}
		if err != nil {
			return unexpected(err)
		}
		if h.tag == tag.ItemDelimitationItem {
			if delimited {
				return nil
			}
			return fmt.Errorf("%w: item delimiter outside an item at offset %d", ErrMalformed, r.src.off-8)
		}
		if h.tag.Group == 0xFFFE {
			return fmt.Errorf("%w: unexpected %s at offset %d", ErrMalformed, h.tag, r.src.off-8)
		}
		if top && r.opts.StopTag != (tag.Tag{}) && !h.tag.Less(r.opts.StopTag) {
			return nil
		}
		a, err := r.readValue(h, c)
		if err != nil {
			return fmt.Errorf("failed to read element %s: %w", h.tag, err)
		}
		// sequences are attached by readSequence
		if _, ok := a.(*dicom.Sequence); !ok {
			if err := c.Add(a); err != nil {
				return fmt.Errorf("failed to add element %s: %w", h.tag, err)
			}
		}
		if h.tag == tag.SpecificCharacterSet {
			if err := c.SetSpecificCharacterSet(a.String()); err != nil {
				return err
			}
		}
	}
	if r.src.off != end {
		return fmt.Errorf("%w: item overruns its length by %d bytes", ErrMalformed, r.src.off-end)
	}
	return nil
}

// readHeader reads a tag and, for everything but items and delimiters, the
// VR and length. io.EOF is returned only when the stream ends cleanly
// before the header.
func (r *Reader) readHeader() (header, error) {
	order := r.ts.Endian().ByteOrder()
	var b [8]byte
	if _, err := io.ReadFull(r.src, b[:4]); err != nil {
		return header{}, err
	}
	h := header{tag: tag.New(order.Uint16(b[0:]), order.Uint16(b[2:]))}
	if _, err := io.ReadFull(r.src, b[4:8]); err != nil {
		return h, unexpected(err)
	}
	if h.tag.Group == 0xFFFE || !r.ts.IsExplicitVR() {
		h.length = order.Uint32(b[4:])
		if h.tag.Group != 0xFFFE {
			h.vr = tag.Info(h.tag).VR
		}
		return h, nil
	}
	code := string(b[4:6])
	v, ok := vr.Parse(code)
	if !ok {
		slog.Warn("unknown VR code, reading as UN", "tag", h.tag, "vr", code, "offset", r.src.off-6)
		v = vr.UN
	}
	h.vr = v
	if v.IsExplicitLength() {
		h.length = uint32(order.Uint16(b[6:]))
		return h, nil
	}
	if _, err := io.ReadFull(r.src, b[:4]); err != nil {
		return h, unexpected(err)
	}
	h.length = order.Uint32(b[:4])
	return h, nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func (r *Reader) readValue(h header, c *dicom.Collection) (dicom.Attribute, error) {
	switch {
	case h.vr == vr.SQ:
		return r.readSequence(h, c)
	case h.length == dicom.UndefinedLength && h.vr == vr.UN:
		// UN of undefined length is a sequence in implicit VR little endian
		outer := r.ts
		r.ts = transfer.ImplicitVRLittleEndian
		defer func() { r.ts = outer }()
		return r.readSequence(h, c)
	case h.length == dicom.UndefinedLength:
		return nil, fmt.Errorf("%w: undefined length %s value (encapsulated pixel data)", ErrUnsupported, h.vr)
	}
	if r.deferrable(h) {
		ref := &dicom.FileReference{Path: r.file.Name(), Offset: r.src.off, Length: h.length, Endian: r.ts.Endian()}
		if err := r.skip(int64(h.length)); err != nil {
			return nil, err
		}
		a, err := dicom.NewAttributeFromReference(h.tag, h.vr, ref)
		if errors.Is(err, dicom.ErrInvalidVR) {
			slog.Warn("VR does not match the dictionary, reading as UN", "tag", h.tag, "vr", h.vr)
			return dicom.NewAttributeFromReference(h.tag, vr.UN, ref)
		}
		return a, err
	}
	bb := buffer.New(r.ts.Endian())
	if err := bb.CopyFrom(r.src, int(h.length)); err != nil {
		return nil, unexpected(err)
	}
	cs := c.Settings().SpecificCharacterSet
	a, err := dicom.NewAttributeFromBuffer(h.tag, h.vr, bb, cs)
	if errors.Is(err, dicom.ErrInvalidVR) {
		slog.Warn("VR does not match the dictionary, reading as UN", "tag", h.tag, "vr", h.vr)
		return dicom.NewAttributeFromBuffer(h.tag, vr.UN, bb, cs)
	}
	return a, err
}

func (r *Reader) deferrable(h header) bool {
	return r.file != nil &&
		r.opts.DeferThreshold > 0 &&
		int64(h.length) >= r.opts.DeferThreshold &&
		h.vr.IsBinary()
}

// skip moves past n value bytes, seeking when the source is a file
func (r *Reader) skip(n int64) error {
	if r.file == nil {
		copied, err := io.CopyN(io.Discard, r.src, n)
		if copied < n {
			return unexpected(err)
		}
		return nil
	}
	target := r.src.off + n
	if _, err := r.file.Seek(target, io.SeekStart); err != nil {
		return err
	}
	r.src.r.Reset(r.file)
	r.src.off = target
	return nil
}

// readSequence attaches the sequence to parent before reading so items
// inherit its settings
func (r *Reader) readSequence(h header, parent *dicom.Collection) (dicom.Attribute, error) {
	sq := dicom.NewSQ(h.tag)
	sq.SetNullValue()
	if err := parent.Add(sq); err != nil {
		return nil, err
	}
	end := int64(-1)
	if h.length != dicom.UndefinedLength {
		end = r.src.off + int64(h.length)
	}
	for end < 0 || r.src.off < end {
		ih, err := r.readHeader()
		if err != nil {
			return nil, unexpected(err)
		}
		switch ih.tag {
		case tag.SequenceDelimitationItem:
			if end < 0 {
				return sq, nil
			}
			return nil, fmt.Errorf("%w: sequence delimiter in a defined length sequence", ErrMalformed)
		case tag.Item:
			item := sq.AddItem()
			itemEnd := int64(-1)
			if ih.length != dicom.UndefinedLength {
				itemEnd = r.src.off + int64(ih.length)
			}
			if err := r.readElements(item, itemEnd, itemEnd < 0, false); err != nil {
				return nil, fmt.Errorf("item %d: %w", len(sq.Items()), err)
			}
		default:
			return nil, fmt.Errorf("%w: expected item, found %s", ErrMalformed, ih.tag)
		}
	}
	if r.src.off != end {
		return nil, fmt.Errorf("%w: sequence overruns its length by %d bytes", ErrMalformed, r.src.off-end)
	}
	return sq, nil
}
