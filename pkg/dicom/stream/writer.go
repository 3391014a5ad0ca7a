package stream

import (
	"compress/flate"
	"fmt"
	"io"
	"os"

	"github.com/jpfielding/dcmattr.go/pkg/dicom"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
)

// Writer encodes collections as data set streams in one transfer syntax
type Writer struct {
	w    io.Writer
	ts   transfer.Syntax
	opts dicom.WriteOptions
}

// NewWriter writes to w as ts
func NewWriter(w io.Writer, ts transfer.Syntax, opts dicom.WriteOptions) (*Writer, error) {
	if !ts.IsKnown() {
		return nil, fmt.Errorf("%w: transfer syntax %q", ErrUnsupported, string(ts))
	}
	return &Writer{w: w, ts: ts, opts: opts}, nil
}

// WriteCollection encodes the non empty attributes of c, returning the
// number of bytes handed to the underlying writer
func (w *Writer) WriteCollection(c *dicom.Collection) (int64, error) {
	if !w.ts.IsDeflated() {
		return dicom.EncodeCollection(w.w, c, w.ts, w.opts)
	}
	cw := &dicom.CountingWriter{Writer: w.w}
	fw, err := flate.NewWriter(cw, flate.DefaultCompression)
	if err != nil {
		return 0, err
	}
	if _, err := dicom.EncodeCollection(fw, c, w.ts, w.opts); err != nil {
		return cw.Count.Load(), err
	}
	err = fw.Close()
	return cw.Count.Load(), err
}

// Write encodes c to w
func Write(w io.Writer, c *dicom.Collection, ts transfer.Syntax, opts dicom.WriteOptions) (int64, error) {
	sw, err := NewWriter(w, ts, opts)
	if err != nil {
		return 0, err
	}
	return sw.WriteCollection(c)
}

// WriteFile encodes c into a new file at path
func WriteFile(path string, c *dicom.Collection, ts transfer.Syntax, opts dicom.WriteOptions) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := Write(f, c, ts, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}
