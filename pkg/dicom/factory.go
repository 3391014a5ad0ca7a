package dicom

import (
	"fmt"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/buffer"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

var constructors = map[vr.VR]func(tag.Tag) Attribute{
	vr.AE: func(t tag.Tag) Attribute { return NewAE(t) },
	vr.AS: func(t tag.Tag) Attribute { return NewAS(t) },
	vr.AT: func(t tag.Tag) Attribute { return NewAT(t) },
	vr.CS: func(t tag.Tag) Attribute { return NewCS(t) },
	vr.DA: func(t tag.Tag) Attribute { return NewDA(t) },
	vr.DS: func(t tag.Tag) Attribute { return NewDS(t) },
	vr.DT: func(t tag.Tag) Attribute { return NewDT(t) },
	vr.FD: func(t tag.Tag) Attribute { return NewFD(t) },
	vr.FL: func(t tag.Tag) Attribute { return NewFL(t) },
	vr.IS: func(t tag.Tag) Attribute { return NewIS(t) },
	vr.LO: func(t tag.Tag) Attribute { return NewLO(t) },
	vr.LT: func(t tag.Tag) Attribute { return NewLT(t) },
	vr.OB: func(t tag.Tag) Attribute { return NewOB(t) },
	vr.OD: func(t tag.Tag) Attribute { return NewOD(t) },
	vr.OF: func(t tag.Tag) Attribute { return NewOF(t) },
	vr.OL: func(t tag.Tag) Attribute { return NewOL(t) },
	vr.OW: func(t tag.Tag) Attribute { return NewOW(t) },
	vr.PN: func(t tag.Tag) Attribute { return NewPN(t) },
	vr.SH: func(t tag.Tag) Attribute { return NewSH(t) },
	vr.SL: func(t tag.Tag) Attribute { return NewSL(t) },
	vr.SQ: func(t tag.Tag) Attribute { return NewSQ(t) },
	vr.SS: func(t tag.Tag) Attribute { return NewSS(t) },
	vr.ST: func(t tag.Tag) Attribute { return NewST(t) },
	vr.TM: func(t tag.Tag) Attribute { return NewTM(t) },
	vr.UC: func(t tag.Tag) Attribute { return NewUC(t) },
	vr.UI: func(t tag.Tag) Attribute { return NewUI(t) },
	vr.UL: func(t tag.Tag) Attribute { return NewUL(t) },
	vr.UN: func(t tag.Tag) Attribute { return NewUN(t) },
	vr.UR: func(t tag.Tag) Attribute { return NewUR(t) },
	vr.US: func(t tag.Tag) Attribute { return NewUS(t) },
	vr.UT: func(t tag.Tag) Attribute { return NewUT(t) },
}

// NewAttribute creates an empty attribute of the dictionary VR. Unknown and
// private tags get UN.
func NewAttribute(t tag.Tag) Attribute {
	return constructors[tag.Info(t).VR](t)
}

// NewAttributeVR creates an empty attribute of VR v. The VR must agree with
// the dictionary unless the tag is unknown, takes several VRs, or v is UN.
func NewAttributeVR(t tag.Tag, v vr.VR) (Attribute, error) {
	ctor, ok := constructors[v]
	if !ok {
		return nil, fmt.Errorf("%w: unknown VR %q for %s", ErrInvalidVR, string(v), t)
	}
	if e, known := tag.Lookup(t); known && e.VR != v && !e.MultiVR && v != vr.UN {
		return nil, fmt.Errorf("%w: %s is %s, not %s", ErrInvalidVR, t, e.VR, v)
	}
	return ctor(t), nil
}

// NewAttributeFromBuffer creates an attribute from raw value bytes as read
// from a stream, skipping string parsing. Text is decoded through the
// specific character set; binary values are swapped from the buffer byte
// order.
func NewAttributeFromBuffer(t tag.Tag, v vr.VR, bb *buffer.ByteBuffer, specificCharacterSet string) (Attribute, error) {
	a, err := NewAttributeVR(t, v)
	if err != nil {
		return nil, err
	}
	switch x := a.(type) {
	case interface {
		SetBuffer(*buffer.ByteBuffer, string) error
	}:
		if err := x.SetBuffer(bb, specificCharacterSet); err != nil {
			return nil, err
		}
	case interface{ SetBuffer(*buffer.ByteBuffer) }:
		x.SetBuffer(bb)
	default:
		return nil, fmt.Errorf("%w: %s %s cannot be built from raw bytes", ErrInvalidType, t, v)
	}
	return a, nil
}

// NewAttributeFromReference creates a binary attribute whose values stay in
// the file until first read
func NewAttributeFromReference(t tag.Tag, v vr.VR, ref *FileReference) (Attribute, error) {
	a, err := NewAttributeVR(t, v)
	if err != nil {
		return nil, err
	}
	r, ok := a.(Referencer)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s cannot reference a file", ErrInvalidType, t, v)
	}
	r.SetReference(ref)
	return a, nil
}
