package lib3flag

import (
	"github.com/2x3systems/go3flag/go3flag"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// ExportEncoding appends a compact varint encoding of X to the given buffer:
//
//	Nv, Nt, Ne, Edge[0], .. Edge[Ne-1]
//
// If opts includes ExportCanonic, X's canonic form is exported instead of X.
func (X *Flag) ExportEncoding(out []byte, opts go3flag.ExportOpts) []byte {
	if opts&go3flag.ExportCanonic != 0 && !X.canonic {
		X = X.Canonize()
	}

	buf := proto.NewBuffer(out)
	buf.EncodeVarint(uint64(X.vtxCount))
	buf.EncodeVarint(uint64(X.typeSize))
	buf.EncodeVarint(uint64(len(X.edges)))
	for _, e := range X.edges {
		buf.EncodeVarint(uint64(e))
	}
	return buf.Bytes()
}

// NewFlagFromEncoding decodes a flag previously exported with ExportEncoding.
func NewFlagFromEncoding(enc []byte) (*Flag, error) {
	X := &Flag{}
	if err := X.InitFromEncoding(enc); err != nil {
		return nil, err
	}
	return X, nil
}

// InitFromEncoding resets X from an encoding previously exported with ExportEncoding.
func (X *Flag) InitFromEncoding(enc []byte) error {
	X.Init(nil)

	buf := proto.NewBuffer(enc)
	var hdr [3]uint64
	for i := range hdr {
		v, err := buf.DecodeVarint()
		if err != nil {
			return errors.Wrap(go3flag.ErrBadEncoding, err.Error())
		}
		hdr[i] = v
	}

	Nv, Nt, Ne := int(hdr[0]), int(hdr[1]), int(hdr[2])
	if Nv > go3flag.MaxVtxID || Nt > Nv || Ne > binomial(Nv, 3) {
		return errors.Wrapf(go3flag.ErrBadEncoding, "header Nv=%d Nt=%d Ne=%d", Nv, Nt, Ne)
	}
	X.vtxCount = Nv
	X.typeSize = Nt

	for i := 0; i < Ne; i++ {
		v, err := buf.DecodeVarint()
		if err != nil {
			return errors.Wrap(go3flag.ErrBadEncoding, err.Error())
		}
		Va, Vb, Vc := Edge(v).Vtx()
		if v > 0x7FFF || Va < 1 || Va >= Vb || Vb >= Vc || Vc > Nv {
			return errors.Wrapf(go3flag.ErrBadEncoding, "bad edge #%d", i)
		}
		X.insertEdge(Edge(v))
	}
	if len(X.edges) != Ne {
		return errors.Wrap(go3flag.ErrBadEncoding, "duplicate edges")
	}
	return nil
}
