package go3flag

const (

	// MaxVtxID is the max possible value of a VtxID (a one-based index).
	MaxVtxID = 31

	// VtxIDBits is the number of bits dedicated for a VtxID.  It must be enough bits to represent MaxVtxID.
	VtxIDBits = 5

	// VtxIDMask is the corresponding bit mask for a VtxID
	VtxIDMask = (1 << VtxIDBits) - 1
)

// VtxID is one-based index that identifies a vertex in a given 3-graph or flag (1..MaxVtxID)
type VtxID byte

type ExportOpts int32

const (
	ExportAsAscii ExportOpts = 1 << iota
	ExportCanonic
)

// DedupSet names a CanonicSet implementation used by the generator to reject isomorphs.
type DedupSet string

const (
	DedupMap DedupSet = "map" // hash bucketed in-memory map (default)
	DedupLSM DedupSet = "lsm" // in-memory badger LSM
)

// PrintOpts specifies what is printed when printing a flag
type PrintOpts struct {
	Label   string // Prefix label
	Flag    bool   // If set, prints the flag expression
	Degrees bool   // If set, prints the vertex degree sequence
	Hash    bool   // If set, prints the canonic content hash
	Edges   bool   // If set, prints the edge count
}

// DefaultPrintOpts{}
var DefaultPrintOpts = PrintOpts{
	Flag: true,
}
