package py3flag

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/2x3systems/go3flag/lib3flag"
	"github.com/2x3systems/go3flag/problem"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyFlagType       = py.NewType("Flag", "a 3-graph whose first vertices are the ordered roots of a type")
	pyFlagStreamType = py.NewType("FlagStream", "lib3flag.FlagStream")
)

type pyFlag struct {
	*lib3flag.Flag
}

func (X pyFlag) Type() *py.Type {
	return pyFlagType
}

func (X pyFlag) M__str__() (py.Object, error) {
	return py.String(X.String()), nil
}

func (X pyFlag) M__repr__() (py.Object, error) {
	return py.String(fmt.Sprintf("Flag(%q)", X.String())), nil
}

func (X pyFlag) M__eq__(other py.Object) (py.Object, error) {
	if Y, ok := other.(pyFlag); ok {
		return py.NewBool(X.IsEqual(Y.Flag)), nil
	}
	return py.NotImplemented, nil
}

func wrapFlags(flags []*lib3flag.Flag) *py.List {
	items := make([]py.Object, len(flags))
	for i, X := range flags {
		items[i] = pyFlag{X}
	}
	return py.NewListFromItems(items)
}

// getFlag accepts a Flag object or a flag expression string.
func getFlag(obj py.Object) (*lib3flag.Flag, error) {
	switch v := obj.(type) {
	case pyFlag:
		return v.Flag, nil
	case py.String:
		X, err := lib3flag.NewFlagFromString(string(v))
		if err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		return X, nil
	}
	return nil, py.ExceptionNewf(py.TypeError, "expected Flag or str (got %v)", obj.Type().Name)
}

// getFlags accepts a list or tuple of Flag objects or flag expressions.
func getFlags(obj py.Object) ([]*lib3flag.Flag, error) {
	var items []py.Object
	switch v := obj.(type) {
	case *py.List:
		items = v.Items
	case py.Tuple:
		items = v
	default:
		return nil, py.ExceptionNewf(py.TypeError, "expected list of Flag (got %v)", obj.Type().Name)
	}

	flags := make([]*lib3flag.Flag, len(items))
	for i, item := range items {
		X, err := getFlag(item)
		if err != nil {
			return nil, err
		}
		flags[i] = X
	}
	return flags, nil
}

func getConstraints(obj py.Object) (lib3flag.Constraints, error) {
	if obj == nil {
		return lib3flag.Constraints{}, nil
	}
	C, err := lib3flag.ParseConstraints(string(obj.(py.String)))
	if err != nil {
		return C, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return C, nil
}

func getGenOpts(workers py.Object) lib3flag.GenOpts {
	opts := lib3flag.GenOpts{}
	if workers != nil {
		opts.Workers = int(workers.(py.Int))
	}
	return opts
}

func truthy(obj py.Object) bool {
	switch v := obj.(type) {
	case py.Bool:
		return bool(v)
	case py.Int:
		return v != 0
	}
	return false
}

func wrapErr(err error) error {
	return py.ExceptionNewf(py.ValueError, "%v", err)
}

// generate_graphs(n, constraints="", workers=0)
func py_GenerateGraphs(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	var nObj, constraintsObj, workersObj py.Object
	err := py.ParseTupleAndKeywords(args, kwargs, "i|si", []string{"n", "constraints", "workers"}, &nObj, &constraintsObj, &workersObj)
	if err != nil {
		return nil, err
	}
	C, err := getConstraints(constraintsObj)
	if err != nil {
		return nil, err
	}
	graphs, err := lib3flag.GenerateGraphs(int(nObj.(py.Int)), C, getGenOpts(workersObj))
	if err != nil {
		return nil, wrapErr(err)
	}
	return wrapFlags(graphs), nil
}

// generate_flags(n, type, constraints="", workers=0)
func py_GenerateFlags(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	var nObj, typeObj, constraintsObj, workersObj py.Object
	err := py.ParseTupleAndKeywords(args, kwargs, "iO|si", []string{"n", "type", "constraints", "workers"}, &nObj, &typeObj, &constraintsObj, &workersObj)
	if err != nil {
		return nil, err
	}
	var tg *lib3flag.Flag
	if typeObj != py.None {
		if tg, err = getFlag(typeObj); err != nil {
			return nil, err
		}
	}
	C, err := getConstraints(constraintsObj)
	if err != nil {
		return nil, err
	}
	flags, err := lib3flag.GenerateFlags(int(nObj.(py.Int)), tg, C, getGenOpts(workersObj))
	if err != nil {
		return nil, wrapErr(err)
	}
	return wrapFlags(flags), nil
}

func wrapOrbits(orbs go3flag.OrbitSet) *py.List {
	items := make([]py.Object, len(orbs))
	for i, orb := range orbs {
		tuple := make(py.Tuple, len(orb))
		for j, idx := range orb {
			tuple[j] = py.Int(idx)
		}
		items[i] = tuple
	}
	return py.NewListFromItems(items)
}

// flag_orbits(type, flags)
func py_FlagOrbits(module py.Object, args py.Tuple) (py.Object, error) {
	var typeObj, flagsObj py.Object
	err := py.ParseTuple(args, "OO", &typeObj, &flagsObj)
	if err != nil {
		return nil, err
	}
	tg, err := getFlag(typeObj)
	if err != nil {
		return nil, err
	}
	flags, err := getFlags(flagsObj)
	if err != nil {
		return nil, err
	}
	orbs, err := lib3flag.FlagOrbits(tg, flags)
	if err != nil {
		return nil, wrapErr(err)
	}
	return wrapOrbits(orbs), nil
}

// problem(n, constraints="", workers=0) returns a dict with keys graphs, densities, types, flags, orbits
func py_Problem(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	var nObj, constraintsObj, workersObj py.Object
	err := py.ParseTupleAndKeywords(args, kwargs, "i|si", []string{"n", "constraints", "workers"}, &nObj, &constraintsObj, &workersObj)
	if err != nil {
		return nil, err
	}
	C, err := getConstraints(constraintsObj)
	if err != nil {
		return nil, err
	}
	p, err := problem.Setup(int(nObj.(py.Int)), C, getGenOpts(workersObj))
	if err != nil {
		return nil, wrapErr(err)
	}

	densities := make([]py.Object, len(p.GraphDensities))
	for i, d := range p.GraphDensities {
		densities[i] = py.Float(d)
	}
	types := make([]py.Object, len(p.Blocks))
	flags := make([]py.Object, len(p.Blocks))
	orbits := make([]py.Object, len(p.Blocks))
	for i, tb := range p.Blocks {
		types[i] = pyFlag{tb.Type}
		flags[i] = wrapFlags(tb.Flags)
		orbits[i] = wrapOrbits(tb.Orbits)
	}

	return py.StringDict{
		"graphs":    wrapFlags(p.Graphs),
		"densities": py.NewListFromItems(densities),
		"types":     py.NewListFromItems(types),
		"flags":     py.NewListFromItems(flags),
		"orbits":    py.NewListFromItems(orbits),
	}, nil
}

func py_NewFlag(module py.Object, args py.Tuple) (py.Object, error) {
	var exprObj py.Object
	err := py.ParseTuple(args, "s", &exprObj)
	if err != nil {
		return nil, err
	}
	X, err := getFlag(exprObj)
	if err != nil {
		return nil, err
	}
	return pyFlag{X}, nil
}

func py_Flag_NumVerts(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyFlag)
	return py.Int(X.VertexCount()), nil
}

func py_Flag_TypeSize(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyFlag)
	return py.Int(X.TypeSize()), nil
}

func py_Flag_Edges(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyFlag)
	edges := X.Edges()
	items := make([]py.Object, len(edges))
	for i, e := range edges {
		Va, Vb, Vc := e.Vtx()
		items[i] = py.Tuple{py.Int(Va), py.Int(Vb), py.Int(Vc)}
	}
	return py.NewListFromItems(items), nil
}

func py_Flag_Degrees(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyFlag)
	deg := X.Degrees()
	items := make(py.Tuple, len(deg))
	for i, d := range deg {
		items[i] = py.Int(d)
	}
	return items, nil
}

func py_Flag_Canonize(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyFlag)
	return pyFlag{X.Canonize()}, nil
}

func py_Flag_Hash(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyFlag)
	return py.String(fmt.Sprintf("%016x", X.Hash())), nil
}

func py_Flag_IsIsomorphic(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyFlag)
	var otherObj py.Object
	if err := py.ParseTuple(args, "O", &otherObj); err != nil {
		return nil, err
	}
	Y, err := getFlag(otherObj)
	if err != nil {
		return nil, err
	}
	return py.NewBool(X.IsIsomorphic(Y)), nil
}

func py_Flag_Admissible(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyFlag)
	var constraintsObj py.Object
	if err := py.ParseTuple(args, "s", &constraintsObj); err != nil {
		return nil, err
	}
	C, err := getConstraints(constraintsObj)
	if err != nil {
		return nil, err
	}
	return py.NewBool(C.IsAdmissible(X.Flag, 0)), nil
}

func py_Flag_Stream(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyFlag)
	return wrapFlagStream(lib3flag.StreamFlags([]*lib3flag.Flag{X.Flag})), nil
}

type flagStream struct {
	*lib3flag.FlagStream
}

func (stream flagStream) Type() *py.Type {
	return pyFlagStreamType
}

func wrapFlagStream(stream *lib3flag.FlagStream) py.Object {
	return py.Object(flagStream{stream})
}

// stream(flags)
func py_Stream(module py.Object, args py.Tuple) (py.Object, error) {
	var flagsObj py.Object
	if err := py.ParseTuple(args, "O", &flagsObj); err != nil {
		return nil, err
	}
	flags, err := getFlags(flagsObj)
	if err != nil {
		return nil, err
	}
	return wrapFlagStream(lib3flag.StreamFlags(flags)), nil
}

func py_FlagStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(flagStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

func py_FlagStream_Collect(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(flagStream)
	return wrapFlags(stream.Collect()), nil
}

type echoToWriter struct {
	stdout *os.File
	to     *os.File
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	if echo.to == nil {
		return echo.stdout.Write(buf)
	}
	return echo.to.Write(buf)
}

var gOutCount = int32(0)

// Print(label="", file="", hash=False, degrees=False, edges=False)
func py_FlagStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(flagStream)

	var labelObj, fileObj, hashObj, degreesObj, edgesObj py.Object
	err := py.ParseTupleAndKeywords(args, kwargs, "|ssOOO", []string{"label", "file", "hash", "degrees", "edges"},
		&labelObj, &fileObj, &hashObj, &degreesObj, &edgesObj)
	if err != nil {
		return nil, err
	}

	opts := go3flag.DefaultPrintOpts
	if labelObj != nil {
		opts.Label = string(labelObj.(py.String))
	}
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", atomic.AddInt32(&gOutCount, 1))
	}
	opts.Hash = truthy(hashObj)
	opts.Degrees = truthy(degreesObj)
	opts.Edges = truthy(edgesObj)

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if fileObj != nil {
		pathname := string(fileObj.(py.String))
		if dir := filepath.Dir(pathname); dir != "" {
			os.MkdirAll(dir, 0700)
		}
		file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.OSError, "%v", err)
		}
		writer.to = file

		// Close the file once the print stage has drained
		printed := stream.Print(writer, opts)
		next := lib3flag.NewFlagStream()
		go func() {
			for X := range printed.Outlet {
				next.Outlet <- X
			}
			file.Close()
			next.Close()
		}()
		return wrapFlagStream(next), nil
	}

	return wrapFlagStream(stream.Print(writer, opts)), nil
}

func py_FlagStream_DropDupes(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(flagStream)

	// A memory resident set that gets closed when the stream closes
	set := lib3flag.NewDropDupes(lib3flag.DropDupeOpts{})
	next := stream.AddTo(set, lib3flag.AddFlagOpts{AutoCloseSet: true})
	return wrapFlagStream(next), nil
}

func py_FlagStream_Canonize(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(flagStream)
	return wrapFlagStream(stream.Canonize()), nil
}

func py_FlagStream_Select(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(flagStream)
	var constraintsObj py.Object
	if err := py.ParseTuple(args, "s", &constraintsObj); err != nil {
		return nil, err
	}
	C, err := getConstraints(constraintsObj)
	if err != nil {
		return nil, err
	}
	return wrapFlagStream(stream.SelectAdmissible(C)), nil
}

func init() {

	/////////////////////////////////
	// Flag
	{
		pyFlagType.Dict["NumVerts"] = py.MustNewMethod("NumVerts", py_Flag_NumVerts, 0, "")
		pyFlagType.Dict["TypeSize"] = py.MustNewMethod("TypeSize", py_Flag_TypeSize, 0, "number of root vertices")
		pyFlagType.Dict["Edges"] = py.MustNewMethod("Edges", py_Flag_Edges, 0, "sorted list of edge triples")
		pyFlagType.Dict["Degrees"] = py.MustNewMethod("Degrees", py_Flag_Degrees, 0, "")
		pyFlagType.Dict["Canonize"] = py.MustNewMethod("Canonize", py_Flag_Canonize, 0, "returns the canonic form of this Flag")
		pyFlagType.Dict["Hash"] = py.MustNewMethod("Hash", py_Flag_Hash, 0, "hex content hash of the canonic form")
		pyFlagType.Dict["IsIsomorphic"] = py.MustNewMethod("IsIsomorphic", py_Flag_IsIsomorphic, 0, "")
		pyFlagType.Dict["Admissible"] = py.MustNewMethod("Admissible", py_Flag_Admissible, 0, "tests this Flag against a constraint expression")
		pyFlagType.Dict["Stream"] = py.MustNewMethod("Stream", py_Flag_Stream, 0, "")
	}

	/////////////////////////////////
	// FlagStream
	{
		pyFlagStreamType.Dict["Go"] = py.MustNewMethod("Go", py_FlagStream_Go, 0, "counts the number of flags output from the FlagStream")
		pyFlagStreamType.Dict["Collect"] = py.MustNewMethod("Collect", py_FlagStream_Collect, 0, "returns the flags output from the FlagStream as a list")
		pyFlagStreamType.Dict["Print"] = py.MustNewMethod("Print", py_FlagStream_Print, 0, "prints each flag from the FlagStream")
		pyFlagStreamType.Dict["Canonize"] = py.MustNewMethod("Canonize", py_FlagStream_Canonize, 0, "")
		pyFlagStreamType.Dict["DropDupes"] = py.MustNewMethod("DropDupes", py_FlagStream_DropDupes, 0, "")
		pyFlagStreamType.Dict["Select"] = py.MustNewMethod("Select", py_FlagStream_Select, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Flag", py_NewFlag, 0, "Flag(expr) parses a flag expression such as '4:1:(2,3,4)'"),
			py.MustNewMethod("generate_graphs", py_GenerateGraphs, 0, "generate_graphs(n, constraints='', workers=0)"),
			py.MustNewMethod("generate_flags", py_GenerateFlags, 0, "generate_flags(n, type, constraints='', workers=0)"),
			py.MustNewMethod("flag_orbits", py_FlagOrbits, 0, "flag_orbits(type, flags)"),
			py.MustNewMethod("problem", py_Problem, 0, "problem(n, constraints='', workers=0)"),
			py.MustNewMethod("stream", py_Stream, 0, "stream(flags) returns a FlagStream"),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"MAX_VTX":     py.Int(go3flag.MaxVtxID),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_py3flag",
				Doc:  "3-graph flag generation gpython module",
			},
			Methods: methods,
			Globals: globals,
		})
	}
}
