// Package wire implements the read path for the Cap'n Proto wire encoding:
// segment framing, pointer resolution, struct and list layout decoding, and
// scalar default handling, over untrusted byte buffers.
//
// The decoder interprets a buffer as a graph of structs, lists, and scalars
// reachable from a root pointer without copying the bulk of the data.
// Struct and scalar access reads directly out of the original buffer; only
// lists of primitive scalars are materialized into fresh slices.
//
// # Reading a message
//
// Construct a Reader from a framed buffer (multi-segment header) or a flat
// one (a single implicit segment), then decode from the root:
//
//	r, err := wire.NewReader(buf)
//	if err != nil {
//	    return err
//	}
//	person, err := wire.ReadRoot(r, decodePerson)
//
// where decodePerson is a StructFunc, the per-type callback conventionally
// produced by schema compilation:
//
//	func decodePerson(r *wire.Reader, s wire.Struct) (Person, error) {
//	    name, err := r.ReadText(s.Ptr(0))
//	    if err != nil {
//	        return Person{}, err
//	    }
//	    return Person{
//	        Name: name,
//	        Age:  s.Uint32(0, 0),
//	    }, nil
//	}
//
// The core supplies validated layout windows and never inspects field
// semantics; field callbacks recurse back into Read operations for nested
// pointers.
//
// # Hostile input
//
// Every offset and size the decoder walks comes from the buffer itself, so
// all layout computation is bounds-checked against the real segment length
// and a fixed 64 MiB ceiling, and two monotonic budgets (bytes traversed,
// recursion depth) convert amplification and far-pointer-loop attacks into
// deterministic failures. All violations are *errors.Error values; there is
// no lenient mode.
//
// # Limitations
//
// Double-far pointers, capability pointers, and scalar list decoding on
// big-endian hosts are rejected as unsupported. The write path, packed
// compression, and RPC are out of scope.
package wire
