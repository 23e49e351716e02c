package inetcast

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/columnkit/inet/pkg/inettype"
)

// Registry maps (from, to) type pairs to cast implementations. Populate it
// during startup; lookups may then run concurrently.
type Registry struct {
	casts []castEntry
}

type castEntry struct {
	from, to arrow.DataType
	fn       CastFunc
}

// NewRegistry returns an empty cast registry.
func NewRegistry() *Registry { return &Registry{} }

// Register adds fn for the (from, to) pair, replacing any existing entry for
// the same pair.
func (r *Registry) Register(from, to arrow.DataType, fn CastFunc) {
	for i, e := range r.casts {
		if arrow.TypeEqual(e.from, from) && arrow.TypeEqual(e.to, to) {
			r.casts[i].fn = fn
			return
		}
	}
	r.casts = append(r.casts, castEntry{from: from, to: to, fn: fn})
}

// Lookup returns the cast registered for the (from, to) pair.
func (r *Registry) Lookup(from, to arrow.DataType) (CastFunc, bool) {
	for _, e := range r.casts {
		if arrow.TypeEqual(e.from, from) && arrow.TypeEqual(e.to, to) {
			return e.fn, true
		}
	}
	return nil, false
}

// RegisterCasts installs both directions of the inet text casts into r.
func RegisterCasts(r *Registry, opts Options) {
	r.Register(arrow.BinaryTypes.String, inettype.NewType(), VarcharToInet(opts))
	r.Register(inettype.NewType(), arrow.BinaryTypes.String, InetToVarchar(opts))
}
