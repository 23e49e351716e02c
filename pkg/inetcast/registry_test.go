package inetcast

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/require"

	"github.com/columnkit/inet/internal/arrowtest"
	"github.com/columnkit/inet/pkg/inettype"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	RegisterCasts(reg, Options{})
	require.Len(t, reg.casts, 2)

	fn, ok := reg.Lookup(arrow.BinaryTypes.String, inettype.NewType())
	require.True(t, ok)
	require.NotNil(t, fn)

	fn, ok = reg.Lookup(inettype.NewType(), arrow.BinaryTypes.String)
	require.True(t, ok)
	require.NotNil(t, fn)

	_, ok = reg.Lookup(arrow.PrimitiveTypes.Int64, inettype.NewType())
	require.False(t, ok)
}

func TestRegistryReplace(t *testing.T) {
	reg := NewRegistry()
	RegisterCasts(reg, Options{})

	// Re-registering with different options replaces the entries in place.
	RegisterCasts(reg, Options{LegacyMask: true})
	require.Len(t, reg.casts, 2)

	mem := arrowtest.Allocator(t)
	src := arrowtest.StringArray(t, mem, []any{"1.2.3.4/24"})
	defer src.Release()

	fn, ok := reg.Lookup(arrow.BinaryTypes.String, inettype.NewType())
	require.True(t, ok)

	out, err := fn(mem, src)
	require.NoError(t, err)
	defer out.Release()
	require.Equal(t, "1.2.3.4/4", out.(*inettype.Array).ValueStr(0))
}

func TestRegistryDispatch(t *testing.T) {
	reg := NewRegistry()
	RegisterCasts(reg, Options{})

	mem := arrowtest.Allocator(t)
	src := arrowtest.StringArray(t, mem, []any{"192.168.0.1/16", nil})
	defer src.Release()

	// Dispatch the way a host engine would: look the cast up by the source
	// and target types, then apply it.
	fn, ok := reg.Lookup(src.DataType(), inettype.NewType())
	require.True(t, ok)

	out, err := fn(mem, src)
	require.NoError(t, err)
	defer out.Release()

	col := out.(*inettype.Array)
	require.Equal(t, "192.168.0.1/16", col.ValueStr(0))
	require.True(t, col.IsNull(1))
}
