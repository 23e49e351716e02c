// Package arrowtest has helpers for building small Arrow values in tests.
package arrowtest

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Allocator returns an allocator that fails the test if any buffer allocated
// through it has not been released by the end of the test.
func Allocator(t *testing.T) memory.Allocator {
	t.Helper()

	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	t.Cleanup(func() { mem.AssertSize(t, 0) })
	return mem
}

// StringArray builds a string array from values; nil elements become nulls.
func StringArray(t *testing.T, mem memory.Allocator, values []any) *array.String {
	t.Helper()

	b := array.NewStringBuilder(mem)
	defer b.Release()

	for _, v := range values {
		switch v := v.(type) {
		case nil:
			b.AppendNull()
		case string:
			b.Append(v)
		default:
			t.Fatalf("unsupported value type %T", v)
		}
	}
	return b.NewStringArray()
}

// Record builds a record with a single nullable string column built from
// values as in [StringArray].
func Record(t *testing.T, mem memory.Allocator, name string, values []any) arrow.Record {
	t.Helper()

	col := StringArray(t, mem, values)
	defer col.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: name, Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)
	return array.NewRecord(schema, []arrow.Array{col}, int64(col.Len()))
}

// Values renders every element of arr with ValueStr, nulls included, so tests
// can compare whole columns at once.
func Values(arr arrow.Array) []string {
	out := make([]string, arr.Len())
	for i := range out {
		out[i] = arr.ValueStr(i)
	}
	return out
}
