// Package inetcast implements the casts between string columns and the inet
// extension type, and a record pipeline that applies them to one column of a
// stream of Arrow record batches.
package inetcast

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/columnkit/inet/pkg/inet"
	"github.com/columnkit/inet/pkg/inettype"
)

var (
	// ErrNotImplemented is returned by the inet to varchar cast unless
	// [Options.Render] is set.
	ErrNotImplemented = errors.New("inet to varchar cast is not implemented")

	// errInvalidInput flags a cast applied to a column of the wrong type.
	errInvalidInput = errors.New("invalid input column type")
)

// Options selects between the current and the historical behavior of the two
// cast directions.
type Options struct {
	// LegacyMask reads the prefix length from the digits of the fourth octet
	// the way the original scanner did. See [inet.ParseLegacy].
	LegacyMask bool
	// Render makes the inet to varchar direction produce literals instead of
	// failing with [ErrNotImplemented].
	Render bool
}

// CastFunc converts one column into another, allocating through mem. A
// failed cast returns no array; partially converted memory is released
// before the error is returned.
type CastFunc func(mem memory.Allocator, src arrow.Array) (arrow.Array, error)

// RowError reports the first element that failed an all-or-nothing batch
// cast. Row is the zero-based index of the element within the batch.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// VarcharToInet returns the string to inet cast. Null elements stay null
// without being read; the first malformed element aborts the whole batch
// with a [RowError].
func VarcharToInet(opts Options) CastFunc {
	parse := inet.Parse
	if opts.LegacyMask {
		parse = inet.ParseLegacy
	}

	return func(mem memory.Allocator, src arrow.Array) (arrow.Array, error) {
		in, ok := src.(*array.String)
		if !ok {
			return nil, fmt.Errorf("%w: varchar to inet got %s", errInvalidInput, src.DataType())
		}

		b := array.NewStructBuilder(mem, inettype.StorageType())
		defer b.Release()
		addrs := b.FieldBuilder(0).(*array.Decimal128Builder)
		masks := b.FieldBuilder(1).(*array.Uint16Builder)

		b.Reserve(in.Len())
		for i := 0; i < in.Len(); i++ {
			if in.IsNull(i) {
				b.AppendNull()
				continue
			}
			ip, err := parse(unsafeBytes(in.Value(i)))
			if err != nil {
				return nil, &RowError{Row: i, Err: err}
			}
			b.Append(true)
			addrs.Append(ip.Address)
			masks.Append(uint16(ip.Mask))
		}

		storage := b.NewArray()
		defer storage.Release()
		return inettype.NewArray(storage), nil
	}
}

// InetToVarchar returns the inet to varchar cast. By default the cast is
// registered but fails for every batch, empty ones included; that matches
// the only behavior the engine has ever shipped for this direction. With
// [Options.Render] it formats each element as [inet.Format] does, keeping
// nulls null.
func InetToVarchar(opts Options) CastFunc {
	return func(mem memory.Allocator, src arrow.Array) (arrow.Array, error) {
		if !opts.Render {
			return nil, ErrNotImplemented
		}

		in, ok := src.(*inettype.Array)
		if !ok {
			return nil, fmt.Errorf("%w: inet to varchar got %s", errInvalidInput, src.DataType())
		}

		b := array.NewStringBuilder(mem)
		defer b.Release()

		b.Reserve(in.Len())
		for i := 0; i < in.Len(); i++ {
			if in.IsNull(i) {
				b.AppendNull()
				continue
			}
			b.Append(inet.Format(in.Value(i)))
		}
		return b.NewStringArray(), nil
	}
}
