// Package inettype defines the Arrow shape of the inet value type: a
// struct<address: decimal128(38, 0), mask: uint16> storage column exposed
// under the extension name "inet".
//
// The decimal128 field carries the 128-bit address integer; uint16 carries
// the prefix length. Null values are null at the struct level, and the child
// slots under a null are null as well.
package inettype

import (
	"fmt"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/columnkit/inet/pkg/inet"
)

// Name is the extension name the type registers under.
const Name = "inet"

// Storage field names, in field order.
const (
	FieldAddress = "address"
	FieldMask    = "mask"
)

// addressType is the 38-digit decimal that backs the 128-bit address
// integer.
var addressType = &arrow.Decimal128Type{Precision: 38, Scale: 0}

// StorageType returns the physical layout of an inet column.
func StorageType() *arrow.StructType {
	return arrow.StructOf(
		arrow.Field{Name: FieldAddress, Type: addressType, Nullable: true},
		arrow.Field{Name: FieldMask, Type: arrow.PrimitiveTypes.Uint16, Nullable: true},
	)
}

// Type is the inet extension type. It carries no parameters; the storage
// layout is fixed.
type Type struct {
	arrow.ExtensionBase
}

var _ arrow.ExtensionType = (*Type)(nil)

// NewType returns the inet extension type.
func NewType() *Type {
	return &Type{ExtensionBase: arrow.ExtensionBase{Storage: StorageType()}}
}

// ExtensionName implements [arrow.ExtensionType].
func (*Type) ExtensionName() string { return Name }

// ArrayType implements [arrow.ExtensionType].
func (*Type) ArrayType() reflect.Type { return reflect.TypeOf(Array{}) }

// ExtensionEquals implements [arrow.ExtensionType]. Two inet types are always
// equal.
func (t *Type) ExtensionEquals(other arrow.ExtensionType) bool {
	return t.ExtensionName() == other.ExtensionName()
}

func (t *Type) String() string { return fmt.Sprintf("extension<%s>", t.ExtensionName()) }

// Serialize implements [arrow.ExtensionType]. The type has no parameters, so
// the payload is empty.
func (*Type) Serialize() string { return "" }

// Deserialize implements [arrow.ExtensionType]. It rejects payloads and
// storage layouts written by an incompatible producer.
func (*Type) Deserialize(storageType arrow.DataType, data string) (arrow.ExtensionType, error) {
	if data != "" {
		return nil, fmt.Errorf("unexpected serialized metadata for %s: %q", Name, data)
	}
	if !arrow.TypeEqual(storageType, StorageType()) {
		return nil, fmt.Errorf("invalid storage type for %s: %s", Name, storageType)
	}
	return NewType(), nil
}

// Array is an inet extension array. Element i is only meaningful when
// IsValid(i) reports true.
type Array struct {
	array.ExtensionArrayBase
}

var _ array.ExtensionArray = (*Array)(nil)

// NewArray wraps a storage struct array as an inet extension array. The
// storage layout must match [StorageType].
func NewArray(storage arrow.Array) *Array {
	return array.NewExtensionArrayWithStorage(NewType(), storage).(*Array)
}

// Value returns element i as an [inet.IPAddress].
func (a *Array) Value(i int) inet.IPAddress {
	st := a.Storage().(*array.Struct)
	return inet.IPAddress{
		Address: st.Field(0).(*array.Decimal128).Value(i),
		Mask:    int32(st.Field(1).(*array.Uint16).Value(i)),
	}
}

// ValueStr returns element i in literal form, or [array.NullValueStr] for
// nulls.
func (a *Array) ValueStr(i int) string {
	if a.IsNull(i) {
		return array.NullValueStr
	}
	return a.Value(i).String()
}

// Register installs the type into the process-wide extension registry so
// IPC readers resolve "inet" column metadata back to [Type]. It fails when a
// type with the same name is already registered.
func Register() error {
	return arrow.RegisterExtensionType(NewType())
}

// Unregister removes the type from the process-wide registry.
func Unregister() error {
	return arrow.UnregisterExtensionType(Name)
}
