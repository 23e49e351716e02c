package inetcast

import "unsafe"

// unsafeBytes views s as a byte slice without copying. The result must not
// be mutated or retained beyond the life of s.
func unsafeBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
