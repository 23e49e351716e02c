// Package inet implements the network-address value type: an IPv4 address
// with an optional CIDR prefix length. Addresses are stored in a 128-bit
// integer so the column layout has room for IPv6 without a format change.
package inet

import (
	"github.com/apache/arrow-go/v18/arrow/decimal128"
)

// HostBits is the prefix length of a bare address literal. Literals without
// a '/' suffix parse with this mask.
const HostBits = 32

// numOctets is the number of dot separated groups in an IPv4 literal.
const numOctets = 4

// IPAddress is a parsed network address. Address holds octet i of the
// literal in bits [8*i, 8*i+8), so "1.2.3.4" stores 0x04030201; the upper 96
// bits are always zero for values produced by [Parse]. Mask is the prefix
// length. It is range checked as an 8-bit number only, not against
// [HostBits], so masks such as /200 survive parsing; callers that need
// strict CIDR semantics must check Mask themselves.
type IPAddress struct {
	Address decimal128.Num
	Mask    int32
}

// String returns the literal form of the address, as produced by [Format].
func (ip IPAddress) String() string { return Format(ip) }
