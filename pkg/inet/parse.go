package inet

import (
	"github.com/apache/arrow-go/v18/arrow/decimal128"
)

// parseState is the token the scanner expects next.
type parseState int

const (
	stateNumber parseState = iota // a run of octet digits
	stateDot                      // the separator after an octet
	stateMask                     // the prefix length after the last octet
)

// Parse converts an IPv4 literal with an optional /prefix suffix into an
// [IPAddress]. Without a suffix the mask defaults to [HostBits]. The prefix
// length is range checked as an 8-bit number only.
//
// Errors wrap one of the Err sentinels of this package and carry the full
// input in their message.
func Parse(data []byte) (IPAddress, error) {
	return parse(data, false)
}

// ParseLegacy is [Parse] with the historical prefix handling: the characters
// after '/' are never read, and the mask is converted from the digits of the
// fourth octet instead, so "10.0.0.200/8" yields mask 200 and "1.2.3.4/junk"
// parses cleanly with mask 4. It exists to reproduce stored values written
// by the old scanner bit for bit.
func ParseLegacy(data []byte) (IPAddress, error) {
	return parse(data, true)
}

func parse(data []byte, legacyMask bool) (IPAddress, error) {
	var (
		addr   uint64 // octet i accumulates into bits [8*i, 8*i+8)
		octets int
		start  int // first byte of the current digit run
		c      int
	)

	state := stateNumber
	for {
		switch state {
		case stateNumber:
			start = c
			for c < len(data) && isDigit(data[c]) {
				c++
			}
			if c == start {
				return IPAddress{}, parseError(data, ErrExpectedNumber)
			}
			octet, ok := scanUint8(data[start:c])
			if !ok {
				return IPAddress{}, parseError(data, ErrOctetOutOfRange)
			}
			addr |= uint64(octet) << (8 * octets)
			octets++
			if octets == numOctets {
				state = stateMask
			} else {
				state = stateDot
			}

		case stateDot:
			if c == len(data) || data[c] != '.' {
				return IPAddress{}, parseError(data, ErrExpectedDot)
			}
			c++
			state = stateNumber

		case stateMask:
			if c == len(data) {
				return IPAddress{Address: decimal128.FromU64(addr), Mask: HostBits}, nil
			}
			if data[c] != '/' {
				return IPAddress{}, parseError(data, ErrExpectedSlash)
			}
			// The old scanner converted the mask from the span of the fourth
			// octet, still held in [start, c), and ignored everything after
			// the slash. The current form consumes the slash and converts
			// the remainder of the input.
			span := data[start:c]
			if !legacyMask {
				c++
				span = data[c:]
			}
			mask, ok := scanUint8(span)
			if !ok {
				return IPAddress{}, parseError(data, ErrMaskOutOfRange)
			}
			return IPAddress{Address: decimal128.FromU64(addr), Mask: int32(mask)}, nil
		}
	}
}

// scanUint8 converts a digit run into an 8-bit number. Empty spans,
// non-digit bytes and values above 255 fail; leading zeros are accepted.
func scanUint8(span []byte) (uint8, bool) {
	if len(span) == 0 {
		return 0, false
	}
	var v uint16
	for _, b := range span {
		if !isDigit(b) {
			return 0, false
		}
		v = v*10 + uint16(b-'0')
		if v > 255 {
			return 0, false
		}
	}
	return uint8(v), true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
