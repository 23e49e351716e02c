package inet

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/stretchr/testify/require"
)

func addr(bits uint64, mask int32) IPAddress {
	return IPAddress{Address: decimal128.FromU64(bits), Mask: mask}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  IPAddress
	}{
		{input: "0.0.0.0", want: addr(0, 32)},
		{input: "1.2.3.4", want: addr(0x04030201, 32)},
		{input: "127.0.0.1", want: addr(0x0100007f, 32)},
		{input: "255.255.255.255", want: addr(0xffffffff, 32)},
		{input: "010.001.0.1", want: addr(0x0100010a, 32)},
		{input: "1.2.3.4/24", want: addr(0x04030201, 24)},
		{input: "1.2.3.4/0", want: addr(0x04030201, 0)},
		{input: "10.0.0.200/8", want: addr(0xc800000a, 8)},
		{input: "192.168.0.1/255", want: addr(0x0100a8c0, 255)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseLegacy(t *testing.T) {
	tests := []struct {
		input string
		want  IPAddress
	}{
		// Without a suffix both modes agree.
		{input: "1.2.3.4", want: addr(0x04030201, 32)},
		// With a suffix the mask comes from the fourth octet, and the text
		// after the slash is ignored.
		{input: "1.2.3.4/24", want: addr(0x04030201, 4)},
		{input: "10.0.0.200/8", want: addr(0xc800000a, 200)},
		{input: "1.2.3.4/junk", want: addr(0x04030201, 4)},
		{input: "1.2.3.4/", want: addr(0x04030201, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLegacy([]byte(tt.input))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		err   error
		msg   string
	}{
		{input: "", err: ErrExpectedNumber},
		{input: ".1.2.3", err: ErrExpectedNumber},
		{input: "1..2.3", err: ErrExpectedNumber},
		{input: "1.2.3.", err: ErrExpectedNumber},
		{input: "1.2.3.4/24.", err: ErrMaskOutOfRange},
		{
			input: "1.2.3",
			err:   ErrExpectedDot,
			msg:   `failed to convert string "1.2.3" to inet: expected a dot`,
		},
		{input: "1,2,3,4", err: ErrExpectedDot},
		{input: "256.1.2.3", err: ErrOctetOutOfRange},
		{input: "1.2.3.256", err: ErrOctetOutOfRange},
		{input: "1.2.3.4.5", err: ErrExpectedSlash},
		{input: "1.2.3.4 ", err: ErrExpectedSlash},
		{input: "1.2.3.4/", err: ErrMaskOutOfRange},
		{input: "1.2.3.4/abc", err: ErrMaskOutOfRange},
		{
			input: "1.2.3.4/256",
			err:   ErrMaskOutOfRange,
			msg:   `failed to convert string "1.2.3.4/256" to inet: expected a number between 0 and 255`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.ErrorIs(t, err, tt.err)
			if tt.msg != "" {
				require.EqualError(t, err, tt.msg)
			}
		})
	}
}

func TestParseErrorIdentities(t *testing.T) {
	// Octet and mask range failures share their message but not their
	// identity.
	_, err := Parse([]byte("1.2.3.4/300"))
	require.ErrorIs(t, err, ErrMaskOutOfRange)
	require.NotErrorIs(t, err, ErrOctetOutOfRange)

	_, err = Parse([]byte("1.2.3.300"))
	require.ErrorIs(t, err, ErrOctetOutOfRange)
	require.NotErrorIs(t, err, ErrMaskOutOfRange)
}

func TestParseLegacyErrors(t *testing.T) {
	// Everything up to the slash is scanned the same way in both modes.
	tests := []struct {
		input string
		err   error
	}{
		{input: "", err: ErrExpectedNumber},
		{input: "1.2.3", err: ErrExpectedDot},
		{input: "1.2.3.256", err: ErrOctetOutOfRange},
		{input: "1.2.3.4.5", err: ErrExpectedSlash},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseLegacy([]byte(tt.input))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseHighBitsZero(t *testing.T) {
	got, err := Parse([]byte("255.255.255.255/255"))
	require.NoError(t, err)
	require.Zero(t, got.Address.HighBits())
	require.Equal(t, uint64(0xffffffff), got.Address.LowBits())
}
