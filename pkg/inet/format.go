package inet

import (
	"strconv"
)

// Format renders ip as a dotted quad, appending "/<mask>" only when the mask
// differs from [HostBits]. Only the low 32 bits of the address are read. The
// output parses back to ip with [Parse].
func Format(ip IPAddress) string {
	// "255.255.255.255/255" is the longest value the parser produces.
	buf := make([]byte, 0, 19)

	bits := ip.Address.LowBits()
	for i := 0; i < numOctets; i++ {
		if i > 0 {
			buf = append(buf, '.')
		}
		buf = strconv.AppendUint(buf, bits>>(8*i)&0xff, 10)
	}
	if ip.Mask != HostBits {
		buf = append(buf, '/')
		buf = strconv.AppendInt(buf, int64(ip.Mask), 10)
	}
	return string(buf)
}
