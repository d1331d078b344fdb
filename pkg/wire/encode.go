package wire

import "strconv"

// Encode assembles the wire line for one command:
//
//	AT*<name>=<seq>[,<param>]*\r
//
// Encode is pure and has no failure path; a malformed name is a
// programmer error, not a recoverable condition.
func Encode(name string, seq uint32, params ...Param) string {
	// AT* + name + = + seq + params + \r; 12 bytes per param is a
	// comfortable fit for the common all-numeric case.
	b := make([]byte, 0, 8+len(name)+12*len(params))
	b = append(b, "AT*"...)
	b = append(b, name...)
	b = append(b, '=')
	b = strconv.AppendUint(b, uint64(seq), 10)
	for _, p := range params {
		b = append(b, ',')
		b = p.appendTo(b)
	}
	b = append(b, '\r')
	return string(b)
}
