package wire

import (
	"math"
	"strconv"
)

// FloatToInt32 reinterprets the IEEE-754 single-precision bit pattern of
// f as a signed 32-bit integer. This is a bit reinterpretation, not a
// numeric conversion: no rounding, no range check. It is total over all
// inputs; NaN and the infinities map to whatever their bit patterns
// reinterpret to.
func FloatToInt32(f float32) int32 {
	return int32(math.Float32bits(f))
}

// paramKind tags the rendering rule for a Param.
type paramKind uint8

const (
	paramInt paramKind = iota
	paramFloat
	paramStr
)

// Param is one typed AT command argument. Construct with Int, Float or
// Str; the zero value renders as the integer 0.
type Param struct {
	kind paramKind
	i    int32
	f    float32
	s    string
}

// Int returns an integer argument, rendered as bare decimal.
func Int(i int32) Param {
	return Param{kind: paramInt, i: i}
}

// Float returns a float argument, rendered as the decimal form of its
// bit pattern (see FloatToInt32).
func Float(f float32) Param {
	return Param{kind: paramFloat, f: f}
}

// Str returns a string argument, rendered as a double-quoted literal.
// Embedded quotes are not escaped.
func Str(s string) Param {
	return Param{kind: paramStr, s: s}
}

// appendTo appends the wire rendering of p to b.
func (p Param) appendTo(b []byte) []byte {
	switch p.kind {
	case paramFloat:
		return strconv.AppendInt(b, int64(FloatToInt32(p.f)), 10)
	case paramStr:
		b = append(b, '"')
		b = append(b, p.s...)
		return append(b, '"')
	default:
		return strconv.AppendInt(b, int64(p.i), 10)
	}
}
