// Package kfmt implements the kernel's formatted output. All functions in
// this package avoid heap allocations so they can be used before the Go
// allocator is available.
package kfmt

import (
	"io"
	"unsafe"
)

// maxBufSize defines the buffer size for formatting numbers.
const maxBufSize = 32

var (
	errMissingArg   = []byte("(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")
	trueValue       = []byte("true")
	falseValue      = []byte("false")

	numFmtBuf [maxBufSize]byte

	// singleByte is a shared buffer for emitting one byte at a time.
	singleByte = []byte(" ")

	// earlyPrintBuffer holds Printf output until an output sink is set.
	earlyPrintBuffer ringBuffer

	// outputSink receives the output of Printf. While nil, output is
	// captured by earlyPrintBuffer.
	outputSink io.Writer
)

// SetOutputSink sets the target for calls to Printf to w and replays any
// output accumulated in the early print buffer.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyPrintBuffer)
	}
}

// Writer returns an io.Writer that forwards to the current Printf target. It
// follows later calls to SetOutputSink and falls back to the early print
// buffer while no sink is set.
func Writer() io.Writer {
	return sinkWriter{}
}

type sinkWriter struct{}

func (sinkWriter) Write(p []byte) (int, error) {
	if outputSink != nil {
		return outputSink.Write(p)
	}

	return earlyPrintBuffer.Write(p)
}

// Printf is a minimal, allocation-free Printf. It supports the following
// subset of the fmt verbs:
//
//	%s  string or []byte
//	%d  base 10
//	%o  base 8
//	%x  base 16, lower-case a-f
//	%X  base 16, upper-case A-F
//	%t  bool
//	%%  a literal percent sign
//
// An optional decimal width may precede the verb. Strings and base-10 values
// are left-padded with spaces; base-8 and base-16 values with zeroes.
//
// Output goes to the sink registered via SetOutputSink or, if none is set
// yet, to an internal ring buffer.
func Printf(format string, args ...interface{}) {
	Fprintf(outputSink, format, args...)
}

// Fprintf behaves like Printf but writes its output to w. A nil w selects
// the early print buffer. Literal bytes of format are written to w
// one at a time.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var (
		argIndex int
		padLen   int
		fmtLen   = len(format)
	)

	for i := 0; i < fmtLen; i++ {
		if format[i] != '%' {
			writeByte(w, format[i])
			continue
		}

		padLen = 0
	parseVerb:
		for i++; ; i++ {
			if i == fmtLen {
				doWrite(w, errNoVerb)
				break
			}

			switch ch := format[i]; {
			case ch == '%':
				writeByte(w, '%')
				break parseVerb
			case ch >= '0' && ch <= '9':
				padLen = padLen*10 + int(ch-'0')
			case ch == 'd' || ch == 'o' || ch == 'x' || ch == 'X' || ch == 's' || ch == 't':
				if argIndex >= len(args) {
					doWrite(w, errMissingArg)
					break parseVerb
				}

				switch ch {
				case 'd':
					fmtInt(w, args[argIndex], 10, padLen, false)
				case 'o':
					fmtInt(w, args[argIndex], 8, padLen, false)
				case 'x':
					fmtInt(w, args[argIndex], 16, padLen, false)
				case 'X':
					fmtInt(w, args[argIndex], 16, padLen, true)
				case 's':
					fmtString(w, args[argIndex], padLen)
				case 't':
					fmtBool(w, args[argIndex])
				}

				argIndex++
				break parseVerb
			default:
				doWrite(w, errNoVerb)
				break parseVerb
			}
		}
	}

	for ; argIndex < len(args); argIndex++ {
		doWrite(w, errExtraArg)
	}
}

// fmtBool prints v as "true" or "false".
func fmtBool(w io.Writer, v interface{}) {
	b, ok := v.(bool)
	switch {
	case !ok:
		doWrite(w, errWrongArgType)
	case b:
		doWrite(w, trueValue)
	default:
		doWrite(w, falseValue)
	}
}

// fmtString prints a string or []byte value left-padded to padLen.
func fmtString(w io.Writer, v interface{}, padLen int) {
	switch s := v.(type) {
	case string:
		fmtRepeat(w, ' ', padLen-len(s))
		// Converting s to a []byte would allocate.
		for i := 0; i < len(s); i++ {
			writeByte(w, s[i])
		}
	case []byte:
		fmtRepeat(w, ' ', padLen-len(s))
		doWrite(w, s)
	default:
		doWrite(w, errWrongArgType)
	}
}

// fmtRepeat writes count copies of ch.
func fmtRepeat(w io.Writer, ch byte, count int) {
	for ; count > 0; count-- {
		writeByte(w, ch)
	}
}

// fmtInt prints v in the requested base, left-padded to padLen. All built-in
// integer types are supported.
func fmtInt(w io.Writer, v interface{}, base uint64, padLen int, upper bool) {
	var (
		uval     uint64
		negative bool
		padCh    = byte('0')
		hexBase  = byte('a')
		pos      = maxBufSize
	)

	switch n := v.(type) {
	case uint8:
		uval = uint64(n)
	case uint16:
		uval = uint64(n)
	case uint32:
		uval = uint64(n)
	case uint64:
		uval = n
	case uint:
		uval = uint64(n)
	case uintptr:
		uval = uint64(n)
	case int8:
		uval, negative = abs(int64(n))
	case int16:
		uval, negative = abs(int64(n))
	case int32:
		uval, negative = abs(int64(n))
	case int64:
		uval, negative = abs(n)
	case int:
		uval, negative = abs(int64(n))
	default:
		doWrite(w, errWrongArgType)
		return
	}

	if base == 10 {
		padCh = ' '
	}
	if upper {
		hexBase = 'A'
	}
	if padLen >= maxBufSize {
		padLen = maxBufSize - 1
	}

	// Digits are emitted right to left.
	for {
		pos--
		if digit := byte(uval % base); digit < 10 {
			numFmtBuf[pos] = '0' + digit
		} else {
			numFmtBuf[pos] = hexBase + digit - 10
		}

		if uval /= base; uval == 0 {
			break
		}
	}

	if negative && padCh == ' ' {
		pos--
		numFmtBuf[pos] = '-'
	}

	for maxBufSize-pos < padLen {
		pos--
		numFmtBuf[pos] = padCh
	}

	// Zero-padded values get their sign in front of the padding.
	if negative && padCh == '0' {
		pos--
		numFmtBuf[pos] = '-'
	}

	doWrite(w, numFmtBuf[pos:])
}

func abs(v int64) (uint64, bool) {
	if v < 0 {
		return uint64(-v), true
	}

	return uint64(v), false
}

// writeByte emits a single byte through the shared singleByte buffer.
func writeByte(w io.Writer, b byte) {
	singleByte[0] = b
	doWrite(w, singleByte)
}

// doWrite hides p from escape analysis. The compiler cannot tell that p does
// not escape through the io.Writer call and would otherwise box it on the
// heap on every Printf call.
func doWrite(w io.Writer, p []byte) {
	doRealWrite(w, noEscape(unsafe.Pointer(&p)))
}

func doRealWrite(w io.Writer, bufPtr unsafe.Pointer) {
	p := *(*[]byte)(bufPtr)
	if w != nil {
		w.Write(p)
	} else {
		earlyPrintBuffer.Write(p)
	}
}

// noEscape hides a pointer from escape analysis (see runtime/stubs.go).
//
//go:nosplit
func noEscape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}
