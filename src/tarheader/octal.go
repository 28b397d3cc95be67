package tarheader

import (
	"bytes"
	"strconv"
)

// Numeric header fields hold octal ASCII digits, padded with spaces or NUL
// bytes depending on the writing implementation.

func trimOctal(field []byte) []byte {
	return bytes.Trim(field, " \x00")
}

func trimNUL(field []byte) string {
	return string(bytes.TrimRight(field, "\x00"))
}

// parseOctal parses a numeric field. An empty field is an error: a header
// without a parseable value has no defined value, not a zero one.
func parseOctal(name string, field []byte) (int64, error) {
	digits := trimOctal(field)
	if len(digits) == 0 {
		return 0, &FieldError{Field: name, Value: string(field)}
	}
	var v int64
	for _, c := range digits {
		if c < '0' || c > '7' {
			return 0, &FieldError{Field: name, Value: string(field)}
		}
		v = v<<3 | int64(c-'0')
	}
	return v, nil
}

// parseOctalDefault is parseOctal with an empty field reading as zero, for
// the fields old writers leave blank (device numbers, ids).
func parseOctalDefault(name string, field []byte) (int64, error) {
	if len(trimOctal(field)) == 0 {
		return 0, nil
	}
	return parseOctal(name, field)
}

// formatOctal writes v into the field zero-padded, with a terminating NUL.
func formatOctal(field []byte, v int64) error {
	if v < 0 {
		return ErrFieldTooLong
	}
	s := strconv.FormatInt(v, 8)
	if len(s) > len(field)-1 {
		return ErrFieldTooLong
	}
	pad := len(field) - 1 - len(s)
	for i := 0; i < pad; i++ {
		field[i] = '0'
	}
	copy(field[pad:], s)
	field[len(field)-1] = 0
	return nil
}
