package tarheader

// Checksum computes the header checksum of b: the unsigned sum of all 512
// bytes, with the checksum field itself counted as eight ASCII spaces.
func Checksum(b *Block) uint64 {
	var sum uint64
	for i, c := range b {
		if i >= posChecksum && i < posChecksum+lenChecksum {
			c = ' '
		}
		sum += uint64(c)
	}
	return sum
}

// writeChecksum computes and stores the checksum of b. GNU tar writes six
// octal digits followed by a NUL and a space; readers in the wild expect
// that exact shape.
func writeChecksum(b *Block) {
	sum := Checksum(b)
	field := b[posChecksum : posChecksum+lenChecksum]
	for i := range field {
		field[i] = ' '
	}
	for i := 5; i >= 0; i-- {
		field[i] = byte('0' + sum&7)
		sum >>= 3
	}
	field[6] = 0
}

// Valid reports whether b is a recognized tar header: its magic and
// version match one of the known dialects and its stored checksum equals
// the computed one. The all-zero end-of-archive block is not valid by
// construction: its checksum field is empty.
func Valid(b *Block) bool {
	if DetectDialect(trimNUL(b[posMagic:posMagic+lenMagic]), trimNUL(b[posVersion:posVersion+lenVersion])) == DialectUnknown {
		return false
	}
	stored, err := parseOctal("checksum", b[posChecksum:posChecksum+lenChecksum])
	if err != nil {
		return false
	}
	return uint64(stored) == Checksum(b)
}
