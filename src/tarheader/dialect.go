package tarheader

// Dialect identifies which historical header convention a record follows.
// The set is closed: a new dialect is an enum addition here and a case in
// DetectDialect, nothing else.
type Dialect int

const (
	DialectUnknown Dialect = iota
	// DialectGNU is the GNU tar variant.
	DialectGNU
	// DialectUSTAR is the POSIX ustar format, version "00".
	DialectUSTAR
	// DialectPOSIX1988 is pre-ustar POSIX.1-1988 tar. It carries no magic;
	// the checksum is its only validator.
	DialectPOSIX1988
)

// Magic and version values as they appear after stripping trailing NUL
// bytes from the raw fields. On the wire GNU tar writes "ustar  \x00"
// across the two fields, ustar writes "ustar\x0000".
const (
	MagicGNU     = "ustar "
	VersionGNU   = " "
	MagicUSTAR   = "ustar"
	VersionUSTAR = "00"
)

// DetectDialect maps a NUL-stripped magic and version pair to its dialect.
func DetectDialect(magic, version string) Dialect {
	switch {
	case magic == MagicGNU && version == VersionGNU:
		return DialectGNU
	case magic == MagicUSTAR && version == VersionUSTAR:
		return DialectUSTAR
	case magic == "" && version == "":
		return DialectPOSIX1988
	}
	return DialectUnknown
}

func (d Dialect) String() string {
	switch d {
	case DialectGNU:
		return "gnu"
	case DialectUSTAR:
		return "ustar"
	case DialectPOSIX1988:
		return "posix.1-1988"
	}
	return "unknown"
}
