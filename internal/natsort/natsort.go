// Package natsort orders strings so that embedded digit runs compare by
// numeric value rather than byte by byte: "backup2.zip" sorts before
// "backup10.zip".
package natsort

// Compare returns -1, 0, or 1 comparing a and b in natural order. It is a
// strict total order and can be passed directly to slices.SortFunc.
//
// When both strings have a digit at the current position, the maximal digit
// runs on each side compare by magnitude. Runs of any length are handled
// without integer parsing: leading zeros are trimmed, then the trimmed runs
// compare first by length and then lexically. Equal values with different
// amounts of zero padding tie-break on raw run length, so "1" sorts before
// "01". Outside digit runs, bytes compare case-sensitively.
func Compare(a, b string) int {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		if isDigit(a[ai]) && isDigit(b[bi]) {
			aStart, bStart := ai, bi
			for ai < len(a) && isDigit(a[ai]) {
				ai++
			}
			for bi < len(b) && isDigit(b[bi]) {
				bi++
			}
			if c := compareRuns(a[aStart:ai], b[bStart:bi]); c != 0 {
				return c
			}
			continue
		}
		if a[ai] != b[bi] {
			if a[ai] < b[bi] {
				return -1
			}
			return 1
		}
		ai++
		bi++
	}
	// One string is a prefix of the other; the shorter sorts first.
	switch {
	case len(a)-ai < len(b)-bi:
		return -1
	case len(a)-ai > len(b)-bi:
		return 1
	}
	return 0
}

// Less reports whether a sorts before b in natural order.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// compareRuns compares two all-digit strings by numeric magnitude.
func compareRuns(a, b string) int {
	at := trimLeadingZeros(a)
	bt := trimLeadingZeros(b)

	// More significant digits means a larger value.
	switch {
	case len(at) < len(bt):
		return -1
	case len(at) > len(bt):
		return 1
	}

	// Same magnitude: lexical comparison decides.
	switch {
	case at < bt:
		return -1
	case at > bt:
		return 1
	}

	// Equal values; fewer leading zeros sorts first ("1" < "01").
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s) && s[i] == '0' {
		i++
	}
	return s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
