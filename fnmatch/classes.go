package fnmatch

// POSIX named character classes usable inside bracket expressions, e.g.
// "[[:digit:]]". Grounded on the same class table carried by the teacher's
// wildmatch.go and duplicated independently in cling-com-cling-sync/lib/glob.go
// (both ports of Git's wildmatch.c agree byte-for-byte on the membership
// rules below).

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlnum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

func isPunct(b byte) bool {
	return isGraph(b) && !isAlnum(b)
}

func isXDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isCntrl(b byte) bool {
	return b < 0x20 || b == 0x7f
}

func isPrint(b byte) bool {
	return b >= 0x20 && b < 0x7f
}

func isGraph(b byte) bool {
	return isPrint(b) && b != ' '
}

// classTest returns the membership predicate for a POSIX class name, and
// whether that name is recognized.
func classTest(name string) (func(byte) bool, bool) {
	switch name {
	case "alpha":
		return isAlpha, true
	case "digit":
		return isDigit, true
	case "alnum":
		return isAlnum, true
	case "lower":
		return isLower, true
	case "upper":
		return isUpper, true
	case "space":
		return isSpace, true
	case "punct":
		return isPunct, true
	case "xdigit":
		return isXDigit, true
	case "cntrl":
		return isCntrl, true
	case "print":
		return isPrint, true
	case "graph":
		return isGraph, true
	default:
		return nil, false
	}
}
