package rdf

import (
	"unicode/utf8"
)

// IsPNLocal reports whether local can be written after "prefix:" without any
// backslash escape. The empty string is accepted (a bare "prefix:" name).
func IsPNLocal(local string) bool {
	if local == "" {
		return true
	}
	i := 0
	last := rune(0)
	for i < len(local) {
		r, size := utf8.DecodeRuneInString(local[i:])
		if r == utf8.RuneError && size <= 1 {
			return false
		}
		if r == '%' {
			if i+2 >= len(local) || !isHexDigit(local[i+1]) || !isHexDigit(local[i+2]) {
				return false
			}
			i += 3
			last = '0'
			continue
		}
		if i == 0 {
			if !isPNCharsU(r) && r != ':' && !(r >= '0' && r <= '9') {
				return false
			}
		} else if !isPNChars(r) && r != '.' && r != ':' {
			return false
		}
		last = r
		i += size
	}
	return last != '.'
}

// IsPNPrefix reports whether prefix is a legal prefix name.
func IsPNPrefix(prefix string) bool {
	if prefix == "" {
		return true
	}
	last := rune(0)
	for i, r := range prefix {
		if i == 0 {
			if !isPNCharsBase(r) {
				return false
			}
		} else if !isPNChars(r) && r != '.' {
			return false
		}
		last = r
	}
	return last != '.'
}

// IsBlankNodeLabel reports whether label is legal after "_:".
func IsBlankNodeLabel(label string) bool {
	if label == "" {
		return false
	}
	last := rune(0)
	for i, r := range label {
		if i == 0 {
			if !isPNCharsU(r) && !(r >= '0' && r <= '9') {
				return false
			}
		} else if !isPNChars(r) && r != '.' {
			return false
		}
		last = r
	}
	return last != '.'
}

func isPNCharsBase(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 0xC0 && r <= 0xD6, r >= 0xD8 && r <= 0xF6, r >= 0xF8 && r <= 0x2FF:
		return true
	case r >= 0x370 && r <= 0x37D, r >= 0x37F && r <= 0x1FFF:
		return true
	case r >= 0x200C && r <= 0x200D, r >= 0x2070 && r <= 0x218F:
		return true
	case r >= 0x2C00 && r <= 0x2FEF, r >= 0x3001 && r <= 0xD7FF:
		return true
	case r >= 0xF900 && r <= 0xFDCF, r >= 0xFDF0 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0xEFFFF:
		return true
	}
	return false
}

func isPNCharsU(r rune) bool {
	return r == '_' || isPNCharsBase(r)
}

func isPNChars(r rune) bool {
	switch {
	case isPNCharsU(r), r == '-', r >= '0' && r <= '9', r == 0xB7:
		return true
	case r >= 0x300 && r <= 0x36F, r >= 0x203F && r <= 0x2040:
		return true
	}
	return false
}
