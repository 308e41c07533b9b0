package parser

// isAlpha checks if a character is an ASCII letter
func isAlpha(char rune) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

// isDigit checks if a character is an ASCII digit
func isDigit(char rune) bool {
	return char >= '0' && char <= '9'
}

// isNameStart checks if a character is valid to be the start of a name
func isNameStart(char rune) bool {
	switch {
	case char == '+', char == '_':
		return true
	case char >= 0xA1 && char <= 0x61B,
		char >= 0x61D && char <= 0x167F,
		char >= 0x1681 && char <= 0x1FFF,
		char >= 0x200B && char <= 0x200D,
		char >= 0x2010 && char <= 0x2027,
		char >= 0x2030 && char <= 0x205E,
		char >= 0x2060 && char <= 0x2065,
		char >= 0x206A && char <= 0x2FFF,
		char >= 0x3001 && char <= 0xD7FF,
		char >= 0xE000 && char <= 0xFDCF,
		char >= 0xFDF0 && char <= 0xFFFD:
		return true
	case char >= 0x10000 && char <= 0x10FFFD:
		// Every plane ends with two noncharacters (xFFFE and xFFFF)
		return char&0xFFFF <= 0xFFFD
	}
	return isAlpha(char)
}

// isNameChar checks if a character is valid to be part of a name
func isNameChar(char rune) bool {
	return isNameStart(char) || isDigit(char) || char == '-' || char == '.'
}

// isWhitespace checks if a character is whitespace in the sense of MF2
func isWhitespace(char rune) bool {
	return anyOf(char, ' ', '\t', '\r', '\n', '\u3000')
}

// isBidi checks if a character is a bidirectional control character
func isBidi(char rune) bool {
	return anyOf(char, '\u061C', '\u200E', '\u200F') || (char >= '\u2066' && char <= '\u2069')
}

// isValidName checks whether a string is a complete name.
// Bidi control characters may either precede or follow the name, never both, and never appear inside of it.
func isValidName(name []rune) bool {
	leading := false
	trailing := false
	first := true
	for _, char := range name {
		if isBidi(char) {
			if first {
				leading = true
			} else {
				trailing = true
			}
			continue
		}
		if trailing {
			return false
		}
		if first {
			if !isNameStart(char) {
				return false
			}
			first = false
		} else if !isNameChar(char) {
			return false
		}
	}
	return !first && !(leading && trailing)
}

// trimTrailingWhitespaceAndBidi removes any whitespace and bidi control characters from the end of a string
func trimTrailingWhitespaceAndBidi(value []rune) []rune {
	end := len(value)
	for end > 0 && (isWhitespace(value[end-1]) || isBidi(value[end-1])) {
		end--
	}
	return value[:end]
}
