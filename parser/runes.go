package parser

// anyOf checks whether a rune matches another one from the specified set
func anyOf(val rune, set ...rune) bool {
	for _, toCompare := range set {
		if val == toCompare {
			return true
		}
	}
	return false
}
