package parser

import "testing"

func TestCharacterClasses(t *testing.T) {
	for _, test := range []struct {
		char      rune
		nameStart bool
		nameChar  bool
		space     bool
		bidi      bool
	}{
		{'a', true, true, false, false},
		{'Z', true, true, false, false},
		{'_', true, true, false, false},
		{'+', true, true, false, false},
		{'7', false, true, false, false},
		{'-', false, true, false, false},
		{'.', false, true, false, false},
		{':', false, false, false, false},
		{'$', false, false, false, false},
		{'ä', true, true, false, false},
		{'日', true, true, false, false},
		{0x1F600, true, true, false, false},
		{0x1FFFE, false, false, false, false},
		{0x10FFFD, true, true, false, false},
		{' ', false, false, true, false},
		{'\t', false, false, true, false},
		{'\r', false, false, true, false},
		{'\n', false, false, true, false},
		{0x3000, false, false, true, false},
		{0x061C, false, false, false, true},
		{0x200E, false, false, false, true},
		{0x200F, false, false, false, true},
		{0x2066, false, false, false, true},
		{0x2069, false, false, false, true},
	} {
		if got := isNameStart(test.char); got != test.nameStart {
			t.Errorf("isNameStart(%U) = %v", test.char, got)
		}
		if got := isNameChar(test.char); got != test.nameChar {
			t.Errorf("isNameChar(%U) = %v", test.char, got)
		}
		if got := isWhitespace(test.char); got != test.space {
			t.Errorf("isWhitespace(%U) = %v", test.char, got)
		}
		if got := isBidi(test.char); got != test.bidi {
			t.Errorf("isBidi(%U) = %v", test.char, got)
		}
	}
}

func TestIsValidName(t *testing.T) {
	for _, test := range []struct {
		name  string
		valid bool
	}{
		{"name", true},
		{"ns.name-2", true},
		{"\u200Ename", true},
		{"name\u200F", true},
		{"\u2066name\u2069", false},
		{"\u2066\u200Ename", true},
		{"na\u200Eme", false},
		{"1name", false},
		{"-name", false},
		{"", false},
		{"\u200E", false},
	} {
		if got := isValidName([]rune(test.name)); got != test.valid {
			t.Errorf("isValidName(%q) = %v, expected %v", test.name, got, test.valid)
		}
	}
}

func TestTrimTrailingWhitespaceAndBidi(t *testing.T) {
	for input, expected := range map[string]string{
		"name":              "name",
		"name \t\n":         "name",
		"name\u200E \u3000": "name",
		" name":             " name",
		"":                  "",
	} {
		if got := string(trimTrailingWhitespaceAndBidi([]rune(input))); got != expected {
			t.Errorf("trimTrailingWhitespaceAndBidi(%q) = %q, expected %q", input, got, expected)
		}
	}
}
