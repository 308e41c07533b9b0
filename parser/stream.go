package parser

const EOF rune = -1

// stream is used by the parser to navigate through the source.
// Positions are indices into the source rune array, so every offset counts Unicode characters and not bytes.
type stream struct {
	source    []rune
	sourceLen int
	curPos    int
}

// newStream creates a new stream from a source string
func newStream(source string) *stream {
	src := []rune(source)
	return &stream{
		source:    src,
		sourceLen: len(src),
		curPos:    0,
	}
}

// SrcLen returns the length of the underlying source rune array
func (str *stream) SrcLen() int {
	return str.sourceLen
}

// HasNext returns whether there are characters left in the source
func (str *stream) HasNext() bool {
	return str.curPos < str.sourceLen
}

// CurrentCursorPos returns the current cursor position
func (str *stream) CurrentCursorPos() int {
	return str.curPos
}

// SetCursorTo sets the cursor to a specific position.
// Positions outside of the source are clamped to its bounds.
func (str *stream) SetCursorTo(i int) {
	if i < 0 {
		i = 0
	}
	if i > str.sourceLen {
		i = str.sourceLen
	}
	str.curPos = i
}

// Consume returns the next character and moves the cursor forward.
// If there are no more characters left, EOF is returned.
func (str *stream) Consume() rune {
	if !str.HasNext() {
		return EOF
	}
	next := str.source[str.curPos]
	str.curPos++
	return next
}

// Skip moves the cursor forward n positions.
// If n is zero or less, nothing is done.
// If the target index is bigger than the length of the underlying source rune array, the cursor moves to the end.
func (str *stream) Skip(n int) {
	if n <= 0 {
		return
	}
	str.SetCursorTo(str.curPos + n)
}

// Peek returns the next character, not moving the cursor forward.
// If there are no more characters left, EOF is returned.
func (str *stream) Peek() rune {
	return str.PeekNth(0)
}

// PeekN returns the next n characters, not moving the cursor forward.
// If less than n characters are left, only the remaining ones are returned.
func (str *stream) PeekN(n int) []rune {
	if n <= 0 || !str.HasNext() {
		return []rune{}
	}
	end := str.curPos + n
	if end > str.sourceLen {
		end = str.sourceLen
	}
	return str.source[str.curPos:end]
}

// PeekNth returns the nth character from the current position; 0 being the current one (equal to calling Peek).
// If n points to a position outside the range of the underlying source rune array, an EOF is returned.
func (str *stream) PeekNth(n int) rune {
	index := str.curPos + n
	if n < 0 || index >= str.sourceLen {
		return EOF
	}
	return str.source[index]
}

// PeekUntil peeks and returns the next characters until a character matches the terminator (this character is excluded).
// If the terminator did not match any character when EOF is reached, the rune array contains the rest of the source.
func (str *stream) PeekUntil(terminator func(char rune) bool) []rune {
	end := str.curPos
	for end < str.sourceLen && !terminator(str.source[end]) {
		end++
	}
	return str.source[str.curPos:end]
}
