package ocr

import "strings"

// corrections maps characters Tesseract commonly returns for grid
// digits to the digit they most likely represent. Every entry maps to
// exactly one digit 1-9.
var corrections = map[rune]int{
	'l': 1, 'I': 1, '|': 1, 'i': 1, '!': 1,
	'Z': 2, 'z': 2,
	'E': 3,
	'A': 4, 'h': 4,
	'S': 5, 's': 5,
	'G': 6, 'b': 6,
	'T': 7, '/': 7, ',': 7, '?': 7, ')': 7, ']': 7, 'J': 7, 'j': 7,
	'B': 8,
	'g': 9, 'q': 9,
}

// ResolveDigit turns raw recognizer text into a digit 1-9.
//
// Resolution order:
//  1. The trimmed text is exactly one character 1-9.
//  2. Any character 1-9 anywhere in the text; the first wins.
//  3. The first character with a confusion-table correction.
//
// The boolean is false when nothing resolves. A literal "0" never
// resolves; grid digits are 1-9 and a zero is always a misread.
func ResolveDigit(text string) (int, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false
	}

	runes := []rune(trimmed)
	if len(runes) == 1 && runes[0] >= '1' && runes[0] <= '9' {
		return int(runes[0] - '0'), true
	}

	for _, r := range runes {
		if r >= '1' && r <= '9' {
			return int(r - '0'), true
		}
	}

	for _, r := range runes {
		if d, ok := corrections[r]; ok {
			return d, true
		}
	}

	return 0, false
}
