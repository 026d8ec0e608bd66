// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package recommend

import (
	"strings"
	"unicode"
)

// asciiPunctuation is every printable ASCII character that is not a letter,
// digit or space.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Preprocess lower-cases text and removes ASCII punctuation.
// Whitespace and non-ASCII characters are kept.
func Preprocess(text string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return unicode.ToLower(r)
	}, text)
}

// Tokenize splits preprocessed text on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(Preprocess(text))
}
