package chat

import (
	"regexp"
	"strings"
)

// Spanish stopwords dropped before FAQ scoring.
var stopwordsES = map[string]struct{}{
	"de": {}, "la": {}, "los": {}, "las": {}, "el": {}, "un": {},
	"una": {}, "que": {}, "con": {}, "y": {}, "en": {}, "para": {},
	"por": {}, "a": {}, "mi": {}, "tu": {}, "su": {}, "sus": {},
	"del": {}, "al": {}, "me": {}, "te": {}, "se": {}, "lo": {},
	"le": {}, "les": {}, "nos": {}, "vos": {}, "ya": {}, "o": {},
	"u": {}, "es": {}, "son": {}, "si": {}, "no": {}, "cual": {},
	"cuales": {}, "sobre": {}, "este": {}, "esta": {}, "estos": {},
	"estas": {}, "eso": {}, "esa": {}, "esas": {},
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
	"ü", "u", "ñ", "n",
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	wordPattern     = regexp.MustCompile(`\w+`)

	emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	// A digit run only counts as a phone with a +56/56 country prefix or
	// in the 9-digit mobile shape. Bare runs (order numbers) are kept.
	phonePattern = regexp.MustCompile(`(?:\+|\b)56[\s.-]?(?:\(?\d{1,3}\)?[\s.-]?)?\d{7,9}|\b9[\s.-]?\d{4}[\s.-]?\d{4}\b`)
	rutPattern   = regexp.MustCompile(`\b\d{1,2}\.?\d{3}\.?\d{3}-[\dkK]\b`)
)

// NormalizeText lowercases, strips Spanish accents and collapses anything
// non-alphanumeric to single spaces.
func NormalizeText(text string) string {
	text = strings.ToLower(text)
	text = accentReplacer.Replace(text)
	text = nonAlphanumeric.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// TokenizeES splits normalized text into content tokens: words of three or
// more characters that are not Spanish stopwords.
func TokenizeES(text string) []string {
	var tokens []string
	for _, word := range wordPattern.FindAllString(text, -1) {
		if len(word) < 3 {
			continue
		}
		if _, stop := stopwordsES[word]; stop {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// RedactPII masks emails, Chilean phone numbers and RUTs before a message
// is stored.
func RedactPII(text string) string {
	if text == "" {
		return text
	}
	text = emailPattern.ReplaceAllString(text, "[email_redactado]")
	text = phonePattern.ReplaceAllString(text, "[fono_redactado]")
	text = rutPattern.ReplaceAllString(text, "[rut_redactado]")
	return text
}
