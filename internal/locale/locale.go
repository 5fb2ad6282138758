// Package locale maps a caller's declared language preference to the output
// language instruction appended to the card synthesis system prompt.
//
// Only a small table of languages gets an explicit instruction. Everything
// else resolves to the empty string and the model is left to mirror the
// language of the source text.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Instructions for the recognized output languages.
const (
	InstructionTraditionalChinese = "Respond in Traditional Chinese (繁體中文) for all card text."
	InstructionSimplifiedChinese  = "Respond in Simplified Chinese (简体中文) for all card text."
	InstructionJapanese           = "Respond in Japanese (日本語) for all card text."
	InstructionKorean             = "Respond in Korean (한국어) for all card text."
)

// supported lists the matchable tags. The first entry is the matcher's
// fallback and carries no instruction.
var supported = []struct {
	tag         language.Tag
	instruction string
}{
	{language.Und, ""},
	{language.TraditionalChinese, InstructionTraditionalChinese},
	{language.SimplifiedChinese, InstructionSimplifiedChinese},
	{language.Japanese, InstructionJapanese},
	{language.Korean, InstructionKorean},
}

var matcher = newMatcher()

func newMatcher() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = s.tag
	}
	return language.NewMatcher(tags)
}

// Resolve returns the instruction line for preference, an Accept-Language
// header value or a single locale tag. It never fails: empty, malformed and
// unrecognized preferences yield "".
func Resolve(preference string) string {
	preference = strings.TrimSpace(preference)
	if preference == "" {
		return ""
	}

	tags, _, err := language.ParseAcceptLanguage(preference)
	if err != nil || len(tags) == 0 {
		return ""
	}

	// Only the highest ranked tag counts. A lower ranked supported language
	// must not override an unrecognized first choice.
	_, index, confidence := matcher.Match(tags[0])
	if confidence == language.No || index <= 0 || index >= len(supported) {
		return ""
	}
	return supported[index].instruction
}
