package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ImportFormat identifies one of the recognized card import shapes.
type ImportFormat string

const (
	// ImportFormatFrontBack is [{"front": ..., "back": ...}].
	ImportFormatFrontBack ImportFormat = "front_back"

	// ImportFormatWordDefinition is [{"word": ..., "definition": ..., "example": ...}].
	ImportFormatWordDefinition ImportFormat = "word_definition"
)

// DetectImportFormat inspects a single decoded element and returns its shape.
func DetectImportFormat(item map[string]json.RawMessage) (ImportFormat, error) {
	if hasKeys(item, "front", "back") {
		return ImportFormatFrontBack, nil
	}
	if hasKeys(item, "word", "definition") {
		return ImportFormatWordDefinition, nil
	}
	return "", fmt.Errorf("%w: JSON format not recognized. Use {front, back} or {word, definition, example}",
		ErrInvalidFormat)
}

// DecodeCardImport parses a JSON array of card-like objects. The shape is
// taken from the first element and applied to every element. Cards missing
// either side after conversion are dropped.
func DecodeCardImport(data []byte) ([]GeneratedCard, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: JSON must be an array", ErrInvalidFormat)
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: array is empty", ErrInvalidFormat)
	}

	format, err := DetectImportFormat(items[0])
	if err != nil {
		return nil, err
	}

	cards := make([]GeneratedCard, 0, len(items))
	for _, item := range items {
		var card GeneratedCard
		switch format {
		case ImportFormatFrontBack:
			card = GeneratedCard{
				Front: stringValue(item["front"]),
				Back:  stringValue(item["back"]),
			}
		case ImportFormatWordDefinition:
			card = GeneratedCard{
				Front: stringValue(item["word"]),
				Back:  definitionBack(stringValue(item["definition"]), stringValue(item["example"])),
			}
		}

		if card.Front == "" || card.Back == "" {
			continue
		}
		cards = append(cards, card)
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("%w (missing front/back or word/definition)", ErrNoValidCards)
	}

	return cards, nil
}

func definitionBack(definition, example string) string {
	if example == "" {
		return definition
	}
	return definition + "\n\nExample: " + example
}

func hasKeys(item map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		if _, ok := item[k]; !ok {
			return false
		}
	}
	return true
}

// stringValue renders a JSON value as text. Strings are unquoted, null and
// missing values are empty, anything else keeps its JSON spelling.
func stringValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
