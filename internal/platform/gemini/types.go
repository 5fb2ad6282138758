package gemini

import "google.golang.org/genai"

const responseMIMEType = "application/json"

// cardSetResponse is the JSON object the text model is asked to return.
// Pointer fields distinguish a missing key from an empty value.
type cardSetResponse struct {
	Cards *[]cardResponse `json:"cards"`
}

// cardResponse is a single card in the model's response.
type cardResponse struct {
	Front *string `json:"front"`
	Back  *string `json:"back"`
}

// cardSetSchema constrains the text model's output to
// {"cards": [{"front": string, "back": string}]}.
var cardSetSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"cards": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"front": {Type: genai.TypeString, Description: "Question or term"},
					"back":  {Type: genai.TypeString, Description: "Answer or definition"},
				},
				Required:         []string{"front", "back"},
				PropertyOrdering: []string{"front", "back"},
			},
		},
	},
	Required: []string{"cards"},
}
