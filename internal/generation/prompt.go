package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
)

//go:embed prompts/system.txt
var defaultSystemPrompt string

//go:embed prompts/user.tmpl
var defaultUserTemplate string

// OCRInstruction is the fixed instruction sent with every image.
const OCRInstruction = "Extract all text from this image. Output only the raw text, no commentary."

// userPromptData represents the data passed to the user prompt template
type userPromptData struct {
	SourceText   string
	HelperPrompt string
}

// Prompts renders the system instruction and user prompt for card synthesis.
// It is immutable after construction and safe for concurrent use.
type Prompts struct {
	system string
	user   *template.Template
}

// NewPrompts builds Prompts from the embedded defaults. A non-empty
// systemPromptPath replaces the embedded system prompt with the file contents.
func NewPrompts(systemPromptPath string) (*Prompts, error) {
	system := defaultSystemPrompt
	if systemPromptPath != "" {
		content, err := os.ReadFile(systemPromptPath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read system prompt from %s: %v",
				ErrInvalidConfig, systemPromptPath, err)
		}
		system = string(content)
	}

	system = strings.TrimSpace(system)
	if system == "" {
		return nil, fmt.Errorf("%w: system prompt cannot be empty", ErrInvalidConfig)
	}

	user, err := template.New("user").Parse(defaultUserTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse user prompt template: %v", ErrInvalidConfig, err)
	}

	return &Prompts{system: system, user: user}, nil
}

// System returns the system instruction with the locale instruction, if any,
// on its own final line.
func (p *Prompts) System(localeInstruction string) string {
	localeInstruction = strings.TrimSpace(localeInstruction)
	if localeInstruction == "" {
		return p.system
	}
	return p.system + "\n" + localeInstruction
}

// User renders the user prompt for req.
func (p *Prompts) User(req SynthesisRequest) (string, error) {
	if strings.TrimSpace(req.SourceText) == "" {
		return "", fmt.Errorf("%w: source text cannot be empty", ErrGenerationFailed)
	}

	var buf bytes.Buffer
	data := userPromptData{
		SourceText:   req.SourceText,
		HelperPrompt: strings.TrimSpace(req.HelperPrompt),
	}
	if err := p.user.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute user prompt template: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
