// Package gemini provides implementations of the generation.TextExtractor and
// generation.CardSynthesizer interfaces backed by Google's Gemini API.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the card generation pipeline to Google's external Gemini
// service. It translates between the pipeline's request and result types and
// the Gemini API without exposing the details of the external service to the
// core application.
//
// Key components:
//
// 1. Extractor:
//   - Implements the generation.TextExtractor interface
//   - Sends a single image plus a fixed OCR instruction to the vision model
//   - Reports whitespace-only output as generation.ErrOCREmptyResult
//
// 2. Synthesizer:
//   - Implements the generation.CardSynthesizer interface
//   - Sends the rendered system instruction and user prompt to the text model
//   - Constrains the output with a JSON response schema
//   - Validates that every card carries front and back keys
//
// 3. Error Handling:
//   - Retries transient failures (rate limits, server errors, network
//     errors) with exponential backoff and jitter via sethvargo/go-retry
//   - Translates API errors to the generation error taxonomy
//   - Handles content filtering and safety measures
//
// The package depends on Google's google.golang.org/genai client library.
// Both adapters talk to the API through the narrow modelsAPI interface, which
// *genai.Models satisfies and tests replace with a fake.
package gemini
