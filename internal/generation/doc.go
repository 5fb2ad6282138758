// Package generation implements the card generation pipeline: it turns pasted
// text or a photographed page into a validated list of flashcards using
// external AI/LLM services.
//
// A request moves through a fixed sequence of stages:
//
//	received -> normalizing -> (ocr_extracting ->)? synthesizing -> gating -> done
//
// Any stage failure ends the run in the failed state with a *StageError that
// wraps one of the taxonomy errors in errors.go. No stage is retried or
// re-entered by the pipeline.
//
// The model-facing work sits behind two small interfaces, TextExtractor and
// CardSynthesizer. The platform/gemini package implements both; tests use the
// doubles in internal/mocks.
package generation
