// Package mocks provides centralized mock implementations for testing.
//
// The mocks here stand in for the two model boundaries of the generation
// pipeline, generation.TextExtractor and generation.CardSynthesizer, so that
// pipeline and handler tests never reach a real model. Each mock records its
// calls, which lets tests assert that a stage was skipped.
//
// Usage:
//
//	import "github.com/phrazzld/scry-cardgen/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    extractor := mocks.NewMockTextExtractorWithText("   ")
//	    synthesizer := mocks.NewMockCardSynthesizerWithDefaultCards()
//
//	    // Run the pipeline, then check synthesizer.CallCount() == 0
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
