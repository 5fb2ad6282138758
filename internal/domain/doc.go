// Package domain defines the core entities exchanged by the card generation
// pipeline: the incoming GenerationRequest, the GeneratedCard pairs it
// produces, and the GenerationResult returned to callers. It also owns the
// decoding of user-supplied card import files.
//
// None of these entities are persisted here. Turning a GeneratedCard into a
// stored card row is the job of the deck/collection API that calls us.
package domain
