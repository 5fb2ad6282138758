// Command cardgen generates flashcards from the command line.
//
// It runs the same pipeline as the server: text or an image goes in, a card
// set comes out. Import files in either of the two supported JSON shapes can
// be converted without calling a model.
//
//	cardgen generate --text "mitochondria: the powerhouse of the cell"
//	cardgen generate --image page.jpg --lang ja
//	cardgen ocr --image page.jpg
//	cardgen import --file vocab.json --json
package main
