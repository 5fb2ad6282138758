// Package api handles incoming HTTP requests, request validation and
// response formatting for card generation, text extraction and card import.
// It acts as an adapter between external clients and the generation
// pipeline, translating HTTP concerns to pipeline calls and pipeline errors
// to status codes.
package api
