package service

import "errors"

var (
	// ErrReadPayload is returned when the uploaded image cannot be read
	ErrReadPayload = errors.New("failed to read image payload")
	// ErrModelRequest is returned when the provider call fails or returns nothing usable
	ErrModelRequest = errors.New("model request failed")
	// ErrDecodeResponse is returned when a completion cannot be parsed into recipes
	ErrDecodeResponse = errors.New("could not decode the model's response")
	// ErrNoJSONArray is returned when a completion contains no [...] region
	ErrNoJSONArray = errors.New("no JSON array found in model response")
)
