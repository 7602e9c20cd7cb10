package types

// ImagePayload is an uploaded photo held for the duration of a single request
type ImagePayload struct {
	Data      []byte
	MediaType string
	Filename  string
}
