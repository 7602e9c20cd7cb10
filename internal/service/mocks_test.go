package service

import (
	"context"
	"sync"
)

// fakeChatClient records every request and answers with a canned reply
type fakeChatClient struct {
	mu       sync.Mutex
	response string
	err      error
	requests []ChatRequest
}

func (f *fakeChatClient) CreateChatCompletion(_ context.Context, req ChatRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.response, f.err
}

func (f *fakeChatClient) lastRequest() ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}
