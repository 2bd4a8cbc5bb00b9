package ai

import (
	"context"
	"errors"
)

var (
	ErrUnavailable    = errors.New("AI service is currently unavailable. Please try again in a moment")
	ErrAnalysisFailed = errors.New("failed to analyze document. Please try again")
)

// Roles used in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Assistant answers questions about extracted document text. Implementations
// apply their own context-window policy to documentContext and history.
type Assistant interface {
	Chat(ctx context.Context, question string, history []Message, documentContext string) (string, error)
	Analyze(ctx context.Context, documentText, fileName string) (string, error)
}

// Noop is an Assistant that is never configured. Every call fails with
// ErrUnavailable.
type Noop struct{}

func (Noop) Chat(ctx context.Context, question string, history []Message, documentContext string) (string, error) {
	return "", ErrUnavailable
}

func (Noop) Analyze(ctx context.Context, documentText, fileName string) (string, error) {
	return "", ErrAnalysisFailed
}
