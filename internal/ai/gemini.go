package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	genai "google.golang.org/genai"
)

const (
	DefaultModel  = "gemini-3-flash-preview"
	FallbackModel = "gemini-2.5-flash"
)

var generationConfig = &genai.GenerateContentConfig{
	Temperature:     genai.Ptr[float32](0.7),
	TopP:            genai.Ptr[float32](0.95),
	MaxOutputTokens: 2000,
}

// generateFunc sends a single-turn text prompt to model.
type generateFunc func(ctx context.Context, model, prompt string) (string, error)

// Gemini is an Assistant backed by the Gemini API. Chat retries once on a
// fallback model with a smaller context before giving up.
type Gemini struct {
	generate      generateFunc
	model         string
	fallbackModel string
	logger        *zap.Logger
}

func NewGemini(ctx context.Context, apiKey, model, fallbackModel string, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing GOOGLE_API_KEY")
	}
	if model == "" {
		model = DefaultModel
	}
	if fallbackModel == "" {
		fallbackModel = FallbackModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	g := &Gemini{model: model, fallbackModel: fallbackModel, logger: logger}
	g.generate = func(ctx context.Context, model, prompt string) (string, error) {
		res, err := c.Models.GenerateContent(ctx, model, []*genai.Content{
			genai.NewContentFromText(prompt, genai.RoleUser),
		}, generationConfig)
		if err != nil {
			return "", err
		}
		return res.Text(), nil
	}
	return g, nil
}

// ask runs prompt on model and rejects empty completions.
func (g *Gemini) ask(ctx context.Context, model, prompt string) (string, error) {
	out, err := g.generate(ctx, model, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", model, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%s: no response received", model)
	}
	return out, nil
}

func (g *Gemini) Chat(ctx context.Context, question string, history []Message, documentContext string) (string, error) {
	out, err := g.ask(ctx, g.model, chatPrompt(question, history, documentContext))
	if err == nil {
		return out, nil
	}
	g.logger.Warn("primary model failed, trying fallback", zap.String("model", g.model), zap.Error(err))

	out, err = g.ask(ctx, g.fallbackModel, fallbackChatPrompt(question, history, documentContext))
	if err != nil {
		g.logger.Error("fallback model failed", zap.String("model", g.fallbackModel), zap.Error(err))
		return "", ErrUnavailable
	}
	return out, nil
}

func (g *Gemini) Analyze(ctx context.Context, documentText, fileName string) (string, error) {
	out, err := g.ask(ctx, g.model, analysisPrompt(documentText, fileName))
	if err != nil {
		g.logger.Error("document analysis failed", zap.String("file", fileName), zap.Error(err))
		return "", ErrAnalysisFailed
	}
	return stripCodeFences(out), nil
}

// stripCodeFences removes a ```lang ... ``` wrapper around the whole response.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i != -1 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
