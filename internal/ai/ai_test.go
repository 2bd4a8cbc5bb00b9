package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type call struct {
	model  string
	prompt string
}

type scriptedModel struct {
	replies map[string]string
	errs    map[string]error
	calls   []call
}

func (s *scriptedModel) generate(_ context.Context, model, prompt string) (string, error) {
	s.calls = append(s.calls, call{model: model, prompt: prompt})
	if err := s.errs[model]; err != nil {
		return "", err
	}
	return s.replies[model], nil
}

func newTestGemini(t *testing.T, m *scriptedModel) *Gemini {
	return &Gemini{generate: m.generate, model: "primary", fallbackModel: "fallback", logger: zaptest.NewLogger(t)}
}

func history(n int) []Message {
	h := make([]Message, n)
	for i := range h {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		h[i] = Message{Role: role, Content: fmt.Sprintf("turn-%02d", i)}
	}
	return h
}

func TestChatPrimaryPrompt(t *testing.T) {
	m := &scriptedModel{replies: map[string]string{"primary": "  The total is $40.  \n"}}
	doc := strings.Repeat("d", chatDocumentChars+500)

	out, err := newTestGemini(t, m).Chat(context.Background(), "What is the total?", history(12), doc)
	require.NoError(t, err)

	assert.Equal(t, "The total is $40.", out)
	require.Len(t, m.calls, 1)
	p := m.calls[0].prompt
	assert.True(t, strings.HasPrefix(p, systemPrompt))
	assert.NotContains(t, p, "turn-01")
	assert.Contains(t, p, "USER: turn-02\nASSISTANT: turn-03")
	assert.Contains(t, p, "ASSISTANT: turn-11")
	assert.Contains(t, p, "Document Context:\n"+strings.Repeat("d", chatDocumentChars)+"\n\n")
	assert.NotContains(t, p, strings.Repeat("d", chatDocumentChars+1))
	assert.True(t, strings.HasSuffix(p, "User Question: What is the total?"))
}

func TestChatFallsBackWithSmallerContext(t *testing.T) {
	m := &scriptedModel{
		errs:    map[string]error{"primary": errors.New("quota exceeded")},
		replies: map[string]string{"fallback": "fallback answer"},
	}
	doc := strings.Repeat("e", chatDocumentChars)

	out, err := newTestGemini(t, m).Chat(context.Background(), "Summarize", history(12), doc)
	require.NoError(t, err)

	assert.Equal(t, "fallback answer", out)
	require.Len(t, m.calls, 2)
	p := m.calls[1].prompt
	assert.Equal(t, "fallback", m.calls[1].model)
	assert.NotContains(t, p, "turn-03")
	assert.Contains(t, p, "USER: turn-04")
	assert.Contains(t, p, "Document Context:\n"+strings.Repeat("e", fallbackDocumentChars)+"\n\nUser Question: Summarize")
	assert.NotContains(t, p, strings.Repeat("e", fallbackDocumentChars+1))
}

func TestChatEmptyReplyTriggersFallback(t *testing.T) {
	m := &scriptedModel{replies: map[string]string{"primary": "   ", "fallback": "ok"}}

	out, err := newTestGemini(t, m).Chat(context.Background(), "hi", nil, "")
	require.NoError(t, err)

	assert.Equal(t, "ok", out)
	assert.True(t, strings.HasSuffix(m.calls[1].prompt, "\n\nhi"))
	assert.NotContains(t, m.calls[1].prompt, "User Question")
}

func TestChatUnavailableWhenBothFail(t *testing.T) {
	m := &scriptedModel{errs: map[string]error{"primary": errors.New("down"), "fallback": errors.New("down")}}

	_, err := newTestGemini(t, m).Chat(context.Background(), "hi", nil, "doc")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAnalyze(t *testing.T) {
	m := &scriptedModel{replies: map[string]string{"primary": "```markdown\n# Summary\nA short report.\n```"}}
	doc := strings.Repeat("f", analysisDocumentChars+10)

	out, err := newTestGemini(t, m).Analyze(context.Background(), doc, "report.pdf")
	require.NoError(t, err)

	assert.Equal(t, "# Summary\nA short report.", out)
	p := m.calls[0].prompt
	assert.Contains(t, p, `PDF document "report.pdf"`)
	assert.Contains(t, p, strings.Repeat("f", analysisDocumentChars))
	assert.NotContains(t, p, strings.Repeat("f", analysisDocumentChars+1))
}

func TestAnalyzeFailure(t *testing.T) {
	m := &scriptedModel{errs: map[string]error{"primary": errors.New("boom")}}

	_, err := newTestGemini(t, m).Analyze(context.Background(), "text", "a.pdf")

	assert.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestNoop(t *testing.T) {
	_, err := Noop{}.Chat(context.Background(), "q", nil, "")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = Noop{}.Analyze(context.Background(), "t", "f")
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestTruncateCountsRunes(t *testing.T) {
	assert.Equal(t, "héll", truncate("héllo", 4))
	assert.Equal(t, "héllo", truncate("héllo", 10))
	assert.Equal(t, "", truncate("abc", 0))
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, "body", stripCodeFences("```md\nbody\n```"))
	assert.Equal(t, "plain", stripCodeFences("  plain "))
	assert.Equal(t, "a ``` b", stripCodeFences("a ``` b"))
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "", "", nil)
	assert.Error(t, err)
}
