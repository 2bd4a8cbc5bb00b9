package ai

import (
	"fmt"
	"strings"
)

// Context-window policy. The fallback request is deliberately smaller.
const (
	chatHistoryTurns      = 10
	chatDocumentChars     = 8000
	fallbackHistoryTurns  = 8
	fallbackDocumentChars = 6000
	analysisDocumentChars = 10000
)

const systemPrompt = `You are an expert assistant for analyzing PDF documents and answering questions about them.

Core capabilities:
- Comprehensive document analysis and understanding
- Precise information extraction and summarization
- Context-aware answers grounded in the provided document
- Clear explanations of complex concepts

Answering:
1. Start with a direct answer to the question
2. Follow with supporting details from the document
3. Use formatting (bold, lists) where it improves clarity
4. Quote or reference the relevant page when possible
5. Say so plainly when the document does not contain the answer`

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func lastTurns(history []Message, n int) []Message {
	if len(history) > n {
		return history[len(history)-n:]
	}
	return history
}

func renderHistory(history []Message) string {
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, strings.ToUpper(m.Role)+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

func chatPrompt(question string, history []Message, documentContext string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")
	if h := lastTurns(history, chatHistoryTurns); len(h) > 0 {
		b.WriteString(renderHistory(h))
		b.WriteString("\n\n")
	}
	if documentContext != "" {
		b.WriteString("Document Context:\n")
		b.WriteString(truncate(documentContext, chatDocumentChars))
		b.WriteString("\n\n")
	}
	b.WriteString("User Question: ")
	b.WriteString(question)
	return b.String()
}

func fallbackChatPrompt(question string, history []Message, documentContext string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")
	b.WriteString(renderHistory(lastTurns(history, fallbackHistoryTurns)))
	b.WriteString("\n\n")
	if documentContext == "" {
		b.WriteString(question)
		return b.String()
	}
	b.WriteString("Document Context:\n")
	b.WriteString(truncate(documentContext, fallbackDocumentChars))
	b.WriteString("\n\nUser Question: ")
	b.WriteString(question)
	return b.String()
}

func analysisPrompt(documentText, fileName string) string {
	return systemPrompt + "\n\n" + fmt.Sprintf(`Please provide a comprehensive analysis of this PDF document %q.

Document Content:
%s

Please provide:
1. Document Summary
2. Key Topics
3. Important Information
4. Structure Analysis
5. Notable Elements

Format the response with clear headings and bullet points.`, fileName, truncate(documentText, analysisDocumentChars))
}
