package services

import "fmt"

// AnswerGenerator turns a question into an answer. Implementations must be
// pure: no I/O, no shared state.
type AnswerGenerator interface {
	Generate(question string) string
}

// TemplateAnswerGenerator echoes the question inside a fixed placeholder
// reply; no model is wired up.
type TemplateAnswerGenerator struct{}

func NewTemplateAnswerGenerator() TemplateAnswerGenerator {
	return TemplateAnswerGenerator{}
}

func (TemplateAnswerGenerator) Generate(question string) string {
	return fmt.Sprintf("I received your question: \"%s\". This is a placeholder response from the AI chatbot. "+
		"In a real implementation, this would connect to an AI service like OpenAI, Claude, or similar to generate meaningful responses.", question)
}

// AnswerGeneratorFunc adapts a plain function to AnswerGenerator.
type AnswerGeneratorFunc func(question string) string

func (f AnswerGeneratorFunc) Generate(question string) string { return f(question) }
