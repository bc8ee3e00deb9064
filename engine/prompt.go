package engine

// DefaultSystemPrompt is the fixed instruction prepended to every enriched
// prompt unless overridden.
const DefaultSystemPrompt = "You are a professional support assistant. Always respond with empathy, clarity, " +
	"and helpful next steps. Keep the response very short, not more than 2 lines. " +
	"Avoid asking unnecessary questions. Use the provided context to offer practical solutions."

// BuildPrompt assembles the enriched prompt: system instruction, memory
// context, then the user's message. An empty context is omitted entirely,
// including its separator, so the model never sees a blank block.
func BuildPrompt(systemPrompt, memoryContext, message string) string {
	if memoryContext == "" {
		return systemPrompt + "\n\nUser: " + message
	}
	return systemPrompt + "\n\n" + memoryContext + "\nUser: " + message
}
