package analysis

import "strings"

const systemPromptHead = `You are an expert fact-checker specialized in detecting fake news.
Analyze the provided text and assess its credibility against these criteria:

1. **Language and tone**: excessive emotional language, clickbait, sensationalism
2. **Sources**: mentions of verifiable sources, quotations, references
3. **Coherence**: internal logic, contradictions, factual inconsistencies
4. **Bias**: obvious partiality, manipulation, propaganda
5. **Structure**: writing quality, professionalism

Return a JSON object with this exact structure:
`

// userPromptLead precedes the article text in the user turn.
const userPromptLead = "Analyze this text:\n\n"

var systemPrompt = systemPromptHead + jsonShape() + "\n"

// SystemPrompt returns the fixed instruction sent with every analysis. Its
// JSON template is rendered from the same field table Validate uses.
func SystemPrompt() string {
	return systemPrompt
}

// UserPrompt embeds the article text verbatim after a short lead-in.
func UserPrompt(articleText string) string {
	var b strings.Builder
	b.Grow(len(userPromptLead) + len(articleText))
	b.WriteString(userPromptLead)
	b.WriteString(articleText)
	return b.String()
}
