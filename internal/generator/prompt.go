package generator

import "fmt"

const promptTemplate = `
You are a scenario designer generating creative, open-ended prompts for software engineers.

Generate a short, realistic product or stakeholder request as a markdown-formatted narrative.

Context:
- Role: %s software engineer
- Industry: %s
- Difficulty level: %s

Guidelines:
- Use 3–5 sentences in total
- Present a concise product need or situation without introducing sample data, code, or structure
- Write in natural, narrative form – like a product brief or real-world stakeholder request
- Avoid bullet points, headers, code blocks, and JSON
- Do not mention "title", "industry", or any other metadata
- The challenge should inspire creative engineering thought without being too long or too prescriptive

Only return the markdown description as a plain string.
`

// BuildPrompt renders the scenario-designer prompt for one challenge
func BuildPrompt(industry, role, difficulty string) string {
	return fmt.Sprintf(promptTemplate, role, industry, difficulty)
}
