package gemini

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.0-flash"

const systemInstruction = `You sort shopping and to-do list items into categories.
Answer with one category name of one to three words, title case, and nothing else.`

var promptTemplate = template.Must(template.New("category").Parse(
	`Which category does this list item belong to?
Item: {{.Label}}`))

type promptData struct {
	Label string
}

func buildPrompt(label string) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, promptData{Label: label}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// cleanCategory keeps the first line of the answer and strips quoting and
// trailing punctuation the model sometimes adds.
func cleanCategory(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.Trim(text, " \t\"'`*.")
	return text
}
