package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptDeterministic(t *testing.T) {
	template := "Question 1: [Text field response]\nQuestion 2: [Selected: (circled number 1-5)]"

	first := BuildPrompt("survey.pdf - Page 1", template)
	second := BuildPrompt("survey.pdf - Page 1", template)
	assert.Equal(t, first, second)

	first = BuildPrompt("scan.pdf - Page 3", "")
	second = BuildPrompt("scan.pdf - Page 3", "")
	assert.Equal(t, first, second)
}

func TestBuildPromptStructuredMode(t *testing.T) {
	template := "Q1: rating 1-5\nQ2: free text"
	prompt := BuildPrompt("form.pdf - Page 2", template)

	// The template is embedded verbatim as the expected format.
	assert.Contains(t, prompt, template)
	assert.Contains(t, prompt, "form.pdf - Page 2")
	assert.Contains(t, prompt, "CIRCLED numbers (not X marks)")
	assert.Contains(t, prompt, "[Selected: None]")
	assert.Contains(t, prompt, "sub-items (a, b, c)")
}

func TestBuildPromptFreeFormMode(t *testing.T) {
	prompt := BuildPrompt("notes.pdf - Page 1", "")

	assert.Contains(t, prompt, "notes.pdf - Page 1")
	assert.Contains(t, prompt, "[Selected: X]")
	assert.Contains(t, prompt, "Tables: preserve the table structure")
	assert.NotContains(t, prompt, "Expected format:")
}
