package services

import "fmt"

// --- OCR User Prompts ---

const structuredPromptFormat = `Please perform OCR on this image from file: %s

IMPORTANT: This appears to be a form or questionnaire with rating scales. Please extract the content in a consistent, structured format.

Expected format:
%s

Guidelines:
1. For rating scale questions (1-5), look for CIRCLED numbers (not X marks). Extract as: "Question text [Selected: X]" where X is the circled number
2. For multiple choice, show: "Question [Selected: Option]"
3. For text fields, show: "Field name: [Content]"
4. Preserve the exact question numbers and order
5. If a question has sub-items (a, b, c), preserve that structure
6. If no option is circled/selected, indicate as [Selected: None]
7. IMPORTANT: Look for circles around numbers, not checkmarks or X marks

Return the extracted content in a consistent, structured format that can be easily parsed.`

const freeformPromptFormat = `Please perform OCR on this image and extract all text content.
This is from file: %s

Format the output as structured data if you identify:
- Tables: preserve the table structure
- Forms: extract field names and values
- Lists: maintain list formatting
- Rating scales: show as "Question [Selected: X]"

Return the extracted text in a clear, organized format.`

// BuildPrompt returns the OCR instruction for one page image. label identifies
// the source file and page; formatTemplate, when non-empty, is embedded
// verbatim as the expected structured layout the model should mimic. The
// builder is pure: identical inputs always yield byte-identical prompts.
func BuildPrompt(label, formatTemplate string) string {
	if formatTemplate != "" {
		return fmt.Sprintf(structuredPromptFormat, label, formatTemplate)
	}
	return fmt.Sprintf(freeformPromptFormat, label)
}
