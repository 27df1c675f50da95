package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes the JSON object a model should pull out of free text.
type ExtractionSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
	Rules       []string
}

// SchemaField is one key of the extraction output.
type SchemaField struct {
	Name        string
	Type        string
	Description string
	Nullable    bool
}

// BuildExtractionPrompt renders schema and the input text into one prompt.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\nReturn a single JSON object with exactly these keys:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		if field.Nullable {
			typeHint += " or null"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s", field.Name, typeHint))
		if field.Description != "" {
			sb.WriteString(" // " + field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")

	if len(schema.Rules) > 0 {
		sb.WriteString("\nRules:\n")
		for _, rule := range schema.Rules {
			sb.WriteString("- " + rule + "\n")
		}
	}

	sb.WriteString("\nInput text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// StarStorySchema is the schema for splitting a raw story into STAR sections.
// validLPs lists the LP ids the model may suggest.
func StarStorySchema(validLPs []string) ExtractionSchema {
	return ExtractionSchema{
		Name: "StarStory",
		Description: `You are an expert at analyzing behavioral interview stories and structuring them into STAR format (Situation, Task, Action, Result).
Convert the raw story below into STAR sections plus supporting metadata. Never fabricate details not present in the input.
If the input is not a professional story or is too vague to structure, return {"error": "Invalid input", "reason": "<explanation>"} instead.`,
		Fields: []SchemaField{
			{Name: "title", Description: "3-6 word summary of the core challenge or achievement"},
			{Name: "situation", Nullable: true, Description: "~20-40 words of context with scale, stakes and timeline"},
			{Name: "task", Nullable: true, Description: "~15-30 words on the candidate's own responsibility"},
			{Name: "action", Nullable: true, Description: `~100-200 words of steps the candidate took, written with "I"`},
			{Name: "result", Nullable: true, Description: "~40-80 words of outcomes, quantified where the story allows"},
			{Name: "metrics", Type: `["string"]`, Description: "quantified facts as stated; empty array if none"},
			{Name: "suggestedLPs", Type: `["string"]`, Description: "2-3 LP ids from: " + strings.Join(validLPs, ", ")},
			{Name: "confidence", Type: `"high" | "medium" | "low"`, Description: "low when major STAR sections are missing"},
		},
		Rules: []string{
			"Set a section to null when the story does not contain it.",
			`Use "I" statements in the action section.`,
			"Return ONLY the JSON object, no markdown, no explanation.",
		},
	}
}
