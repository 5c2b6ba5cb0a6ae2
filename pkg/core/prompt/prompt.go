// Package prompt provides a centralized prompt library for LLM interactions.
// Prompts live in JSON files under resources/prompts and are loaded at
// startup; every agent also carries a hardcoded fallback so the pipeline
// works without the resources directory.
package prompt

// PromptTemplate represents a reusable prompt with metadata
type PromptTemplate struct {
	ID           string `json:"id"`            // Unique identifier (e.g. "analysis.tax")
	Name         string `json:"name"`          // Human-readable name
	Category     string `json:"category"`      // ingestion, analysis, ...
	Description  string `json:"description"`   // Description of prompt purpose
	SystemPrompt string `json:"system_prompt"` // The system prompt content
	Version      string `json:"version"`       // Version for tracking changes
}

// Well-known prompt identifiers.
var PromptIDs = struct {
	IngestionDocument string
	AnalysisTax       string
	AnalysisCost      string
	AnalysisBenefit   string
}{
	IngestionDocument: "ingestion.document",
	AnalysisTax:       "analysis.tax",
	AnalysisCost:      "analysis.cost",
	AnalysisBenefit:   "analysis.benefit",
}

// SystemPromptOr returns the registered system prompt for id, or fallback
// when the registry has no entry (e.g. resources dir not shipped).
func SystemPromptOr(id string, fallback string) string {
	p, err := Get().GetSystemPrompt(id)
	if err != nil || p == "" {
		return fallback
	}
	return p
}
