package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"soldi_persi/pkg/core/agent"
	"soldi_persi/pkg/core/llm"
	"soldi_persi/pkg/core/prompt"
	"soldi_persi/pkg/core/utils"
	"soldi_persi/pkg/models"
)

// Ingestor runs the document extraction agent over a batch of files and
// merges the per-document results into one FinancialProfile.
type Ingestor struct {
	agentManager *agent.Manager
	vision       *VisionExtractor
}

// NewIngestor creates an ingestor backed by the configured agent manager.
func NewIngestor(mgr *agent.Manager) *Ingestor {
	return &Ingestor{
		agentManager: mgr,
		vision:       NewVisionExtractor(""),
	}
}

// extractionPayload is the raw JSON envelope the extraction model returns
// for a single document.
type extractionPayload struct {
	TipoDocumento string                 `json:"tipo_documento"`
	Confidence    float64                `json:"confidence"`
	DatiEstratti  map[string]interface{} `json:"dati_estratti"`
	Warnings      []string               `json:"warnings"`
	DatiMancanti  []string               `json:"dati_mancanti"`
}

// ProcessFiles extracts every file and merges the successful results.
// A document that cannot be read, extracted or parsed contributes nothing;
// the batch never fails as a whole.
func (ing *Ingestor) ProcessFiles(ctx context.Context, filePaths []string, extra *models.ExtraInfo) (*models.FinancialProfile, error) {
	var results []models.DocumentExtraction

	for _, fp := range filePaths {
		extraction, err := ing.ProcessFile(ctx, fp)
		if err != nil {
			fmt.Printf("[INGEST] Skipping %s: %v\n", filepath.Base(fp), err)
			continue
		}
		results = append(results, *extraction)
	}

	return MergeExtractions(results, extra), nil
}

// ProcessFile classifies and extracts a single document. Text and HTML go
// through the text provider; images go through the vision extractor.
func (ing *Ingestor) ProcessFile(ctx context.Context, filePath string) (*models.DocumentExtraction, error) {
	filename := filepath.Base(filePath)
	ext := strings.ToLower(filepath.Ext(filePath))
	systemPrompt := prompt.SystemPromptOr(prompt.PromptIDs.IngestionDocument, IngestionSystemPrompt)

	var raw string
	var err error

	switch {
	case IsImageExtension(ext):
		var data []byte
		data, err = os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		raw, err = ing.vision.ExtractImage(ctx, systemPrompt, filename, ext, data)
	default:
		// Everything else is treated as text; HTML is flattened first.
		var content []byte
		content, err = os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		text := string(content)
		if ext == ".html" || ext == ".htm" {
			text, err = HTMLToText(text)
			if err != nil {
				return nil, fmt.Errorf("failed to sanitize HTML: %w", err)
			}
		}
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("document contains no extractable text")
		}
		userPrompt := fmt.Sprintf("Documento: %s\n\nContenuto:\n%s", filename, text)
		raw, err = ing.agentManager.ExecutePrompt(ctx, agent.TypeIngestion, userPrompt, systemPrompt, llm.JSONMode())
	}
	if err != nil {
		return nil, err
	}

	var payload extractionPayload
	if err := utils.SmartParse(raw, &payload); err != nil {
		return nil, fmt.Errorf("extraction output unusable: %w", err)
	}
	if payload.TipoDocumento == "" {
		payload.TipoDocumento = models.DocNonRiconosciuto
	}

	return &models.DocumentExtraction{
		Filename:      filename,
		TipoDocumento: payload.TipoDocumento,
		DatiEstratti:  payload.DatiEstratti,
		Confidence:    payload.Confidence,
		Warnings:      payload.Warnings,
		DatiMancanti:  payload.DatiMancanti,
	}, nil
}
