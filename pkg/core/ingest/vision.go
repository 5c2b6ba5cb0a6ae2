package ingest

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// VisionExtractor handles scanned documents (photos, scans) that carry no
// extractable text. It talks to Gemini directly through the multimodal SDK
// instead of the text-only Provider interface.
type VisionExtractor struct {
	modelName string
}

// NewVisionExtractor creates a vision extractor. model may be empty.
func NewVisionExtractor(model string) *VisionExtractor {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &VisionExtractor{modelName: model}
}

var imageMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// IsImageExtension reports whether ext (with leading dot, lower case) is a
// supported image format.
func IsImageExtension(ext string) bool {
	_, ok := imageMIMETypes[ext]
	return ok
}

// ExtractImage sends one image document through the multimodal model and
// returns the raw model output (expected to be the ingestion JSON).
func (v *VisionExtractor) ExtractImage(ctx context.Context, systemPrompt string, filename string, ext string, imageData []byte) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	mimeType, ok := imageMIMETypes[ext]
	if !ok {
		return "", fmt.Errorf("unsupported image format: %s", ext)
	}
	format := strings.TrimPrefix(mimeType, "image/")

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(v.modelName)
	model.SetTemperature(0.1)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(format, imageData),
		genai.Text(fmt.Sprintf("Analizza questo documento (%s) ed estrai tutti i dati finanziari/fiscali.", filename)),
	)
	if err != nil {
		return "", fmt.Errorf("vision extraction failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("vision extraction returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}
