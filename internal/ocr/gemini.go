package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// transcribePrompt asks for a verbatim transcription rather than any
// interpretation: the heuristic parser owns all meaning extraction, the
// engine only reads characters.
const transcribePrompt = `Transcribe every line of text visible in this receipt image, exactly as printed, top to bottom.

Rules:
- Output one receipt line per output line, in reading order
- Preserve numbers, punctuation, and currency markers exactly (e.g. "Rp 14.000" stays "Rp 14.000")
- Do not translate, summarize, interpret, or reorder anything
- Do not add labels, commentary, or markdown code blocks
- If a line is unreadable, skip it`

// Gemini implements the Engine interface using Google Gemini vision as a
// remote OCR collaborator.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini Engine instance
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// ExtractLines runs OCR on a receipt and returns the detected text lines
func (g *Gemini) ExtractLines(imageData []byte, contentType string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pngData, err := preparePNG(imageData, contentType)
	if err != nil {
		return nil, err
	}

	enhanced, err := enhanceForOCR(pngData)
	if err != nil {
		return nil, err
	}

	parts := []genai.Part{
		genai.ImageData("png", enhanced),
		genai.Text(transcribePrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	return splitTranscript(responseText.String()), nil
}

// splitTranscript turns a transcription response into trimmed, non-empty
// lines, dropping any markdown fences the model adds despite the prompt.
func splitTranscript(text string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}
