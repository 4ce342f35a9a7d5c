package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// EasyOCR implements the Engine interface against an EasyOCR sidecar server.
// The sidecar loads the recognition model once at startup and exposes it over
// HTTP, so this process never pays the model load cost.
type EasyOCR struct {
	baseURL string
	client  *http.Client
}

// NewEasyOCR creates a new EasyOCR Engine instance
func NewEasyOCR(baseURL string) (*EasyOCR, error) {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	return &EasyOCR{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second, // recognition on CPU can be slow for large photos
		},
	}, nil
}

// easyOCRRequest represents the request body for the sidecar's readtext API
type easyOCRRequest struct {
	Image     string   `json:"image"`
	Languages []string `json:"languages"`
	Detail    int      `json:"detail"`
	Paragraph bool     `json:"paragraph"`
}

// easyOCRResponse represents the response from the sidecar's readtext API
type easyOCRResponse struct {
	Results []string `json:"results"`
}

// ExtractLines runs OCR on a receipt and returns the detected text lines
func (e *EasyOCR) ExtractLines(imageData []byte, contentType string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	pngData, err := preparePNG(imageData, contentType)
	if err != nil {
		return nil, err
	}

	enhanced, err := enhanceForOCR(pngData)
	if err != nil {
		return nil, err
	}

	reqBody := easyOCRRequest{
		Image:     base64.StdEncoding.EncodeToString(enhanced),
		Languages: []string{"id", "en"},
		Detail:    0,
		Paragraph: false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/readtext", e.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling easyocr API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("easyocr API error (status %d): %s", resp.StatusCode, string(body))
	}

	var ocrResp easyOCRResponse
	if err := json.NewDecoder(resp.Body).Decode(&ocrResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	lines := make([]string, 0, len(ocrResp.Results))
	for _, line := range ocrResp.Results {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines, nil
}

// Close closes the EasyOCR client (no-op for HTTP client)
func (e *EasyOCR) Close() error {
	return nil
}
