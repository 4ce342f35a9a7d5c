package ocr

// Engine defines the interface for optical character recognition engines.
// An engine reads a receipt image and returns the detected text spans as
// ordered lines, with no guarantee of correctness or layout preservation.
type Engine interface {
	// ExtractLines runs OCR on a receipt image/PDF and returns the raw text lines
	ExtractLines(imageData []byte, contentType string) ([]string, error)
	// Close closes the engine and releases resources
	Close() error
}
