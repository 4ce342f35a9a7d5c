package receipt

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wicaksana/rupiah-receipts/internal/ocr"
	"github.com/wicaksana/rupiah-receipts/internal/parser"
)

// IDGenerator generates unique IDs for receipts
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates random UUIDs
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles receipt operations
type Service struct {
	db          DB
	engine      ocr.Engine
	storage     Storage
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, engine ocr.Engine, storage Storage) *Service {
	return &Service{
		db:          db,
		engine:      engine,
		storage:     storage,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, engine ocr.Engine, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		engine:      engine,
		storage:     storage,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	repeatedSpaces      = regexp.MustCompile(`\s+`)
)

// sanitizeFilename cleans up a filename by removing special characters and
// truncating phone-generated long names
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	base = unsafeFilenameChars.ReplaceAllString(base, "")
	base = repeatedSpaces.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)

	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	if base == "" {
		base = "receipt"
	}

	return base + ext
}

// ProcessReceipt stores an uploaded receipt image, runs OCR on it, parses the
// raw text lines into line items and a total, and persists the result
func (s *Service) ProcessReceipt(filename string, data []byte, contentType string) (*Receipt, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	cleanFilename := sanitizeFilename(filename)

	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, cleanFilename), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	lines, err := s.engine.ExtractLines(data, contentType)
	if err != nil {
		slog.Error("Failed to extract text from receipt",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		// Clean up the saved file since recognition failed
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("extracting receipt text: %w", err)
	}

	// The parser is best-effort by contract: garbled lines degrade to an
	// empty result instead of an error
	result := parser.Parse(lines)

	items := make([]LineItem, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, LineItem(item))
	}

	receipt := &Receipt{
		ID:          id,
		Filename:    savedPath,
		ContentType: contentType,
		Items:       items,
		TotalAmount: result.Total,
		UploadDate:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.SaveReceipt(receipt); err != nil {
		// Clean up file if database save fails
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("saving receipt to database: %w", err)
	}

	return receipt, nil
}

// GetReceipt retrieves a receipt by ID
func (s *Service) GetReceipt(id string) (*Receipt, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}
	return receipt, nil
}

// ListReceipts returns all receipts
func (s *Service) ListReceipts() ([]*Receipt, error) {
	receipts, err := s.db.ListReceipts()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	return receipts, nil
}

// DeleteReceipt removes a receipt and its file
func (s *Service) DeleteReceipt(id string) error {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return fmt.Errorf("getting receipt for deletion: %w", err)
	}

	if err := s.storage.Delete(receipt.Filename); err != nil {
		// Log error but continue with database deletion
		slog.Warn("Failed to delete file", "filename", receipt.Filename, "error", err)
	}

	if err := s.db.DeleteReceipt(id); err != nil {
		return fmt.Errorf("deleting receipt from database: %w", err)
	}
	return nil
}

// GetReceiptFile retrieves the stored image for a receipt
func (s *Service) GetReceiptFile(id string) ([]byte, string, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt: %w", err)
	}

	data, err := s.storage.Get(receipt.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt file: %w", err)
	}

	return data, receipt.ContentType, nil
}

const recentReceiptLimit = 5

// Dashboard aggregates all stored receipts into per-month totals, the
// priciest item seen, and the most recent uploads
func (s *Service) Dashboard() (*DashboardData, error) {
	receipts, err := s.db.ListReceipts()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}

	monthlyTotals := make(map[string]float64)
	var highest *HighestItem

	for _, r := range receipts {
		month := r.UploadDate.Format("2006-01")
		monthlyTotals[month] += r.TotalAmount

		for _, item := range r.Items {
			if highest == nil || item.UnitPrice > highest.UnitPrice {
				highest = &HighestItem{
					ReceiptID: r.ID,
					Name:      item.Name,
					UnitPrice: item.UnitPrice,
					Month:     month,
				}
			}
		}
	}

	monthly := make([]MonthlySummary, 0, len(monthlyTotals))
	for month, total := range monthlyTotals {
		monthly = append(monthly, MonthlySummary{Month: month, Total: total})
	}
	sort.Slice(monthly, func(i, j int) bool {
		return monthly[i].Month > monthly[j].Month
	})

	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].UploadDate.After(receipts[j].UploadDate)
	})
	recent := receipts
	if len(recent) > recentReceiptLimit {
		recent = recent[:recentReceiptLimit]
	}

	return &DashboardData{
		Monthly:     monthly,
		HighestItem: highest,
		Recent:      recent,
	}, nil
}
