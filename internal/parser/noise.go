package parser

import (
	"regexp"
	"strings"
)

var (
	phonePattern         = regexp.MustCompile(`(\+62|08)\d{5,}`)
	transactionIDPattern = regexp.MustCompile(`\d{5,}[-/.:]\d+`)
	datePattern          = regexp.MustCompile(`\d{1,2}[./-]\d{1,2}[./-]\d{2,4}`)
	clockTimePattern     = regexp.MustCompile(`\d{1,2}:\d{2}`)
)

// noiseKeywords marks lines that carry receipt metadata rather than items:
// contact and address headers, transaction/terminal identifiers, payment
// method and bank names, and courtesy footers.
var noiseKeywords = []string{
	"telp", "fax", "jl.", "jakarta", "indonesia", "npwp", "struk",
	"transaksi", "merchant", "terminal", "mid", "tid", "reff",
	"bca", "mandiri", "bri", "bni", "debit", "credit", "tunai",
	"kembali", "change", "tax", "ppn", "layanan", "konsumen",
	"call", "sms", "email", "thank", "terima kasih", "selamat",
}

// looksLikePhoneNumber reports whether the line contains an Indonesian phone
// number (+62 or 08 prefix followed by at least five more digits).
func looksLikePhoneNumber(line string) bool {
	return phonePattern.MatchString(line)
}

// looksLikeTransactionID reports whether the line contains a long digit run
// split by a separator, typical of transaction or terminal identifiers.
func looksLikeTransactionID(line string) bool {
	return transactionIDPattern.MatchString(line)
}

// looksLikeDate reports whether the line contains a D/M/Y-style date.
func looksLikeDate(line string) bool {
	return datePattern.MatchString(line)
}

// looksLikeClockTime reports whether the line contains an HH:MM time.
func looksLikeClockTime(line string) bool {
	return clockTimePattern.MatchString(line)
}

func containsNoiseKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, keyword := range noiseKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// IsNoise decides whether an OCR line is structurally irrelevant to item
// extraction: headers, phone numbers, dates, times, bank and terminal
// metadata, and courtesy footers. Noise lines never reach the item
// interpreter and are excluded from lookback context.
func IsNoise(line string) bool {
	return looksLikePhoneNumber(line) ||
		looksLikeTransactionID(line) ||
		looksLikeDate(line) ||
		looksLikeClockTime(line) ||
		containsNoiseKeyword(line)
}
