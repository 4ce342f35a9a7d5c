// Package parser reconstructs structured line items and a transaction total
// from the raw text lines an OCR engine reads off an Indonesian retail
// receipt. It is a best-effort heuristic layer: output is a plausible
// extraction, not validated ground truth, and no call ever fails.
package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// maxQuantity bounds item quantities; larger numbers at the end of a name are
// almost always part of the product text, not a count.
const maxQuantity = 50

// LineItem is one purchased item reconstructed from a receipt.
type LineItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// Result is the structured outcome of parsing one receipt.
type Result struct {
	Items []LineItem `json:"items"`
	Total float64    `json:"total"`
}

var (
	// trailingPricePattern anchors a price at the end of a line: one to
	// three digits, optional ".DDD" thousands groups, optional ",D"/",DD"
	// decimals, with an optional Rp marker swallowed so it stays out of the
	// item name.
	trailingPricePattern = regexp.MustCompile(`(?i)(?:rp\.?\s*)?(\d{1,3}(?:\.\d{3})*(?:,\d{1,2})?)\s*$`)

	// quantitySuffixPattern finds a small count trailing the item name,
	// as in "INDOMIE GORENG 2".
	quantitySuffixPattern = regexp.MustCompile(`\s(\d{1,2})$`)
)

// itemLabels are key-value labels whose value is a standalone charge, as on
// single-amount receipts (utility bills, transfers, parking stubs).
var itemLabels = []string{"tagihan", "total", "bayar", "harga", "nominal", "price", "amount"}

// Parse runs the heuristic pipeline over OCR lines in reading order: noise
// lines are dropped, each remaining line is interpreted by the first strategy
// that claims it, and the explicit total is reconciled against the sum of
// extracted items. Parse is pure; the same lines always yield the same
// Result.
func Parse(lines []string) Result {
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || IsNoise(line) {
			continue
		}
		filtered = append(filtered, line)
	}

	var items []LineItem
	var totalCandidate float64

	for i, line := range filtered {
		if item, total, consumed := interpretLabeledLine(line); consumed {
			if total > totalCandidate {
				totalCandidate = total
			}
			if item != nil {
				items = append(items, *item)
			}
			continue
		}

		item, total := interpretTrailingPrice(line, previousLine(filtered, i))
		if total > totalCandidate {
			totalCandidate = total
		}
		if item != nil {
			items = append(items, *item)
		}
	}

	return reconcile(items, totalCandidate)
}

// previousLine returns the closest earlier accepted line long enough to serve
// as a floating-price name, or "" when none exists.
func previousLine(filtered []string, i int) string {
	if i == 0 {
		return ""
	}
	prev := filtered[i-1]
	if len(prev) > 3 {
		return prev
	}
	return ""
}

// interpretLabeledLine handles "label : value" lines. The label is the text
// before the first colon; the price candidate is the text after the last one.
// A line with a readable price is consumed even when the label matches
// nothing, so stray labeled amounts never fall through as fake items.
func interpretLabeledLine(line string) (item *LineItem, total float64, consumed bool) {
	if !strings.Contains(line, ":") {
		return nil, 0, false
	}

	segments := strings.Split(line, ":")
	label := strings.TrimSpace(segments[0])
	price := NormalizeAmount(segments[len(segments)-1])
	if price <= 0 {
		return nil, 0, false
	}

	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "total") || strings.Contains(lower, "bayar"):
		return nil, price, true
	case matchesItemLabel(lower):
		return &LineItem{Name: label, Quantity: 1, UnitPrice: price, Subtotal: price}, 0, true
	}
	return nil, 0, true
}

func matchesItemLabel(lower string) bool {
	for _, label := range itemLabels {
		if strings.Contains(lower, label) {
			return true
		}
	}
	return false
}

// interpretTrailingPrice handles supermarket-style lines that end with a
// price, optionally preceded by a quantity. When OCR detached the product
// name onto its own line, the previous accepted line stands in for it.
func interpretTrailingPrice(line, prevLine string) (*LineItem, float64) {
	match := trailingPricePattern.FindStringSubmatchIndex(line)
	if match == nil {
		return nil, 0
	}

	price := NormalizeAmount(line[match[2]:match[3]])
	if price <= 0 {
		return nil, 0
	}

	prefix := strings.TrimSpace(line[:match[0]])
	name, quantity := splitQuantitySuffix(prefix)

	if len(name) < 3 && prevLine != "" {
		name = prevLine
	}

	lower := strings.ToLower(name)
	if len(name) > 2 && !strings.Contains(lower, "total") {
		return &LineItem{
			Name:      name,
			Quantity:  quantity,
			UnitPrice: price,
			Subtotal:  price * float64(quantity),
		}, 0
	}
	if strings.Contains(lower, "total") || strings.Contains(lower, "bayar") {
		return nil, price
	}
	return nil, 0
}

// splitQuantitySuffix peels a plausible count off the end of the name, as in
// "INDOMIE GORENG 2". Counts outside (0, 50) stay part of the name.
func splitQuantitySuffix(prefix string) (name string, quantity int) {
	if m := quantitySuffixPattern.FindStringSubmatch(prefix); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 && n < maxQuantity {
			return strings.TrimSpace(strings.TrimSuffix(prefix, m[0])), n
		}
	}
	return prefix, 1
}

// reconcile prefers the explicitly labeled total unless the sum of discovered
// items exceeds it, and synthesizes a placeholder item when a total was
// detected but no item line survived, so a nonzero receipt is never empty.
func reconcile(items []LineItem, totalCandidate float64) Result {
	var calculated float64
	for _, item := range items {
		calculated += item.Subtotal
	}

	total := calculated
	if totalCandidate >= calculated {
		total = totalCandidate
	}

	if len(items) == 0 && total > 0 {
		items = []LineItem{{
			Name:      "Total Transaction",
			Quantity:  1,
			UnitPrice: total,
			Subtotal:  total,
		}}
	}

	if items == nil {
		items = []LineItem{}
	}

	return Result{Items: items, Total: total}
}
