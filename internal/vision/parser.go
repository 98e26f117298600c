package vision

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Norn-cloud/tag-scanner/internal/model"
)

// Tag text patterns. Tags are printed inconsistently, so each field is
// matched independently per line and missing matches are simply skipped.
var (
	weightPattern = regexp.MustCompile(`(?i)(\d+[.,]\d+)\s*(?:g|gr|gram)`)
	karatPattern  = regexp.MustCompile(`(\d{2})\s*[kK]`)
	skuPattern    = regexp.MustCompile(`\b(\d{6,10})\b`)
	cogsPattern   = regexp.MustCompile(`(?i)(\d+[.,]?\d*)\s*(?:USD|EGP|\$|ج\.م)`)
)

// ParseTagText extracts item fields from OCR text. Every field is
// best-effort: later lines overwrite weight, karat and cogs (only the SKU
// keeps its first match), and a karat outside the traded set is dropped
// rather than guessed at.
func ParseTagText(text string) model.TagFields {
	var result model.TagFields

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := weightPattern.FindStringSubmatch(line); m != nil {
			if w, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64); err == nil {
				result.WeightGrams = w
			}
		}

		if m := karatPattern.FindStringSubmatch(line); m != nil {
			if k, err := strconv.Atoi(m[1]); err == nil {
				if k == 18 || k == 21 || k == 24 {
					result.Karat = k
				}
			}
		}

		if m := skuPattern.FindStringSubmatch(line); m != nil && result.Sku == "" {
			result.Sku = m[1]
		}

		if m := cogsPattern.FindStringSubmatch(line); m != nil {
			if cogs, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64); err == nil {
				result.Cogs = cogs
			}
		}
	}

	return result
}
