package medicaid

import (
	"regexp"
	"strconv"
	"strings"
)

// CaliforniaDispensingFee is the fixed Medi-Cal professional dispensing fee
// added on top of acquisition cost when estimating reimbursement.
const CaliforniaDispensingFee = 10.05

// PackageSizeFunc infers a package-size multiplier from a product's display
// name. The join multiplies the per-unit price by it; implementations
// return 1.0 when nothing can be inferred.
type PackageSizeFunc func(labelName string) float64

var mlPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*ML\b`)

// DefaultPackageSize scans the name for a "<number> ML" token. Heuristic:
// it can misfire on multi-dose or non-liquid forms, which is why the join
// takes the function as a dependency rather than hard-coding it.
func DefaultPackageSize(labelName string) float64 {
	m := mlPattern.FindStringSubmatch(labelName)
	if m == nil {
		return 1.0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return 1.0
	}
	return v
}

// buildPricingIndex maps separator-normalized NDC to the most recent
// PricingRecord for that NDC. "Most recent" is the lexicographically
// greatest effective-date string, valid for the source's ISO-like dates.
func buildPricingIndex(pricing []PricingRecord) map[string]PricingRecord {
	index := make(map[string]PricingRecord)
	for _, rec := range pricing {
		key := normalizeNDC(rec.NDC)
		if key == "" {
			continue
		}
		if current, ok := index[key]; !ok || strings.Compare(rec.EffectiveDate, current.EffectiveDate) > 0 {
			index[key] = rec
		}
	}
	return index
}

// JoinNADACPricing attaches NADAC pricing to formulary records matched by
// normalized NDC: per-unit price, inferred package size, the dispensing fee
// and the estimated reimbursement
// (per-unit price × package size + dispensing fee). Records with no pricing
// match are returned unmodified.
func JoinNADACPricing(records []FormularyRecord, pricing []PricingRecord, packageSize PackageSizeFunc, dispensingFee float64) []FormularyRecord {
	if packageSize == nil {
		packageSize = DefaultPackageSize
	}
	index := buildPricingIndex(pricing)

	joined := make([]FormularyRecord, len(records))
	for i, rec := range records {
		joined[i] = rec
		price, ok := index[normalizeNDC(rec.NDC)]
		if !ok || price.PerUnit == nil {
			continue
		}

		size := packageSize(rec.LabelName)
		reimbursement := *price.PerUnit*size + dispensingFee

		joined[i].NadacPerUnit = price.PerUnit
		joined[i].NadacPricingUnit = price.PricingUnit
		joined[i].NadacPackageSize = floatPtr(size)
		joined[i].NadacEffectiveDate = price.EffectiveDate
		joined[i].DispensingFee = floatPtr(dispensingFee)
		joined[i].EstimatedReimbursement = floatPtr(reimbursement)
	}
	return joined
}
