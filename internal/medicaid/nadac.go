package medicaid

import "medicaidgov/internal/parsers"

// NormalizeNADAC maps raw NADAC CSV rows into PricingRecords. Rows without
// an NDC or description are dropped as malformed.
func NormalizeNADAC(rows []parsers.Row) []PricingRecord {
	records := make([]PricingRecord, 0, len(rows))
	for _, row := range rows {
		ndc := row["NDC"]
		desc := row["NDC Description"]
		if ndc == "" || desc == "" {
			continue
		}
		records = append(records, PricingRecord{
			NDC:                       ndc,
			Description:               desc,
			PerUnit:                   parseFloat(row["NADAC Per Unit"]),
			PricingUnit:               row["Pricing Unit"],
			PharmacyTypeIndicator:     row["Pharmacy Type Indicator"],
			OTC:                       row["OTC"],
			EffectiveDate:             row["Effective Date"],
			ExplanationCode:           row["Explanation Code"],
			ClassificationForRates:    row["Classification for Rate Setting"],
			CorrespondingGenericPrice: parseFloat(row["Corresponding Generic Drug NADAC Per Unit"]),
		})
	}
	return records
}
