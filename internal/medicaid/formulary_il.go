package medicaid

import (
	"strings"

	"medicaidgov/internal/parsers"
)

// NormalizeIllinois maps HFS preferred drug list rows into bare formulary
// records. The PDL publishes drug names only, no NDCs; enrichment against
// donor states fills identifiers in afterwards. A PDL status mentioning PA
// or "prior" derives the prior-authorization flag.
func NormalizeIllinois(rows []parsers.Row) []FormularyRecord {
	records := make([]FormularyRecord, 0, len(rows))
	for _, row := range rows {
		name := row["Drug Name"]
		if name == "" {
			continue
		}

		status := row["PDL Status"]
		upper := strings.ToUpper(status)
		records = append(records, FormularyRecord{
			LabelName:          name,
			DrugName:           name,
			DosageForm:         row["Dosage Form"],
			PDLStatus:          status,
			PriorAuthorization: strings.Contains(upper, "PA") || strings.Contains(upper, "PRIOR"),
		})
	}
	return records
}
