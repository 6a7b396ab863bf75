package medicaid

import "medicaidgov/internal/parsers"

// NormalizeCalifornia maps Medi-Cal Rx NDC-list rows into the common
// formulary shape. The workbook publishes no pricing; the NADAC join fills
// that in at query time. Rows missing NDC or generic name are dropped.
func NormalizeCalifornia(rows []parsers.Row) []FormularyRecord {
	records := make([]FormularyRecord, 0, len(rows))
	for _, row := range rows {
		ndc := row["Product ID"]
		generic := row["Generic Name"]
		if ndc == "" || generic == "" {
			continue
		}

		tier := row["Cost Ceiling Tier"]
		records = append(records, FormularyRecord{
			NDC:                  ndc,
			LabelName:            row["Label Name"],
			GenericName:          generic,
			DrugType:             tier, // Medi-Cal tiers products Brand/Generic
			IsBrand:              equalsFold(tier, "BRAND"),
			IsGeneric:            equalsFold(tier, "GENERIC"),
			PriorAuthorization:   yes(row["Prior Authorization"]),
			CostCeilingTier:      tier,
			ExtendedDurationDrug: yes(row["Extended Duration Drug"]),
			NonCapitatedDrug:     yes(row["Non Capitated Drug Indicator"]),
			CCSPanelAuthority:    row["CCS Panel Authority"],
		})
	}
	return records
}
