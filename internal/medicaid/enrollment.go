package medicaid

import "medicaidgov/internal/parsers"

// NormalizeEnrollment maps raw enrollment snapshot rows into
// EnrollmentRecords. Enrollment counts use comma grouping in the source and
// become nil (not zero) when absent or unparsable.
func NormalizeEnrollment(rows []parsers.Row) []EnrollmentRecord {
	records := make([]EnrollmentRecord, 0, len(rows))
	for _, row := range rows {
		state := row["State Abbreviation"]
		period := row["Reporting Period"]
		if state == "" || period == "" {
			continue
		}
		records = append(records, EnrollmentRecord{
			State:                state,
			StateName:            row["State Name"],
			ReportingPeriod:      period,
			ExpandedMedicaid:     row["State Expanded Medicaid"],
			TotalMedicaidAndCHIP: parseFloat(row["Total Medicaid and CHIP Enrollment"]),
			TotalMedicaid:        parseFloat(row["Total Medicaid Enrollment"]),
			TotalCHIP:            parseFloat(row["Total CHIP Enrollment"]),
			TotalAdult:           parseFloat(row["Total Adult Medicaid Enrollment"]),
			ChildEnrollment:      parseFloat(row["Medicaid and CHIP Child Enrollment"]),
		})
	}
	return records
}
