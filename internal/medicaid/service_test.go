package medicaid

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"medicaidgov/internal/cache"

	"github.com/xuri/excelize/v2"
)

// stubDownloader serves canned dataset bodies keyed by dataset name and
// counts how often each one is requested.
type stubDownloader struct {
	bodies map[string][]byte
	calls  map[string]int
}

func (s *stubDownloader) Download(_ context.Context, _ string, datasetName string) ([]byte, error) {
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[datasetName]++
	body, ok := s.bodies[datasetName]
	if !ok {
		return nil, fmt.Errorf("no stub body for dataset %s", datasetName)
	}
	return body, nil
}

func workbookBytes(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	f.SetActiveSheet(idx)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func nadacCSV() []byte {
	return []byte("NDC Description,NDC,NADAC Per Unit,Pricing Unit,Effective Date\n" +
		"HUMALOG 10 ML VIAL,00002143380,25.50,ML,2024-06-01\n" +
		"HUMALOG 10 ML VIAL,00002143380,20.00,ML,2024-01-15\n" +
		`"ELIQUIS, 5MG TAB",00003089421,3.10,EA,2024-06-01` + "\n")
}

// caWorkbook holds three raw rows: one with a NADAC pricing match, one
// without, and one malformed (no generic name) that normalization drops.
func caWorkbook(t *testing.T) []byte {
	return workbookBytes(t, "NDC", [][]interface{}{
		{"Contract Drugs List"},
		{"Product ID", "Label Name", "Generic Name", "Prior Authorization", "Cost Ceiling Tier"},
		{"00002143380", "HUMALOG 10 ML VIAL", "INSULIN LISPRO", "Y", "Brand"},
		{"00093101001", "LISINOPRIL 10MG TAB", "LISINOPRIL", "N", "Generic"},
		{"00099999999", "BROKEN ROW", "", "N", "Generic"},
	})
}

func newTestService(t *testing.T, bodies map[string][]byte) (*Service, *stubDownloader) {
	t.Helper()
	stub := &stubDownloader{bodies: bodies}
	return NewService(cache.New(), stub, nil), stub
}

func TestSearchStateFormularyCaliforniaJoinsNADAC(t *testing.T) {
	svc, stub := newTestService(t, map[string][]byte{
		"CA_FORMULARY": caWorkbook(t),
		"NADAC":        nadacCSV(),
	})

	resp, err := svc.SearchStateFormulary(context.Background(), FormularySearchParams{State: "ca"})
	if err != nil {
		t.Fatalf("SearchStateFormulary: %v", err)
	}

	if resp.State != "CA" || resp.StateName != "California" {
		t.Errorf("state = %s / %s", resp.State, resp.StateName)
	}
	// The malformed source row is dropped during normalization.
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}

	var humalog, lisinopril *FormularyRecord
	for i := range resp.Results {
		switch resp.Results[i].NDC {
		case "00002143380":
			humalog = &resp.Results[i]
		case "00093101001":
			lisinopril = &resp.Results[i]
		}
	}
	if humalog == nil || lisinopril == nil {
		t.Fatal("expected both valid records in results")
	}
	// Latest NADAC row wins, package size comes from "10 ML" in the label.
	if humalog.NadacPerUnit == nil || *humalog.NadacPerUnit != 25.50 {
		t.Errorf("nadac per unit = %v", humalog.NadacPerUnit)
	}
	want := 25.50*10 + CaliforniaDispensingFee
	if humalog.EstimatedReimbursement == nil || *humalog.EstimatedReimbursement != want {
		t.Errorf("reimbursement = %v, want %v", humalog.EstimatedReimbursement, want)
	}
	if lisinopril.NadacPerUnit != nil || lisinopril.EstimatedReimbursement != nil {
		t.Errorf("record without a pricing match must stay unpriced: %+v", lisinopril)
	}

	stats := resp.Statistics
	if stats["matching_records"] != 2 {
		t.Errorf("matching_records = %v", stats["matching_records"])
	}
	if stats["pa_required_count"] != 1 {
		t.Errorf("pa_required_count = %v", stats["pa_required_count"])
	}
	if stub.calls["CA_FORMULARY"] != 1 || stub.calls["NADAC"] != 1 {
		t.Errorf("unexpected download counts: %v", stub.calls)
	}
}

func TestSearchStateFormularyCaliforniaDegradesWithoutNADAC(t *testing.T) {
	// NADAC body intentionally absent: the join must be skipped, not fail
	// the search.
	svc, _ := newTestService(t, map[string][]byte{
		"CA_FORMULARY": caWorkbook(t),
	})

	resp, err := svc.SearchStateFormulary(context.Background(), FormularySearchParams{State: "CA"})
	if err != nil {
		t.Fatalf("search must survive a NADAC load failure: %v", err)
	}
	for _, r := range resp.Results {
		if r.NadacPerUnit != nil {
			t.Errorf("record must stay unpriced when NADAC is unavailable: %+v", r)
		}
	}
}

func TestSearchStateFormularyIllinoisEnrichment(t *testing.T) {
	il := workbookBytes(t, "PDL", [][]interface{}{
		{"Illinois Preferred Drug List"},
		{"Drug Name", "Dosage Form", "PDL Status"},
		{"HUMALOG 10 ML VIAL", "VIAL", "Preferred"},
		{"TOTALLY UNKNOWN DRUG", "TAB", "Non-Preferred PA Required"},
	})
	ny := []byte("TYPE,NDC,MRA COST,ALT COST,DESCRIPTION,PA,LABELER,BASIS,OTC,GENERIC NAME,RX TYPE,EFF DATE,MAX QTY,PREF,AGE,REFILLS\n" +
		"BND,00005555555,30.00,0,NOVOLOG VIAL,0,LILLY,ML,N,INSULIN ASPART,R,2024-01-01,1,Y,ALL,5\n")

	svc, _ := newTestService(t, map[string][]byte{
		"IL_FORMULARY": il,
		"CA_FORMULARY": caWorkbook(t),
		"NY_FORMULARY": ny,
	})

	resp, err := svc.SearchStateFormulary(context.Background(), FormularySearchParams{State: "IL"})
	if err != nil {
		t.Fatalf("SearchStateFormulary: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}

	byName := make(map[string]FormularyRecord)
	for _, r := range resp.Results {
		byName[r.DrugName] = r
	}

	matched := byName["HUMALOG 10 ML VIAL"]
	if matched.MatchConfidence != ConfidenceHigh || matched.NDC != "00002143380" || matched.NDCSource != "CA" {
		t.Errorf("expected high-confidence CA borrow, got %+v", matched)
	}

	unmatched := byName["TOTALLY UNKNOWN DRUG"]
	if unmatched.MatchConfidence != ConfidenceNone || unmatched.NDC != "" {
		t.Errorf("expected none confidence with no NDC, got %+v", unmatched)
	}
}

func TestGetNADACPricingFilters(t *testing.T) {
	svc, stub := newTestService(t, map[string][]byte{"NADAC": nadacCSV()})
	ctx := context.Background()

	// Exact NDC, separator-insensitive.
	resp, err := svc.GetNADACPricing(ctx, PricingParams{NDCCode: "0000-2143-380"})
	if err != nil {
		t.Fatalf("GetNADACPricing: %v", err)
	}
	records := resp.Data.([]PricingRecord)
	if len(records) != 2 {
		t.Errorf("expected both humalog rows, got %d", len(records))
	}

	// Name substring, case-insensitive, second call hits the cache.
	resp, err = svc.GetNADACPricing(ctx, PricingParams{DrugName: "eliquis"})
	if err != nil {
		t.Fatalf("GetNADACPricing by name: %v", err)
	}
	records = resp.Data.([]PricingRecord)
	if len(records) != 1 || records[0].NDC != "00003089421" {
		t.Errorf("name filter results = %v", records)
	}

	if stub.calls["NADAC"] != 1 {
		t.Errorf("expected NADAC fetched once, got %d", stub.calls["NADAC"])
	}
}

func TestCompareDrugPricingRequiresSelection(t *testing.T) {
	svc, _ := newTestService(t, map[string][]byte{"NADAC": nadacCSV()})

	_, err := svc.CompareDrugPricing(context.Background(), CompareParams{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCompareDrugPricingSortsNewestFirst(t *testing.T) {
	svc, _ := newTestService(t, map[string][]byte{"NADAC": nadacCSV()})

	resp, err := svc.CompareDrugPricing(context.Background(), CompareParams{
		NDCCodes: []string{"00002143380"},
	})
	if err != nil {
		t.Fatalf("CompareDrugPricing: %v", err)
	}
	records := resp.Data.([]PricingRecord)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].EffectiveDate != "2024-06-01" || records[1].EffectiveDate != "2024-01-15" {
		t.Errorf("records not sorted newest first: %v, %v", records[0].EffectiveDate, records[1].EffectiveDate)
	}
}

func TestGetEnrollmentTrendsAscendingByPeriod(t *testing.T) {
	csv := []byte("State Abbreviation,State Name,Reporting Period,Total Medicaid and CHIP Enrollment\n" +
		"CA,California,202406,\"14,900,000\"\n" +
		"CA,California,202401,\"14,800,000\"\n" +
		"TX,Texas,202406,\"4,100,000\"\n")
	svc, _ := newTestService(t, map[string][]byte{"ENROLLMENT": csv})

	resp, err := svc.GetEnrollmentTrends(context.Background(), EnrollmentTrendsParams{
		State:     "ca",
		StartDate: "2024-01-01",
		EndDate:   "2024-12-31",
	})
	if err != nil {
		t.Fatalf("GetEnrollmentTrends: %v", err)
	}
	records := resp.Data.([]EnrollmentRecord)
	if len(records) != 2 {
		t.Fatalf("expected 2 CA records, got %d", len(records))
	}
	if records[0].ReportingPeriod != "202401" || records[1].ReportingPeriod != "202406" {
		t.Errorf("periods not ascending: %v, %v", records[0].ReportingPeriod, records[1].ReportingPeriod)
	}
}

func TestCompareStateEnrollmentGroupsByState(t *testing.T) {
	csv := []byte("State Abbreviation,State Name,Reporting Period,Total Medicaid and CHIP Enrollment\n" +
		"CA,California,202406,\"14,900,000\"\n" +
		"TX,Texas,202406,\"4,100,000\"\n" +
		"NY,New York,202406,\"6,700,000\"\n")
	svc, _ := newTestService(t, map[string][]byte{"ENROLLMENT": csv})

	ctx := context.Background()
	if _, err := svc.CompareStateEnrollment(ctx, CompareEnrollmentParams{}); err == nil {
		t.Error("expected validation error with no states")
	}

	resp, err := svc.CompareStateEnrollment(ctx, CompareEnrollmentParams{
		States: []string{"ca", "TX"},
		Month:  "2024-06",
	})
	if err != nil {
		t.Fatalf("CompareStateEnrollment: %v", err)
	}
	grouped := resp.Data.(map[string][]EnrollmentRecord)
	if len(grouped) != 2 {
		t.Fatalf("expected 2 state groups, got %d", len(grouped))
	}
	if len(grouped["CA"]) != 1 || len(grouped["TX"]) != 1 {
		t.Errorf("group sizes wrong: %v", grouped)
	}
	if got := resp.Meta["total_count"]; got != 2 {
		t.Errorf("total_count = %v, want 2", got)
	}
}

func TestSearchStateFormularyValidation(t *testing.T) {
	svc, stub := newTestService(t, nil)
	ctx := context.Background()

	if _, err := svc.SearchStateFormulary(ctx, FormularySearchParams{}); err == nil {
		t.Error("expected error for missing state")
	}
	if _, err := svc.SearchStateFormulary(ctx, FormularySearchParams{State: "ZZ"}); err == nil {
		t.Error("expected error for unknown state code")
	}
	// Valid code, but no formulary dataset exists for it.
	if _, err := svc.SearchStateFormulary(ctx, FormularySearchParams{State: "FL"}); err == nil {
		t.Error("expected error for state without a formulary dataset")
	}

	if len(stub.calls) != 0 {
		t.Errorf("validation failures must not trigger downloads: %v", stub.calls)
	}
}

func TestListAvailableDatasets(t *testing.T) {
	svc, _ := newTestService(t, nil)

	resp := svc.ListAvailableDatasets()
	entries := resp.Data.([]map[string]interface{})
	if len(entries) != 7 {
		t.Errorf("expected 7 datasets, got %d", len(entries))
	}
	if resp.Meta["total_datasets"] != 7 {
		t.Errorf("meta total = %v", resp.Meta["total_datasets"])
	}
}
