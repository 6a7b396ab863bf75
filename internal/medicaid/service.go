package medicaid

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"medicaidgov/internal/cache"
	"medicaidgov/internal/datasets"
	"medicaidgov/internal/parsers"
)

// Downloader retrieves one upstream dataset file. fetch.Client is the
// production implementation; tests substitute a stub.
type Downloader interface {
	Download(ctx context.Context, url, datasetName string) ([]byte, error)
}

// Service answers Medicaid data queries against cached, normalized copies
// of the upstream datasets. The cache and download client are injected so
// tests can substitute both.
type Service struct {
	cache       *cache.Manager
	client      Downloader
	packageSize PackageSizeFunc
}

// NewService creates a query service. packageSize may be nil to use the
// default "<number> ML" heuristic for the California pricing join.
func NewService(c *cache.Manager, client Downloader, packageSize PackageSizeFunc) *Service {
	if packageSize == nil {
		packageSize = DefaultPackageSize
	}
	return &Service{cache: c, client: client, packageSize: packageSize}
}

// ---- dataset loaders -----------------------------------------------------

// PricingData returns the normalized NADAC dataset, fetching on cache miss.
// The returned slice is shared across callers and must not be mutated.
func (s *Service) PricingData(ctx context.Context) ([]PricingRecord, error) {
	d := datasets.NADAC
	payload, err := s.cache.GetOrFetch(d.Key, d.CacheTTL, func() (interface{}, int, error) {
		body, err := s.client.Download(ctx, d.DownloadURL, d.Key)
		if err != nil {
			return nil, 0, err
		}
		rows, err := parsers.ParseDelimited(string(body), ',')
		if err != nil {
			return nil, 0, err
		}
		records := NormalizeNADAC(rows)
		return records, len(records), nil
	})
	if err != nil {
		return nil, err
	}
	return payload.([]PricingRecord), nil
}

// EnrollmentData returns the normalized enrollment snapshot.
func (s *Service) EnrollmentData(ctx context.Context) ([]EnrollmentRecord, error) {
	d := datasets.Enrollment
	payload, err := s.cache.GetOrFetch(d.Key, d.CacheTTL, func() (interface{}, int, error) {
		body, err := s.client.Download(ctx, d.DownloadURL, d.Key)
		if err != nil {
			return nil, 0, err
		}
		rows, err := parsers.ParseDelimited(string(body), ',')
		if err != nil {
			return nil, 0, err
		}
		records := NormalizeEnrollment(rows)
		return records, len(records), nil
	})
	if err != nil {
		return nil, err
	}
	return payload.([]EnrollmentRecord), nil
}

// FormularyData returns the normalized (and for Illinois, enriched)
// formulary for a state.
func (s *Service) FormularyData(ctx context.Context, state string) ([]FormularyRecord, error) {
	d, err := datasets.ByState(state)
	if err != nil {
		return nil, err
	}

	payload, err := s.cache.GetOrFetch(d.Key, d.CacheTTL, func() (interface{}, int, error) {
		records, err := s.loadFormulary(ctx, d)
		if err != nil {
			return nil, 0, err
		}
		return records, len(records), nil
	})
	if err != nil {
		return nil, err
	}
	return payload.([]FormularyRecord), nil
}

func (s *Service) loadFormulary(ctx context.Context, d datasets.Descriptor) ([]FormularyRecord, error) {
	if d.State == "IL" {
		return s.loadIllinoisEnriched(ctx, d)
	}

	body, err := s.client.Download(ctx, d.DownloadURL, d.Key)
	if err != nil {
		return nil, err
	}

	switch d.State {
	case "CA":
		rows, err := parsers.ParseExcel(body, d.Worksheet, d.HeaderMarker)
		if err != nil {
			return nil, err
		}
		return NormalizeCalifornia(rows), nil
	case "NY":
		rows, err := parsers.ParseDelimitedPositional(string(body), ',', nyFieldCount)
		if err != nil {
			return nil, err
		}
		return NormalizeNewYork(rows), nil
	case "TX":
		rows, err := parsers.ParseDelimitedPositional(string(body), '|', txMinFields)
		if err != nil {
			return nil, err
		}
		return NormalizeTexas(rows), nil
	case "OH":
		objs, err := parsers.ParseJSONArray(body)
		if err != nil {
			return nil, err
		}
		return NormalizeOhio(objs), nil
	}
	return nil, fmt.Errorf("no formulary loader for state %q", d.State)
}

// loadIllinoisEnriched loads the IL preferred drug list (names only) and
// borrows NDCs from the California and New York formularies, in that fixed
// donor order.
func (s *Service) loadIllinoisEnriched(ctx context.Context, d datasets.Descriptor) ([]FormularyRecord, error) {
	body, err := s.client.Download(ctx, d.DownloadURL, d.Key)
	if err != nil {
		return nil, err
	}
	rows, err := parsers.ParseExcel(body, d.Worksheet, d.HeaderMarker)
	if err != nil {
		return nil, err
	}
	ilRecords := NormalizeIllinois(rows)

	caFormulary, err := s.FormularyData(ctx, "CA")
	if err != nil {
		return nil, fmt.Errorf("loading CA donor formulary: %w", err)
	}
	nyFormulary, err := s.FormularyData(ctx, "NY")
	if err != nil {
		return nil, fmt.Errorf("loading NY donor formulary: %w", err)
	}

	donors := []donorIndex{
		buildDonorIndex("CA", caFormulary),
		buildDonorIndex("NY", nyFormulary),
	}
	return EnrichByName(ilRecords, donors), nil
}

// ---- boundary operations -------------------------------------------------

// PricingParams filters a NADAC pricing lookup.
type PricingParams struct {
	NDCCode   string `json:"ndc_code"`
	DrugName  string `json:"drug_name"`
	PriceDate string `json:"price_date"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}

// GetNADACPricing looks up NADAC records by NDC (exact, separator-
// insensitive), name (case-insensitive substring) or effective date.
func (s *Service) GetNADACPricing(ctx context.Context, p PricingParams) (*Response, error) {
	all, err := s.PricingData(ctx)
	if err != nil {
		return nil, err
	}

	filtered := all
	if p.NDCCode != "" {
		want := normalizeNDC(p.NDCCode)
		filtered = keepPricing(filtered, func(r PricingRecord) bool {
			return normalizeNDC(r.NDC) == want
		})
	}
	if p.DrugName != "" {
		term := strings.ToLower(p.DrugName)
		filtered = keepPricing(filtered, func(r PricingRecord) bool {
			return strings.Contains(strings.ToLower(r.Description), term)
		})
	}
	if p.PriceDate != "" {
		filtered = keepPricing(filtered, func(r PricingRecord) bool {
			return r.EffectiveDate == p.PriceDate
		})
	}

	page := Paginate(filtered, p.Limit, p.Offset)
	return &Response{
		Data: page,
		Meta: map[string]interface{}{
			"dataset":        datasets.NADAC.Name,
			"total_count":    len(filtered),
			"returned_count": len(page),
			"query_type":     "nadac_pricing",
		},
	}, nil
}

// CompareParams selects drugs for a pricing comparison.
type CompareParams struct {
	NDCCodes  []string `json:"ndc_codes"`
	DrugNames []string `json:"drug_names"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Limit     int      `json:"limit"`
	Offset    int      `json:"offset"`
}

// CompareDrugPricing returns pricing records for a set of NDCs or drug
// names, optionally bounded by an effective-date range, newest first.
func (s *Service) CompareDrugPricing(ctx context.Context, p CompareParams) (*Response, error) {
	if len(p.NDCCodes) == 0 && len(p.DrugNames) == 0 {
		return nil, &ValidationError{Param: "ndc_codes", Message: "either ndc_codes or drug_names must be provided"}
	}

	all, err := s.PricingData(ctx)
	if err != nil {
		return nil, err
	}

	filtered := all
	if p.StartDate != "" && p.EndDate != "" {
		filtered = keepPricing(filtered, func(r PricingRecord) bool {
			return r.EffectiveDate >= p.StartDate && r.EffectiveDate <= p.EndDate
		})
	}
	if len(p.NDCCodes) > 0 {
		want := make(map[string]struct{}, len(p.NDCCodes))
		for _, ndc := range p.NDCCodes {
			want[normalizeNDC(ndc)] = struct{}{}
		}
		filtered = keepPricing(filtered, func(r PricingRecord) bool {
			_, ok := want[normalizeNDC(r.NDC)]
			return ok
		})
	}
	if len(p.DrugNames) > 0 {
		terms := make([]string, len(p.DrugNames))
		for i, n := range p.DrugNames {
			terms[i] = strings.ToLower(n)
		}
		filtered = keepPricing(filtered, func(r PricingRecord) bool {
			desc := strings.ToLower(r.Description)
			for _, term := range terms {
				if strings.Contains(desc, term) {
					return true
				}
			}
			return false
		})
	}

	sorted := make([]PricingRecord, len(filtered))
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectiveDate > sorted[j].EffectiveDate
	})

	page := Paginate(sorted, p.Limit, p.Offset)
	return &Response{
		Data: page,
		Meta: map[string]interface{}{
			"dataset":        datasets.NADAC.Name,
			"total_count":    len(sorted),
			"returned_count": len(page),
			"date_range":     map[string]string{"start": p.StartDate, "end": p.EndDate},
			"query_type":     "drug_pricing_comparison",
		},
	}, nil
}

// EnrollmentTrendsParams filters an enrollment trend lookup.
type EnrollmentTrendsParams struct {
	State     string `json:"state"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}

// GetEnrollmentTrends returns enrollment rows for a state over a date
// range, ascending by reporting period.
func (s *Service) GetEnrollmentTrends(ctx context.Context, p EnrollmentTrendsParams) (*Response, error) {
	all, err := s.EnrollmentData(ctx)
	if err != nil {
		return nil, err
	}

	filtered := all
	if p.State != "" {
		state := strings.ToUpper(p.State)
		filtered = keepEnrollment(filtered, func(r EnrollmentRecord) bool {
			return strings.ToUpper(r.State) == state
		})
	}
	if p.StartDate != "" && p.EndDate != "" {
		start := toPeriod(p.StartDate)
		end := toPeriod(p.EndDate)
		filtered = keepEnrollment(filtered, func(r EnrollmentRecord) bool {
			return r.ReportingPeriod >= start && r.ReportingPeriod <= end
		})
	}

	sorted := make([]EnrollmentRecord, len(filtered))
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReportingPeriod < sorted[j].ReportingPeriod
	})

	page := Paginate(sorted, p.Limit, p.Offset)
	state := p.State
	if state == "" {
		state = "all"
	}
	return &Response{
		Data: page,
		Meta: map[string]interface{}{
			"dataset":        datasets.Enrollment.Name,
			"total_count":    len(sorted),
			"returned_count": len(page),
			"state":          state,
			"date_range":     map[string]string{"start": p.StartDate, "end": p.EndDate},
			"query_type":     "enrollment_trends",
		},
	}, nil
}

// CompareEnrollmentParams selects states for an enrollment comparison.
type CompareEnrollmentParams struct {
	States []string `json:"states"`
	Month  string   `json:"month"` // YYYY-MM
}

// CompareStateEnrollment groups enrollment rows by state for a set of
// states, optionally restricted to one month.
func (s *Service) CompareStateEnrollment(ctx context.Context, p CompareEnrollmentParams) (*Response, error) {
	if len(p.States) == 0 {
		return nil, required("states")
	}

	all, err := s.EnrollmentData(ctx)
	if err != nil {
		return nil, err
	}

	want := make(map[string]struct{}, len(p.States))
	for _, st := range p.States {
		want[strings.ToUpper(st)] = struct{}{}
	}
	filtered := keepEnrollment(all, func(r EnrollmentRecord) bool {
		_, ok := want[strings.ToUpper(r.State)]
		return ok
	})

	if p.Month != "" {
		period := strings.ReplaceAll(p.Month, "-", "")
		filtered = keepEnrollment(filtered, func(r EnrollmentRecord) bool {
			return r.ReportingPeriod == period
		})
	}

	grouped := make(map[string][]EnrollmentRecord)
	for _, r := range filtered {
		grouped[r.State] = append(grouped[r.State], r)
	}

	month := p.Month
	if month == "" {
		month = "latest"
	}
	return &Response{
		Data: grouped,
		Meta: map[string]interface{}{
			"dataset":     datasets.Enrollment.Name,
			"states":      p.States,
			"month":       month,
			"total_count": len(filtered),
			"query_type":  "state_enrollment_comparison",
		},
	}, nil
}

// FormularySearchParams is the flat parameter set for the unified state
// formulary search.
type FormularySearchParams struct {
	State           string   `json:"state"`
	NDC             string   `json:"ndc"`
	GenericName     string   `json:"generic_name"`
	LabelName       string   `json:"label_name"`
	RequiresPA      *bool    `json:"requires_pa"`
	Tier            string   `json:"tier"`
	MatchConfidence string   `json:"match_confidence"`
	HasNDC          *bool    `json:"has_ndc"`
	MinPrice        *float64 `json:"min_price"`
	MaxPrice        *float64 `json:"max_price"`
	Limit           int      `json:"limit"`
	Offset          int      `json:"offset"`
}

// SearchStateFormulary runs the unified formulary search: normalize (and
// for IL, enrich), filter, paginate, join NADAC pricing for California, and
// compute per-state aggregate statistics.
func (s *Service) SearchStateFormulary(ctx context.Context, p FormularySearchParams) (*FormularyResponse, error) {
	if p.State == "" {
		return nil, required("state")
	}
	state := strings.ToUpper(p.State)
	if !ValidStateCode(state) {
		return nil, &ValidationError{Param: "state", Message: fmt.Sprintf("unknown state code %q", p.State)}
	}

	all, err := s.FormularyData(ctx, state)
	if err != nil {
		return nil, err
	}

	matched := FilterFormulary(all, FormularyFilter{
		NDC:             p.NDC,
		GenericName:     p.GenericName,
		LabelName:       p.LabelName,
		RequiresPA:      p.RequiresPA,
		Tier:            p.Tier,
		MatchConfidence: p.MatchConfidence,
		HasNDC:          p.HasNDC,
		MinPrice:        p.MinPrice,
		MaxPrice:        p.MaxPrice,
	})
	page := Paginate(matched, p.Limit, p.Offset)

	// California publishes no native pricing; join the page against NADAC.
	// A NADAC load failure degrades the result rather than failing it.
	if state == "CA" {
		pricing, err := s.PricingData(ctx)
		if err != nil {
			log.Printf("[FORMULARY] NADAC join unavailable for CA search: %v", err)
		} else {
			page = JoinNADACPricing(page, pricing, s.packageSize, CaliforniaDispensingFee)
		}
	}

	return &FormularyResponse{
		State:      state,
		StateName:  stateNames[state],
		Statistics: formularyStatistics(state, len(all), matched, page),
		Results:    page,
	}, nil
}

// ListAvailableDatasets returns the static dataset catalog.
func (s *Service) ListAvailableDatasets() *Response {
	all := datasets.All()
	entries := make([]map[string]interface{}, 0, len(all))
	available := 0
	for _, d := range all {
		if d.Available() {
			available++
		}
		entries = append(entries, map[string]interface{}{
			"key":               d.Key,
			"name":              d.Name,
			"category":          d.Category,
			"description":       d.Description,
			"format":            string(d.Format),
			"update_frequency":  d.UpdateFrequency,
			"estimated_size":    d.EstimatedSize,
			"estimated_records": d.EstimatedRecords,
			"state":             d.State,
			"available":         d.Available(),
			"cache_time_hours":  d.CacheTTL.Hours(),
		})
	}
	return &Response{
		Data: entries,
		Meta: map[string]interface{}{
			"total_datasets":     len(all),
			"available_datasets": available,
			"query_type":         "list_datasets",
		},
	}
}

// ---- helpers -------------------------------------------------------------

func keepPricing(records []PricingRecord, pred func(PricingRecord) bool) []PricingRecord {
	out := make([]PricingRecord, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func keepEnrollment(records []EnrollmentRecord, pred func(EnrollmentRecord) bool) []EnrollmentRecord {
	out := make([]EnrollmentRecord, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// toPeriod converts YYYY-MM-DD (or YYYY-MM) to the snapshot's YYYYMM form.
func toPeriod(date string) string {
	p := strings.ReplaceAll(date, "-", "")
	if len(p) > 6 {
		p = p[:6]
	}
	return p
}
