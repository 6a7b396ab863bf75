package medicaid

import "strings"

const (
	// DefaultLimit applies when a query specifies no limit. A result page
	// shorter than the limit signals end-of-data.
	DefaultLimit = 100
	// MaxLimit caps a single page regardless of what the caller asks for.
	MaxLimit = 5000
)

// FormularyFilter is the declarative filter set for formulary searches.
// Unspecified fields are pass-throughs; specified ones are ANDed in the
// order they appear below.
type FormularyFilter struct {
	NDC             string
	GenericName     string
	LabelName       string
	RequiresPA      *bool
	Tier            string
	MatchConfidence string
	HasNDC          *bool
	MinPrice        *float64
	MaxPrice        *float64
	Limit           int
	Offset          int
}

// FilterFormulary applies the filter conjunctively, without pagination.
func FilterFormulary(records []FormularyRecord, f FormularyFilter) []FormularyRecord {
	out := records

	if f.NDC != "" {
		want := normalizeNDC(f.NDC)
		out = keep(out, func(r FormularyRecord) bool {
			return r.NDC != "" && normalizeNDC(r.NDC) == want
		})
	}

	if f.GenericName != "" {
		term := strings.ToLower(f.GenericName)
		out = keep(out, func(r FormularyRecord) bool {
			return containsFold(r.GenericName, term) || containsFold(r.DrugName, term)
		})
	}

	if f.LabelName != "" {
		term := strings.ToLower(f.LabelName)
		out = keep(out, func(r FormularyRecord) bool {
			return containsFold(r.LabelName, term) || containsFold(r.DrugName, term)
		})
	}

	if f.RequiresPA != nil {
		out = keep(out, func(r FormularyRecord) bool {
			return r.PriorAuthorization == *f.RequiresPA
		})
	}

	if f.Tier != "" {
		tier := strings.ToUpper(f.Tier)
		out = keep(out, func(r FormularyRecord) bool {
			return strings.ToUpper(r.CostCeilingTier) == tier || strings.ToUpper(r.Tier) == tier
		})
	}

	if f.MatchConfidence != "" {
		out = keep(out, func(r FormularyRecord) bool {
			return string(r.MatchConfidence) == f.MatchConfidence
		})
	}

	if f.HasNDC != nil {
		out = keep(out, func(r FormularyRecord) bool {
			return (r.NDC != "") == *f.HasNDC
		})
	}

	if f.MinPrice != nil {
		out = keep(out, func(r FormularyRecord) bool {
			return r.Price != nil && *r.Price >= *f.MinPrice
		})
	}

	if f.MaxPrice != nil {
		out = keep(out, func(r FormularyRecord) bool {
			return r.Price != nil && *r.Price <= *f.MaxPrice
		})
	}

	return out
}

func keep(records []FormularyRecord, pred func(FormularyRecord) bool) []FormularyRecord {
	out := make([]FormularyRecord, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// containsFold is a case-insensitive substring match; term must already be
// lowercased.
func containsFold(haystack, term string) bool {
	return haystack != "" && strings.Contains(strings.ToLower(haystack), term)
}

// Paginate slices records at [offset, offset+limit). An offset at or past
// the end yields an empty page, not an error.
func Paginate[T any](records []T, limit, offset int) []T {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		return []T{}
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}

// avgFormularyPrice averages a price field over records where it is
// non-nil. Null-priced records are excluded from both the sum and the
// count; nil means no record carried the field at all.
func avgFormularyPrice(records []FormularyRecord, field func(FormularyRecord) *float64) *float64 {
	var sum float64
	var n int
	for _, r := range records {
		if v := field(r); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return floatPtr(sum / float64(n))
}

// distinctGenericNames counts unique generic names, case-insensitively.
func distinctGenericNames(records []FormularyRecord) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		name := strings.ToUpper(strings.TrimSpace(r.GenericName))
		if name == "" {
			continue
		}
		seen[name] = struct{}{}
	}
	return len(seen)
}
