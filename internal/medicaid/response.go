package medicaid

// Response is the common envelope for data operations: a result sequence
// plus query metadata.
type Response struct {
	Data interface{}            `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}

// FormularyResponse is the envelope for state formulary searches, which
// carry aggregate statistics alongside the result page.
type FormularyResponse struct {
	State      string                 `json:"state"`
	StateName  string                 `json:"state_name"`
	Statistics map[string]interface{} `json:"statistics"`
	Results    []FormularyRecord      `json:"results"`
}

var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming", "DC": "District of Columbia",
}

// ValidStateCode reports whether state is a known two-letter code.
func ValidStateCode(state string) bool {
	_, ok := stateNames[state]
	return ok
}
