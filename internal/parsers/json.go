package parsers

import "encoding/json"

// ParseJSONArray decodes a payload expected to be a top-level array of
// objects. Any other root type is a ParseError.
func ParseJSONArray(data []byte) ([]map[string]interface{}, error) {
	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, newParseError("json", "invalid JSON: %v", err)
	}
	if _, ok := probe.([]interface{}); !ok {
		return nil, newParseError("json", "expected top-level array, got %T", probe)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, newParseError("json", "array elements are not objects: %v", err)
	}
	return records, nil
}
