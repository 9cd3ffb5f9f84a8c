package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Payload is a decoded JSON response body. Its shape is not constrained.
type Payload = any

// DisplayRecord is the key/value record shown to the user
type DisplayRecord map[string]any

// PlaceholderRecord returns the record shown before any fetch has succeeded
func PlaceholderRecord() DisplayRecord {
	return DisplayRecord{"email": "test@google.com"}
}

// RecordFromPayload converts a payload into a display record.
// JSON objects become the record as is; any other value is stored under "value".
func RecordFromPayload(p Payload) DisplayRecord {
	switch v := p.(type) {
	case DisplayRecord:
		return v
	case map[string]any:
		return DisplayRecord(v)
	default:
		return DisplayRecord{"value": v}
	}
}

// Row is one rendered key/value pair of a record
type Row struct {
	Key   string
	Value string
}

// String returns the row as "key: value"
func (r Row) String() string {
	return r.Key + ": " + r.Value
}

// Rows flattens the record into rows sorted by key.
// Nested values are rendered as compact JSON.
func (r DisplayRecord) Rows() []Row {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, Row{Key: k, Value: formatValue(r[k])})
	}
	return rows
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool, float64, int, int64:
		return fmt.Sprint(val)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
