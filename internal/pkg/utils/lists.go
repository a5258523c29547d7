package utils

import (
	"encoding/json"
	"strings"
)

// ListToString converts []string to a JSON string for a text column.
func ListToString(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(items)
	return string(data)
}

// StringToList converts a text column back to []string.
func StringToList(s string) []string {
	if s == "" || s == "[]" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		// Rows written by hand may hold a plain comma-separated list.
		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return items
}
