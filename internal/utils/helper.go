package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ToInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// ToBool accepts the truthy forms clients actually send in query strings.
func ToBool(s string) bool {
	switch s {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func WriteJSON(w http.ResponseWriter, v interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
