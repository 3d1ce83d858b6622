package mockapi

import (
	"encoding/json"
	"net/http"
)

type issue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeIssues(w http.ResponseWriter, issues []issue) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string][]issue{"detail": issues})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeIssues(w, []issue{{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"}})
		return false
	}
	return true
}
