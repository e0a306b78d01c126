package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// problem is the RFC 7807 document every failure path answers with. Detail
// carries the underlying error text when there is one.
type problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// fail answers the request with a problem document built from the error.
func fail(w http.ResponseWriter, r *http.Request, status int, title string, err error) {
	p := problem{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Instance: r.URL.Path,
	}
	if err != nil {
		p.Detail = err.Error()
	}
	respond(w, status, p)
}
