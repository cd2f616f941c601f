package dataformat

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/thrustcurve/dataformat/utils"
)

type healthResponse struct {
	Status          string `json:"status"`
	Time            string `json:"time"`
	Motors          int    `json:"motors"`
	CompatIDs       int    `json:"compat_ids"`
	CachedDocuments int    `json:"cached_documents"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:          "ok",
		Time:            utils.Iso8601Now(),
		Motors:          s.catalog.Len(),
		CompatIDs:       s.ids.Len(),
		CachedDocuments: s.cache.Len(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}
