package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/recall-lab/recall/pkg/domain/model"
	"github.com/recall-lab/recall/pkg/domain/types"
	"github.com/recall-lab/recall/pkg/service/knowledge"
	"github.com/recall-lab/recall/pkg/utils/errutil"
	"github.com/recall-lab/recall/pkg/utils/safe"
)

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, data)
}

func (s *Server) handleHealth() http.HandlerFunc {
	type response struct {
		Status     string `json:"status"`
		Collection string `json:"collection"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, response{
			Status:     "ok",
			Collection: s.uc.Policy().Collection,
		})
	}
}

func (s *Server) handleIngest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw knowledge.RawRecord
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			errutil.HandleHTTP(r.Context(), w,
				goerr.Wrap(types.ErrValidation, "request body must be valid JSON"))
			return
		}

		result, err := s.uc.Ingest(r.Context(), raw)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		writeJSON(w, r, result)
	}
}

func (s *Server) handleSearch() http.HandlerFunc {
	type response struct {
		Results []*model.SearchResult `json:"results"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var raw knowledge.RawQuery
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			errutil.HandleHTTP(r.Context(), w,
				goerr.Wrap(types.ErrValidation, "request body must be valid JSON"))
			return
		}

		results, err := s.uc.Search(r.Context(), raw)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}

		writeJSON(w, r, response{Results: results})
	}
}
