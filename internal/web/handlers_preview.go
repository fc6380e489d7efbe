package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/fieldmap/internal/logging"
	"github.com/JonMunkholm/fieldmap/internal/preview"
	"github.com/JonMunkholm/fieldmap/internal/samples"
	"github.com/JonMunkholm/fieldmap/internal/transform"
)

// previewRequest picks the sample rows. Records win over Generate; with
// neither, the built-in extract rows are used.
type previewRequest struct {
	Records  []transform.Record `json:"records,omitempty"`
	Generate int                `json:"generate,omitempty"`
	Seed     int64              `json:"seed,omitempty"`
}

func (s *Server) sampleRows(req previewRequest) ([]transform.Record, error) {
	limit := s.cfg.Preview.MaxRows
	switch {
	case len(req.Records) > limit:
		return nil, badRequest(fmt.Sprintf("at most %d sample records are allowed, got %d", limit, len(req.Records)), nil)
	case len(req.Records) > 0:
		return req.Records, nil
	case req.Generate < 0 || req.Generate > limit:
		return nil, badRequest(fmt.Sprintf("generate must be 0-%d", limit), nil)
	case req.Generate > 0:
		return samples.Generate(req.Generate, req.Seed), nil
	default:
		return samples.Builtin(), nil
	}
}

// buildPreview runs one preview for the session under the concurrency limit.
func (s *Server) buildPreview(r *http.Request, req previewRequest) (preview.Result, error) {
	id, err := sessionID(r)
	if err != nil {
		return preview.Result{}, err
	}
	st, err := s.store.Get(id)
	if err != nil {
		return preview.Result{}, err
	}
	rows, err := s.sampleRows(req)
	if err != nil {
		return preview.Result{}, err
	}

	if err := s.previews.acquire(r.Context()); err != nil {
		return preview.Result{}, err
	}
	defer s.previews.release()

	res := preview.BuildPreview(rows, st.Data.Mappings)
	logging.FromContext(r.Context()).Info("preview built",
		"session_id", id,
		"rows", res.Summary.TotalRows,
		"columns", res.Summary.Columns,
		"changed_cells", res.Summary.ChangedCells,
	)
	return res, nil
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decodeJSON(w, r, &req, s.cfg.Preview.MaxBodyBytes, true); err != nil {
		respondError(w, r, err)
		return
	}
	res, err := s.buildPreview(r, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// handlePreviewPage renders the preview as HTML. ?generate=N&seed=S swaps
// the built-in rows for generated ones.
func (s *Server) handlePreviewPage(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	q := r.URL.Query()
	if v := q.Get("generate"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, r, badRequest("generate is not a number", err))
			return
		}
		req.Generate = n
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, r, badRequest("seed is not a number", err))
			return
		}
		req.Seed = seed
	}

	res, err := s.buildPreview(r, req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	templ.Handler(previewPage(res)).ServeHTTP(w, r)
}
