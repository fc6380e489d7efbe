package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/fieldmap/internal/logging"
	"github.com/JonMunkholm/fieldmap/internal/run"
	"github.com/JonMunkholm/fieldmap/internal/wizard"
)

type runRequest struct {
	Run *run.Config `json:"run,omitempty"`
}

// handleRun submits the session's configuration. The session must have
// reached the run step; an included run config replaces the stored one
// before it is resolved.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req runRequest
	if err := decodeJSON(w, r, &req, defaultBodyLimit, true); err != nil {
		respondError(w, r, err)
		return
	}

	var sub run.Submission
	st, err := s.store.Update(id, func(st wizard.State) (wizard.State, error) {
		if !st.Visited(wizard.StepRun) {
			return st, fmt.Errorf("%w: run step not reached", wizard.ErrInvalidStep)
		}
		if req.Run != nil {
			st = wizard.WithRun(st, *req.Run)
		}
		var err error
		sub, err = s.planner.Plan(st.ID, st.Data.Run, st.Data)
		return st, err
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	receipt, err := s.submitter.Submit(r.Context(), sub)
	if err != nil {
		respondError(w, r, err)
		return
	}

	logging.WithFields(r.Context(), "session_id", id, "submission_id", sub.ID).Info("integration submitted",
		"mode", st.Data.Run.Mode,
		"status", receipt.Status,
	)
	writeJSONStatus(w, http.StatusAccepted, receipt)
}
