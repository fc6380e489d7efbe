package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/fieldmap/internal/logging"
	"github.com/JonMunkholm/fieldmap/internal/mapping"
	"github.com/JonMunkholm/fieldmap/internal/wizard"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	st := s.store.Create()
	writeJSONStatus(w, http.StatusCreated, st)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	st, err := s.store.Get(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, st)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.Delete(id); err != nil {
		respondError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("wizard session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// stepRequest moves the wizard: either an action ("next", "back") or a
// target step number.
type stepRequest struct {
	Action string      `json:"action,omitempty"`
	Step   wizard.Step `json:"step,omitempty"`
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req stepRequest
	if err := decodeJSON(w, r, &req, defaultBodyLimit, false); err != nil {
		respondError(w, r, err)
		return
	}

	st, err := s.store.Update(id, func(st wizard.State) (wizard.State, error) {
		switch {
		case req.Action == "next":
			return wizard.Next(st), nil
		case req.Action == "back":
			return wizard.Back(st), nil
		case req.Action == "" && req.Step != 0:
			return wizard.GoTo(st, req.Step)
		default:
			return st, badRequest(fmt.Sprintf("unknown step action %q", req.Action), nil)
		}
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("wizard step changed",
		"session_id", id,
		"step", st.CurrentStep.String(),
	)
	writeJSON(w, st)
}

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var setup wizard.SetupConfig
	s.updateSection(w, r, &setup, func(st wizard.State) (wizard.State, error) {
		if err := setup.Validate(); err != nil {
			return st, badRequest("invalid setup", err)
		}
		return wizard.WithSetup(st, setup), nil
	})
}

func (s *Server) handleInstall(w http.ResponseWriter, r *http.Request) {
	var install wizard.InstallConfig
	s.updateSection(w, r, &install, func(st wizard.State) (wizard.State, error) {
		if err := install.Validate(); err != nil {
			return st, badRequest("invalid install options", err)
		}
		return wizard.WithInstall(st, install), nil
	})
}

// updateSection decodes the body into into, then applies fn to the session.
func (s *Server) updateSection(w http.ResponseWriter, r *http.Request, into any, fn func(wizard.State) (wizard.State, error)) {
	id, err := sessionID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := decodeJSON(w, r, into, defaultBodyLimit, false); err != nil {
		respondError(w, r, err)
		return
	}
	st, err := s.store.Update(id, fn)
	if err != nil {
		respondError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("wizard section updated", "session_id", id, "path", r.URL.Path)
	writeJSON(w, st)
}

// ----------------------------------------------------------------------------
// Mapping edits
// ----------------------------------------------------------------------------

// editMapping applies edit to one mapping of the session and stores the
// new mapping list. The edited mapping is written back.
func (s *Server) editMapping(w http.ResponseWriter, r *http.Request, edit func(mapping.FieldMapping) (mapping.FieldMapping, error)) {
	id, err := sessionID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	idx, err := mappingIndex(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var edited mapping.FieldMapping
	_, err = s.store.Update(id, func(st wizard.State) (wizard.State, error) {
		if idx < 0 || idx >= len(st.Data.Mappings) {
			return st, fmt.Errorf("%w: %d (have %d)", mapping.ErrIndexOutOfRange, idx, len(st.Data.Mappings))
		}
		m, err := edit(st.Data.Mappings[idx])
		if err != nil {
			return st, err
		}
		ms, err := mapping.ApplyMappingEdit(st.Data.Mappings, idx, m)
		if err != nil {
			return st, err
		}
		edited = m
		return wizard.WithMappings(st, ms)
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	logging.WithFields(r.Context(), "session_id", id, "index", idx).Info("mapping updated",
		"source", edited.SourceField,
		"target", edited.TargetField,
		"enabled", edited.Enabled,
	)
	writeJSON(w, edited)
}

// handleReplaceMapping accepts a whole mapping. Fixes may be partial or
// reordered; they are rebuilt from the target field's rule set.
func (s *Server) handleReplaceMapping(w http.ResponseWriter, r *http.Request) {
	var body mapping.FieldMapping
	if err := decodeJSON(w, r, &body, defaultBodyLimit, false); err != nil {
		respondError(w, r, err)
		return
	}
	s.editMapping(w, r, func(cur mapping.FieldMapping) (mapping.FieldMapping, error) {
		if body.SourceField == "" {
			body.SourceField = cur.SourceField
		}
		return mapping.Normalize(body)
	})
}

type targetRequest struct {
	TargetField string `json:"targetField"`
}

func (s *Server) handleSetTarget(w http.ResponseWriter, r *http.Request) {
	var req targetRequest
	if err := decodeJSON(w, r, &req, defaultBodyLimit, false); err != nil {
		respondError(w, r, err)
		return
	}
	s.editMapping(w, r, func(m mapping.FieldMapping) (mapping.FieldMapping, error) {
		return mapping.SetTargetField(m, req.TargetField)
	})
}

type enabledRequest struct {
	Enabled *bool `json:"enabled"`
}

func (s *Server) handleSetEnabled(w http.ResponseWriter, r *http.Request) {
	var req enabledRequest
	if err := decodeJSON(w, r, &req, defaultBodyLimit, false); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Enabled == nil {
		respondError(w, r, badRequest("enabled is required", nil))
		return
	}
	s.editMapping(w, r, func(m mapping.FieldMapping) (mapping.FieldMapping, error) {
		return mapping.SetMappingEnabled(m, *req.Enabled), nil
	})
}

type fixRequest struct {
	Enabled *bool   `json:"enabled,omitempty"`
	Value   *string `json:"value,omitempty"`
}

// handleSetFix toggles a fix and/or sets its value. The value is applied
// first so enabling a default-value fix can carry its payload.
func (s *Server) handleSetFix(w http.ResponseWriter, r *http.Request) {
	var req fixRequest
	if err := decodeJSON(w, r, &req, defaultBodyLimit, false); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Enabled == nil && req.Value == nil {
		respondError(w, r, badRequest("enabled or value is required", nil))
		return
	}
	ruleID := chi.URLParam(r, "ruleID")

	s.editMapping(w, r, func(m mapping.FieldMapping) (mapping.FieldMapping, error) {
		var err error
		if req.Value != nil {
			if m, err = mapping.SetFixValue(m, ruleID, *req.Value); err != nil {
				return m, err
			}
		}
		if req.Enabled != nil {
			if m, err = mapping.ToggleFix(m, ruleID, *req.Enabled); err != nil {
				return m, err
			}
		}
		return m, nil
	})
}
