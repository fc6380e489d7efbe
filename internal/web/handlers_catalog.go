package web

import (
	"net/http"
	"strings"

	"github.com/JonMunkholm/fieldmap/internal/catalog"
	"github.com/JonMunkholm/fieldmap/internal/fixes"
)

type healthResponse struct {
	Status           string `json:"status"`
	Sessions         int    `json:"sessions"`
	PreviewSlotsFree int    `json:"previewSlotsFree"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{
		Status:           "ok",
		Sessions:         s.store.Len(),
		PreviewSlotsFree: s.previews.available(),
	})
}

// handleListFields returns every target field as a selection option.
func (s *Server) handleListFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, catalog.Options())
}

type fixesResponse struct {
	Target string               `json:"target,omitempty"`
	Type   catalog.SemanticType `json:"type"`
	Set    fixes.Set            `json:"set"`
	Fixes  []fixes.Rule         `json:"fixes"`
}

// handleListFixes returns the default fixes for ?target=<field> or
// ?type=<semantic type name>. Unknown targets are rejected.
func (s *Server) handleListFixes(w http.ResponseWriter, r *http.Request) {
	target := strings.TrimSpace(r.URL.Query().Get("target"))
	typeName := strings.TrimSpace(r.URL.Query().Get("type"))

	var t catalog.SemanticType
	switch {
	case target != "":
		var err error
		if t, err = catalog.ResolveSemanticType(target); err != nil {
			respondError(w, r, err)
			return
		}
	case typeName != "":
		if err := t.UnmarshalText([]byte(typeName)); err != nil {
			respondError(w, r, badRequest("unknown field type", err))
			return
		}
	default:
		respondError(w, r, badRequest("target or type is required", nil))
		return
	}

	writeJSON(w, fixesResponse{
		Target: target,
		Type:   t,
		Set:    fixes.SetFor(t),
		Fixes:  fixes.DefaultRuleSet(t),
	})
}
