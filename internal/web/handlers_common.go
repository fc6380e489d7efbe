package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// defaultBodyLimit caps JSON bodies on non-preview routes.
const defaultBodyLimit = 256 << 10

func sessionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		return uuid.Nil, badRequest("session id is not a UUID", err)
	}
	return id, nil
}

func mappingIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest(fmt.Sprintf("mapping index %q is not a number", raw), err)
	}
	return i, nil
}

// decodeJSON reads one JSON value from the body into v. Unknown fields are
// rejected. With allowEmpty an empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, limit int64, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF) && allowEmpty:
			return nil
		case errors.Is(err, io.EOF):
			return badRequest("request body is empty", nil)
		case errors.As(err, &tooBig):
			return badRequest(fmt.Sprintf("request body exceeds %d bytes", tooBig.Limit), err)
		default:
			return badRequest("request body is not valid JSON", err)
		}
	}
	if dec.More() {
		return badRequest("request body has trailing data", nil)
	}
	return nil
}
