package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// maxBodyBytes caps request bodies; none of the auth payloads come close.
const maxBodyBytes = 1 << 20

var ErrInvalidJSONBody = errors.New("httpx: invalid json body")

// ReadJSON decodes a JSON request body into v. It rejects non-JSON content
// types, oversized bodies and trailing garbage after the first value.
func ReadJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/json") {
		return ErrInvalidJSONBody
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return ErrInvalidJSONBody
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return ErrInvalidJSONBody
	}
	return nil
}
