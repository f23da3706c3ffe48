package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
)

// queryInt reads an integer query parameter, returning def when it is
// absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// decodeBusiness reads a business body. Field validation happens in the
// store so every write path applies the same rules.
func decodeBusiness(r *http.Request, b *district.Business) error {
	if err := json.NewDecoder(r.Body).Decode(b); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
