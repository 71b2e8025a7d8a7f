// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package solr

import (
	"errors"
	"fmt"
)

// ErrOverflow is returned by Query when the backend reports more total hits
// than the configured overflow ceiling. Scoring that many candidates would
// be meaningless; the caller treats the hypothesis as too unspecific.
var ErrOverflow = errors.New("result set overflows row limit")

// APIError is a non-2xx response from the backend after retries.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.Body)
}
