package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jcarver/wellpath/client"
)

const maxBodySize = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeParticipantMissing emits the per-participant not-found contract:
// a 404 whose body carries {"participant_exists": false}.
func writeParticipantMissing(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]bool{"participant_exists": false})
}

// decodeJSON reads a bounded JSON body. On failure it writes the 400
// itself and returns ok=false.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return v, false
	}
	return v, true
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// parsePagination reads "page" and "page_size" query parameters. Pages are
// 1-based; missing or invalid values fall back to page 1 with the default
// size, and page_size is capped.
func parsePagination(r *http.Request) (page, pageSize int) {
	q := r.URL.Query()

	page = 1
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	pageSize = defaultPageSize
	if v := q.Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageSize = n
		}
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// paginate slices items into the requested page and fills the standard
// envelope. A page past the end is empty, not an error.
func paginate[T any](items []T, page, pageSize int) client.Page[T] {
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	data := make([]T, end-start)
	copy(data, items[start:end])
	return client.Page[T]{Total: total, TotalPages: totalPages, Data: data}
}
