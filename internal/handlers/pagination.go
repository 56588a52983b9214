package handlers

import (
	"net/http"
	"strconv"

	"creativeops/internal/apperr"
)

type pagination struct {
	limit  int
	offset int
}

type paginationMeta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

func parsePaginationParams(r *http.Request, defaultLimit, maxLimit int) (pagination, error) {
	p := pagination{limit: defaultLimit}
	q := r.URL.Query()

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, apperr.New(apperr.CodeInvalidInput, "limit must be a positive integer")
		}
		if n > maxLimit {
			n = maxLimit
		}
		p.limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return p, apperr.New(apperr.CodeInvalidInput, "offset must be a non-negative integer")
		}
		p.offset = n
	}
	return p, nil
}

func (p pagination) meta(total int) paginationMeta {
	return paginationMeta{
		Total:   total,
		Limit:   p.limit,
		Offset:  p.offset,
		HasMore: p.offset+p.limit < total,
	}
}
