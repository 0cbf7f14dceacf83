// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/olivehq/olive/internal/cache"
	"github.com/olivehq/olive/internal/models"
)

// queryFunc executes one analytics query. The result must be
// JSON-serializable as it is cached and returned in the APIResponse
// envelope.
type queryFunc func(ctx context.Context) (interface{}, error)

// executeCached is the cache-first execution flow shared by every GET
// aggregation handler:
//
//  1. Generate a cache key from the handler name and its parameters.
//  2. Serve from cache when present (query_time_ms 0, cached true).
//  3. Execute the query on a miss and cache the result.
//  4. Respond with the standard envelope including query time.
func (h *Handler) executeCached(w http.ResponseWriter, r *http.Request, name string, params interface{}, query queryFunc) {
	start := time.Now()
	key := cache.GenerateKey(name, params)

	if cached, found := h.cache.Get(key); found {
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status: "success",
			Data:   cached,
			Metadata: models.Metadata{
				Timestamp: time.Now(),
				Cached:    true,
			},
		})
		return
	}

	result, err := query(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Query failed", err)
		return
	}

	h.cache.Set(key, result)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   result,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
