// Copyright (c) 2025, Geowitness Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/geowitness/geowitness/pkg/capture"
	"github.com/geowitness/geowitness/pkg/defaults"
	gwerrors "github.com/geowitness/geowitness/pkg/errors"
	"github.com/geowitness/geowitness/pkg/ledger"
	"github.com/geowitness/geowitness/pkg/serializer"
	"github.com/geowitness/geowitness/pkg/server"
)

const maxListLimit = 1000

// Handlers holds the snapshot API handlers and their dependencies.
type Handlers struct {
	Capturer *capture.Capturer
	Ledger   *ledger.Ledger

	// Publisher receives every captured snapshot in addition to the
	// ledger, e.g. an MQTT writer. Optional.
	Publisher serializer.Serializer
}

// Routes returns the handler map to register with pkg/server.
func (h *Handlers) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/snapshots":             h.handleSnapshots,
		"/v1/snapshots/{id}/verify": h.handleVerifySnapshot,
		"/v1/ledger/verify":         h.handleVerifyLedger,
	}
}

// handleSnapshots dispatches snapshot collection requests: POST captures
// a new snapshot, GET lists recorded entries.
func (h *Handlers) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.captureSnapshot(w, r)
	case http.MethodGet:
		h.listSnapshots(w, r)
	default:
		server.WriteError(w, r, http.StatusMethodNotAllowed, server.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
	}
}

func (h *Handlers) captureSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.CaptureHandlerTimeout)
	defer cancel()

	s := h.Capturer.Capture(ctx)

	entry, err := h.Ledger.Append(ctx, s)
	if err != nil {
		slog.Error("ledger append failed", "error", err, "snapshot", s.ID)
		server.WriteError(w, r, http.StatusInternalServerError, server.ErrCodeInternalError,
			"Failed to record snapshot", true, nil)
		return
	}

	if h.Publisher != nil {
		if err := h.Publisher.Serialize(ctx, s); err != nil {
			// The record is already in the ledger; publication is best effort.
			slog.Warn("snapshot publication failed", "error", err, "snapshot", s.ID)
		}
	}

	serializer.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handlers) listSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxListLimit {
			server.WriteError(w, r, http.StatusBadRequest, server.ErrCodeInvalidRequest,
				"limit must be an integer between 0 and 1000", false, nil)
			return
		}
		limit = n
	}

	entries, err := h.Ledger.List(r.Context(), limit)
	if err != nil {
		slog.Error("ledger list failed", "error", err)
		server.WriteError(w, r, http.StatusInternalServerError, server.ErrCodeInternalError,
			"Failed to list snapshots", true, nil)
		return
	}
	if entries == nil {
		entries = []ledger.Entry{}
	}

	serializer.RespondJSON(w, http.StatusOK, struct {
		Count   int            `json:"count"`
		Entries []ledger.Entry `json:"entries"`
	}{
		Count:   len(entries),
		Entries: entries,
	})
}

// VerificationResponse reports the outcome of a record or chain check.
type VerificationResponse struct {
	SnapshotID string    `json:"snapshotId,omitempty"`
	Valid      bool      `json:"valid"`
	Code       string    `json:"code,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// handleVerifySnapshot handles GET /v1/snapshots/{id}/verify.
func (h *Handlers) handleVerifySnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		server.WriteError(w, r, http.StatusMethodNotAllowed, server.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	id := r.PathValue("id")
	entry, err := h.Ledger.GetBySnapshotID(r.Context(), id)
	if errors.Is(err, ledger.ErrNotFound) {
		server.WriteError(w, r, http.StatusNotFound, server.ErrCodeNotFound,
			"Snapshot not recorded", false, map[string]interface{}{"snapshotId": id})
		return
	}
	if err != nil {
		slog.Error("ledger lookup failed", "error", err, "snapshot", id)
		server.WriteError(w, r, http.StatusInternalServerError, server.ErrCodeInternalError,
			"Failed to look up snapshot", true, nil)
		return
	}

	resp := VerificationResponse{
		SnapshotID: id,
		Valid:      entry.Snapshot.Verify(),
		Timestamp:  time.Now().UTC(),
	}
	if !resp.Valid {
		resp.Code = string(gwerrors.ErrCodeDigestMismatch)
		resp.Reason = "stored readings do not match recorded digest"
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// handleVerifyLedger handles GET /v1/ledger/verify.
func (h *Handlers) handleVerifyLedger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		server.WriteError(w, r, http.StatusMethodNotAllowed, server.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	resp := VerificationResponse{
		Valid:     true,
		Timestamp: time.Now().UTC(),
	}
	if err := h.Ledger.VerifyChain(r.Context()); err != nil {
		if !errors.Is(err, ledger.ErrChainBroken) {
			slog.Error("chain verification failed", "error", err)
			server.WriteError(w, r, http.StatusInternalServerError, server.ErrCodeInternalError,
				"Failed to verify ledger", true, nil)
			return
		}
		resp.Valid = false
		resp.Code = string(gwerrors.ErrCodeChainBroken)
		resp.Reason = err.Error()
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}
