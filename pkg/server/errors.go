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

package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/geowitness/geowitness/pkg/errors"
	"github.com/geowitness/geowitness/pkg/serializer"
)

// Error codes used in HTTP error responses, aligned with pkg/errors.
const (
	ErrCodeRateLimitExceeded  = string(errors.ErrCodeRateLimitExceeded)
	ErrCodeInternalError      = string(errors.ErrCodeInternal)
	ErrCodeServiceUnavailable = string(errors.ErrCodeUnavailable)
	ErrCodeInvalidRequest     = string(errors.ErrCodeInvalidRequest)
	ErrCodeMethodNotAllowed   = string(errors.ErrCodeMethodNotAllowed)
	ErrCodeNotFound           = string(errors.ErrCodeNotFound)
)

// WriteError writes a structured error response. The request ID comes from
// the middleware context; a fresh one is generated for errors raised before
// the middleware ran.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]interface{}) {

	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}
