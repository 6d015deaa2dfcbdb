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
	"strings"

	"github.com/geowitness/geowitness/pkg/version"
)

const (
	// DefaultAPIVersion is the default API version if none is negotiated
	DefaultAPIVersion = "v1"

	// maxAPIMajor is the newest API major version this server speaks.
	maxAPIMajor = 1

	vendorMIMEPrefix = "application/vnd.geowitness.v"
)

// negotiateAPIVersion extracts the API version from the Accept header.
// Clients request a version with a vendor MIME type like:
//
//	Accept: application/vnd.geowitness.v1+json
//
// If no version is specified, the default version (v1) is returned.
func negotiateAPIVersion(r *http.Request) string {
	accept := r.Header.Get("Accept")
	idx := strings.Index(accept, vendorMIMEPrefix)
	if idx < 0 {
		return DefaultAPIVersion
	}

	// Extract "1" from "...geowitness.v1+json"
	rest := accept[idx+len(vendorMIMEPrefix):]
	if plus := strings.IndexByte(rest, '+'); plus >= 0 {
		rest = rest[:plus]
	}
	v, err := version.ParseVersion(rest)
	if err != nil || v.Major < 1 || v.Major > maxAPIMajor {
		return DefaultAPIVersion
	}
	return "v" + v.String()
}

// SetAPIVersionHeader sets the API version header in the response so
// clients know which version of the API answered.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set("X-API-Version", version)
}
