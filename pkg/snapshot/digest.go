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

package snapshot

import (
	"crypto/sha512"
	"encoding/hex"
	"strconv"
	"strings"
)

// DigestHexLen is the length of a hex-encoded SHA-512 digest.
const DigestHexLen = sha512.Size * 2

// ComputeDigest returns the lowercase hex SHA-512 over the canonical
// encoding of the given fields. The canonical form joins the seven fields
// with commas in declaration order; floats use strconv.FormatFloat with
// the 'f' format and minimal precision so the encoding is stable across
// platforms and locales.
func ComputeDigest(f Fields) string {
	sum := sha512.Sum512([]byte(CanonicalString(f)))
	return hex.EncodeToString(sum[:])
}

// CanonicalString returns the exact byte content that ComputeDigest hashes.
// Exposed so external verifiers can recompute the digest independently.
func CanonicalString(f Fields) string {
	parts := []string{
		strconv.FormatFloat(f.Latitude, 'f', -1, 64),
		strconv.FormatFloat(f.Longitude, 'f', -1, 64),
		strconv.FormatFloat(f.Accuracy, 'f', -1, 64),
		strconv.FormatInt(f.Timestamp, 10),
		f.Provider,
		f.WifiInfo,
		f.CellInfo,
	}
	return strings.Join(parts, ",")
}
