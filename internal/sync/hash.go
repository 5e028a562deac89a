// Package sync implements the workspace ↔ remote reconciliation engine.
//
// The engine compares content fingerprints instead of full payloads:
// 1. Flatten the workspace to the remote store's path → content map
// 2. Compute a deterministic SHA-256 fingerprint over the sorted entries
// 3. Compare against the last fingerprint confirmed to match both sides
//
// Divergence routes to conflict resolution (whole-workspace replacement,
// never field-level merge); agreement routes to an auto-save eligibility
// check. There is no server-side authority and no locking: correctness rests
// on never advancing the baseline fingerprint before the corresponding
// remote operation is confirmed.
package sync

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// entryDelimiter separates path from content within a single entry.
const entryDelimiter = "\n"

// entrySeparator joins entries; distinct from the per-entry delimiter so
// entry boundaries cannot be forged by content.
const entrySeparator = "\x00"

// Fingerprint computes a deterministic digest of a flat path → content map.
// Identical maps yield identical digests regardless of iteration order; any
// single-byte change in a path or content changes the digest. The empty map
// hashes the empty string.
func Fingerprint(files map[string]string) string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var sb strings.Builder
	for i, p := range paths {
		if i > 0 {
			sb.WriteString(entrySeparator)
		}
		sb.WriteString(p)
		sb.WriteString(entryDelimiter)
		sb.WriteString(files[p])
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
