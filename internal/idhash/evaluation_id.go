package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeEvaluationID computes a deterministic evaluation_id using SHA256.
// Formula: SHA256(trade_id|valuation_date|param_version)
// Returns hex-encoded hash (64 characters).
//
// The same (trade, date, parameter version) tuple always hashes to the same
// id, so the append-only result stores reject a re-run of an already stored
// batch as a duplicate instead of double-counting it.
func ComputeEvaluationID(tradeID, valuationDate, paramVersion string) string {
	data := fmt.Sprintf("%s|%s|%s", tradeID, valuationDate, paramVersion)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
