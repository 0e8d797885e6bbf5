// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sink

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest returns the hex encoded BLAKE3-256 hash of data
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
