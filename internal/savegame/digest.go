package savegame

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Digest returns the hex blake3 hash of a serialized record. Records
// marshal with sorted keys, so equal states give equal digests.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
