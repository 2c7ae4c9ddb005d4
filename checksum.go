package dmgvram

import (
	"crypto/sha1"
	"fmt"
	"hash/crc32"
)

// checksum returns the SHA-1 and CRC-32 of b as upper case hex.
func checksum(b []byte) (string, string) {
	sum := sha1.Sum(b)
	return fmt.Sprintf("%X", sum[:]), fmt.Sprintf("%.*X", crc32.Size<<1, crc32.ChecksumIEEE(b))
}
