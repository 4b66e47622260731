package privatbank

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
)

// sign computes the merchant signature over the canonical markup of the
// request data subtree concatenated with the merchant password.
//
// The legacy protocol chains the hashes as sha1(hex(md5(src))): the outer
// SHA-1 is taken over the lowercase hex string of the MD5 digest, not over
// the raw digest bytes. This exact chain is required for wire compatibility.
func sign(dataXML, merchantPassword string) string {
	firstHash := md5.Sum([]byte(dataXML + merchantPassword))
	firstHex := hex.EncodeToString(firstHash[:])

	secondHash := sha1.Sum([]byte(firstHex))

	return hex.EncodeToString(secondHash[:])
}
