package chai

import "github.com/minio/highwayhash"

var hashKey = []byte("hanzi-chai/fingerprint-key-00000")

// Fingerprint returns a 64-bit HighwayHash of data.
func Fingerprint(data []byte) uint64 {
	return highwayhash.Sum64(data, hashKey)
}
