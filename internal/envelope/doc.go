// Package envelope encodes and decodes the versioned cipher text string.
//
// An envelope is five fields joined by ":":
//
//	<tag>:<iterations>:<base64(salt)>:<base64(iv)>:<base64(ciphertext||tag)>
//
// The tag names the whole scheme (key derivation, cipher and encoding) and
// the iteration count records the work factor used for that particular
// envelope, so raising the default for new envelopes never breaks old ones.
// This package is pure data handling; it performs no cryptography.
package envelope
