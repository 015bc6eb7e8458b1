// Package secrets encrypts JSON-serializable secrets into self-describing
// envelope strings and provides the file, module and environment helpers
// built on top of them.
//
// # Encryption
//
// Every call to Engine.Encrypt:
//
//  1. Serializes the payload as JSON
//  2. Draws a fresh 16-byte salt and 12-byte nonce from crypto/rand
//  3. Derives a 256-bit key with PBKDF2-HMAC-SHA256 at the engine's
//     iteration count (DefaultIterations unless overridden)
//  4. Seals the JSON with AES-256-GCM
//  5. Formats tag, iterations, salt, nonce and ciphertext as an envelope
//
// Decrypt re-derives the key with the salt and iteration count stored in the
// envelope rather than the current default, so envelopes committed before
// the default was raised stay readable.
//
// The derived key is zeroed before each call returns.
//
// # Master Key
//
// Engine methods take the master key explicitly. Client is the boundary
// adapter that reads it from a masterkey.Guard on every call:
//
//	client := secrets.DefaultClient() // reads GITOPS_SECRETS_MASTER_KEY
//	cipherText, err := client.Encrypt(secrets.Payload{"API_KEY": "abc"})
//	payload, err := client.Decrypt(cipherText)
//
// # Files and Modules
//
// EncryptToFile and DecryptFromFile store an envelope as a plain text file,
// by default .secrets/.secrets.enc.json. Build writes a CommonJS or ES module
// exporting the envelope as CIPHER_TEXT, by default .secrets/.secrets.enc.js.
// LoadModule reads such a module back.
//
// # Error Handling
//
// Errors are classified by the internal/errors package. File helpers wrap
// them with the path involved; use errors.Is to recover the kind.
package secrets
