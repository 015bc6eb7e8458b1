// Package errors provides typed error values for gitops-secrets.
//
// Cryptographic operations fail with one of three kinds of error. Each kind is
// a struct type carrying context and matches a sentinel value, so callers can
// use either errors.Is or errors.As instead of matching on message text.
//
// # Error Kinds
//
//   - ConfigurationError: the master key is missing or shorter than the minimum
//     length. Retrying without fixing the environment cannot succeed.
//   - FormatError: the envelope string is malformed (wrong field count, unknown
//     tag, bad iteration count, invalid base64). The input is corrupt or foreign.
//   - DecryptionError: authentication failed or the recovered plaintext is not
//     a JSON object. The two cases are deliberately indistinguishable.
//
// # Usage
//
// Match a kind:
//
//	payload, err := client.Decrypt(cipherText)
//	if errors.Is(err, kerrors.ErrDecryption) {
//	    // wrong key or tampered envelope
//	}
//
// Extract context:
//
//	var fe *kerrors.FormatError
//	if errors.As(err, &fe) {
//	    fmt.Println("bad field:", fe.Field)
//	}
//
// Collaborators (file I/O, providers, code generation) wrap these errors with
// fmt.Errorf("...: %w", err) so the kind stays reachable.
package errors
