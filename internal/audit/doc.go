// Package audit records secrets operations in a project-level log.
//
// The log is stored as JSON Lines at .secrets/audit.jsonl. Each entry holds
// a UTC timestamp, the operation name, the file involved, the envelope tag
// and iteration count, and the number of keys. Values and key material are
// never written.
//
//	audit.Log(audit.Entry{
//		Operation:  audit.OpEncrypt,
//		Path:       audit.RelPath(path),
//		Tag:        "base64",
//		Iterations: 1000000,
//		KeysCount:  2,
//	})
//
// Logging is best effort. A failed write never fails the operation.
package audit
