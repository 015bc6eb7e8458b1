// Package workflows provides high-level orchestration for gitops-secrets
// commands.
//
// Each workflow implements one command's business logic: resolving the
// project root and configuration, reading input, calling the secrets engine
// and recording an audit entry. The cmd/ package stays a thin layer that
// parses flags, calls a workflow and formats the result.
//
// # Available Workflows
//
//   - Encrypt: plaintext payload file or stdin to an envelope file
//   - Decrypt: envelope file or generated module to a payload
//   - Build: payload or existing envelope to a JavaScript module
//   - Fetch: provider secrets to an envelope file or module
//   - Run: decrypt, then execute a command with the secrets in its environment
//   - Inspect: list envelopes with their parameters, flagging stale ones
//   - KeyCheck, KeyGenerate: master key validation and generation
//   - Log: read the audit log
//   - Init: write a default .gitops-secrets.toml
//
// # Error Handling
//
// Workflows return errors that match the sentinels in internal/errors, so
// the CLI can pick a message without string matching:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	if errors.Is(err, kerrors.ErrDecryption) {
//	    // wrong master key or altered file
//	}
//
// All workflow functions accept a context.Context as their first parameter.
// Key derivation itself is not interruptible; the context is checked before
// it starts.
package workflows
