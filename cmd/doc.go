// Package cmd implements the gitops-secrets command line.
//
// Commands parse flags, call the matching function in internal/workflows
// and format the result. Errors are printed once by Execute with a hint
// for the common cases; data written to stdout (decrypt, encrypt --stdout,
// key generate) is never mixed with progress output, which goes to stderr.
package cmd
