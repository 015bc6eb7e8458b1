// Package utils provides small helpers shared by the CLI and workflows.
//
// # Project Discovery
//
// FindProjectRoot walks up from a directory to the nearest one containing a
// .gitops-secrets.toml file, a .git directory or a package.json. Default
// secrets paths are resolved against that root.
//
// # Terminal Input
//
// ReadStdin reads piped secrets. ReadPassphrase prompts for the master key
// without echo, falling back to /dev/tty when stdin carries data.
package utils
