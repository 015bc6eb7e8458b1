// Package configs manages the optional project configuration file.
//
// A .gitops-secrets.toml at the project root overrides where envelopes and
// generated modules are written and which provider fetch uses:
//
//	[output]
//	file = ".secrets/.secrets.enc.json"
//	module = ".secrets/.secrets.enc.js"
//	module_format = "esm"
//	cipher_text_only = false
//
//	[provider]
//	name = "doppler"
//
// InitProjectSettings must run before LoadProjectConfig. Paths in the file
// are relative to the project root.
package configs
