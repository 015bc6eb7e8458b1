// Package ui provides semantic text formatting for CLI output.
//
// Formatters colorize content when the terminal supports it. When NO_COLOR
// is set or colors are unavailable, Code gets `backticks`, Key gets 'single
// quotes' and Muted gets (parentheses); the rest are printed as is.
//
//	ui.Code.Sprint("gitops-secrets encrypt .env")
//	ui.Path.Sprint(".secrets/.secrets.enc.json")
//	ui.Key.Sprint("API_KEY")
//	ui.Muted.Sprint("1000000 iterations")
package ui
