package workflows

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PolarWolf314/gitops-secrets/internal/secrets"

	"github.com/joho/godotenv"
)

// OutputFormat selects how a decrypted payload is printed.
type OutputFormat string

const (
	OutputJSON   OutputFormat = "json"
	OutputDotenv OutputFormat = "dotenv"
	OutputShell  OutputFormat = "shell"
)

// ParseOutputFormat validates a --format value. Empty means JSON.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case "", OutputJSON:
		return OutputJSON, nil
	case OutputDotenv, "env":
		return OutputDotenv, nil
	case OutputShell, "sh":
		return OutputShell, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json, dotenv or shell)", s)
	}
}

// RenderPayload formats payload for printing. Output ends with a newline.
func RenderPayload(payload secrets.Payload, format OutputFormat) (string, error) {
	switch format {
	case OutputJSON, "":
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode payload: %w", err)
		}
		return string(data) + "\n", nil

	case OutputDotenv:
		values := make(map[string]string, len(payload))
		for _, key := range payload.Keys() {
			values[key] = payload.EnvValue(key)
		}
		out, err := godotenv.Marshal(values)
		if err != nil {
			return "", fmt.Errorf("failed to encode payload: %w", err)
		}
		if out == "" {
			return "", nil
		}
		return out + "\n", nil

	case OutputShell:
		var b strings.Builder
		for _, key := range payload.Keys() {
			fmt.Fprintf(&b, "export %s=%s\n", key, shellQuote(payload.EnvValue(key)))
		}
		return b.String(), nil

	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
