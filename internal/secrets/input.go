package secrets

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// InputFormat is the syntax of a plaintext secrets file.
type InputFormat string

const (
	InputAuto   InputFormat = ""
	InputJSON   InputFormat = "json"
	InputDotenv InputFormat = "dotenv"
	InputYAML   InputFormat = "yaml"
)

// DetectInputFormat guesses the format from a file name. Anything that is
// not .json, .yaml or .yml is treated as dotenv (.env, .env.local, ...).
func DetectInputFormat(path string) InputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return InputJSON
	case ".yaml", ".yml":
		return InputYAML
	default:
		return InputDotenv
	}
}

// ReadPayload decodes a plaintext payload. InputAuto sniffs JSON objects and
// falls back to dotenv.
func ReadPayload(r io.Reader, format InputFormat) (Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets input: %w", err)
	}

	if format == InputAuto {
		format = InputDotenv
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
			format = InputJSON
		}
	}

	payload := Payload{}
	switch format {
	case InputJSON:
		payload, err = decodePayload(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidPayload, err)
		}
	case InputYAML:
		if err := yaml.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidPayload, err)
		}
		if payload != nil {
			payload = normalizePayload(payload)
		}
	case InputDotenv:
		values, err := godotenv.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidPayload, err)
		}
		for k, v := range values {
			payload[k] = v
		}
	default:
		return nil, fmt.Errorf("%w: unsupported input format %q", kerrors.ErrInvalidPayload, format)
	}

	// "null" decodes to a nil map for both JSON and YAML.
	if payload == nil {
		return nil, fmt.Errorf("%w: input is not a mapping", kerrors.ErrInvalidPayload)
	}
	return payload, nil
}

// ReadPayloadFile reads a plaintext payload from path, detecting the format
// from the file name when format is InputAuto.
func ReadPayloadFile(path string, format InputFormat) (Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if format == InputAuto {
		format = DetectInputFormat(path)
	}
	return ReadPayload(f, format)
}
