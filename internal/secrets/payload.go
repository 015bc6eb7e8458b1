package secrets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// maxExactInt is the largest integer a float64 holds without rounding.
const maxExactInt = 1 << 53

// Payload is a JSON-serializable mapping of secret names to values.
type Payload map[string]any

// Keys returns the payload's keys in sorted order.
func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnvValue renders the value stored under key as an environment variable
// value. Strings are returned verbatim, null as an empty string and every
// other value as compact JSON.
func (p Payload) EnvValue(key string) string {
	return envString(p[key])
}

// Environ returns the payload as KEY=value pairs, sorted by key.
func (p Payload) Environ() []string {
	keys := p.Keys()
	environ := make([]string, 0, len(keys))
	for _, k := range keys {
		environ = append(environ, k+"="+p.EnvValue(k))
	}
	return environ
}

// PopulateEnv sets every key as a process environment variable, overwriting
// existing values, and returns the payload for chaining.
func (p Payload) PopulateEnv() (Payload, error) {
	for _, k := range p.Keys() {
		if err := os.Setenv(k, p.EnvValue(k)); err != nil {
			return p, fmt.Errorf("failed to set environment variable %s: %w", k, err)
		}
	}
	return p, nil
}

func envString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

// decodePayload decodes a JSON object. Integers outside the float64 exact
// range are kept as json.Number; every other number is a float64.
func decodePayload(data []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload Payload
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid character after top-level value")
	}
	if payload == nil {
		return nil, nil
	}
	return normalizePayload(payload), nil
}

// normalizePayload rewrites nested mappings as map[string]any and resolves
// json.Number values, so every input format yields the same value types.
func normalizePayload(p Payload) Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case Payload:
		return map[string]any(normalizePayload(val))
	case map[string]any:
		return map[string]any(normalizePayload(Payload(val)))
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	case json.Number:
		return normalizeNumber(val)
	default:
		return v
	}
}

func normalizeNumber(n json.Number) any {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err != nil || i > maxExactInt || i < -maxExactInt {
			return n
		}
	}
	f, err := n.Float64()
	if err != nil {
		return n
	}
	return f
}
