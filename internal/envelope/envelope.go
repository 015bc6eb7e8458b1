package envelope

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"

	kerrors "github.com/PolarWolf314/gitops-secrets/internal/errors"
)

// Tag identifies an envelope scheme.
type Tag string

// TagBase64 is PBKDF2-HMAC-SHA256 key derivation, AES-256-GCM with a 96-bit
// nonce and the 16-byte authentication tag appended to the ciphertext, all
// binary fields in padded standard base64.
const TagBase64 Tag = "base64"

// Delimiter separates envelope fields. It is not part of the base64 alphabet.
const Delimiter = ":"

const fieldCount = 5

// ErrNonCanonical is wrapped by a FormatError whose field is valid base64
// only when the unused pad bits of its last symbol are ignored.
var ErrNonCanonical = errors.New("non-canonical base64")

var knownTags = map[Tag]bool{
	TagBase64: true,
}

// Known reports whether tag is a recognised scheme.
func Known(tag Tag) bool {
	return knownTags[tag]
}

// Envelope is the decoded form of a cipher text string.
type Envelope struct {
	Tag        Tag
	Iterations int
	Salt       []byte
	IV         []byte
	Ciphertext []byte
}

// String formats the envelope.
func (e Envelope) String() string {
	return Format(e.Tag, e.Iterations, e.Salt, e.IV, e.Ciphertext)
}

// Format joins the fields into an envelope string.
func Format(tag Tag, iterations int, salt, iv, ciphertext []byte) string {
	return strings.Join([]string{
		string(tag),
		strconv.Itoa(iterations),
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(iv),
		base64.StdEncoding.EncodeToString(ciphertext),
	}, Delimiter)
}

// Parse decodes an envelope string. All failures are *errors.FormatError.
func Parse(s string) (Envelope, error) {
	fields := strings.Split(strings.TrimSpace(s), Delimiter)
	if len(fields) != fieldCount {
		return Envelope{}, &kerrors.FormatError{
			Field:  "envelope",
			Reason: "expected " + strconv.Itoa(fieldCount) + " fields, got " + strconv.Itoa(len(fields)),
		}
	}

	tag := Tag(fields[0])
	if !Known(tag) {
		return Envelope{}, &kerrors.FormatError{Field: "tag", Reason: "unknown format tag " + strconv.Quote(fields[0])}
	}

	iterations, err := parseIterations(fields[1])
	if err != nil {
		return Envelope{}, err
	}

	salt, err := decodeField("salt", fields[2])
	if err != nil {
		return Envelope{}, err
	}
	iv, err := decodeField("iv", fields[3])
	if err != nil {
		return Envelope{}, err
	}
	ciphertext, err := decodeField("ciphertext", fields[4])
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		Tag:        tag,
		Iterations: iterations,
		Salt:       salt,
		IV:         iv,
		Ciphertext: ciphertext,
	}, nil
}

func parseIterations(s string) (int, error) {
	// ParseUint rejects signs, so "+5" and "-5" are both format errors.
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, &kerrors.FormatError{Field: "iterations", Reason: "not a positive integer", Err: err}
	}
	if n == 0 {
		return 0, &kerrors.FormatError{Field: "iterations", Reason: "not a positive integer"}
	}
	return int(n), nil
}

func decodeField(name, s string) ([]byte, error) {
	if s == "" {
		return nil, &kerrors.FormatError{Field: name, Reason: "empty"}
	}
	b, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		if _, lenientErr := base64.StdEncoding.DecodeString(s); lenientErr == nil {
			return nil, &kerrors.FormatError{Field: name, Reason: "non-canonical base64", Err: ErrNonCanonical}
		}
		return nil, &kerrors.FormatError{Field: name, Reason: "invalid base64", Err: err}
	}
	return b, nil
}
