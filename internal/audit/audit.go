package audit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/gitops-secrets/internal/configs"
)

// FileName is the audit log inside the project secrets folder.
const FileName = "audit.jsonl"

// Operation names recorded in the log.
const (
	OpEncrypt = "encrypt"
	OpDecrypt = "decrypt"
	OpBuild   = "build"
	OpFetch   = "fetch"
	OpRun     = "run"
	OpInit    = "init"
)

// Entry is one line of the audit log. Secret values are never recorded.
type Entry struct {
	Timestamp  string `json:"ts"` // RFC3339 with microseconds.
	Operation  string `json:"op"`
	Path       string `json:"path,omitempty"`       // File written or read, relative to the project root.
	Tag        string `json:"tag,omitempty"`        // Envelope format tag.
	Iterations int    `json:"iterations,omitempty"` // PBKDF2 iterations of the envelope.
	KeysCount  int    `json:"keys_count,omitempty"`
	Provider   string `json:"provider,omitempty"` // For fetch.
	Format     string `json:"format,omitempty"`   // Module format for build.
	Command    string `json:"command,omitempty"`  // Program name for run, without arguments.
}

// Log appends an entry to the audit log.
// Failures are ignored; operations should not fail because auditing did.
func Log(entry Entry) {
	logPath := LogPath()
	if logPath == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	// #nosec G306 -- the audit log holds no secret values.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file.
// Returns empty string if project settings are not initialized.
func LogPath() string {
	secretsPath := configs.ProjectGitopsSettings.ProjectSecretsPath
	if secretsPath == "" {
		return ""
	}
	return filepath.Join(secretsPath, FileName)
}

// RelPath returns path relative to the project root for recording.
func RelPath(path string) string {
	root := configs.ProjectGitopsSettings.ProjectPath
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
