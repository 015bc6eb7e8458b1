package configs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML encodes data to filePath, creating parent directories.
func SaveTOML(filePath string, data any) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	// #nosec G306 -- project config is committed alongside the code.
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(data)
}

// LoadTOML decodes filePath into data. Keys present in the file but not in
// data are an error.
func LoadTOML(filePath string, data any) error {
	md, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return &unknownKeysError{keys: undecoded}
	}
	return nil
}

type unknownKeysError struct {
	keys []toml.Key
}

func (e *unknownKeysError) Error() string {
	msg := "unknown keys:"
	for _, k := range e.keys {
		msg += " " + k.String()
	}
	return msg
}
