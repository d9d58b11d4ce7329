package store

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	// Packages
	sonic "github.com/bytedance/sonic"
	mia "github.com/mutablelogic/go-mia"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	jsonExt              = ".json"
	DirPerm  os.FileMode = 0o700 // Directory permission for store directories
	FilePerm os.FileMode = 0o600 // File permission for store files
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS - FILE UTILITIES

// ensureDir validates that dir is non-empty and creates it if needed.
func ensureDir(dir string) error {
	if dir == "" {
		return mia.ErrBadParameter.With("directory is required")
	}
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return mia.ErrInternalServerError.Withf("mkdir: %v", err)
	}
	return nil
}

// jsonPath returns the file for an identifier. Identifiers are encoded so
// that any string is a safe file name.
func jsonPath(dir, id string) string {
	return filepath.Join(dir, base64.RawURLEncoding.EncodeToString([]byte(id))+jsonExt)
}

// writeJSON serialises v to a JSON file at the given path, replacing any
// existing file atomically.
func writeJSON(path string, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return mia.ErrInternalServerError.Withf("marshal: %v", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return mia.ErrInternalServerError.Withf("write: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return mia.ErrInternalServerError.Withf("rename: %v", err)
	}
	return nil
}

// readJSON deserialises a JSON file into v. Returns ErrNotFound when the
// file does not exist, using label to identify the missing resource.
func readJSON(path string, label string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return mia.ErrNotFound.Withf("%s", label)
		}
		return mia.ErrInternalServerError.Withf("read: %v", err)
	}
	if err := sonic.ConfigStd.Unmarshal(data, v); err != nil {
		return mia.ErrInternalServerError.Withf("unmarshal: %v", err)
	}
	return nil
}

// readJSONDir returns the decoded identifiers of all JSON files in dir,
// skipping subdirectories and files with names it did not write.
func readJSONDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, mia.ErrInternalServerError.Withf("readdir: %v", err)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), jsonExt) {
			continue
		}
		id, err := base64.RawURLEncoding.DecodeString(strings.TrimSuffix(entry.Name(), jsonExt))
		if err != nil {
			continue
		}
		ids = append(ids, string(id))
	}
	return ids, nil
}
