package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	dataDirKey     = "data_dir"
	defaultDataDir = ".chatline"
	storeFileMode  = 0o600
	storeDirMode   = 0o700
)

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

// document is one versioned TOML file. Every repository instance pointing at
// the same path shares the same lock.
type document struct {
	path string
	kind string
	mu   *sync.RWMutex
}

func openDocument(cfg *viper.Viper, pathKey, fileName, kind string) (*document, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(pathKey)
	if path == "" {
		dataDir := cfg.GetString(dataDirKey)
		if dataDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolve home directory: %w", err)
			}
			dataDir = filepath.Join(homeDir, defaultDataDir)
		}
		path = filepath.Join(dataDir, fileName)
	}

	path, err := normalizePath(path, kind)
	if err != nil {
		return nil, err
	}

	return &document{path: path, kind: kind, mu: lockForPath(path)}, nil
}

// read decodes the file into out. A missing file leaves out untouched.
func (d *document) read(out any) error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s file: %w", d.kind, err)
	}

	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s file: %w", d.kind, err)
	}

	return nil
}

func (d *document) write(in any) error {
	if err := os.MkdirAll(filepath.Dir(d.path), storeDirMode); err != nil {
		return fmt.Errorf("create %s directory: %w", d.kind, err)
	}

	data, err := toml.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s file: %w", d.kind, err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(d.path), "."+d.kind+"-*.toml.tmp")
	if err != nil {
		return fmt.Errorf("create temp %s file: %w", d.kind, err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp %s file: %w", d.kind, err)
	}

	if err := tempFile.Chmod(storeFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp %s file: %w", d.kind, err)
	}

	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("sync temp %s file: %w", d.kind, err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp %s file: %w", d.kind, err)
	}

	if err := os.Rename(tempName, d.path); err != nil {
		return fmt.Errorf("replace %s file: %w", d.kind, err)
	}

	cleanup = false

	return nil
}

func normalizePath(path, kind string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s path: %w", kind, err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
