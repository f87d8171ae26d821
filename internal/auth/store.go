package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"tickadd/internal/logging"
)

// ErrNoToken is returned by Store.Load when no token has been saved yet.
var ErrNoToken = errors.New("no access token stored")

// Store persists the TickTick access token as a single opaque string.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store backed by the file at path. An empty path
// selects DefaultTokenPath.
func NewStore(path string, logger *slog.Logger) *Store {
	if path == "" {
		path = DefaultTokenPath()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// DefaultTokenPath is the token location in the user's cache directory,
// e.g. ~/.cache/tickadd/ticktick.token on Linux.
func DefaultTokenPath() string {
	return filepath.Join(userCacheDir(), "tickadd", "ticktick.token")
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Has reports whether a non-empty token is stored.
func (s *Store) Has() bool {
	_, err := s.Load()
	return err == nil
}

// Load reads the stored access token. Returns ErrNoToken when the file
// does not exist or is empty.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read token file %s: %w", s.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Save writes the access token, creating parent directories as needed.
// The file is readable by the owner only.
func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("refusing to store an empty token")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", s.path, err)
	}

	s.logger.Info("token saved",
		logging.Operation("save_token"),
		logging.Status(logging.StatusSuccess),
		slog.String("path", s.path),
		slog.String("token", logging.SanitizeToken(token)))

	return nil
}

// Clear removes the stored token. Removing a token that does not exist
// is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file %s: %w", s.path, err)
	}
	return nil
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
		return os.TempDir()
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
