// Package credentials reads GitHub credentials from a property file of
// key=value lines, the format of ~/.github.
package credentials

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// OAuthKey is the property holding a personal access token.
const OAuthKey = "oauth"

// Parse reads key=value properties from r. Blank lines and lines starting
// with # or ! are skipped; keys and values are trimmed.
func Parse(r io.Reader) (map[string]string, error) {
	props := map[string]string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			key, value, ok = strings.Cut(line, ":")
		}
		if !ok {
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read properties")
	}
	return props, nil
}

// TokenFromFile returns the oauth token of the property file at path. A
// leading ~ is expanded to the home directory. A missing file yields an
// empty token and no error.
func TokenFromFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	path, err := expandHome(path)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrapf(err, "failed to open credentials file %s", path)
	}
	defer f.Close()

	props, err := Parse(f)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse credentials file %s", path)
	}
	return props[OAuthKey], nil
}

// Resolve picks the explicitly configured token when present, and falls back
// to the property file otherwise.
func Resolve(token, file string) (string, error) {
	if token != "" {
		return token, nil
	}
	return TokenFromFile(file)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
