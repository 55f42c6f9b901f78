package core

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DetectProjectURL returns the origin remote of the git checkout containing the working
// directory, as an https URL. It returns "" outside a checkout or without an origin.
func DetectProjectURL() string {
	return detectProjectURL(os.Getwd, openFile)
}

// unexported constants.
const (
	originSection = `[remote "origin"]`
	sshPrefix     = "git@"
	urlKey        = "url"
)

func detectProjectURL(getwd func() (string, error), open func(string) (io.ReadCloser, error)) string {
	dir, err := getwd()
	if err != nil {
		return ""
	}

	return projectURLFromDir(dir, open)
}

// normalizeRemoteURL turns git@host:path into https://host/path and drops a .git suffix.
func normalizeRemoteURL(url string) string {
	if rest, ok := strings.CutPrefix(url, sshPrefix); ok {
		url = "https://" + strings.Replace(rest, ":", "/", 1)
	}

	return strings.TrimSuffix(url, ".git")
}

func openFile(path string) (io.ReadCloser, error) {
	return os.Open(path) //nolint:gosec // path is a .git/config found by walking up
}

// originURL scans git config content for the origin remote's url.
func originURL(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	inOrigin := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "[") {
			inOrigin = strings.HasPrefix(line, originSection)
			continue
		}

		if !inOrigin {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if ok && strings.TrimSpace(key) == urlKey {
			return normalizeRemoteURL(strings.TrimSpace(value))
		}
	}

	return ""
}

// projectURLFromDir walks up from dir to the first .git/config with an origin.
func projectURLFromDir(dir string, open func(string) (io.ReadCloser, error)) string {
	for {
		if f, err := open(filepath.Join(dir, ".git", "config")); err == nil {
			url := originURL(f)
			_ = f.Close()

			if url != "" {
				return url
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}

		dir = parent
	}
}
