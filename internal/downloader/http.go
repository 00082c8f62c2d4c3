// Package downloader fetches remote APK inputs so they can be scanned like
// local files.
package downloader

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IsURL reports whether a scan target should be downloaded first.
func IsURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// Fetch downloads rawURL into destDir and returns the local file path.
func Fetch(rawURL, destDir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %s: %v", rawURL, err)
	}

	resp, err := http.Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: status %s", rawURL, resp.Status)
	}

	name := safeName(path.Base(u.Path))
	if name == "" {
		name = "download.apk"
	}
	dst := filepath.Join(destDir, name)

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", err
	}
	return dst, nil
}

func safeName(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "/" {
		return ""
	}
	repl := strings.NewReplacer(" ", "-", "..", ".", "/", "-", "\\", "-")
	return repl.Replace(name)
}
