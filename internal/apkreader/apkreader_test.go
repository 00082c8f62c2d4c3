package apkreader

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, entries map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.apk")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, data := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestManifestXMLNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.apk")
	if err := os.WriteFile(path, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := ManifestXML(path); err == nil {
		t.Fatalf("expected error for non-zip input")
	}
}

func TestManifestXMLMissingEntry(t *testing.T) {
	path := writeZip(t, map[string][]byte{"classes.dex": []byte("dex")})
	if _, err := ManifestXML(path); err == nil {
		t.Fatalf("expected error for archive without a manifest")
	}
}

func TestManifestXMLRejectsTextManifest(t *testing.T) {
	// A plain-text manifest is not binary XML; decoding must fail rather
	// than hand garbage to the scanner.
	path := writeZip(t, map[string][]byte{
		"AndroidManifest.xml": []byte(`<manifest package="com.example"/>`),
	})
	if _, err := ManifestXML(path); err == nil {
		t.Fatalf("expected error for text manifest entry")
	}
}

func TestPackageNameUnreadableAPK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.apk")
	if err := os.WriteFile(path, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if got := PackageName(path); got != "" {
		t.Fatalf("expected empty package name, got %q", got)
	}
}
