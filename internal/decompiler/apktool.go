package decompiler

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Apktool wraps the external apktool binary used to unpack APKs into
// readable resources, including the decoded AndroidManifest.xml.
type Apktool struct {
	BinaryPath string
}

func NewApktool() (*Apktool, error) {
	path, err := exec.LookPath("apktool")
	if err != nil {
		return nil, fmt.Errorf("apktool is required but not found in PATH")
	}
	return &Apktool{BinaryPath: path}, nil
}

// Decompile unpacks apkFile into outputDir. apktool requires the output
// directory to not exist yet, so callers pass a fresh path inside their own
// temp directory. All tool output is discarded.
func (a *Apktool) Decompile(apkFile, outputDir string) error {
	cmd := exec.Command(a.BinaryPath, "-q", "d", "-o", outputDir, apkFile)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

// ClearFrameworkCache removes the framework resource cache apktool leaves
// under the user's home directory. Best-effort: removal errors are ignored,
// this is a courtesy sweep after a batch completes.
func ClearFrameworkCache() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	// Legacy and current apktool cache locations.
	os.RemoveAll(filepath.Join(home, "apktool"))
	os.RemoveAll(filepath.Join(home, ".local", "share", "apktool"))
}
