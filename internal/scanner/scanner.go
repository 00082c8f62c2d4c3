package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/droidsec/scodex/internal/apkreader"
)

// Status classifies the outcome of scanning one input.
const (
	StatusFound   = "found"   // manifest carries the marker, codes extracted
	StatusNone    = "none"    // valid manifest, no marker present
	StatusInvalid = "invalid" // unpacking produced no manifest
)

// Result is the outcome for one input path. Codes holds the extracted
// attribute values, one per marker-bearing manifest line, in file order.
type Result struct {
	Path   string   `json:"path"`
	Status string   `json:"status"`
	Codes  []string `json:"codes,omitempty"`
}

// Decompiler unpacks an APK into an output directory that must not exist
// yet. Satisfied by decompiler.Apktool.
type Decompiler interface {
	Decompile(apkFile, outputDir string) error
}

type Config struct {
	RulesFile string // optional YAML overrides for the scan rules
	Workers   int    // bounded pool size; values below 1 mean sequential
	Fast      bool   // read the binary manifest from the zip, no decompiler
}

type Scanner struct {
	rules   Rules
	attrRe  *regexp.Regexp
	decomp  Decompiler
	workers int
	fast    bool
}

func New(cfg *Config, decomp Decompiler) (*Scanner, error) {
	rules := DefaultRules()
	if cfg.RulesFile != "" {
		var err error
		if rules, err = LoadRules(cfg.RulesFile); err != nil {
			return nil, err
		}
	}
	if !cfg.Fast && decomp == nil {
		return nil, fmt.Errorf("a decompiler is required unless fast mode is enabled")
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Scanner{
		rules:   rules,
		attrRe:  regexp.MustCompile(rules.Attribute),
		decomp:  decomp,
		workers: workers,
		fast:    cfg.Fast,
	}, nil
}

// ScanAll processes every target and returns one result per target, in
// input order regardless of worker count.
func (s *Scanner) ScanAll(targets []string) []Result {
	results := make([]Result, len(targets))

	if s.workers == 1 {
		for i, target := range targets {
			results[i] = s.Scan(target)
		}
		return results
	}

	semaphore := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			results[i] = s.Scan(target)
		}(i, target)
	}
	wg.Wait()

	return results
}

// Scan unpacks a single APK and classifies its manifest. Unpack failures
// are not errors: they classify the input as invalid and the batch moves on.
func (s *Scanner) Scan(target string) Result {
	res := Result{Path: target, Status: StatusInvalid}

	manifest, ok := s.readManifest(target)
	if !ok {
		return res
	}

	codes, found := s.extractCodes(manifest)
	if !found {
		res.Status = StatusNone
		return res
	}

	res.Status = StatusFound
	res.Codes = codes
	return res
}

// readManifest produces the decoded manifest text for target, via apktool
// or, in fast mode, straight from the zip. The temp directory is unique per
// invocation so overlapping scans never collide, and it is always removed.
func (s *Scanner) readManifest(target string) ([]byte, bool) {
	if s.fast {
		data, err := apkreader.ManifestXML(target)
		if err != nil {
			return nil, false
		}
		return data, true
	}

	tempRoot, err := os.MkdirTemp("", "scodex-")
	if err != nil {
		return nil, false
	}
	defer os.RemoveAll(tempRoot)

	// apktool refuses an existing output directory, so unpack into a
	// fresh path inside the temp root.
	outDir := filepath.Join(tempRoot, "unpacked")

	// A failed run may still have produced a manifest; the presence check
	// below is what decides validity.
	_ = s.decomp.Decompile(target, outDir)

	for _, rel := range s.rules.ManifestPaths {
		if data, err := os.ReadFile(filepath.Join(outDir, rel)); err == nil {
			return data, true
		}
	}
	return nil, false
}

// extractCodes scans the manifest line by line. Every line containing the
// marker contributes one code: the attribute capture when it matches, the
// trimmed line itself otherwise.
func (s *Scanner) extractCodes(manifest []byte) ([]string, bool) {
	var codes []string
	found := false

	sc := bufio.NewScanner(bytes.NewReader(manifest))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, s.rules.Marker) {
			continue
		}
		found = true
		if m := s.attrRe.FindStringSubmatch(line); len(m) > 1 {
			codes = append(codes, m[1])
		} else {
			codes = append(codes, strings.TrimSpace(line))
		}
	}

	return codes, found
}
