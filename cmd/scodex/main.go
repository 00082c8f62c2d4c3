package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/droidsec/scodex/internal/decompiler"
	"github.com/droidsec/scodex/internal/downloader"
	"github.com/droidsec/scodex/internal/reporter"
	"github.com/droidsec/scodex/internal/scanner"
	"github.com/droidsec/scodex/internal/utils"
)

func main() {
	rulesFile := flag.String("rules", "", "YAML file overriding the scan rules")
	outputFile := flag.String("o", "", "write detailed results to a JSON file")
	htmlFile := flag.String("html", "", "write an HTML report to a file")
	workers := flag.Int("w", 1, "number of concurrent scans")
	fast := flag.Bool("fast", false, "read the binary manifest directly, without apktool")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%sscodex - Android dialer secret code scanner%s\n\n", utils.ColorGreen, utils.ColorEnd)
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  scodex [flags] file1.apk [file2.apk ...]\n\n")
		fmt.Fprintf(os.Stderr, "Inputs may also be http(s) URLs pointing at APK files.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	targets := flag.Args()
	if len(targets) == 0 {
		flag.Usage()
		return
	}

	// The external tool is checked once, before any file is processed.
	var decomp scanner.Decompiler
	if !*fast {
		apktool, err := decompiler.NewApktool()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%sError: %v%s\n", utils.ColorRed, err, utils.ColorEnd)
			os.Exit(1)
		}
		decomp = apktool
	}

	scn, err := scanner.New(&scanner.Config{
		RulesFile: *rulesFile,
		Workers:   *workers,
		Fast:      *fast,
	}, decomp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", utils.ColorRed, err, utils.ColorEnd)
		os.Exit(1)
	}

	resolved, cleanup := fetchRemoteTargets(targets)
	defer cleanup()

	results := scn.ScanAll(resolved)
	// Report remote inputs under the URL they were given as.
	for i := range results {
		results[i].Path = targets[i]
	}
	scanner.Render(os.Stdout, results)

	if *outputFile != "" {
		if err := scanner.SaveJSON(*outputFile, results); err != nil {
			fmt.Fprintf(os.Stderr, "%sWarning: %v%s\n", utils.ColorWarning, err, utils.ColorEnd)
		}
	}
	if *htmlFile != "" {
		data := reporter.ReportData{
			ScanTime: time.Now().Format("2006-01-02 15:04:05"),
			Results:  results,
			Total:    len(results),
			WithHits: reporter.CountHits(results),
		}
		if err := reporter.WriteHTML(*htmlFile, data); err != nil {
			fmt.Fprintf(os.Stderr, "%sWarning: failed to write HTML report: %v%s\n", utils.ColorWarning, err, utils.ColorEnd)
		}
	}

	// apktool leaves a framework cache in the user's home; sweep it once
	// the whole batch is done.
	if !*fast {
		decompiler.ClearFrameworkCache()
	}
}

// fetchRemoteTargets downloads URL inputs into a temp directory, keeping
// input order. A failed download keeps the URL in place so the scan reports
// it as invalid and the batch continues.
func fetchRemoteTargets(targets []string) ([]string, func()) {
	cleanup := func() {}

	hasRemote := false
	for _, target := range targets {
		if downloader.IsURL(target) {
			hasRemote = true
			break
		}
	}
	if !hasRemote {
		return targets, cleanup
	}

	destDir, err := os.MkdirTemp("", "scodex-dl-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sWarning: cannot create download directory: %v%s\n", utils.ColorWarning, err, utils.ColorEnd)
		return targets, cleanup
	}
	cleanup = func() { os.RemoveAll(destDir) }

	resolved := make([]string, len(targets))
	for i, target := range targets {
		resolved[i] = target
		if !downloader.IsURL(target) {
			continue
		}
		local, err := downloader.Fetch(target, destDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%sWarning: %v%s\n", utils.ColorWarning, err, utils.ColorEnd)
			continue
		}
		resolved[i] = local
	}
	return resolved, cleanup
}
