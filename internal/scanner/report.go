package scanner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Render writes the batch report: each path heading followed by its
// tab-indented result lines.
func Render(w io.Writer, results []Result) {
	for _, res := range results {
		fmt.Fprintf(w, "%s:\n", res.Path)
		switch res.Status {
		case StatusInvalid:
			fmt.Fprintln(w, "\tNot a valid APK file")
		case StatusNone:
			fmt.Fprintln(w, "\tN/A")
		default:
			for _, code := range res.Codes {
				fmt.Fprintf(w, "\t%s\n", code)
			}
		}
	}
}

// SaveJSON writes the detailed results to a JSON file.
func SaveJSON(path string, results []Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results to file: %v", err)
	}
	return nil
}
