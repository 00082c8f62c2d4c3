package reporter

import (
	"bytes"
	"html/template"
	"os"

	"github.com/droidsec/scodex/internal/scanner"
)

type ReportData struct {
	ScanTime string
	Results  []scanner.Result
	Total    int
	WithHits int
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Secret Code Scan Report</title>
  <style>
    body { font-family: 'Segoe UI', Tahoma, sans-serif; background: #1a1a1a; color: #fff; margin: 0; }
    .header { background: #2d2d2d; padding: 20px 40px; border-bottom: 1px solid #404040; }
    .header h1 { color: #00d4ff; margin: 0; font-size: 1.6em; }
    .header p { color: #b0b0b0; margin: 6px 0 0; }
    .container { max-width: 1000px; margin: 0 auto; padding: 30px 40px; }
    table { width: 100%; border-collapse: collapse; margin-top: 20px; }
    th, td { padding: 12px; text-align: left; border-bottom: 1px solid #404040; }
    th { background: #3a3a3a; color: #00d4ff; text-transform: uppercase; font-size: 0.85em; }
    .status-found { color: #ff6b6b; font-weight: 600; }
    .status-none { color: #69db7c; }
    .status-invalid { color: #808080; font-style: italic; }
    code { background: #2d2d2d; padding: 2px 6px; border-radius: 4px; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Secret Code Scan Report</h1>
    <p>{{.ScanTime}} &mdash; {{.Total}} APKs scanned, {{.WithHits}} with secret codes</p>
  </div>
  <div class="container">
    <table>
      <thead>
        <tr><th>APK</th><th>Status</th><th>Secret Codes</th></tr>
      </thead>
      <tbody>
        {{range .Results}}
        <tr>
          <td>{{.Path}}</td>
          <td><span class="status-{{.Status}}">{{statusLabel .Status}}</span></td>
          <td>{{range .Codes}}<code>{{.}}</code> {{end}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </div>
</body>
</html>`

func GenerateHTML(data ReportData) (string, error) {
	tmpl := template.Must(template.New("report").Funcs(template.FuncMap{
		"statusLabel": statusLabel,
	}).Parse(htmlTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteHTML renders the report and saves it to path.
func WriteHTML(path string, data ReportData) error {
	html, err := GenerateHTML(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(html), 0644)
}

func statusLabel(status string) string {
	switch status {
	case scanner.StatusFound:
		return "Secret codes found"
	case scanner.StatusNone:
		return "N/A"
	case scanner.StatusInvalid:
		return "Not a valid APK file"
	}
	return status
}

// CountHits returns how many results carry at least one code.
func CountHits(results []scanner.Result) int {
	n := 0
	for _, res := range results {
		if res.Status == scanner.StatusFound {
			n++
		}
	}
	return n
}
