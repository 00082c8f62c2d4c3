package main

import (
	"flag"
	"html/template"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/droidsec/scodex/internal/apkreader"
	"github.com/droidsec/scodex/internal/reporter"
	"github.com/droidsec/scodex/internal/scanner"
)

var (
	uploadDir   = filepath.Join("web-data", "uploads")
	reportsRoot = filepath.Join("web-data", "reports")
)

func main() {
	must(os.MkdirAll(uploadDir, 0755))
	must(os.MkdirAll(reportsRoot, 0755))

	http.HandleFunc("/", handleIndex)
	http.HandleFunc("/upload", handleUpload)

	// Serve reports statically
	fs := http.FileServer(http.Dir(reportsRoot))
	http.Handle("/reports/", http.StripPrefix("/reports/", fs))

	// Address selection: PORT env or default 9090; can override with -addr
	defaultAddr := ":" + getEnv("PORT", "9090")
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :9090 or 127.0.0.1:9090")
	flag.Parse()

	log.Printf("scodex web server listening on %s (set PORT env or -addr to change)", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>scodex Web</title>
  <style>
    body { font-family: 'Segoe UI', Tahoma, sans-serif; background: #1a1a1a; color: #fff; margin: 0; }
    .header { background: #2d2d2d; padding: 20px 40px; border-bottom: 1px solid #404040; }
    .header h1 { color: #00d4ff; margin: 0; }
    .container { max-width: 900px; margin: 0 auto; padding: 30px 40px; }
    .card { background: #2d2d2d; border: 1px solid #404040; padding: 24px; border-radius: 12px; margin-bottom: 24px; }
    .card h2 { color: #00d4ff; margin-top: 0; }
    input[type="file"] { width: 100%; padding: 12px; border: 2px dashed #404040; border-radius: 8px; background: #3a3a3a; color: #fff; }
    .btn { background: #00d4ff; color: #1a1a1a; border: none; padding: 12px 24px; border-radius: 8px; cursor: pointer; font-weight: 600; margin-top: 16px; }
    table { width: 100%; border-collapse: collapse; margin-top: 10px; }
    th, td { padding: 10px; text-align: left; border-bottom: 1px solid #404040; }
    th { color: #00d4ff; text-transform: uppercase; font-size: 0.85em; }
    a { color: #00d4ff; }
    .no-reports { text-align: center; padding: 30px; color: #808080; font-style: italic; }
  </style>
</head>
<body>
  <div class="header"><h1>scodex Web Portal</h1></div>
  <div class="container">
    <div class="card">
      <h2>Upload APK</h2>
      <form action="/upload" method="post" enctype="multipart/form-data">
        <input type="file" name="apk" accept=".apk" required>
        <button class="btn" type="submit">Scan for secret codes</button>
      </form>
    </div>
    <div class="card">
      <h2>Scan Reports</h2>
      {{if .Rows}}
      <table>
        <thead>
          <tr><th>APK</th><th>Package</th><th>Time</th><th>JSON</th><th>HTML</th></tr>
        </thead>
        <tbody>
          {{range .Rows}}
          <tr>
            <td>{{.APK}}</td>
            <td>{{.Package}}</td>
            <td>{{.When}}</td>
            <td>{{if .JSON}}<a href="/reports/{{.ID}}/results.json">results.json</a>{{end}}</td>
            <td>{{if .HTML}}<a href="/reports/{{.ID}}/report.html">report.html</a>{{end}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
      {{else}}
      <div class="no-reports"><p>No scan reports yet. Upload an APK to get started!</p></div>
      {{end}}
    </div>
  </div>
</body>
</html>`))

type reportRow struct {
	ID      string
	APK     string
	Package string
	When    string
	JSON    bool
	HTML    bool
}

type indexData struct {
	Rows []reportRow
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := indexData{Rows: listReports()}
	if err := indexTmpl.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func listReports() []reportRow {
	entries, err := os.ReadDir(reportsRoot)
	if err != nil {
		return nil
	}
	var rows []reportRow
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		id := e.Name()
		st, _ := os.Stat(filepath.Join(reportsRoot, id))
		row := reportRow{
			ID:      id,
			APK:     readString(filepath.Join(reportsRoot, id, "apk.name")),
			Package: readString(filepath.Join(reportsRoot, id, "apk.package")),
			When:    st.ModTime().Format("2006-01-02 15:04:05"),
			JSON:    fileExists(filepath.Join(reportsRoot, id, "results.json")),
			HTML:    fileExists(filepath.Join(reportsRoot, id, "report.html")),
		}
		rows = append(rows, row)
	}
	// Newest first
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows
}

func handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	file, header, err := r.FormFile("apk")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Validate extension
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".apk") {
		http.Error(w, "only .apk files are allowed", http.StatusBadRequest)
		return
	}

	savedPath, err := saveUploadedFile(file, header)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	runID := time.Now().Format("20060102-150405")
	outDir := filepath.Join(reportsRoot, runID)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// Write simple meta
	_ = os.WriteFile(filepath.Join(outDir, "apk.name"), []byte(filepath.Base(savedPath)), 0644)
	_ = os.WriteFile(filepath.Join(outDir, "apk.package"), []byte(apkreader.PackageName(savedPath)), 0644)

	// The server scans in fast mode, so it never needs apktool installed.
	scn, err := scanner.New(&scanner.Config{Fast: true}, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	results := scn.ScanAll([]string{savedPath})

	if err := scanner.SaveJSON(filepath.Join(outDir, "results.json"), results); err != nil {
		log.Printf("save results error: %v", err)
	}
	data := reporter.ReportData{
		ScanTime: time.Now().Format("2006-01-02 15:04:05"),
		Results:  results,
		Total:    len(results),
		WithHits: reporter.CountHits(results),
	}
	if err := reporter.WriteHTML(filepath.Join(outDir, "report.html"), data); err != nil {
		log.Printf("write report error: %v", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func saveUploadedFile(file multipart.File, header *multipart.FileHeader) (string, error) {
	dst := filepath.Join(uploadDir, safeName(header.Filename))
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}
	return dst, nil
}

func safeName(name string) string {
	name = filepath.Base(name)
	repl := strings.NewReplacer(" ", "-", "..", ".", "/", "-", "\\", "-")
	return repl.Replace(name)
}

func readString(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(b)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
