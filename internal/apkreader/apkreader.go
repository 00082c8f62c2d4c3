// Package apkreader reads the binary AndroidManifest.xml straight out of an
// APK archive, without an external decompiler.
package apkreader

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
	"github.com/shogo82148/androidbinary"
)

const manifestEntry = "AndroidManifest.xml"

// ManifestXML returns the manifest of the given APK decoded to text XML.
// It fails when the file is not a zip archive, has no manifest entry, or
// the entry is not valid binary XML.
func ManifestXML(apkFile string) ([]byte, error) {
	raw, err := readZipEntry(apkFile, manifestEntry)
	if err != nil {
		return nil, errors.Wrap(err, "read-manifest")
	}
	xmlfile, err := androidbinary.NewXMLFile(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "parse-axml")
	}
	return io.ReadAll(xmlfile.Reader())
}

// PackageName extracts the application package attribute from the manifest,
// for report headings. Empty string when the APK cannot be read.
func PackageName(apkFile string) string {
	data, err := ManifestXML(apkFile)
	if err != nil {
		return ""
	}
	var manifest struct {
		Package string `xml:"package,attr"`
	}
	if err := xml.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Package
}

func readZipEntry(filename, name string) ([]byte, error) {
	cf, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer cf.Close()

	for _, file := range cf.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		buf := bytes.NewBuffer(nil)
		if _, err := io.Copy(buf, rc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, errors.Errorf("entry %q not found in archive", name)
}
