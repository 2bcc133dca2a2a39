// Package archive packages rendered barcode artifacts into a zip file.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/dkotenko/labelforge/internal/session"
	"github.com/dkotenko/labelforge/internal/upc"
)

// FileName is the download name for an archive of the given format.
func FileName(format upc.Format) string {
	return fmt.Sprintf("barcodes.%s.zip", format)
}

// Build serializes every valid, rendered entry into a zip archive: one
// member named <code>.<ext> per artifact, raster content as binary, vector
// content as text. Entries without an artifact are omitted silently. Any
// write failure aborts the whole archive; no partial blob is returned.
func Build(entries []session.Entry, format upc.Format) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		if !e.Valid || e.Artifact == nil {
			continue
		}
		name := e.Number + "." + format.Ext()
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create archive member %s: %w", name, err)
		}
		if _, err := w.Write(e.Artifact.Data); err != nil {
			return nil, fmt.Errorf("write archive member %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
