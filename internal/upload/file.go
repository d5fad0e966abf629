package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// AllowedExtensions are the accepted file name suffixes.
var AllowedExtensions = []string{".xlsx", ".xls", ".csv"}

// AllowedMIMETypes are the accepted detected content types.
var AllowedMIMETypes = []string{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-excel",
	"text/csv",
	"application/csv",
}

// FileInfo describes a picked file.
type FileInfo struct {
	Path string
	Name string
	Size int64
	MIME string
}

// SizeKB formats Size in kilobytes with two decimals.
func (f FileInfo) SizeKB() string {
	return fmt.Sprintf("%.2f KB", float64(f.Size)/1024)
}

// TypeLabel returns the MIME type or a placeholder when unknown.
func (f FileInfo) TypeLabel() string {
	if f.MIME == "" {
		return "not specified"
	}
	return f.MIME
}

// Inspect stats path and sniffs its content type.
func Inspect(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		return FileInfo{}, fmt.Errorf("%s is a directory", path)
	}
	fi := FileInfo{Path: path, Name: filepath.Base(path), Size: st.Size()}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("detect type of %s: %w", path, err)
	}
	fi.MIME = mt.String()
	for _, allowed := range AllowedMIMETypes {
		if mt.Is(allowed) {
			fi.MIME = allowed
			break
		}
	}
	return fi, nil
}

// Accepts reports whether f passes the allow-list by MIME type or by
// extension.
func Accepts(f FileInfo) bool {
	mt := strings.TrimSpace(strings.SplitN(f.MIME, ";", 2)[0])
	for _, allowed := range AllowedMIMETypes {
		if mt == allowed {
			return true
		}
	}
	ext := strings.ToLower(filepath.Ext(f.Name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
