package validation

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

const maxUploadSize = 10 << 20

// FileConstraints is one accepted upload kind: its sniffed content types,
// its extensions and a size cap.
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

var (
	ImageConstraints = FileConstraints{
		AllowedMimeTypes:  map[string]bool{"image/jpeg": true, "image/png": true},
		AllowedExtensions: map[string]bool{".jpg": true, ".jpeg": true, ".png": true},
		MaxSize:           maxUploadSize,
	}

	DocumentConstraints = FileConstraints{
		AllowedMimeTypes:  map[string]bool{"application/pdf": true},
		AllowedExtensions: map[string]bool{".pdf": true},
		MaxSize:           maxUploadSize,
	}

	// WordConstraints covers .doc (OLE container) and .docx (zip container).
	// Neither has a dedicated signature in http.DetectContentType.
	WordConstraints = FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"application/msword":       true,
			"application/zip":          true,
			"application/octet-stream": true,
		},
		AllowedExtensions: map[string]bool{".doc": true, ".docx": true},
		MaxSize:           maxUploadSize,
	}

	// UploadConstraints is the full set accepted for checklist documents.
	UploadConstraints = []FileConstraints{DocumentConstraints, ImageConstraints, WordConstraints}
)

// ValidateFile accepts the upload if it satisfies any one of constraints.
// The content type is sniffed from the file's leading bytes, so renaming a
// file or forging its Content-Type header does not get it through.
func ValidateFile(header *multipart.FileHeader, constraints ...FileConstraints) error {
	if len(constraints) == 0 {
		return errors.New("no file constraints provided")
	}

	detected, err := sniffContentType(header)
	if err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))

	var lastErr error
	for _, c := range constraints {
		lastErr = c.check(header.Size, detected, ext)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (c FileConstraints) check(size int64, detected, ext string) error {
	if size > c.MaxSize {
		return fmt.Errorf("file too large: maximum size is %d MB", c.MaxSize>>20)
	}
	if !c.AllowedMimeTypes[detected] {
		return fmt.Errorf("invalid file type (detected: %s)", detected)
	}
	if !c.AllowedExtensions[ext] {
		return fmt.Errorf("invalid file extension: %s", ext)
	}
	return nil
}

// sniffContentType reads at most the 512 bytes http.DetectContentType looks at.
func sniffContentType(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	buf := make([]byte, 512)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return http.DetectContentType(buf[:n]), nil
}
