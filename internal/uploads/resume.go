// Package uploads stores resume files submitted with job applications.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// AllowedResumeExtensions lists the accepted lowercase extensions.
var AllowedResumeExtensions = []string{"pdf", "doc", "docx", "txt"}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// ResumeIntake validates uploads and saves them under a fixed directory.
type ResumeIntake struct {
	dir    string
	now    func() time.Time
	logger *zap.Logger
}

// NewResumeIntake returns an intake writing to dir.
func NewResumeIntake(dir string, logger *zap.Logger) *ResumeIntake {
	return &ResumeIntake{dir: dir, now: time.Now, logger: logger}
}

// Accept saves file and returns its stored path. A nil file or one failing
// validation yields a nil path and no error; nothing is written for it.
// Two files with the same sanitized name within the same second overwrite
// each other.
func (r *ResumeIntake) Accept(file *multipart.FileHeader) (*string, error) {
	if file == nil {
		return nil, nil
	}
	if !AllowedResume(file.Filename) {
		r.logger.Debug("resume dropped: extension not allowed", zap.String("filename", file.Filename))
		return nil, nil
	}

	name := SanitizeFilename(file.Filename)
	if name == "" || !AllowedResume(name) {
		r.logger.Debug("resume dropped: unsafe filename", zap.String("filename", file.Filename))
		return nil, nil
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	stored := filepath.Join(r.dir, fmt.Sprintf("%d_%s", r.now().UTC().Unix(), name))
	if err := saveFile(file, stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// AllowedResume reports whether filename carries an allowed extension.
func AllowedResume(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return lo.Contains(AllowedResumeExtensions, strings.ToLower(filename[idx+1:]))
}

// SanitizeFilename reduces name to a flat ASCII filename safe to join onto a
// directory. It may return an empty string.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.ReplaceAll(name, "/", " ")
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

func saveFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return out.Close()
}
