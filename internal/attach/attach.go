// Package attach validates and encodes image files for transmission.
package attach

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	apierrors "github.com/dost-cli/dost/internal/errors"
	"github.com/dost-cli/dost/internal/logging"
)

// MaxImageSize is the attachment size ceiling. Files above it are
// rejected before any bytes are read.
const MaxImageSize = 5 * 1024 * 1024 // 5 MiB

// SupportedExtensions lists the image types the completion endpoint
// accepts.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Preparer turns a local image file into a base64 payload ready for
// the request builder. It never touches the conversation store.
type Preparer struct {
	// readFile is swappable for tests
	readFile func(string) ([]byte, error)
	// statFile is swappable for tests
	statFile func(string) (os.FileInfo, error)
}

// NewPreparer creates a Preparer backed by the real filesystem
func NewPreparer() *Preparer {
	return &Preparer{
		readFile: os.ReadFile,
		statFile: os.Stat,
	}
}

// Prepare stats, reads and base64-encodes the file at path. A file
// over MaxImageSize fails with ErrTooLarge without being read; I/O
// failures map to ErrReadFailure. A zero-size stat result is treated
// as "size unknown": the read is allowed but the anomaly is logged.
func (p *Preparer) Prepare(path string) (string, error) {
	if !IsSupportedFile(path) {
		return "", apierrors.NewAttachmentError(path, apierrors.ErrUnsupportedType)
	}

	info, err := p.statFile(path)
	if err != nil {
		return "", apierrors.NewAttachmentError(path, apierrors.ErrReadFailure)
	}

	switch {
	case info.Size() > MaxImageSize:
		return "", apierrors.NewAttachmentError(path, apierrors.ErrTooLarge)
	case info.Size() == 0:
		logging.Warnf("attachment %s reports zero size, proceeding with read", path)
	}

	data, err := p.readFile(path)
	if err != nil {
		return "", apierrors.NewAttachmentError(path, apierrors.ErrReadFailure)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

// IsSupportedFile reports whether the file extension is an accepted
// image type.
func IsSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
