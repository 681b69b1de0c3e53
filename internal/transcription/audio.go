package transcription

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

// DefaultMaxFileSize is the provider's upload ceiling (25MB)
const DefaultMaxFileSize int64 = 25 * 1024 * 1024

// SupportedFormats lists the accepted extensions, without the dot
var SupportedFormats = []string{"mp3", "mp4", "mpeg", "mpga", "m4a", "wav", "webm"}

// ValidateAudioFormat checks if the file format is supported
func ValidateAudioFormat(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, format := range SupportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

// ValidateUpload applies the extension allow-list and the size ceiling.
// It is input validation, not content sniffing.
func ValidateUpload(filename string, size, maxSize int64) error {
	if !ValidateAudioFormat(filename) {
		return types.ValidationError(fmt.Sprintf(
			"unsupported file format. supported formats: %s", strings.Join(SupportedFormats, ", ")))
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if size > maxSize {
		return types.ValidationError("file too large, max " + humanSize(maxSize))
	}
	return nil
}

func humanSize(n int64) string {
	if n < 1024*1024 {
		return fmt.Sprintf("%dKB", n/1024)
	}
	return fmt.Sprintf("%dMB", n/(1024*1024))
}
