package security

import (
	"html"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/petween/backend/pkg/utils"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeString removes potentially dangerous characters
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if len(input) > 1000 {
		input = input[:1000]
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// SanitizeName prepares a user or pet name for storage: markup is
// stripped, entities are decoded back to text and whitespace collapsed.
func SanitizeName(input string) string {
	return utils.NormalizeName(html.UnescapeString(SanitizeHTML(SanitizeString(input))))
}

const maxFilenameStem = 200

// SplitFilename reduces an uploaded filename to a safe base name and
// returns it as stem and extension. Letters, digits and marks of any
// script are kept along with space, '.', '-' and '_'. Either part may
// be empty.
func SplitFilename(name string) (stem, ext string) {
	name = strings.ReplaceAll(SanitizeString(name), "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == "/" || name == ".." {
		return "", ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r):
			b.WriteRune(r)
		case r == '.', r == '-', r == '_', r == ' ':
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	ext = filepath.Ext(cleaned)
	stem = strings.Trim(strings.TrimSuffix(cleaned, ext), ". ")
	for len(stem) > maxFilenameStem {
		_, size := utf8.DecodeLastRuneInString(stem)
		stem = stem[:len(stem)-size]
	}
	return strings.TrimRight(stem, ". "), ext
}

// ValidateFileType checks if file extension is allowed
func ValidateFileType(filename string, allowedTypes []string) bool {
	filename = strings.ToLower(filename)
	for _, ext := range allowedTypes {
		if strings.HasSuffix(filename, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// ValidateFileSize checks if file size is within limit
func ValidateFileSize(size int64, maxSize int64) bool {
	return size > 0 && size <= maxSize
}
