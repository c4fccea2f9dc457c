package common

import (
	"path/filepath"
	"strings"
)

var videoExtensions = []string{".mp4", ".webm", ".gif"}

// VideoExtension returns the lower-cased extension of `path` (".mp4" etc.), or an empty string if it's not
// a video container we know how to encode.
func VideoExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsStringInSlice(ext, videoExtensions) {
		return ""
	}
	return ext
}

func IsVideoFormat(path string) bool {
	return VideoExtension(path) != ""
}

// IsStringInSlice returns true if string `str` is found in `slice`.
func IsStringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if str == s {
			return true
		}
	}
	return false
}
