package services

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SafeJoin joins target below root/sub. It returns "" when target tries to
// climb out with "..".
func SafeJoin(root, sub, target string) string {
	for _, part := range strings.Split(filepath.ToSlash(target), "/") {
		if part == ".." {
			return ""
		}
	}
	cleanTarget := filepath.Clean("/" + target)
	return filepath.Join(root, sub, cleanTarget)
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "text/javascript; charset=utf-8",
	".xml":  "text/xml; charset=utf-8",
	".pdf":  "application/pdf",
}

// ContentType picks the response type for a site file: known extensions map
// directly, everything else is sniffed from the bytes.
func ContentType(name string, content []byte) string {
	ext := strings.ToLower(path.Ext(filepath.ToSlash(name)))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return mimetype.Detect(content).String()
}
