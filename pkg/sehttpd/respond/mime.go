package respond

import "strings"

// mimeTable covers the extensions this server special-cases; anything else
// (including no extension at all) falls back to defaultMIME.
var mimeTable = map[string]string{
	".html":  "text/html",
	".xml":   "text/xml",
	".xhtml": "application/xhtml+xml",
	".txt":   "text/plain",
	".pdf":   "application/pdf",
	".png":   "image/png",
	".gif":   "image/gif",
	".jpg":   "image/jpeg",
	".css":   "text/css",
}

const defaultMIME = "text/plain"

// LookupMIME resolves a filename's extension to a MIME type.
func LookupMIME(filename string) string {
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		if mt, ok := mimeTable[strings.ToLower(filename[i:])]; ok {
			return mt
		}
	}
	return defaultMIME
}
