package respond

import "testing"

func TestLookupMIMEKnownExtensions(t *testing.T) {
	cases := map[string]string{
		"index.html": "text/html",
		"data.xml":   "text/xml",
		"page.xhtml": "application/xhtml+xml",
		"notes.txt":  "text/plain",
		"doc.pdf":    "application/pdf",
		"logo.png":   "image/png",
		"anim.gif":   "image/gif",
		"photo.jpg":  "image/jpeg",
		"site.css":   "text/css",
	}
	for name, want := range cases {
		if got := LookupMIME(name); got != want {
			t.Errorf("LookupMIME(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestLookupMIMEUnknownFallsBackToTextPlain(t *testing.T) {
	if got := LookupMIME("binary.dat"); got != "text/plain" {
		t.Fatalf("got %q", got)
	}
	if got := LookupMIME("noext"); got != "text/plain" {
		t.Fatalf("got %q", got)
	}
}
