// Package uriutil converts between file paths and the file:// URIs used by
// editors.
package uriutil

import (
	"net/url"
	"path/filepath"
	"strings"
)

// PathToURI converts a file system path to a file:// URI. Relative paths
// are made absolute first; segments are percent-encoded.
//
//   - /home/user/my project -> file:///home/user/my%20project
//   - C:\proj -> file:///C:/proj
func PathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		// Windows drive paths need a leading slash: C:/proj -> /C:/proj
		slashed = "/" + slashed
	}
	u := url.URL{Scheme: "file", Path: slashed}
	return u.String()
}

// URIToPath converts a file:// URI to a file system path. Strings that are
// not file URIs are returned unchanged.
func URIToPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return uri
	}

	path := parsed.Path
	if parsed.Host != "" && parsed.Host != "localhost" {
		path = "//" + parsed.Host + path
	}
	// /C:/proj -> C:/proj
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

// Label names a document in messages: its path relative to root when the
// document is inside root, otherwise its path, or the URI itself when it is
// not a file.
func Label(uri, root string) string {
	path := URIToPath(uri)
	if path == uri || root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
