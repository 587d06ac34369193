package pipeline

import (
	"encoding/base64"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MaxImageSize limits the size of a single inlined image (default 10MB).
var MaxImageSize int64 = 10 << 20

// EmbedImages replaces relative image paths with data: URIs so the document
// carries its images. If sourceDir is empty, returns the HTML unchanged.
//
// Rewrites:
//   - img[src]: relative paths that resolve inside sourceDir
//
// Leaves unchanged:
//   - URLs, data: URIs, anchors and absolute paths
//   - paths escaping sourceDir
//   - unreadable files and files larger than MaxImageSize
func EmbedImages(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" || !strings.Contains(htmlContent, "<img") {
		return htmlContent, nil
	}

	// Make sourceDir absolute for consistent path resolution
	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, err := parseFragment(htmlContent)
	if err != nil {
		return "", err
	}

	embedNode(doc, absSourceDir)

	return renderFragment(doc)
}

// parseFragment parses HTML with a body context to avoid wrapping.
func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, nil
}

// renderFragment renders only the children of the container.
func renderFragment(doc *html.Node) (string, error) {
	var buf strings.Builder
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// embedNode traverses the DOM and inlines image sources.
func embedNode(n *html.Node, sourceDir string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for i, attr := range n.Attr {
			if attr.Key != "src" || !isRelativePath(attr.Val) {
				continue
			}
			if uri, ok := dataURI(attr.Val, sourceDir); ok {
				n.Attr[i].Val = uri
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		embedNode(c, sourceDir)
	}
}

// dataURI reads the image at src relative to sourceDir.
func dataURI(src, sourceDir string) (string, bool) {
	// Drop query and fragment; they are not part of the file name
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	if unescaped, err := url.PathUnescape(src); err == nil {
		src = unescaped
	}

	absPath := filepath.Join(sourceDir, filepath.FromSlash(src))

	// Security: validate path is under sourceDir (prevent traversal)
	if !isPathUnderDir(absPath, sourceDir) {
		return "", false
	}

	info, err := os.Stat(absPath)
	if err != nil || info.IsDir() || info.Size() > MaxImageSize {
		return "", false
	}

	data, err := os.ReadFile(absPath) // #nosec G304 -- path validated above
	if err != nil {
		return "", false
	}

	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(absPath)))
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}

	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), true
}

// isRelativePath returns true if the path should be inlined.
func isRelativePath(path string) bool {
	if path == "" {
		return false
	}

	// Skip URLs (http, https, file, data, protocol-relative)
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "file://") ||
		strings.HasPrefix(path, "data:") ||
		strings.HasPrefix(path, "//") {
		return false
	}

	// Skip anchors
	if strings.HasPrefix(path, "#") {
		return false
	}

	// Skip absolute paths
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return false
	}

	return true
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	// Ensure dir ends with separator for correct prefix matching
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath, cleanDir)
}
