package static

import (
	"fmt"
	"html"
	"path"
	"strings"
)

// ListingHTML はディレクトリ一覧のHTMLを生成する
// urlPath は表示用のリクエストパス、entries は名前順の一覧
func ListingHTML(urlPath string, entries []Entry) []byte {
	if !strings.HasSuffix(urlPath, "/") {
		urlPath += "/"
	}
	escaped := html.EscapeString(urlPath)

	var b strings.Builder
	fmt.Fprintf(&b, "<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>Index of %s</title>\n", escaped)
	fmt.Fprintf(&b, "</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>Index of %s</h1>\n<ul>\n", escaped)

	for _, e := range entries {
		name := e.Name
		if e.IsDir {
			// ディレクトリは末尾にスラッシュを付ける
			name += "/"
		}
		href := html.EscapeString(path.Join("/", urlPath, e.Name))
		if e.IsDir {
			href += "/"
		}
		fmt.Fprintf(&b, "<li><a href=\"%s\">%s</a></li>\n", href, html.EscapeString(name))
	}

	fmt.Fprintf(&b, "</ul>\n</body>\n</html>\n")
	return []byte(b.String())
}
