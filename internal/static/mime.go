package static

import (
	"mime"
	"path"
	"strings"
)

// 拡張子によらず固定で返すContent-Type
// ブラウザのモジュール読み込みが環境依存のMIME設定で壊れないようにする
const (
	contentTypeJS  = "application/javascript"
	contentTypeCSS = "text/css"
)

// fallbackContentType は拡張子から推論できない場合のContent-Type
const fallbackContentType = "application/octet-stream"

// ContentType はパスの拡張子からContent-Typeを決定する
// .js と .css は推論結果によらず固定値を返す
func ContentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".js"):
		return contentTypeJS
	case strings.HasSuffix(name, ".css"):
		return contentTypeCSS
	}

	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return fallbackContentType
}
