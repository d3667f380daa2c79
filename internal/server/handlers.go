package server

import (
	"errors"
	"net/http"
	"os"

	"shitami/internal/static"

	"github.com/gin-gonic/gin"
)

// staticHandler は静的ファイル配信リクエストを処理する
type staticHandler struct {
	resolver static.Resolver
}

// handle は全リクエストのエントリポイント
// ルーティングは行わず、パス解決の結果だけでレスポンスを決める
func (h *staticHandler) handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead:
		// 静的配信の対象
	case http.MethodOptions:
		// CORSプリフライト用。ヘッダーのみ返す
		c.Status(http.StatusNoContent)
		return
	default:
		c.String(http.StatusMethodNotAllowed, "405 method not allowed\n")
		return
	}

	result, err := h.resolver.Resolve(c.Request.URL.Path)
	if err != nil {
		switch {
		case errors.Is(err, static.ErrNotFound):
			c.String(http.StatusNotFound, "404 not found\n")
		case errors.Is(err, static.ErrTraversal):
			// 存在の有無を漏らさないため404として扱う
			c.String(http.StatusNotFound, "404 not found\n")
		default:
			c.String(http.StatusInternalServerError, "500 internal server error\n")
		}
		return
	}

	switch result.Kind {
	case static.KindDirectory:
		body := static.ListingHTML(c.Request.URL.Path, result.Entries)
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
	case static.KindFile:
		h.serveFile(c, result)
	}
}

// serveFile は解決済みのファイルを配信する
// Content-Typeを先に確定し、本体はhttp.ServeContentへ委譲する
func (h *staticHandler) serveFile(c *gin.Context, result *static.Result) {
	file, err := os.Open(result.Path)
	if err != nil {
		// 解決とオープンの間に消えた場合
		c.String(http.StatusNotFound, "404 not found\n")
		return
	}
	defer file.Close()

	c.Header("Content-Type", static.ContentType(result.Path))
	http.ServeContent(c.Writer, c.Request, result.Info.Name(), result.Info.ModTime(), file)
}
