package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"shitami/internal/config"
	"shitami/internal/static"
)

// newTestServer はビルド成果物を模したディレクトリ付きのテスト用サーバーを作成する
func newTestServer(t *testing.T, port int) *Server {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"index.html": "<html>root</html>",
		"app.js":     "console.log('app');",
		"style.css":  "body { margin: 0; }",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("テストファイルの作成に失敗しました: %v", err)
		}
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Static: config.StaticConfig{
			Dir:       dir,
			IndexFile: "index.html",
		},
	}

	resolver, err := static.NewDirResolver(dir, cfg.Static.IndexFile)
	if err != nil {
		t.Fatalf("DirResolverの作成に失敗しました: %v", err)
	}

	return New(cfg, resolver)
}

// doRequest はテスト用サーバーへリクエストを送り、レスポンスを記録する
func doRequest(srv *Server, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	srv.engine.ServeHTTP(w, req)
	return w
}

// freePort は空いているTCPポートを確保して返す
func freePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ポートの確保に失敗しました: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	_ = listener.Close()
	return port
}

// TestStaticEndpoints は静的配信のレスポンスをテストする
func TestStaticEndpoints(t *testing.T) {
	srv := newTestServer(t, 8000)

	testCases := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
		expectedType   string
		expectedInBody string
	}{
		{"ルートはインデックスファイル", http.MethodGet, "/", http.StatusOK, "text/html; charset=utf-8", "<html>root</html>"},
		{"JSファイル", http.MethodGet, "/app.js", http.StatusOK, "application/javascript", "console.log"},
		{"CSSファイル", http.MethodGet, "/style.css", http.StatusOK, "text/css", "margin"},
		{"存在しないファイル", http.MethodGet, "/missing.txt", http.StatusNotFound, "", "404"},
		{"HEADリクエスト", http.MethodHead, "/app.js", http.StatusOK, "application/javascript", ""},
		{"OPTIONSリクエスト", http.MethodOptions, "/", http.StatusNoContent, "", ""},
		{"POSTリクエスト", http.MethodPost, "/", http.StatusMethodNotAllowed, "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(srv, tc.method, tc.target)

			if w.Code != tc.expectedStatus {
				t.Errorf("予期しないステータスコード: got %d, want %d", w.Code, tc.expectedStatus)
			}
			if tc.expectedType != "" && w.Header().Get("Content-Type") != tc.expectedType {
				t.Errorf("Content-Typeが一致しません: got %s, want %s",
					w.Header().Get("Content-Type"), tc.expectedType)
			}
			if tc.expectedInBody != "" && !strings.Contains(w.Body.String(), tc.expectedInBody) {
				t.Errorf("レスポンスボディが一致しません: got %q", w.Body.String())
			}
		})
	}
}

// TestCORSHeaders はすべてのレスポンスへのCORSヘッダー付与をテストする
func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, 8000)

	// 成功・404・405・プリフライトのいずれでも付与される
	requests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/"},
		{http.MethodGet, "/missing.txt"},
		{http.MethodPost, "/"},
		{http.MethodOptions, "/app.js"},
	}

	expected := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
	}

	for _, r := range requests {
		w := doRequest(srv, r.method, r.target)
		for key, want := range expected {
			if got := w.Header().Get(key); got != want {
				t.Errorf("%s %s: %s が一致しません: got %q, want %q", r.method, r.target, key, got, want)
			}
		}
	}
}

// TestRequestIDHeader はリクエストIDの付与をテストする
func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, 8000)

	first := doRequest(srv, http.MethodGet, "/")
	second := doRequest(srv, http.MethodGet, "/")

	if first.Header().Get("X-Request-Id") == "" {
		t.Error("X-Request-Idが設定されていません")
	}
	if first.Header().Get("X-Request-Id") == second.Header().Get("X-Request-Id") {
		t.Error("X-Request-Idがリクエストごとに変わっていません")
	}
}

// TestTraversalRequest はベースディレクトリ外へのリクエストの拒否をテストする
func TestTraversalRequest(t *testing.T) {
	srv := newTestServer(t, 8000)

	w := doRequest(srv, http.MethodGet, "/../../etc/passwd")

	if w.Code != http.StatusNotFound {
		t.Errorf("予期しないステータスコード: got %d, want %d", w.Code, http.StatusNotFound)
	}
	if strings.Contains(w.Body.String(), "root:") {
		t.Error("ベースディレクトリ外のファイル内容が返されました")
	}
}

// TestServerStartAndShutdown はサーバーの起動とシャットダウンをテストする
func TestServerStartAndShutdown(t *testing.T) {
	srv := newTestServer(t, freePort(t))

	// テスト用のコンテキスト（タイムアウト付き）
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// サーバーを別ゴルーチンで起動
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	// サーバーが起動するまで少し待つ
	time.Sleep(100 * time.Millisecond)

	// 起動中のサーバーへ実際にリクエストを送る
	resp, err := http.Get(fmt.Sprintf("http://%s/", srv.config.ServerAddress()))
	if err != nil {
		t.Fatalf("HTTPリクエストでエラーが発生しました: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("予期しないステータスコード: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORSヘッダーが一致しません: got %q, want *", got)
	}

	// コンテキストをキャンセルしてサーバーを停止
	cancel()

	// エラーチャンネルから結果を受信
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("サーバーの起動/停止でエラーが発生しました: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("サーバーの停止がタイムアウトしました")
	}
}

// TestAddressInUse は使用中ポートへのバインド失敗をテストする
func TestAddressInUse(t *testing.T) {
	// 先にポートを占有しておく
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ポートの確保に失敗しました: %v", err)
	}
	defer listener.Close()
	port := listener.Addr().(*net.TCPAddr).Port

	srv := newTestServer(t, port)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = srv.Start(ctx)
	if err == nil {
		t.Fatal("エラーが期待されましたが、エラーが発生しませんでした")
	}

	var inUse *AddressInUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("AddressInUseErrorが期待されましたが、%Tが返されました", err)
	}
	if inUse.Port != port {
		t.Errorf("ポート番号が一致しません: got %d, want %d", inUse.Port, port)
	}
	// メッセージは次のポート番号を提案する
	if !strings.Contains(err.Error(), fmt.Sprintf("%d", port+1)) {
		t.Errorf("次のポート番号の提案が含まれていません: %s", err.Error())
	}

	// 先に占有していたリスナーは影響を受けない
	conn, err := net.DialTimeout("tcp", listener.Addr().String(), time.Second)
	if err != nil {
		t.Errorf("既存のリスナーへ接続できません: %v", err)
	} else {
		_ = conn.Close()
	}
}
