package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shitami/internal/config"
	"shitami/internal/static"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	engine     *gin.Engine
	httpServer *http.Server
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config, resolver static.Resolver) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	// ミドルウェアを設定
	engine.Use(requestID())
	engine.Use(corsHeaders())
	engine.Use(accessLog(os.Stdout))

	// 名前付きルートは持たず、全リクエストを静的配信ハンドラへ渡す
	handler := &staticHandler{resolver: resolver}
	engine.NoRoute(handler.handle)

	return &Server{
		config: cfg,
		engine: engine,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start はサーバーを起動する
// バインドに失敗した場合、ポート使用中は AddressInUseError、
// それ以外は StartupError を返す
func (s *Server) Start(ctx context.Context) error {
	// バインド失敗を分類するため、リッスンは明示的に行う
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return &AddressInUseError{Port: s.config.Server.Port}
		}
		return &StartupError{Err: err}
	}

	s.printBanner()

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			shutdownCh <- fmt.Errorf("サーバーの実行に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	log.Println("サーバーをシャットダウンしています...")

	// 5秒のタイムアウトを設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	color.Yellow("👋 サーバーを停止しました。")
	return nil
}

// printBanner は起動時の案内メッセージを表示する
func (s *Server) printBanner() {
	color.Green("📦 ビルド成果物を配信します: %s", s.config.Static.Dir)
	color.Green("🌐 http://localhost:%d/ でサーバーが起動しました", s.config.Server.Port)
	fmt.Println()
	fmt.Println("🛑 Ctrl+C で停止します")
	fmt.Println()
}
