package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"shitami/internal/config"
	"shitami/internal/server"
	"shitami/internal/static"

	"github.com/fatih/color"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// ビルド成果物の存在を確認する。ない場合はソケットをバインドせずに終了する
	if err := cfg.CheckDistDir(); err != nil {
		color.Yellow("⚠️  %v", err)
		fmt.Println("   フロントエンドのビルドを実行してから再度起動してください (例: npm run build)")
		os.Exit(1)
	}

	// パス解決を作成
	resolver, err := static.NewDirResolver(cfg.Static.Dir, cfg.Static.IndexFile)
	if err != nil {
		log.Fatalf("パス解決の初期化に失敗しました: %v", err)
	}

	// サーバーを作成
	srv := server.New(cfg, resolver)

	// コンテキストを作成
	ctx := context.Background()

	// サーバーを起動
	if err := srv.Start(ctx); err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}
}
