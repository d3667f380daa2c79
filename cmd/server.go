// Package main はShitamiサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"shitami/internal/config"
	"shitami/internal/server"
	"shitami/internal/static"

	"github.com/fatih/color"
)

func main() {
	// コマンドラインオプション
	var (
		host = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port = flag.Int("port", 0, "サーバーのポート (デフォルト: 8000)")
		dir  = flag.String("dir", "", "配信するディレクトリ (デフォルト: 実行ファイルと同じ場所の dist)")
		help = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("Shitami")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dir != "" {
		cfg.Static.Dir = *dir
	}

	// ビルド成果物の存在を確認する。ない場合はソケットをバインドせずに終了する
	if err := cfg.CheckDistDir(); err != nil {
		color.Yellow("⚠️  %v", err)
		fmt.Println("   フロントエンドのビルドを実行してから再度起動してください (例: npm run build)")
		fmt.Println("   または -dir で配信するディレクトリを指定してください")
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
	log.Printf("Shitami サーバーを起動します: %s", cfg.ServerAddress())
	if err := srv.Start(ctx); err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}
}
