// Package server は、静的ファイル配信用HTTPサーバーを管理します。
//
// このパッケージは、HTTPサーバーの起動、ミドルウェア、
// 静的ファイルの配信、グレースフルシャットダウンを担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - CORSヘッダーとリクエストIDの付与
//   - アクセスログの出力（favicon.ico と .map を含むパスは抑制）
//   - パス解決結果に応じたレスポンスの生成
//   - バインド失敗の分類（ポート使用中とその他）
//
// 仕様:
//   - HTTPエンジンはgin-gonic/ginを使用
//   - グレースフルシャットダウンに対応
//   - 複数クライアントの同時接続をサポート
//   - 起動失敗時のリトライは行わない
package server
