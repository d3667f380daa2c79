// Package static ビルド成果物ディレクトリへのパス解決を担う
//
// # 責務
// - リクエストパスのベースディレクトリ配下への解決
// - ベースディレクトリ外へのトラバーサルの明示的な拒否
// - ディレクトリに対するインデックスファイル解決と一覧生成
// - 拡張子からのContent-Type決定
//
// # 使い分け
// このパッケージは以下の場合に使用する：
// - URLパスをベースディレクトリ配下のファイルへ安全に対応付けたい
// - インデックスファイルの有無でファイル配信と一覧生成を切り替えたい
// - .js/.css の固定Content-Typeを含む拡張子判定を行いたい
//
// # 仕様
// - Resolver: パス解決のインターフェース
// - DirResolver: ファイルシステム上のディレクトリを対象とするデフォルト実装
// - 解決結果は KindFile / KindDirectory のいずれか
// - 存在しないパスは ErrNotFound、ベースディレクトリ外は ErrTraversal
// - 作業ディレクトリに依存しない（ベースディレクトリは絶対パスで保持）
package static
