package static

import (
	"errors"
	"os"
)

// Kind は解決結果の種別を表す
type Kind string

const (
	KindFile      Kind = "file"      // 通常ファイル
	KindDirectory Kind = "directory" // ディレクトリ（インデックスファイルなし）
)

// 解決時のエラー
// どちらもリクエスト単位のエラーであり、サーバーは稼働を継続する
var (
	// ErrNotFound は解決先のパスが存在しない場合のエラー
	ErrNotFound = errors.New("ファイルが見つかりません")

	// ErrTraversal は解決先がベースディレクトリ外となる場合のエラー
	ErrTraversal = errors.New("ベースディレクトリ外へのアクセスは許可されていません")
)

// Result はパス解決の結果を表す
type Result struct {
	Kind    Kind        // 解決結果の種別
	Path    string      // ベースディレクトリ配下の絶対パス
	Info    os.FileInfo // KindFile の場合のファイル情報
	Entries []Entry     // KindDirectory の場合の一覧（名前順）
}

// Entry はディレクトリ一覧の1件を表す
type Entry struct {
	Name  string // エントリ名
	IsDir bool   // ディレクトリかどうか
}

// Resolver はリクエストパスをベースディレクトリ配下へ解決する
type Resolver interface {
	// Resolve はURLパスを解決する
	// 存在しない場合は ErrNotFound、ベースディレクトリ外は ErrTraversal を返す
	Resolve(requestPath string) (*Result, error)
}
