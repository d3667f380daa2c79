package static

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DirResolver はファイルシステム上のディレクトリを対象とするResolverのデフォルト実装
type DirResolver struct {
	baseDir   string // 絶対パス
	indexFile string
}

// NewDirResolver は新しいDirResolverを作成する
// baseDir は絶対パスへ変換して保持するため、以後の解決は作業ディレクトリに依存しない
func NewDirResolver(baseDir, indexFile string) (*DirResolver, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("ベースディレクトリの解決に失敗: %w", err)
	}

	return &DirResolver{
		baseDir:   abs,
		indexFile: indexFile,
	}, nil
}

// BaseDir は配信対象のベースディレクトリを返す
func (r *DirResolver) BaseDir() string {
	return r.baseDir
}

// Resolve はURLパスをベースディレクトリ配下へ解決する
func (r *DirResolver) Resolve(requestPath string) (*Result, error) {
	// ルートより上へ辿ろうとするパスは解決前に拒否する
	if escapesRoot(requestPath) {
		return nil, ErrTraversal
	}

	// 相対要素を除去してからベースディレクトリへ結合する
	cleaned := path.Clean("/" + requestPath)
	target := filepath.Join(r.baseDir, filepath.FromSlash(cleaned))

	// 結合結果がベースディレクトリ配下に収まっていることを検証する
	// 上のクリーニングで保証されるが、不変条件として明示的に確認する
	rel, err := filepath.Rel(r.baseDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, ErrTraversal
	}

	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("パスの確認に失敗: %w", err)
	}

	if !info.IsDir() {
		return &Result{Kind: KindFile, Path: target, Info: info}, nil
	}

	// ディレクトリの場合、インデックスファイルがあればそれを返す
	indexPath := filepath.Join(target, r.indexFile)
	if indexInfo, err := os.Stat(indexPath); err == nil && !indexInfo.IsDir() {
		return &Result{Kind: KindFile, Path: indexPath, Info: indexInfo}, nil
	}

	entries, err := readEntries(target)
	if err != nil {
		return nil, fmt.Errorf("ディレクトリの読み込みに失敗: %w", err)
	}

	return &Result{Kind: KindDirectory, Path: target, Entries: entries}, nil
}

// escapesRoot はパスがルートより上へ辿ろうとしているか判定する
// セグメントごとに深さを追い、一度でも負になればトラバーサルとみなす
func escapesRoot(requestPath string) bool {
	depth := 0
	for _, seg := range strings.Split(requestPath, "/") {
		switch seg {
		case "", ".":
			// 深さは変わらない
		case "..":
			depth--
			if depth < 0 {
				return true
			}
		default:
			depth++
		}
	}
	return false
}

// readEntries はディレクトリ一覧を名前順で読み込む
func readEntries(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		entries = append(entries, Entry{
			Name:  e.Name(),
			IsDir: e.IsDir(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}
