package server

import "fmt"

// AddressInUseError は指定ポートが既に使用されている場合の起動エラー
// 起動時のみ発生し、リトライは行わない
type AddressInUseError struct {
	Port int
}

func (e *AddressInUseError) Error() string {
	return fmt.Sprintf("ポート %d は既に使用されています。-port %d を試してください", e.Port, e.Port+1)
}

// StartupError はポート使用中以外のソケットバインド失敗
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("サーバーの起動に失敗: %v", e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}
