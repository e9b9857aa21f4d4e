package engine

const virtualKeyword = "virtual"

// ModifierGuard は一致の直前を見て、その一致を報告から外すかを決めます。
type ModifierGuard interface {
	Suppressed(text string, start int) bool
}

// VirtualGuard は一致開始位置の直前 7 バイトが "virtual" なら抑止する。
// 字句解析はせず、固定幅で比較するだけ。
type VirtualGuard struct{}

func (VirtualGuard) Suppressed(text string, start int) bool {
	n := len(virtualKeyword)
	if start < n || start > len(text) {
		return false
	}
	return text[start-n:start] == virtualKeyword
}

// ModifierGuardFunc は関数を ModifierGuard として使うためのアダプタ
type ModifierGuardFunc func(text string, start int) bool

func (f ModifierGuardFunc) Suppressed(text string, start int) bool { return f(text, start) }
