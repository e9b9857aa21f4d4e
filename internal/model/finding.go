package model

import (
	"fmt"
	"strings"
)

// MethodName は検出対象のライフサイクルメソッド名を表します。
type MethodName string

const (
	Awake      MethodName = "Awake"
	Start      MethodName = "Start"
	Update     MethodName = "Update"
	LateUpdate MethodName = "LateUpdate"
)

var allMethods = []MethodName{Awake, Start, Update, LateUpdate}

// AllMethods は既知のメソッド名を正規順で返します。
func AllMethods() []MethodName {
	out := make([]MethodName, len(allMethods))
	copy(out, allMethods)
	return out
}

// ParseMethodName は大文字小文字を無視してメソッド名を正規化します。
func ParseMethodName(raw string) (MethodName, error) {
	v := strings.TrimSpace(raw)
	for _, m := range allMethods {
		if strings.EqualFold(v, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown method: %q", raw)
}

// Finding は 1 件の空メソッド検出結果です。
type Finding struct {
	File   string     `json:"file"`
	Line   int        `json:"line"`
	Method MethodName `json:"method"`
}

// Location は file:line 形式の位置文字列を返します。
func (f Finding) Location() string {
	return fmt.Sprintf("%s:%d", f.File, f.Line)
}
