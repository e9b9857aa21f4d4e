package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/phyten/emptymon/internal/model"
)

// Matcher は有効なメソッド名のいずれかに一致する空の void メソッド宣言を検出します。
type Matcher struct {
	re      *regexp.Regexp
	methods []model.MethodName
}

// RawMatch は Matcher による 1 件の一致（バイトオフセット）です。
type RawMatch struct {
	Start  int
	End    int
	Method model.MethodName
}

// space は RE2 の \s に無い垂直タブ、NEL と Unicode の空白 (NBSP など) も含める。
const space = `[\s\v\x{85}\p{Z}]`

// BuildMatcher は names を選択肢に持つ 1 本の正規表現を組み立てます。
//
// 形は `[ \t]*void\s+(A|B)\s*\(\s*\)\s*\{\s*\}` (\s は space に置き換える) で、
// names の順序を保ち重複は除きます。
// names が空、または未知の名前を含む場合は ErrInvalidRequest を返します。
func BuildMatcher(names []model.MethodName) (*Matcher, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no methods enabled", ErrInvalidRequest)
	}
	seen := make(map[model.MethodName]struct{}, len(names))
	methods := make([]model.MethodName, 0, len(names))
	alts := make([]string, 0, len(names))
	for _, n := range names {
		canonical, err := model.ParseMethodName(string(n))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		methods = append(methods, canonical)
		alts = append(alts, regexp.QuoteMeta(string(canonical)))
	}
	pattern := `[ \t]*void` + space + `+(` + strings.Join(alts, "|") + `)` +
		space + `*\(` + space + `*\)` + space + `*\{` + space + `*\}`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile matcher: %w", err)
	}
	return &Matcher{re: re, methods: methods}, nil
}

// Methods は Matcher が対象とするメソッド名を返す
func (m *Matcher) Methods() []model.MethodName {
	out := make([]model.MethodName, len(m.methods))
	copy(out, m.methods)
	return out
}

// String は元の正規表現を返す
func (m *Matcher) String() string { return m.re.String() }

// FindAll は text 中の重ならない一致をオフセット昇順で返します。
func (m *Matcher) FindAll(text string) []RawMatch {
	locs := m.re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	out := make([]RawMatch, 0, len(locs))
	for _, loc := range locs {
		out = append(out, RawMatch{
			Start:  loc[0],
			End:    loc[1],
			Method: model.MethodName(text[loc[2]:loc[3]]),
		})
	}
	return out
}
