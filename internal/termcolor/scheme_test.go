package termcolor

import "testing"

func TestDetectSchemeFromColorfgbg(t *testing.T) {
	if got := DetectScheme(map[string]string{"COLORFGBG": "7;0"}); got != SchemeDark {
		t.Fatalf("expected dark for bg=0, got %v", got)
	}
	if got := DetectScheme(map[string]string{"COLORFGBG": "15;7"}); got != SchemeLight {
		t.Fatalf("expected light for bg=7, got %v", got)
	}
	if got := DetectScheme(map[string]string{"COLORFGBG": "15;15"}); got != SchemeLight {
		t.Fatalf("expected light for bg=15, got %v", got)
	}
}

func TestDetectSchemeFallsBackToTermName(t *testing.T) {
	if got := DetectScheme(map[string]string{"TERM": "xterm-light"}); got != SchemeLight {
		t.Fatalf("expected light for TERM containing light, got %v", got)
	}
	if got := DetectScheme(nil); got != SchemeDark {
		t.Fatalf("nil env should default to dark, got %v", got)
	}
}

func TestSchemeBackground(t *testing.T) {
	if SchemeLight.Background() == SchemeDark.Background() {
		t.Fatal("light and dark backgrounds should differ")
	}
	if SchemeUnknown.Background() != SchemeDark.Background() {
		t.Fatal("unknown scheme should share the dark background")
	}
	if SchemeLight.String() != "light" || SchemeDark.String() != "dark" {
		t.Fatalf("unexpected names: %s %s", SchemeLight, SchemeDark)
	}
}

func TestColorfgbgBackground(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"15;0", 0, true},
		{"0;default;15", 15, true},
		{"0;15;", 15, true},
		{"7", 0, false},
		{"fg;bg", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := colorfgbgBackground(tc.raw)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("colorfgbgBackground(%q) = %d, %v; want %d, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
