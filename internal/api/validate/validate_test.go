package validate

import (
	"strings"
	"testing"
)

func TestTerm(t *testing.T) {
	for _, v := range []string{"check", "table d'hôte", "  check  ", "über"} {
		if err := Term(v); err != nil {
			t.Errorf("Term(%q): %v", v, err)
		}
	}
	for _, v := range []string{"", "   ", "\t\n", strings.Repeat("x", 2001)} {
		if err := Term(v); err == nil {
			t.Errorf("Term(%q): want error", v)
		}
	}
}

func TestLang(t *testing.T) {
	for _, v := range []string{"", "en", "EN", "de", "pt-BR", "yue", "es"} {
		if err := Lang(v); err != nil {
			t.Errorf("Lang(%q): %v", v, err)
		}
	}
	for _, v := range []string{"e", "english", "en_US", "12", "en-"} {
		if err := Lang(v); err == nil {
			t.Errorf("Lang(%q): want error", v)
		}
	}
}

func TestContext(t *testing.T) {
	if err := Context(strings.Repeat("x", 4000)); err != nil {
		t.Errorf("Context at limit: %v", err)
	}
	if err := Context(strings.Repeat("x", 4001)); err == nil {
		t.Error("Context over limit: want error")
	}
}
