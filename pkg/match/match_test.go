package match

import (
	"errors"
	"sync"
	"testing"

	"github.com/aryankumar/parex/pkg/parex"
)

func item(path, name string, kind parex.Kind, depth int) parex.Item {
	return parex.Item{Path: path, Name: name, Kind: kind, Depth: depth}
}

func TestSubstring(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		item    string
		want    bool
	}{
		{name: "exact", pattern: "invoice", item: "invoice", want: true},
		{name: "contained", pattern: "invoice", item: "2024_invoice_jan.txt", want: true},
		{name: "case insensitive pattern", pattern: "INVOICE", item: "invoice.txt", want: true},
		{name: "case insensitive name", pattern: "invoice", item: "INVOICE.TXT", want: true},
		{name: "no match", pattern: "invoice", item: "report.txt", want: false},
		{name: "empty pattern matches everything", pattern: "", item: "anything", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSubstring(tt.pattern).Match(item(tt.item, tt.item, parex.KindPrimary, 0))
			if got != tt.want {
				t.Errorf("Substring(%q).Match(%q) = %v, want %v", tt.pattern, tt.item, got, tt.want)
			}
		})
	}
}

func TestRegexp(t *testing.T) {
	re, err := NewRegexp(`^invoice_[a-z]{3}\.txt$`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !re.Match(item("a/invoice_jan.txt", "invoice_jan.txt", parex.KindPrimary, 1)) {
		t.Error("expected match")
	}
	if re.Match(item("a/invoice_2024.txt", "invoice_2024.txt", parex.KindPrimary, 1)) {
		t.Error("expected no match")
	}

	_, err = NewRegexp(`invoice[`)
	if !errors.Is(err, parex.ErrInvalidPattern) {
		t.Errorf("expected invalid pattern, got %v", err)
	}
	if !parex.IsFatal(err) {
		t.Error("invalid pattern must be fatal")
	}
}

func TestExpr(t *testing.T) {
	tests := []struct {
		name string
		expr string
		item parex.Item
		want bool
	}{
		{
			name: "suffix and depth",
			expr: `name.endsWith(".go") && depth <= 2`,
			item: item("src/main.go", "main.go", parex.KindPrimary, 1),
			want: true,
		},
		{
			name: "too deep",
			expr: `name.endsWith(".go") && depth <= 2`,
			item: item("a/b/c/main.go", "main.go", parex.KindPrimary, 3),
			want: false,
		},
		{
			name: "kind filter",
			expr: `kind == "container"`,
			item: item("src", "src", parex.KindContainer, 0),
			want: true,
		},
		{
			name: "path regex",
			expr: `path.matches("^kube-system/")`,
			item: item("kube-system/coredns", "coredns", parex.KindPrimary, 1),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewExpr(tt.expr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := e.Match(tt.item); got != tt.want {
				t.Errorf("Expr(%q).Match(%+v) = %v, want %v", tt.expr, tt.item, got, tt.want)
			}
			if e.String() != tt.expr {
				t.Errorf("expected source %q, got %q", tt.expr, e.String())
			}
		})
	}
}

func TestExpr_Invalid(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "syntax error", expr: `name ==`},
		{name: "unknown variable", expr: `size > 10`},
		{name: "non bool output", expr: `name + "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExpr(tt.expr)
			if !errors.Is(err, parex.ErrInvalidPattern) {
				t.Errorf("expected invalid pattern for %q, got %v", tt.expr, err)
			}
		})
	}
}

func TestExpr_Concurrent(t *testing.T) {
	e, err := NewExpr(`depth % 2 == 0`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := 0; d < 200; d++ {
				if got := e.Match(item("x", "x", parex.KindPrimary, d)); got != (d%2 == 0) {
					t.Errorf("depth %d: got %v", d, got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestCombinators(t *testing.T) {
	goFile := item("main.go", "main.go", parex.KindPrimary, 0)
	dir := item("cmd", "cmd", parex.KindContainer, 0)

	isGo := NewSubstring(".go")
	isPrimary := Kinds(parex.KindPrimary)

	if !And(isGo, isPrimary).Match(goFile) {
		t.Error("expected And to match go file")
	}
	if And(isGo, isPrimary).Match(dir) {
		t.Error("expected And to reject directory")
	}
	if !Or(isGo, Kinds(parex.KindContainer)).Match(dir) {
		t.Error("expected Or to match directory")
	}
	if !Not(isGo).Match(dir) {
		t.Error("expected Not to invert")
	}
	if !And().Match(dir) || Or().Match(dir) {
		t.Error("unexpected empty combinator behaviour")
	}
	if !All().Match(dir) {
		t.Error("expected All to match")
	}
}
