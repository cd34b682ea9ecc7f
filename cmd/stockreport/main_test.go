package main

import (
	"testing"

	"github.com/JonMunkholm/stockview/internal/core"
)

func TestParseExpand(t *testing.T) {
	tests := []struct {
		in   string
		want []core.ViewKind
	}{
		{"", nil},
		{"low_stock", []core.ViewKind{core.ViewLowStock}},
		{"base, expiring ,inactive", []core.ViewKind{core.ViewBase, core.ViewExpiring, core.ViewInactive}},
		{"bogus,low_stock,", []core.ViewKind{core.ViewLowStock}},
	}

	for _, tt := range tests {
		got := parseExpand(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseExpand(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for _, k := range tt.want {
			if !got[k] {
				t.Errorf("parseExpand(%q) missing %s", tt.in, k)
			}
		}
	}
}

func TestRun_RequiresFile(t *testing.T) {
	if code := run(nil); code != 2 {
		t.Errorf("run() = %d, want 2", code)
	}
}
