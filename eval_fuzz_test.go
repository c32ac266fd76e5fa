//go:build go1.18
// +build go1.18

package scicalc_test

import (
	"testing"

	"github.com/zephyrtronium/scicalc"
)

func FuzzEngine(f *testing.F) {
	f.Add("1+2", "5/0")
	f.Add("Ans×2", "Ans!")
	f.Add("Pol(3,4)", "sin(")
	f.Fuzz(func(t *testing.T, a, b string) {
		e := scicalc.New()
		e.Evaluate(a)
		ans, hist := e.Ans(), len(e.History())
		if _, err := e.Evaluate(b); err != nil {
			if e.Ans() != ans || len(e.History()) != hist {
				t.Errorf("failed evaluation of %q changed state", b)
			}
			return
		}
		if len(e.History()) > scicalc.HistoryLimit {
			t.Errorf("history has %d entries", len(e.History()))
		}
	})
}
