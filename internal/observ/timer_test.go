package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	done := tm.Track("parse")
	done("1 unit")
	idx := tm.Begin("codegen")
	tm.End(idx, "")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Name != "parse" || rep.Phases[0].Note != "1 unit" {
		t.Fatalf("report = %+v", rep)
	}
	sum := tm.Summary()
	for _, want := range []string{"timings:", "parse", "// 1 unit", "codegen", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	tm.Track("x")("")
	if len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer should report nothing")
	}
}
