package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"yulc/internal/bignum"
	"yulc/internal/buildpipeline"
	"yulc/internal/diag"
	"yulc/internal/driver"
	"yulc/internal/layout"
	"yulc/internal/mir"
	"yulc/internal/project"
	"yulc/internal/source"
	"yulc/internal/vm"
)

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if shouldUseTUI(uiModeOff) || !shouldUseTUI(uiModeOn) {
		t.Fatalf("explicit ui modes must win over terminal detection")
	}
}

func TestColorEnabled(t *testing.T) {
	if on, err := colorEnabled("on", nil); err != nil || !on {
		t.Fatalf("on: %v %v", on, err)
	}
	if on, err := colorEnabled("off", os.Stderr); err != nil || on {
		t.Fatalf("off: %v %v", on, err)
	}
	if on, err := colorEnabled("auto", nil); err != nil || on {
		t.Fatalf("auto without a stream: %v %v", on, err)
	}
	if _, err := colorEnabled("rainbow", nil); err == nil {
		t.Fatalf("expected error for invalid value")
	}
}

func TestParseWordArgs(t *testing.T) {
	words, err := parseWordArgs([]string{"10", "0xff"})
	if err != nil {
		t.Fatalf("parseWordArgs: %v", err)
	}
	if words[0] != bignum.FromUint64(10) || words[1] != bignum.FromUint64(255) {
		t.Fatalf("words = %v", words)
	}
	if _, err := parseWordArgs([]string{"ten"}); err == nil {
		t.Fatalf("expected error for non-numeric argument")
	}
}

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		in      string
		want    []byte
		wantErr bool
	}{
		{"", nil, false},
		{"0x0a0b", []byte{0x0a, 0x0b}, false},
		{"ff", []byte{0xff}, false},
		{"0xabc", nil, true},
	}
	for _, tt := range tests {
		got, err := decodeHex(tt.in)
		if (err != nil) != tt.wantErr || !bytes.Equal(got, tt.want) {
			t.Errorf("decodeHex(%q) = %x, %v", tt.in, got, err)
		}
	}
}

func TestRenderOutcome(t *testing.T) {
	tests := []struct {
		name    string
		outcome vm.Outcome
		runErr  error
		wantOut string
		wantErr string
	}{
		{
			name:    "values",
			outcome: vm.Outcome{Values: []bignum.Word{bignum.FromUint64(55)}},
			wantOut: "r0 = 55 (0x37)\n",
		},
		{
			name:    "halt",
			outcome: vm.Outcome{Halted: true, Data: []byte{0x01, 0x02}},
			wantOut: "halted with 2 bytes: 0x0102\n",
		},
		{
			name:    "plain revert",
			runErr:  &vm.Revert{Data: []byte{0xde, 0xad}},
			wantErr: "reverted with 2 bytes: 0xdead\n",
		},
		{
			name:    "panic",
			runErr:  &vm.Revert{IsPanic: true, Panic: layout.PanicCode(0x11)},
			wantErr: "reverted: Panic(0x11)",
		},
		{
			name:    "fault",
			runErr:  &vm.Fault{Code: vm.FaultStepLimit, Message: "step limit 10 reached"},
			wantErr: "fault VM1001: step limit 10 reached\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			if err := renderOutcome(&out, &errOut, tt.outcome, tt.runErr); err != nil {
				t.Fatalf("renderOutcome: %v", err)
			}
			if out.String() != tt.wantOut {
				t.Fatalf("stdout = %q, want %q", out.String(), tt.wantOut)
			}
			if !strings.HasPrefix(errOut.String(), tt.wantErr) {
				t.Fatalf("stderr = %q, want prefix %q", errOut.String(), tt.wantErr)
			}
		})
	}

	other := errors.New("boom")
	if err := renderOutcome(&bytes.Buffer{}, &bytes.Buffer{}, vm.Outcome{}, other); !errors.Is(err, other) {
		t.Fatalf("unknown run errors must be returned, got %v", err)
	}
}

func TestPrintStorage(t *testing.T) {
	var out bytes.Buffer
	storage := map[bignum.Word]bignum.Word{
		bignum.FromUint64(2): bignum.FromUint64(7),
		bignum.FromUint64(1): bignum.FromUint64(5050),
	}
	if err := printStorage(&out, storage); err != nil {
		t.Fatalf("printStorage: %v", err)
	}
	want := "storage[0x1] = 5050\nstorage[0x2] = 7\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestInitProjectRuns(t *testing.T) {
	wd := t.TempDir()
	target := filepath.Join(wd, "demo")
	var out bytes.Buffer
	if err := initProject(&out, wd, target); err != nil {
		t.Fatalf("initProject: %v", err)
	}
	if !strings.Contains(out.String(), "Initialized yulc project in demo") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if err := initProject(&out, wd, target); err == nil {
		t.Fatalf("second init must refuse to overwrite the manifest")
	}

	m, ok, err := project.Load(target)
	if err != nil || !ok {
		t.Fatalf("manifest not loadable: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "demo" || m.Config.Run.Entry != "main" {
		t.Fatalf("unexpected manifest: %+v", m.Config)
	}

	res, err := driver.Compile(context.Background(), source.NewFileSet(), m.MainFile(), driver.Options{
		Backend:     mir.Factory,
		BackendName: project.BackendMIR,
	})
	if err != nil {
		t.Fatalf("compile %s: %v", m.MainFile(), err)
	}
	unit, ok := driver.FindUnit(res.Units, "")
	if !ok {
		t.Fatalf("no units")
	}
	outcome, _, err := driver.RunUnit(context.Background(), unit, m.Config.Run.Entry, vm.Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(outcome.Values) != 1 || outcome.Values[0] != bignum.FromUint64(55) {
		t.Fatalf("main() = %v, want [55]", outcome.Values)
	}
}

func TestReportDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.yul", []byte("{ x := 1 }\n"))
	span := source.Span{File: id, Start: 2, End: 3}
	de := diag.NewError(diag.BldUnresolvedIdent, span, "undeclared identifier x")

	var buf bytes.Buffer
	err := reportDiagnostics(&buf, diag.NewBag(10), fs, de, cliOptions{}.pretty())
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(buf.String(), "bad.yul:1:3") {
		t.Fatalf("diagnostic not rendered:\n%s", buf.String())
	}

	plain := errors.New("failed to load")
	if err := reportDiagnostics(&bytes.Buffer{}, nil, fs, plain, cliOptions{}.pretty()); !errors.Is(err, plain) {
		t.Fatalf("plain errors pass through, got %v", err)
	}
	if err := reportDiagnostics(&bytes.Buffer{}, nil, fs, nil, cliOptions{}.pretty()); err != nil {
		t.Fatalf("nil error: %v", err)
	}
}

func TestPrintStageTimings(t *testing.T) {
	var tm buildpipeline.Timings
	tm.Add(buildpipeline.StageLex, 2*time.Millisecond)
	tm.Add(buildpipeline.StageParse, 3*time.Millisecond)
	tm.Add(buildpipeline.StageCodegen, 4*time.Millisecond)
	tm.Add(buildpipeline.StageWrite, time.Millisecond)

	var buf bytes.Buffer
	if err := printStageTimings(&buf, tm, true); err != nil {
		t.Fatalf("printStageTimings: %v", err)
	}
	want := "analysed 5.0 ms\ngenerated 4.0 ms\nwritten 1.0 ms\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestFormatPathForOutput(t *testing.T) {
	root := filepath.Join("/", "proj")
	tests := []struct{ path, want string }{
		{filepath.Join(root, "build", "main.ll"), "build/main.ll"},
		{filepath.Join("/", "elsewhere", "x.ll"), filepath.Join("/", "elsewhere", "x.ll")},
		{"", ""},
	}
	for _, tt := range tests {
		if got := formatPathForOutput(root, tt.path); got != tt.want {
			t.Errorf("formatPathForOutput(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
