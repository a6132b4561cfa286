package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"yulc/internal/bignum"
	"yulc/internal/codegen"
	"yulc/internal/driver"
	"yulc/internal/mir"
	"yulc/internal/project"
	"yulc/internal/source"
	"yulc/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.yul] [-- args...]",
	Short: "Compile a yul unit to MIR and execute it",
	Long: `Compile a yul unit with the MIR backend and execute one of its functions in
the bundled interpreter. Arguments after -- are passed as words (decimal or
0x-hex). Without a file, [run].main of yulc.toml is used.`,
	RunE: runExecution,
}

func init() {
	runCmd.Flags().String("entry", "", "function to execute (default [run].entry, then the unit body)")
	runCmd.Flags().String("unit", "", "object to execute (default the outermost unit)")
	runCmd.Flags().String("calldata", "", "hex calldata visible to calldataload/calldatacopy")
	runCmd.Flags().Uint64("max-steps", 0, "instruction budget, 0 = interpreter default")
	runCmd.Flags().Bool("vm-trace", false, "print every executed instruction to stderr")
	runCmd.Flags().Bool("storage", false, "print storage after execution")
	runCmd.Flags().Bool("emit-mir", false, "print the unit's MIR before running it")
}

func runExecution(cmd *cobra.Command, args []string) error {
	cli, err := readCLIOptions(cmd)
	if err != nil {
		return err
	}
	entryFlag, err := cmd.Flags().GetString("entry")
	if err != nil {
		return fmt.Errorf("failed to get entry flag: %w", err)
	}
	unitName, err := cmd.Flags().GetString("unit")
	if err != nil {
		return fmt.Errorf("failed to get unit flag: %w", err)
	}
	calldataHex, err := cmd.Flags().GetString("calldata")
	if err != nil {
		return fmt.Errorf("failed to get calldata flag: %w", err)
	}
	maxSteps, err := cmd.Flags().GetUint64("max-steps")
	if err != nil {
		return fmt.Errorf("failed to get max-steps flag: %w", err)
	}
	vmTrace, err := cmd.Flags().GetBool("vm-trace")
	if err != nil {
		return fmt.Errorf("failed to get vm-trace flag: %w", err)
	}
	showStorage, err := cmd.Flags().GetBool("storage")
	if err != nil {
		return fmt.Errorf("failed to get storage flag: %w", err)
	}
	emitMIR, err := cmd.Flags().GetBool("emit-mir")
	if err != nil {
		return fmt.Errorf("failed to get emit-mir flag: %w", err)
	}

	before, after := splitArgsAtDash(cmd, args)
	if len(before) > 1 {
		return fmt.Errorf("run: expected at most one source file, got %d", len(before))
	}
	path, entry, err := resolveRunTarget(before)
	if err != nil {
		return err
	}
	if entryFlag != "" {
		entry = entryFlag
	}
	words, err := parseWordArgs(after)
	if err != nil {
		return err
	}
	calldata, err := decodeHex(calldataHex)
	if err != nil {
		return fmt.Errorf("invalid --calldata: %w", err)
	}

	// Compile source to MIR
	res, err := driver.Compile(cmd.Context(), source.NewFileSet(), path, driver.Options{
		Backend:        mir.Factory,
		BackendName:    project.BackendMIR,
		MaxDiagnostics: cli.maxDiagnostics,
	})
	if err != nil {
		return reportResult(os.Stderr, res, err, cli.pretty())
	}
	unit, ok := driver.FindUnit(res.Units, unitName)
	if !ok {
		return fmt.Errorf("run: no unit %q (have %s)", unitName, strings.Join(unitNames(res.Units), ", "))
	}
	mb, ok := unit.Builder.(*mir.Builder)
	if !ok {
		return fmt.Errorf("run: unit %s was not built with the mir backend", unit.Name)
	}
	mod := mb.Module()
	if fn := mod.Lookup(entry); (fn == nil || !fn.Defined) && entryFlag == "" {
		entry = codegen.EntryFunc
	}

	out := cmd.OutOrStdout()
	if emitMIR {
		if err := mir.DumpModule(out, mod); err != nil {
			return err
		}
	}

	opts := vm.Options{MaxSteps: maxSteps, Env: vm.Env{Calldata: calldata}}
	if vmTrace {
		opts.Step = func(fn *mir.Func, bb *mir.Block, ins *mir.Instr) {
			fmt.Fprintf(os.Stderr, "%s/%s: %s\n", fn.Name, bb.Label, mod.FormatInstr(ins))
		}
	}
	start := time.Now()
	outcome, machine, runErr := driver.RunUnit(cmd.Context(), unit, entry, opts, words...)
	elapsed := time.Since(start)

	if err := renderOutcome(out, os.Stderr, outcome, runErr); err != nil {
		return err
	}
	if showStorage && machine != nil {
		if err := printStorage(out, machine.Storage); err != nil {
			return err
		}
	}
	if cli.timings {
		if err := printPhaseReport(os.Stderr, res.Timing); err != nil {
			return err
		}
		steps := uint64(0)
		if machine != nil {
			steps = machine.Steps
		}
		fmt.Fprintf(os.Stderr, "ran %.1f ms (%d steps)\n", toMillis(elapsed), steps)
	}
	if runErr != nil {
		return errReported
	}
	return nil
}

// resolveRunTarget picks the unit file and default entry from the argument
// or the enclosing project.
func resolveRunTarget(args []string) (path, entry string, err error) {
	manifest, found, err := project.Load(".")
	if err != nil {
		return "", "", err
	}
	entry = codegen.EntryFunc
	if found && manifest.Config.Run.Entry != "" {
		entry = manifest.Config.Run.Entry
	}
	if len(args) == 1 {
		return args[0], entry, nil
	}
	if !found {
		return "", "", errors.New(noManifestMessage)
	}
	if manifest.Config.Run.Main == "" {
		return "", "", fmt.Errorf("%s: [run].main is not set", manifest.Path)
	}
	return manifest.MainFile(), entry, nil
}

// splitArgsAtDash separates positional arguments from those after "--".
func splitArgsAtDash(cmd *cobra.Command, args []string) (before, after []string) {
	at := cmd.ArgsLenAtDash()
	if at < 0 {
		return args, nil
	}
	return args[:at], args[at:]
}

func parseWordArgs(args []string) ([]bignum.Word, error) {
	words := make([]bignum.Word, 0, len(args))
	for _, a := range args {
		w, err := bignum.ParseLiteral(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("invalid argument %q: %w", a, err)
		}
		words = append(words, w)
	}
	return words, nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func unitNames(units []codegen.Unit) []string {
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Name
	}
	return names
}

// renderOutcome prints returned values or halt data to out, reverts and
// faults to errOut. A failed run still returns nil so callers can print
// storage; they check the run error themselves.
func renderOutcome(out, errOut io.Writer, outcome vm.Outcome, runErr error) error {
	var revert *vm.Revert
	var fault *vm.Fault
	switch {
	case errors.As(runErr, &revert):
		if revert.IsPanic {
			_, err := fmt.Fprintf(errOut, "reverted: Panic(0x%02x) %s\n", uint8(revert.Panic), revert.Panic)
			return err
		}
		_, err := fmt.Fprintf(errOut, "reverted with %d bytes: 0x%x\n", len(revert.Data), revert.Data)
		return err
	case errors.As(runErr, &fault):
		_, err := fmt.Fprintf(errOut, "%v\n", fault)
		return err
	case runErr != nil:
		return runErr
	}
	if outcome.Halted {
		_, err := fmt.Fprintf(out, "halted with %d bytes: 0x%x\n", len(outcome.Data), outcome.Data)
		return err
	}
	for i, v := range outcome.Values {
		if _, err := fmt.Fprintf(out, "r%d = %s (%s)\n", i, v, v.Hex()); err != nil {
			return err
		}
	}
	return nil
}

func printStorage(out io.Writer, storage map[bignum.Word]bignum.Word) error {
	keys := make([]bignum.Word, 0, len(storage))
	for k := range storage {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b bignum.Word) int { return a.Cmp(b) })
	for _, k := range keys {
		if _, err := fmt.Fprintf(out, "storage[%s] = %s\n", k.Hex(), storage[k]); err != nil {
			return err
		}
	}
	return nil
}
