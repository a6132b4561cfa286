package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// languageSeeds cover every statement form, both literal kinds, objects and
// typed names.
var languageSeeds = []string{
	"{}",
	"{ let x := 1 }",
	"{ let a, b := f() function f() -> x, y { x := 1 y := 2 } }",
	"{ function sum(n) -> r { for { let i := 0 } lt(i, n) { i := add(i, 1) } { r := add(r, i) } } sstore(0, sum(100)) }",
	"{ switch calldataload(0) case 0 { sstore(0, 1) } case 0x01 { sstore(0, 2) } default { revert(0, 0) } }",
	"{ let s := \"abc\\x41\\n\" let h := hex\"0a0b\" let t := true let u := 255:u8 }",
	"{ if iszero(0) { leave } for { } 1 { } { break continue } }",
	"{ let p := allocate_memory(64) mstore(p, checked_add_t_uint8(200, 55)) }",
	"object \"Token\" { code { datacopy(0, dataoffset(\"Runtime\"), datasize(\"Runtime\")) return(0, datasize(\"Runtime\")) } object \"Runtime\" { code { stop() } } data \"meta\" \"v1\" }",
	"{ /* block */ let x := 1 // line\n }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.yul файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".yul" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		return append([]byte(nil), src[:maxSeedBytes]...)
	}
	return src
}
