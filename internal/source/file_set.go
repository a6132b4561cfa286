package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every source unit loaded during one compiler invocation.
type FileSet struct {
	files []File
	index map[string]FileID // path -> latest id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0, 4),
		index: make(map[string]FileID),
	}
}

// Add stores normalized content and returns a fresh FileID.
// Adding the same path twice produces a new version; GetLatest returns the newest one.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	id := FileID(n)
	p := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    p,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[indexKey(p)] = id
	return id
}

// Load reads a file from disk, strips a UTF-8 BOM, folds CRLF and calls Add.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory unit.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file for id. It panics on an unknown id.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// Len reports the number of stored file versions.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// GetLatest returns the newest id registered for path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.index[indexKey(path)]
	return id, ok
}

// Resolve converts a span into line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fs.files[span.File]
	return f.LineCol(span.Start), f.LineCol(span.End)
}

// LineCol maps a byte offset of f to a 1-based line/column pair.
func (f *File) LineCol(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Line returns the text of the 1-based line n without its trailing newline.
func (f *File) Line(n uint32) string {
	if n == 0 {
		return ""
	}
	total, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	lines, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index overflow: %w", err))
	}
	var start uint32
	if n > 1 {
		if n-2 >= lines {
			return ""
		}
		start = f.LineIdx[n-2] + 1
	}
	end := total
	if n-1 < lines {
		end = f.LineIdx[n-1]
	}
	if start > end || start > total {
		return ""
	}
	return string(f.Content[start:end])
}
