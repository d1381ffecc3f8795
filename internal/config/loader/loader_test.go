package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestForFile(t *testing.T) {
	memfs := NewMemFS()
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"/a/config.toml", "*loader.TOMLLoader", false},
		{"/a/config.TOML", "*loader.TOMLLoader", false},
		{"/a/config.yaml", "*loader.YAMLLoader", false},
		{"/a/config.yml", "*loader.YAMLLoader", false},
		{"/a/config.json", "", true},
		{"/a/config", "", true},
	}

	for _, tt := range tests {
		l, err := ForFile(memfs, tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if err == nil {
			if got := reflect.TypeOf(l).String(); got != tt.want {
				t.Errorf("ForFile(%q) = %s, want %s", tt.path, got, tt.want)
			}
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"mark": map[string]any{"lineWidth": int64(3), "color": "#ff0000"},
		"log":  map[string]any{"level": "info"},
	}
	src := map[string]any{
		"mark":     map[string]any{"lineWidth": int64(5)},
		"freedraw": map[string]any{"shift": true},
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"mark":     map[string]any{"lineWidth": int64(5), "color": "#ff0000"},
		"log":      map[string]any{"level": "info"},
		"freedraw": map[string]any{"shift": true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge() = %v, want %v", got, want)
	}
}

func TestDeepMergeNilDst(t *testing.T) {
	got := DeepMerge(nil, map[string]any{"a": 1})
	if got["a"] != 1 {
		t.Errorf("DeepMerge(nil, ...) = %v", got)
	}
}

func TestGetSet(t *testing.T) {
	data := make(map[string]any)
	Set(data, "shortcuts.clearAll", "Shift+Meta+F11")
	Set(data, "shortcuts.clearLast", "Shift+Meta+F12")
	Set(data, "top", 1)

	if v, ok := Get(data, "shortcuts.clearAll"); !ok || v != "Shift+Meta+F11" {
		t.Errorf("Get(shortcuts.clearAll) = %v, %v", v, ok)
	}
	if v, ok := Get(data, "top"); !ok || v != 1 {
		t.Errorf("Get(top) = %v, %v", v, ok)
	}
	if _, ok := Get(data, "shortcuts.missing"); ok {
		t.Error("Get(shortcuts.missing) should not be found")
	}
	if _, ok := Get(data, "top.child"); ok {
		t.Error("Get(top.child) should not descend into a scalar")
	}
}

func TestParseErrorFormat(t *testing.T) {
	inner := errors.New("boom")
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Line: 2, Column: 5, Message: "bad"}, "parse error in a.toml at line 2, column 5: bad"},
		{&ParseError{Path: "a.toml", Line: 2, Message: "bad"}, "parse error in a.toml at line 2: bad"},
		{&ParseError{Path: "a.toml", Message: "bad", Err: inner}, "parse error in a.toml: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
	if !errors.Is(tests[2].err, inner) {
		t.Error("ParseError should unwrap to its cause")
	}
}
