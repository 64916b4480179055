package fs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ospl-go/internal/ospl"
)

func newTestLibrary(t *testing.T, ignore ...string) *LibraryFilesystem {
	t.Helper()
	l, err := CreateLibraryTree(filepath.Join(t.TempDir(), "test.ospl"), ignore)
	if err != nil {
		t.Fatalf("CreateLibraryTree() error = %v", err)
	}
	return l
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readRel(t *testing.T, l *LibraryFilesystem, rel string) string {
	t.Helper()
	r, err := l.Open(rel)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", rel, err)
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading %q: %v", rel, err)
	}
	return string(b)
}

func TestCreateLibraryTree(t *testing.T) {
	t.Run("creates root and subdirectories", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "nested", "main.ospl")

		l, err := CreateLibraryTree(root, nil)
		if err != nil {
			t.Fatalf("CreateLibraryTree() error = %v", err)
		}
		for _, dir := range []string{ospl.PicturesDir, ospl.ThumbnailsDir, ospl.CollectionsDir} {
			if ok, err := l.Exists(dir); err != nil || !ok {
				t.Errorf("Exists(%q) = %v, %v, want true", dir, ok, err)
			}
		}
	})

	t.Run("fails if root exists", func(t *testing.T) {
		root := t.TempDir()

		_, err := CreateLibraryTree(root, nil)
		if !errors.Is(err, fs.ErrExist) {
			t.Errorf("CreateLibraryTree() error = %v, want %v", err, fs.ErrExist)
		}
		if _, err := os.Stat(root); err != nil {
			t.Errorf("existing root was removed: %v", err)
		}
	})

	t.Run("subdirectory failure removes the new root", func(t *testing.T) {
		saved := librarySubdirs
		librarySubdirs = append(append([]string{}, saved...), filepath.Join("missing", "parent"))
		t.Cleanup(func() { librarySubdirs = saved })
		root := filepath.Join(t.TempDir(), "main.ospl")

		if _, err := CreateLibraryTree(root, nil); err == nil {
			t.Fatal("CreateLibraryTree() error = nil, want error")
		}
		if _, err := os.Stat(root); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(root) error = %v, want %v", err, fs.ErrNotExist)
		}
	})
}

func TestNewLibraryFilesystem(t *testing.T) {
	t.Run("opens created library", func(t *testing.T) {
		l := newTestLibrary(t)

		if _, err := NewLibraryFilesystem(l.Root(), nil); err != nil {
			t.Errorf("NewLibraryFilesystem() error = %v", err)
		}
	})

	t.Run("rejects plain directory", func(t *testing.T) {
		if _, err := NewLibraryFilesystem(t.TempDir(), nil); err == nil {
			t.Error("NewLibraryFilesystem() error = nil, want error")
		}
	})
}

func TestLibraryFilesystem_Rename(t *testing.T) {
	t.Run("moves directory", func(t *testing.T) {
		l := newTestLibrary(t)
		if err := l.Mkdir("collections/a"); err != nil {
			t.Fatalf("Mkdir() error = %v", err)
		}

		if err := l.Rename("collections/a", "collections/b"); err != nil {
			t.Fatalf("Rename() error = %v", err)
		}
		if ok, _ := l.Exists("collections/b"); !ok {
			t.Error("collections/b missing after rename")
		}
		if ok, _ := l.Exists("collections/a"); ok {
			t.Error("collections/a still present after rename")
		}
	})

	t.Run("same path is a no-op", func(t *testing.T) {
		l := newTestLibrary(t)
		if err := l.Mkdir("collections/a"); err != nil {
			t.Fatalf("Mkdir() error = %v", err)
		}

		if err := l.Rename("collections/a", "collections/a"); err != nil {
			t.Errorf("Rename() error = %v", err)
		}
	})

	t.Run("never replaces an empty directory", func(t *testing.T) {
		l := newTestLibrary(t)
		for _, d := range []string{"collections/a", "collections/b"} {
			if err := l.Mkdir(d); err != nil {
				t.Fatalf("Mkdir(%q) error = %v", d, err)
			}
		}

		err := l.Rename("collections/a", "collections/b")
		if !errors.Is(err, fs.ErrExist) {
			t.Errorf("Rename() error = %v, want %v", err, fs.ErrExist)
		}
	})
}

func TestLibraryFilesystem_CopyInAndLink(t *testing.T) {
	l := newTestLibrary(t)
	src := filepath.Join(t.TempDir(), "cat.png")
	writeTestFile(t, src, "meow")

	if err := l.CopyIn(src, "pictures/cat.png"); err != nil {
		t.Fatalf("CopyIn() error = %v", err)
	}
	if got := readRel(t, l, "pictures/cat.png"); got != "meow" {
		t.Errorf("copied content = %q, want %q", got, "meow")
	}

	if err := l.CopyIn(src, "pictures/cat.png"); !errors.Is(err, fs.ErrExist) {
		t.Errorf("second CopyIn() error = %v, want %v", err, fs.ErrExist)
	}

	if err := l.Mkdir("collections/c"); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	if err := l.Link("pictures/cat.png", "collections/c/cat.png"); err != nil {
		t.Fatalf("Link() error = %v", err)
	}

	a, err := os.Stat(l.Abs("pictures/cat.png"))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	b, err := os.Stat(l.Abs("collections/c/cat.png"))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !os.SameFile(a, b) {
		t.Error("album entry is not a hard link to the picture")
	}

	entries, err := os.ReadDir(l.Abs("pictures"))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("pictures/ has %d entries, want 1 (temp file left behind?)", len(entries))
	}
}

func TestLibraryFilesystem_WriteFile(t *testing.T) {
	l := newTestLibrary(t)

	err := l.WriteFile("thumbnails/x.png", func(w io.Writer) error {
		_, err := io.WriteString(w, "thumb")
		return err
	})
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if got := readRel(t, l, "thumbnails/x.png"); got != "thumb" {
		t.Errorf("content = %q, want %q", got, "thumb")
	}

	t.Run("failed write leaves nothing behind", func(t *testing.T) {
		err := l.WriteFile("thumbnails/y.png", func(w io.Writer) error {
			return errors.New("boom")
		})
		if err == nil {
			t.Fatal("WriteFile() error = nil, want error")
		}
		entries, err := os.ReadDir(l.Abs("thumbnails"))
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("thumbnails/ has %d entries, want 1", len(entries))
		}
	})
}

func TestLibraryFilesystem_RemoveAndExists(t *testing.T) {
	l := newTestLibrary(t)

	if err := l.RemoveAll("collections/missing"); err != nil {
		t.Errorf("RemoveAll() on missing path error = %v", err)
	}
	if err := l.Remove("pictures/missing.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Remove() error = %v, want %v", err, fs.ErrNotExist)
	}
	ok, err := l.Exists("pictures/missing.png")
	if err != nil || ok {
		t.Errorf("Exists() = %v, %v, want false, nil", ok, err)
	}
}

func TestLibraryFilesystem_ResolveSource(t *testing.T) {
	l := newTestLibrary(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "a.png")
	writeTestFile(t, file, "x")

	tests := []struct {
		name   string
		source string
		want   error
	}{
		{name: "regular file", source: file},
		{name: "missing file", source: filepath.Join(dir, "absent.png"), want: fs.ErrNotExist},
		{name: "directory", source: dir, want: ospl.ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.ResolveSource(tt.source)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("ResolveSource() error = %v", err)
				}
				if got != tt.source {
					t.Errorf("ResolveSource() = %q, want %q", got, tt.source)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("ResolveSource() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLibraryFilesystem_SourceFiles(t *testing.T) {
	l := newTestLibrary(t, "*.xmp")
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "a.xmp", ".DS_Store"} {
		writeTestFile(t, filepath.Join(dir, name), "x")
	}
	writeTestFile(t, filepath.Join(dir, IgnoreFilename), ".DS_Store\n")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	got, err := l.SourceFiles(dir)
	if err != nil {
		t.Fatalf("SourceFiles() error = %v", err)
	}

	var names []string
	for _, p := range got {
		names = append(names, filepath.Base(p))
	}
	if strings.Join(names, ",") != "a.jpg,b.png" {
		t.Errorf("SourceFiles() = %v, want [a.jpg b.png]", names)
	}
}
