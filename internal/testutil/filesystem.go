package testutil

import (
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"ospl-go/internal/fs"
	"ospl-go/internal/ospl"
)

// NewTestFilesystem creates an empty library tree in a temp directory.
func NewTestFilesystem(t *testing.T, ignore ...string) *fs.LibraryFilesystem {
	t.Helper()

	lfs, err := fs.CreateLibraryTree(filepath.Join(t.TempDir(), "test.ospl"), ignore)
	if err != nil {
		t.Fatalf("failed to create library tree: %v", err)
	}
	return lfs
}

// FaultyFilesystem wraps a Filesystem and fails chosen methods on demand.
// Methods without a fault are passed through.
type FaultyFilesystem struct {
	ospl.Filesystem

	mu     sync.Mutex
	faults map[string]fault
	calls  map[string]int
}

type fault struct {
	prefix string
	err    error
}

var _ ospl.Filesystem = (*FaultyFilesystem)(nil)

func NewFaultyFilesystem(inner ospl.Filesystem) *FaultyFilesystem {
	return &FaultyFilesystem{
		Filesystem: inner,
		faults:     make(map[string]fault),
		calls:      make(map[string]int),
	}
}

// FailOn makes every later call of method return err.
func (f *FaultyFilesystem) FailOn(method string, err error) {
	f.FailOnPrefix(method, "", err)
}

// FailOnPrefix makes later calls of method return err when the library path
// they act on starts with prefix. Calls on other paths pass through.
func (f *FaultyFilesystem) FailOnPrefix(method, prefix string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[method] = fault{prefix: prefix, err: err}
}

// Heal removes every fault.
func (f *FaultyFilesystem) Heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = make(map[string]fault)
}

// Calls returns how often method was invoked, failed calls included.
func (f *FaultyFilesystem) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *FaultyFilesystem) fault(method, rel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	ft, ok := f.faults[method]
	if !ok || !strings.HasPrefix(rel, ft.prefix) {
		return nil
	}
	return ft.err
}

func (f *FaultyFilesystem) Mkdir(rel string) error {
	if err := f.fault("Mkdir", rel); err != nil {
		return err
	}
	return f.Filesystem.Mkdir(rel)
}

func (f *FaultyFilesystem) Rename(oldRel, newRel string) error {
	if err := f.fault("Rename", oldRel); err != nil {
		return err
	}
	return f.Filesystem.Rename(oldRel, newRel)
}

func (f *FaultyFilesystem) Remove(rel string) error {
	if err := f.fault("Remove", rel); err != nil {
		return err
	}
	return f.Filesystem.Remove(rel)
}

func (f *FaultyFilesystem) RemoveAll(rel string) error {
	if err := f.fault("RemoveAll", rel); err != nil {
		return err
	}
	return f.Filesystem.RemoveAll(rel)
}

func (f *FaultyFilesystem) Link(targetRel, linkRel string) error {
	if err := f.fault("Link", linkRel); err != nil {
		return err
	}
	return f.Filesystem.Link(targetRel, linkRel)
}

func (f *FaultyFilesystem) WriteFile(rel string, write func(w io.Writer) error) error {
	if err := f.fault("WriteFile", rel); err != nil {
		return err
	}
	return f.Filesystem.WriteFile(rel, write)
}

func (f *FaultyFilesystem) CopyIn(source, rel string) error {
	if err := f.fault("CopyIn", rel); err != nil {
		return err
	}
	return f.Filesystem.CopyIn(source, rel)
}
