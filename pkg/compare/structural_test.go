package compare

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdejongh/tablediff/pkg/diff"
	"github.com/sdejongh/tablediff/pkg/models"
	"github.com/sdejongh/tablediff/pkg/storage"
)

// TestHelper provides utilities for comparator tests
type TestHelper struct {
	t         *testing.T
	localDir  string
	remoteDir string
	local     *storage.Local
	remote    *storage.Local
}

// NewTestHelper creates a new test helper with temporary directories
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	tempDir := t.TempDir()
	localDir := filepath.Join(tempDir, "local")
	remoteDir := filepath.Join(tempDir, "remote")

	for _, dir := range []string{localDir, remoteDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
	}

	local, err := storage.NewLocal(localDir)
	if err != nil {
		t.Fatalf("failed to create local backend: %v", err)
	}
	remote, err := storage.NewLocal(remoteDir)
	if err != nil {
		t.Fatalf("failed to create remote backend: %v", err)
	}

	return &TestHelper{t: t, localDir: localDir, remoteDir: remoteDir, local: local, remote: remote}
}

// CreateLocalFile creates a table in the local directory
func (h *TestHelper) CreateLocalFile(name, content string) {
	h.t.Helper()
	if err := os.WriteFile(filepath.Join(h.localDir, name), []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to create local file: %v", err)
	}
}

// CreateRemoteFile creates a table in the remote directory
func (h *TestHelper) CreateRemoteFile(name, content string) {
	h.t.Helper()
	if err := os.WriteFile(filepath.Join(h.remoteDir, name), []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to create remote file: %v", err)
	}
}

func TestStructuralComparator(t *testing.T) {
	ctx := context.Background()
	comp := NewStructuralComparator(diff.DefaultOptions())

	if comp.Name() != "structural" {
		t.Errorf("Name() = %s, want structural", comp.Name())
	}

	tests := []struct {
		name    string
		local   string
		remote  string
		result  Result
		changed string
	}{
		{"Identical", "a: 1\nb: [x, y]\n", "a: 1\nb: [x, y]\n", Same, ""},
		{"ReorderedKeysAndItems", "a: 1\nb: [x, y]\n", "b: [y, x]\na: 1\n", Same, ""},
		{"SplitAcrossDocuments", "a: 1\nb: 2\n", "a: 1\n---\nb: 2\n", Same, ""},
		{"ValueChanged", "a: 1\n", "a: 2\n", Different, "root['a']"},
		{"BothEmpty", "", "", Same, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHelper(t)
			h.CreateLocalFile("t.yaml", tt.local)
			h.CreateRemoteFile("t.yaml", tt.remote)

			cmp, err := comp.Compare(ctx, h.local, h.remote, "t.yaml")
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if cmp.Result != tt.result {
				t.Errorf("Result = %s, want %s (diff %+v)", cmp.Result, tt.result, cmp.Diff)
			}
			if tt.changed != "" {
				if _, ok := cmp.Diff.ValuesChanged[tt.changed]; !ok {
					t.Errorf("ValuesChanged = %v, want %s", cmp.Diff.ValuesChanged, tt.changed)
				}
			}
			if cmp.LocalPath != filepath.Join(h.localDir, "t.yaml") {
				t.Errorf("LocalPath = %s", cmp.LocalPath)
			}
		})
	}
}

func TestStructuralComparatorErrors(t *testing.T) {
	ctx := context.Background()
	comp := NewStructuralComparator(diff.DefaultOptions())

	t.Run("ParseErrorRemote", func(t *testing.T) {
		h := NewTestHelper(t)
		h.CreateLocalFile("t.yaml", "a: 1\n")
		h.CreateRemoteFile("t.yaml", "a: [1\n")

		_, err := comp.Compare(ctx, h.local, h.remote, "t.yaml")
		var parseErr *models.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Compare() error = %v, want *models.ParseError", err)
		}
		if parseErr.Path != filepath.Join(h.remoteDir, "t.yaml") {
			t.Errorf("ParseError.Path = %s, want remote path", parseErr.Path)
		}
	})

	t.Run("UnreadableEntry", func(t *testing.T) {
		h := NewTestHelper(t)
		// A directory of the same name on both sides cannot be parsed
		if err := os.Mkdir(filepath.Join(h.localDir, "sub"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.Mkdir(filepath.Join(h.remoteDir, "sub"), 0755); err != nil {
			t.Fatal(err)
		}

		_, err := comp.Compare(ctx, h.local, h.remote, "sub")
		var ioErr *models.IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("Compare() error = %v, want *models.IOError", err)
		}
		if !errors.Is(err, errIsDirectory) {
			t.Errorf("error = %v, want errIsDirectory", err)
		}
	})

	t.Run("VanishedEntry", func(t *testing.T) {
		h := NewTestHelper(t)
		h.CreateLocalFile("gone.yaml", "a: 1\n")

		_, err := comp.Compare(ctx, h.local, h.remote, "gone.yaml")
		var ioErr *models.IOError
		if !errors.As(err, &ioErr) {
			t.Errorf("Compare() error = %v, want *models.IOError", err)
		}
	})
}
