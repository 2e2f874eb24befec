package compare

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdejongh/cmpgroups/pkg/storage"
)

// TestHelper provides utilities for comparator tests
type TestHelper struct {
	t       *testing.T
	tempDir string
	backend *storage.Local
}

// NewTestHelper creates a new test helper with a temporary directory
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "cmpgroups-compare-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	backend, err := storage.NewLocal(tempDir)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}

	return &TestHelper{
		t:       t,
		tempDir: tempDir,
		backend: backend,
	}
}

// Cleanup removes all temporary files
func (h *TestHelper) Cleanup() {
	os.RemoveAll(h.tempDir)
}

// CreateFile creates a file in the temporary directory and returns its path
func (h *TestHelper) CreateFile(name string, content []byte) string {
	h.t.Helper()
	path := filepath.Join(h.tempDir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		h.t.Fatalf("failed to create file: %v", err)
	}
	return path
}

// CreateScript writes an executable shell script standing in for a
// comparator and returns its path
func (h *TestHelper) CreateScript(name, body string) string {
	h.t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		h.t.Skip("sh not available")
	}
	path := filepath.Join(h.tempDir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		h.t.Fatalf("failed to create script: %v", err)
	}
	return path
}

// TestResultConstants verifies that Result constants are properly defined
func TestResultConstants(t *testing.T) {
	tests := []struct {
		result   Result
		expected string
	}{
		{Same, "same"},
		{Different, "different"},
	}

	for _, tt := range tests {
		t.Run(string(tt.result), func(t *testing.T) {
			if string(tt.result) != tt.expected {
				t.Errorf("Result constant %s has wrong value: got %s, want %s", tt.result, string(tt.result), tt.expected)
			}
		})
	}
}

// TestComparisonError verifies the error message and unwrapping
func TestComparisonError(t *testing.T) {
	t.Run("ExitCode", func(t *testing.T) {
		err := &ComparisonError{Command: "diff", FileA: "a", FileB: "b", ExitCode: 2, Stderr: "diff: b: No such file"}
		want := "comparator diff failed on a and b: exit status 2: diff: b: No such file"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("Wrapped", func(t *testing.T) {
		inner := errors.New("executable file not found")
		err := &ComparisonError{Command: "nodiff", FileA: "a", FileB: "b", ExitCode: -1, Err: inner}
		if !errors.Is(err, inner) {
			t.Error("errors.Is should find the wrapped error")
		}
		if !strings.Contains(err.Error(), "executable file not found") {
			t.Errorf("Error() = %q, want wrapped message", err.Error())
		}
	})
}

// TestExternalComparator tests the subprocess comparator
func TestExternalComparator(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	ctx := context.Background()
	a := h.CreateFile("a.txt", []byte("a"))
	b := h.CreateFile("b.txt", []byte("b"))

	t.Run("Name", func(t *testing.T) {
		c := NewExternalComparator("diff", nil)
		if c.Name() != "external:diff" {
			t.Errorf("Name() = %s, want external:diff", c.Name())
		}
	})

	t.Run("ExitZeroIsSame", func(t *testing.T) {
		c := NewExternalComparator(h.CreateScript("same.sh", "exit 0"), nil)
		result, err := c.Compare(ctx, a, b)
		if err != nil {
			t.Fatalf("Compare() error = %v", err)
		}
		if result.Result != Same {
			t.Errorf("Result = %s, want %s", result.Result, Same)
		}
	})

	t.Run("ExitOneIsDifferent", func(t *testing.T) {
		c := NewExternalComparator(h.CreateScript("different.sh", "echo noise; exit 1"), nil)
		result, err := c.Compare(ctx, a, b)
		if err != nil {
			t.Fatalf("Compare() error = %v", err)
		}
		if result.Result != Different {
			t.Errorf("Result = %s, want %s", result.Result, Different)
		}
	})

	t.Run("OtherExitIsError", func(t *testing.T) {
		c := NewExternalComparator(h.CreateScript("broken.sh", "echo trouble >&2; exit 2"), nil)
		_, err := c.Compare(ctx, a, b)

		var compErr *ComparisonError
		if !errors.As(err, &compErr) {
			t.Fatalf("Compare() error = %v, want *ComparisonError", err)
		}
		if compErr.ExitCode != 2 {
			t.Errorf("ExitCode = %d, want 2", compErr.ExitCode)
		}
		if compErr.Stderr != "trouble" {
			t.Errorf("Stderr = %q, want %q", compErr.Stderr, "trouble")
		}
	})

	t.Run("MissingCommand", func(t *testing.T) {
		c := NewExternalComparator(filepath.Join(h.tempDir, "does-not-exist"), nil)
		_, err := c.Compare(ctx, a, b)

		var compErr *ComparisonError
		if !errors.As(err, &compErr) {
			t.Fatalf("Compare() error = %v, want *ComparisonError", err)
		}
		if compErr.ExitCode != -1 {
			t.Errorf("ExitCode = %d, want -1", compErr.ExitCode)
		}
	})

	t.Run("OptionsPrecedeFiles", func(t *testing.T) {
		argsFile := filepath.Join(h.tempDir, "args")
		script := h.CreateScript("record.sh", `echo "$@" > "`+argsFile+`"; exit 0`)
		c := NewExternalComparator(script, []string{"-u", "-w"})

		if _, err := c.Compare(ctx, a, b); err != nil {
			t.Fatalf("Compare() error = %v", err)
		}
		got, err := os.ReadFile(argsFile)
		if err != nil {
			t.Fatalf("failed to read args: %v", err)
		}
		want := "-u -w " + a + " " + b
		if strings.TrimSpace(string(got)) != want {
			t.Errorf("args = %q, want %q", strings.TrimSpace(string(got)), want)
		}
	})

	t.Run("DiffCapturesOutput", func(t *testing.T) {
		c := NewExternalComparator(h.CreateScript("diffout.sh", "echo '< a'; echo '> b'; exit 1"), nil)
		var buf bytes.Buffer
		if err := c.Diff(ctx, a, b, &buf); err != nil {
			t.Fatalf("Diff() error = %v", err)
		}
		if buf.String() != "< a\n> b\n" {
			t.Errorf("Diff() output = %q", buf.String())
		}
	})

	t.Run("DiffError", func(t *testing.T) {
		c := NewExternalComparator(h.CreateScript("diffbroken.sh", "exit 3"), nil)
		var buf bytes.Buffer
		if err := c.Diff(ctx, a, b, &buf); err == nil {
			t.Error("Diff() should fail on exit status 3")
		}
	})
}

// TestBinaryComparator tests the in-process comparator
func TestBinaryComparator(t *testing.T) {
	h := NewTestHelper(t)
	defer h.Cleanup()

	comparator := NewBinaryComparator(h.backend, 4096)
	ctx := context.Background()

	t.Run("Name", func(t *testing.T) {
		if comparator.Name() != "binary" {
			t.Errorf("Name() = %s, want binary", comparator.Name())
		}
	})

	t.Run("IdenticalFiles", func(t *testing.T) {
		content := bytes.Repeat([]byte("0123456789"), 1000)
		h.CreateFile("same1.bin", content)
		h.CreateFile("same2.bin", content)

		result, err := comparator.Compare(ctx, "same1.bin", "same2.bin")
		if err != nil {
			t.Fatalf("Compare() error = %v", err)
		}
		if result.Result != Same {
			t.Errorf("Result = %s, want %s", result.Result, Same)
		}
	})

	t.Run("EmptyFiles", func(t *testing.T) {
		h.CreateFile("empty1", nil)
		h.CreateFile("empty2", nil)

		result, err := comparator.Compare(ctx, "empty1", "empty2")
		if err != nil {
			t.Fatalf("Compare() error = %v", err)
		}
		if result.Result != Same {
			t.Errorf("Result = %s, want %s", result.Result, Same)
		}
	})

	t.Run("DifferentSizes", func(t *testing.T) {
		h.CreateFile("short", []byte("short"))
		h.CreateFile("long", []byte("much longer content"))

		result, err := comparator.Compare(ctx, "short", "long")
		if err != nil {
			t.Fatalf("Compare() error = %v", err)
		}
		if result.Result != Different {
			t.Errorf("Result = %s, want %s", result.Result, Different)
		}
	})

	t.Run("SameSizeDifferentContent", func(t *testing.T) {
		content1 := bytes.Repeat([]byte("A"), 10000)
		content2 := bytes.Repeat([]byte("A"), 10000)
		content2[5000] = 'B'
		h.CreateFile("diff1.bin", content1)
		h.CreateFile("diff2.bin", content2)

		result, err := comparator.Compare(ctx, "diff1.bin", "diff2.bin")
		if err != nil {
			t.Fatalf("Compare() error = %v", err)
		}
		if result.Result != Different {
			t.Errorf("Result = %s, want %s", result.Result, Different)
		}
		if !strings.Contains(result.Reason, "offset 5000") {
			t.Errorf("Reason = %q, want offset 5000", result.Reason)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		h.CreateFile("present", []byte("x"))

		_, err := comparator.Compare(ctx, "present", "absent")
		var compErr *ComparisonError
		if !errors.As(err, &compErr) {
			t.Fatalf("Compare() error = %v, want *ComparisonError", err)
		}
	})
}

// TestComparatorInterface verifies implementations satisfy the interfaces
func TestComparatorInterface(t *testing.T) {
	var _ Comparator = (*ExternalComparator)(nil)
	var _ Differ = (*ExternalComparator)(nil)
	var _ Comparator = (*BinaryComparator)(nil)
}
