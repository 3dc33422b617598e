package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with args and an isolated home directory
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func writeTables(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func TestCompareCommand(t *testing.T) {
	root := t.TempDir()
	local := filepath.Join(root, "local_tables")
	remote := filepath.Join(root, "remote_tables")
	report := filepath.Join(root, "out", "compare_output.json")

	writeTables(t, local, map[string]string{"t1.yaml": "a: 1\n", "t3.yaml": "c: 3\n"})
	writeTables(t, remote, map[string]string{"t1.yaml": "a: 1\n", "t2.yaml": "b: 2\n"})

	stdout, err := execute(t, "compare", "--local", local, "--remote", remote, "--output", report)
	if err != nil {
		t.Fatalf("compare error = %v", err)
	}

	for _, want := range []string{
		"Shared files: ['t1.yaml']",
		"Only in local: ['t3.yaml']",
		"Only in remote: ['t2.yaml']",
		"Comparing file: t1.yaml",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	want := map[string]any{
		"shared_files":   map[string]any{"t1.yaml": map[string]any{"diff": map[string]any{}}},
		"only_in_local":  []any{"t3.yaml"},
		"only_in_remote": []any{"t2.yaml"},
	}
	got, _ := json.Marshal(decoded)
	exp, _ := json.Marshal(want)
	if !bytes.Equal(got, exp) {
		t.Errorf("report = %s, want %s", got, exp)
	}
	if !strings.HasPrefix(string(data), "{\n    \"shared_files\"") {
		t.Errorf("report should use 4-space indentation:\n%s", data)
	}
}

func TestCompareCommandExitCode(t *testing.T) {
	root := t.TempDir()
	local := filepath.Join(root, "local")
	remote := filepath.Join(root, "remote")
	report := filepath.Join(root, "report.json")

	writeTables(t, local, map[string]string{"t.yaml": "rows: [1, 2]\n"})
	writeTables(t, remote, map[string]string{"t.yaml": "rows: [2, 1]\n"})

	args := []string{"compare", "-q", "--exit-code", "--local", local, "--remote", remote, "--output", report}

	t.Run("Identical", func(t *testing.T) {
		stdout, err := execute(t, args...)
		if err != nil {
			t.Errorf("compare error = %v, want nil", err)
		}
		if stdout != "" {
			t.Errorf("quiet mode printed %q", stdout)
		}
	})

	t.Run("Different", func(t *testing.T) {
		writeTables(t, remote, map[string]string{"t.yaml": "rows: [2, 3]\n"})

		_, err := execute(t, args...)
		var exitErr *ExitError
		if !errors.As(err, &exitErr) || exitErr.Code != 1 {
			t.Errorf("compare error = %v, want exit status 1", err)
		}
		if _, statErr := os.Stat(report); statErr != nil {
			t.Errorf("report should still be written: %v", statErr)
		}
	})
}

func TestCompareCommandParseError(t *testing.T) {
	root := t.TempDir()
	local := filepath.Join(root, "local")
	remote := filepath.Join(root, "remote")
	report := filepath.Join(root, "report.json")

	writeTables(t, local, map[string]string{"t.yaml": "a: [1\n"})
	writeTables(t, remote, map[string]string{"t.yaml": "a: 1\n"})

	_, err := execute(t, "compare", "-q", "--local", local, "--remote", remote, "--output", report)
	if err == nil || !strings.Contains(err.Error(), "comparison failed") {
		t.Fatalf("compare error = %v, want comparison failure", err)
	}
	if _, statErr := os.Stat(report); !os.IsNotExist(statErr) {
		t.Error("no report should be written after a parse failure")
	}
}

func TestCompareCommandFromConfig(t *testing.T) {
	root := t.TempDir()
	local := filepath.Join(root, "a")
	remote := filepath.Join(root, "b")
	report := filepath.Join(root, "from_config.json")
	logFile := filepath.Join(root, "tablediff.log")

	writeTables(t, local, map[string]string{"t.yaml": "x: 1\n", "skip.bak": "junk"})
	writeTables(t, remote, map[string]string{"t.yaml": "x: 2\n"})

	cfgPath := filepath.Join(root, "config.toml")
	content := "exclude = [\"*.bak\"]\n\n" +
		"[tables]\nlocal_dir = \"" + filepath.ToSlash(local) + "\"\nremote_dir = \"" + filepath.ToSlash(remote) + "\"\n\n" +
		"[output]\npath = \"" + filepath.ToSlash(report) + "\"\nformat = \"json\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, err := execute(t, "--config", cfgPath, "compare", "--log-file", logFile, "--log-level", "debug")
	if err != nil {
		t.Fatalf("compare error = %v", err)
	}

	var summary struct {
		OperationID string   `json:"operation_id"`
		Status      string   `json:"status"`
		OnlyInLocal []string `json:"only_in_local"`
	}
	if err := json.Unmarshal([]byte(stdout), &summary); err != nil {
		t.Fatalf("stdout is not a JSON summary: %v\n%s", err, stdout)
	}
	if summary.Status != "different" || len(summary.OnlyInLocal) != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if len(summary.OperationID) != 36 {
		t.Errorf("OperationID = %q, want a UUID", summary.OperationID)
	}

	logs, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(logs), "operation_id="+summary.OperationID) {
		t.Errorf("logs should carry the operation id:\n%s", logs)
	}
}

func TestCompareCommandInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"DiffFormat", []string{"compare", "--diff-format", "xml"}},
		{"Format", []string{"compare", "--format", "yaml"}},
		{"LogFormat", []string{"compare", "--log-format", "xml"}},
		{"PositionalArgs", []string{"compare", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("compare should fail")
			}
		})
	}
}

func TestConfigCommands(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "config.toml")

	stdout, err := execute(t, "--config", cfgPath, "config", "init")
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(stdout, cfgPath) {
		t.Errorf("stdout = %q, want the created path", stdout)
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "[tables]") {
		t.Errorf("config should be TOML:\n%s", data)
	}

	stdout, err = execute(t, "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"Local Tables: ./local_tables/", "Report Path: compare_output.json", "Pair Cutoff: 0.3"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, stdout)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if strings.TrimSpace(stdout) != Version {
		t.Errorf("version --short = %q, want %q", stdout, Version)
	}
}
