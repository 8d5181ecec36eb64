package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func repoRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("resolve repo root failed: %v", err)
	}
	return root
}

func buildCLI(t *testing.T, home string) (string, []string) {
	t.Helper()
	root := repoRoot(t)
	goModCache := filepath.Join(os.TempDir(), "runscaffold-gomodcache")
	goCache := filepath.Join(os.TempDir(), "runscaffold-gocache")
	if err := os.MkdirAll(goModCache, 0o755); err != nil {
		t.Fatalf("create mod cache failed: %v", err)
	}
	if err := os.MkdirAll(goCache, 0o755); err != nil {
		t.Fatalf("create go cache failed: %v", err)
	}

	env := append(os.Environ(),
		"HOME="+home,
		"GOMODCACHE="+goModCache,
		"GOCACHE="+goCache,
	)
	bin := filepath.Join(home, "bin", "runscaffold")
	if err := os.MkdirAll(filepath.Dir(bin), 0o755); err != nil {
		t.Fatalf("create bin dir failed: %v", err)
	}
	cmd := exec.Command("go", "build", "-o", bin, "./cmd/runscaffold")
	cmd.Dir = root
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build cli failed: %v\n%s", err, string(out))
	}
	return bin, env
}

func runCLI(t *testing.T, bin string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("command failed: %s\nargs=%v\noutput=%s", err, args, string(out))
	}
	return string(out)
}

func runCLIExpectFail(t *testing.T, bin string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected command to fail\nargs=%v\noutput=%s", args, string(out))
	}
	return string(out)
}

// setupRunfolder creates a bare run folder with its BaseCalls directory and
// writes an HCL run description for it.
func setupRunfolder(t *testing.T, root string, idRun int) (string, string) {
	t.Helper()
	runfolder := filepath.Join(root, fmt.Sprintf("r%d", idRun))
	if err := os.MkdirAll(filepath.Join(runfolder, "Data", "Intensities", "BaseCalls"), 0o755); err != nil {
		t.Fatalf("create runfolder failed: %v", err)
	}
	doc := fmt.Sprintf(`lanes = [1, 2]

run {
  id_run         = %d
  timestamp      = "20240102-030405"
  runfolder_path = %q
}

data_product {
  component {
    position  = 1
    tag_index = 3
  }
}

data_product {
  component {
    position  = 1
    tag_index = 5
  }
  component {
    position  = 2
    tag_index = 5
  }
}
`, idRun, runfolder)
	path := filepath.Join(root, fmt.Sprintf("r%d.hcl", idRun))
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write run description failed: %v", err)
	}
	return runfolder, path
}

func assertContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, out)
	}
}
