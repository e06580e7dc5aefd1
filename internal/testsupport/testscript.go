package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/amonks/mindful/task"
)

var (
	buildOnce   sync.Once
	mindfulPath string
	buildErr    error
)

// BuildMindful builds the mindful binary once and returns its path.
func BuildMindful(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "mindful-bin-")
		if err != nil {
			buildErr = err
			return
		}

		mindfulPath = filepath.Join(binDir, "mindful")
		cmd := exec.Command("go", "build", "-o", mindfulPath, "./cmd/mindful")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build mindful: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return mindfulPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("MINDFUL", BuildMindful(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("MINDFUL_DATA_DIR", "")
	env.Setenv("MINDFUL_STORE", "")
	env.Setenv("NO_COLOR", "1")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdTaskID finds a task by content in `mindful list --json` output and
// stores its ID in an env var.
func CmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskid FILE CONTENT VAR")
	}

	var board struct {
		Backlog    []task.Task `json:"backlog"`
		InProgress []task.Task `json:"inProgress"`
		Done       []task.Task `json:"done"`
	}
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &board); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}

	content := args[1]
	for _, column := range [][]task.Task{board.Backlog, board.InProgress, board.Done} {
		for _, item := range column {
			if item.Content == content {
				ts.Setenv(args[2], item.ID)
				return
			}
		}
	}

	ts.Fatalf("task with content %q not found", content)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
