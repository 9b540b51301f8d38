package main

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	sparkBinary     string
	sparkBinaryOnce sync.Once
	sparkBinaryErr  error
)

// getSparkBinary builds the spark binary once and returns its path.
func getSparkBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary integration test in short mode")
	}
	sparkBinaryOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "spark-test-*")
		if err != nil {
			sparkBinaryErr = err
			return
		}
		sparkBinary = filepath.Join(tmpDir, "spark")

		cmd := exec.Command("go", "build", "-o", sparkBinary, ".")
		if output, err := cmd.CombinedOutput(); err != nil {
			sparkBinaryErr = &buildError{output: string(output), err: err}
		}
	})
	if sparkBinaryErr != nil {
		t.Fatalf("failed to build spark: %v", sparkBinaryErr)
	}
	return sparkBinary
}

type buildError struct {
	output string
	err    error
}

func (e *buildError) Error() string {
	return e.err.Error() + ": " + e.output
}

// setupWorkspace returns an empty directory with its own XDG_CONFIG_HOME.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

// runSpark executes spark in dir and returns stdout and the exit code.
func runSpark(t *testing.T, dir string, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(getSparkBinary(t), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(dir, "config"),
		"SPARK_LOG_LEVEL=error",
	)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode()
		}
		t.Fatalf("running spark %v: %v", args, err)
	}
	return string(out), ExitSuccess
}

func mustRunSpark(t *testing.T, dir string, v any, args ...string) {
	t.Helper()
	out, code := runSpark(t, dir, args...)
	if code != ExitSuccess {
		t.Fatalf("spark %v exited %d\nOutput: %s", args, code, out)
	}
	if v == nil {
		return
	}
	if err := json.Unmarshal([]byte(out), v); err != nil {
		t.Fatalf("spark %v: parsing output: %v\nOutput: %s", args, err, out)
	}
}

func TestProjectLifecycle(t *testing.T) {
	dir := setupWorkspace(t)

	var initResp InitResponse
	mustRunSpark(t, dir, &initResp, "init")
	if initResp.Status != "initialized" {
		t.Errorf("init status = %q, want initialized", initResp.Status)
	}

	if _, code := runSpark(t, dir, "init"); code != ExitConfigError {
		t.Errorf("second init exit code = %d, want %d", code, ExitConfigError)
	}

	var created struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Data  struct {
			Blueprints []json.RawMessage `json:"blueprints"`
		} `json:"data"`
	}
	mustRunSpark(t, dir, &created, "new", "Uber", "for", "dog", "walking")
	if created.Title != "PawPilot" {
		t.Errorf("new title = %q, want PawPilot", created.Title)
	}
	if len(created.Data.Blueprints) != 4 {
		t.Errorf("new produced %d blueprints, want 4", len(created.Data.Blueprints))
	}

	var list []ProjectSummary
	mustRunSpark(t, dir, &list, "list")
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list = %+v, want the created project", list)
	}

	var found []ProjectSummary
	mustRunSpark(t, dir, &found, "list", "--query", "DOG")
	if len(found) != 1 {
		t.Errorf("list --query DOG returned %d projects, want 1", len(found))
	}

	var mm struct {
		Nodes []struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	mustRunSpark(t, dir, &mm, "mindmap", created.ID)
	if len(mm.Nodes) == 0 || mm.Nodes[0].Role != "root" {
		t.Fatalf("mindmap nodes = %+v, want a root first", mm.Nodes)
	}
	if len(mm.Edges) != len(mm.Nodes)-1 {
		t.Errorf("mindmap has %d edges for %d nodes, want a tree", len(mm.Edges), len(mm.Nodes))
	}

	var cicd struct {
		Nodes []json.RawMessage `json:"nodes"`
	}
	mustRunSpark(t, dir, &cicd, "blueprint", created.ID, "--name", "cicd", "--strict")
	if len(cicd.Nodes) != 9 {
		t.Errorf("cicd blueprint has %d nodes, want 9", len(cicd.Nodes))
	}

	var bps []BlueprintSummary
	mustRunSpark(t, dir, &bps, "blueprint", created.ID, "--list")
	if len(bps) != 4 {
		t.Errorf("blueprint --list returned %d, want 4", len(bps))
	}

	if _, code := runSpark(t, dir, "blueprint", created.ID, "--name", "nope"); code != ExitNotFound {
		t.Errorf("unknown blueprint exit code = %d, want %d", code, ExitNotFound)
	}

	htmlPath := filepath.Join(dir, "arch.html")
	var written StatusResponse
	mustRunSpark(t, dir, &written, "blueprint", created.ID, "--format", "html", "--output", htmlPath)
	if written.Path != htmlPath {
		t.Errorf("written path = %q, want %q", written.Path, htmlPath)
	}
	if _, err := os.Stat(htmlPath); err != nil {
		t.Errorf("html output missing: %v", err)
	}

	var deleted DeleteResponse
	mustRunSpark(t, dir, &deleted, "delete", created.ID)
	if !deleted.Deleted {
		t.Error("delete did not report deleted")
	}
	if _, code := runSpark(t, dir, "get", created.ID); code != ExitNotFound {
		t.Errorf("get after delete exit code = %d, want %d", code, ExitNotFound)
	}

	var rebuilt RebuildResult
	mustRunSpark(t, dir, &rebuilt, "rebuild")
	if rebuilt.Projects != 0 {
		t.Errorf("rebuild counted %d projects, want 0", rebuilt.Projects)
	}
}

func TestMindMapInput(t *testing.T) {
	dir := setupWorkspace(t)
	mustRunSpark(t, dir, nil, "init")

	tree := filepath.Join(dir, "tree.yaml")
	content := "label: Root\nchildren:\n  - label: A\n    children:\n      - label: A1\n      - label: A2\n  - label: B\n"
	if err := os.WriteFile(tree, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var g struct {
		Nodes []struct {
			ID       string `json:"id"`
			Position struct {
				X float64 `json:"x"`
				Y float64 `json:"y"`
			} `json:"position"`
		} `json:"nodes"`
	}
	mustRunSpark(t, dir, &g, "mindmap", "--input", tree)
	if len(g.Nodes) != 5 {
		t.Fatalf("got %d nodes, want 5", len(g.Nodes))
	}
	if g.Nodes[0].Position.X != 0 || g.Nodes[0].Position.Y != 600 {
		t.Errorf("root position = %+v, want (0, 600)", g.Nodes[0].Position)
	}

	mustRunSpark(t, dir, nil, "config", "max_depth", "1")
	if _, code := runSpark(t, dir, "mindmap", "--input", tree); code != ExitDataError {
		t.Errorf("too-deep input exit code = %d, want %d", code, ExitDataError)
	}
}

func TestNewWithCapturedMindMap(t *testing.T) {
	dir := setupWorkspace(t)
	mustRunSpark(t, dir, nil, "init")

	captured := filepath.Join(dir, "mindmap.txt")
	content := "Sure! Here is the mind map:\n```json\n" +
		`{"label":"Captured","children":[{"label":"Branch"}]}` +
		"\n```\n"
	if err := os.WriteFile(captured, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var created struct {
		ID      string `json:"id"`
		MindMap struct {
			Label    string            `json:"label"`
			Children []json.RawMessage `json:"children"`
		} `json:"mind_map"`
	}
	mustRunSpark(t, dir, &created, "new", "Uber", "for", "dog", "walking", "--mindmap-from", captured)
	if created.MindMap.Label != "Captured" || len(created.MindMap.Children) != 1 {
		t.Errorf("stored mind map = %+v, want the captured tree", created.MindMap)
	}

	script := filepath.Join(dir, "cytoscape.min.js")
	if err := os.WriteFile(script, []byte("window.cytoscape = function() {};"), 0644); err != nil {
		t.Fatal(err)
	}
	htmlPath := filepath.Join(dir, "mindmap.html")
	mustRunSpark(t, dir, nil, "mindmap", created.ID, "--format", "html", "--cytoscape-js", script, "--output", htmlPath)
	page, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(page), "<script src=") {
		t.Error("html with --cytoscape-js should not load from the CDN")
	}
	if !strings.Contains(string(page), "window.cytoscape = function() {};") {
		t.Error("html missing the inlined Cytoscape.js")
	}

	if _, code := runSpark(t, dir, "mindmap", created.ID, "--format", "html", "--cytoscape-js", filepath.Join(dir, "missing.js")); code != ExitError {
		t.Errorf("missing script exit code = %d, want %d", code, ExitError)
	}
}

func TestConfigCommand(t *testing.T) {
	dir := setupWorkspace(t)
	mustRunSpark(t, dir, nil, "init")

	var upd UpdateResponse
	mustRunSpark(t, dir, &upd, "config", "step-x", "250")
	if upd.Key != "step_x" || upd.Value != "250" {
		t.Errorf("config set = %+v", upd)
	}

	var got map[string]string
	mustRunSpark(t, dir, &got, "config", "step_x")
	if got["step_x"] != "250" {
		t.Errorf("config get step_x = %q, want 250", got["step_x"])
	}

	if _, code := runSpark(t, dir, "config", "step_x", "0"); code != ExitConfigError {
		t.Errorf("invalid step_x exit code = %d, want %d", code, ExitConfigError)
	}
	if _, code := runSpark(t, dir, "config", "colour", "red"); code != ExitError {
		t.Errorf("unknown key exit code = %d, want %d", code, ExitError)
	}
}

func TestClassifyCommand(t *testing.T) {
	dir := setupWorkspace(t)

	var resp struct {
		Category string `json:"category"`
		Icon     string `json:"icon"`
	}
	mustRunSpark(t, dir, &resp, "classify", "Postgres", "DB")
	if resp.Category != "database" || resp.Icon != "database" {
		t.Errorf("classify Postgres DB = %+v, want database/database", resp)
	}
}

func TestNoWorkspace(t *testing.T) {
	dir := setupWorkspace(t)
	if _, code := runSpark(t, dir, "list"); code != ExitConfigError {
		t.Errorf("list outside a workspace exit code = %d, want %d", code, ExitConfigError)
	}
}
