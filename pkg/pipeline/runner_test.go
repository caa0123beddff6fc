package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IamSagarRai/optimesh/pkg/cache"
	apperrors "github.com/IamSagarRai/optimesh/pkg/errors"
	"github.com/IamSagarRai/optimesh/pkg/mesh"
	"github.com/IamSagarRai/optimesh/pkg/meshio"
)

// unitSquare builds a 5-point square with a free center vertex.
func unitSquare(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.New(
		[]mesh.Vec{
			{X: 0, Y: 0},
			{X: 1, Y: 0},
			{X: 1, Y: 1},
			{X: 0, Y: 1},
			{X: 0.7, Y: 0.6}, // off-center interior vertex
		},
		[][3]int{{0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4}},
	)
	if err != nil {
		t.Fatalf("build mesh: %v", err)
	}
	return m
}

func TestExecuteSmoothsAndRenders(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{
		Mesh:    unitSquare(t),
		Method:  "laplace",
		Formats: []string{"json", "dot"},
	}
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if result.Mesh == nil || result.Mesh.NumPoints() != 5 {
		t.Fatalf("smoothed mesh should keep 5 points, got %+v", result.Mesh)
	}
	if result.Steps < 1 {
		t.Errorf("expected at least one step, got %d", result.Steps)
	}

	// Boundary corners must not move.
	for _, i := range []int{0, 1, 2, 3} {
		if result.Mesh.Points[i] != (mesh.Vec{X: opts.Mesh.Points[i].X, Y: opts.Mesh.Points[i].Y}) {
			t.Errorf("boundary point %d moved to %+v", i, result.Mesh.Points[i])
		}
	}

	// The interior vertex relaxes toward the neighbor mean (0.5, 0.5).
	center := result.Mesh.Points[4]
	if d := (center.Sub(mesh.Vec{X: 0.5, Y: 0.5})).Norm(); d > 1e-3 {
		t.Errorf("center should relax to (0.5, 0.5), got %+v", center)
	}

	// Input must not be mutated.
	if opts.Mesh.Points[4] != (mesh.Vec{X: 0.7, Y: 0.6}) {
		t.Error("input mesh was mutated")
	}

	if _, ok := result.Artifacts["json"]; !ok {
		t.Error("missing json artifact")
	}
	dot, ok := result.Artifacts["dot"]
	if !ok || !strings.Contains(string(dot), "graph mesh") {
		t.Errorf("dot artifact missing or malformed: %q", string(dot))
	}

	var decoded map[string]any
	if err := json.Unmarshal(result.Artifacts["json"], &decoded); err != nil {
		t.Errorf("json artifact should be valid JSON: %v", err)
	}

	if result.After.MinQuality < result.Before.MinQuality {
		t.Errorf("quality should not degrade: before %v after %v",
			result.Before.MinQuality, result.After.MinQuality)
	}
}

func TestExecuteCachesSmoothingResult(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{
		Mesh:    unitSquare(t),
		Method:  "laplace",
		Formats: []string{"json"},
	}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.SmoothHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(context.Background(), Options{
		Mesh:    unitSquare(t),
		Method:  "laplace",
		Formats: []string{"json"},
	})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.SmoothHit {
		t.Error("second run should hit the smoothing cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if second.Steps != first.Steps || second.Residual != first.Residual {
		t.Errorf("cached stats should match: first %d/%g second %d/%g",
			first.Steps, first.Residual, second.Steps, second.Residual)
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	if _, err := runner.Execute(context.Background(), Options{Mesh: unitSquare(t), Method: "laplace"}); err != nil {
		t.Fatalf("warm-up Execute: %v", err)
	}

	result, err := runner.Execute(context.Background(), Options{
		Mesh:    unitSquare(t),
		Method:  "laplace",
		Refresh: true,
	})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if result.CacheInfo.SmoothHit {
		t.Error("refresh run should not read the smoothing cache")
	}
}

func TestExecuteCallbackForcesRecompute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	steps := 0
	_, err := runner.Execute(context.Background(), Options{
		Mesh:     unitSquare(t),
		Method:   "laplace",
		Callback: func(int, *mesh.Mesh) { steps++ },
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if steps == 0 {
		t.Error("callback should be invoked")
	}
}

func TestExecuteStepFormatWritesSnapshots(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	dir := t.TempDir()
	result, err := runner.Execute(context.Background(), Options{
		Mesh:       unitSquare(t),
		Method:     "laplace",
		StepFormat: filepath.Join(dir, "step%03d.json"),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// Step 0 plus one file per committed step.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != result.Steps+1 {
		t.Errorf("wrote %d snapshots, want %d", len(entries), result.Steps+1)
	}

	snap, err := meshio.Import(filepath.Join(dir, "step000.json"))
	if err != nil {
		t.Fatalf("Import snapshot: %v", err)
	}
	if snap.NumPoints() != 5 {
		t.Errorf("snapshot has %d points, want 5", snap.NumPoints())
	}
}

func TestLoadMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Load(Options{Input: filepath.Join(t.TempDir(), "nope.json")})
	if err == nil {
		t.Fatal("missing input file should fail")
	}
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("missing file should carry the file-not-found code, got %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not a mesh"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runner.Load(Options{Input: path})
	if err == nil {
		t.Fatal("corrupt input file should fail")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidMesh) {
		t.Errorf("corrupt file should carry the invalid-mesh code, got %v", err)
	}
}

func TestExecuteUnknownMethod(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Mesh:   unitSquare(t),
		Method: "does-not-exist",
	})
	if err == nil {
		t.Fatal("unknown method should fail")
	}
}
