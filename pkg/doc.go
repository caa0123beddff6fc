// Package pkg provides the core libraries for optimesh mesh smoothing.
//
// # Overview
//
// Optimesh improves the quality of triangular meshes by moving interior
// vertices with relaxation methods while keeping the triangulation valid.
// The pkg directory is organized into:
//
//  1. [mesh] - Triangular mesh structure, geometry, and Delaunay flips
//  2. [optimize] - Relaxation methods and the convergence driver
//  3. [meshio] - Mesh file formats (JSON, OFF, VTK)
//  4. [render] - Quality plots and connectivity diagrams
//  5. [pipeline] - Orchestration (load → smooth → render) with caching
//  6. [cache] - File, redis, and null cache backends
//
// # Architecture
//
// The typical data flow through optimesh:
//
//	Mesh file (JSON/OFF)
//	         ↓
//	    [meshio] package (parse and validate)
//	         ↓
//	    [optimize] package (relax until convergence)
//	         ↓
//	    [render] package (quality plots)
//	         ↓
//	    JSON/OFF/VTK/PNG/SVG/DOT output
//
// # Quick Start
//
// Smooth a mesh with the full CVT method:
//
//	import (
//	    "github.com/IamSagarRai/optimesh/pkg/meshio"
//	    "github.com/IamSagarRai/optimesh/pkg/optimize"
//	)
//
//	m, _ := meshio.Import("mesh.json")
//	result, _ := optimize.Optimize(m, "cvt-full", 1e-6, 100, optimize.Options{})
//	fmt.Printf("converged after %d steps (residual %g)\n", result.Steps, result.Residual)
//	_ = meshio.Export(m, "mesh_smoothed.json")
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Input:   "mesh.json",
//	    Method:  "lloyd",
//	    Formats: []string{"json", "png"},
//	})
//
// # Main Packages
//
// [mesh] - Triangle mesh with points, cells, and derived geometry: areas,
// centroids, circumcenters, control volumes, boundary classification, and
// edge flips toward a Delaunay triangulation.
//
// [optimize] - The relaxation methods (Laplace, Lloyd/CVT, CPT, ODT) and the
// fixed-point driver that steps them until convergence. Nonlinear ODT
// variants minimize the energy directly via gonum/optimize.
//
// [meshio] - Import and export in mesh-interchange formats. JSON and OFF
// round-trip; legacy VTK is write-only for visualization tools.
//
// [render] - Quality plots via gonum/plot (cells colored by radius ratio)
// and Graphviz DOT output of the mesh connectivity.
//
// [pipeline] - Complete smoothing pipeline used by the CLI and library
// callers, with per-stage caching keyed by mesh content hashes.
//
// [cache] - Cache backends: FileCache (CLI), RedisCache (shared), NullCache
// (disabled).
//
// [observability] - Hook interfaces with no-op defaults so applications can
// attach metrics without coupling the library to a framework.
//
// [errors] - Structured error codes shared by library and CLI.
//
// [mesh]: https://pkg.go.dev/github.com/IamSagarRai/optimesh/pkg/mesh
// [optimize]: https://pkg.go.dev/github.com/IamSagarRai/optimesh/pkg/optimize
// [meshio]: https://pkg.go.dev/github.com/IamSagarRai/optimesh/pkg/meshio
// [render]: https://pkg.go.dev/github.com/IamSagarRai/optimesh/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/IamSagarRai/optimesh/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/IamSagarRai/optimesh/pkg/cache
// [observability]: https://pkg.go.dev/github.com/IamSagarRai/optimesh/pkg/observability
// [errors]: https://pkg.go.dev/github.com/IamSagarRai/optimesh/pkg/errors
package pkg
