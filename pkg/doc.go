// Package pkg provides the core libraries for pydepviz dependency visualization.
//
// # Overview
//
// pydepviz turns the installed Python dependency tree of a project into an
// interactive 3-D graph. The pkg directory is organized along the pipeline:
//
//  1. [resolve] - Obtain the dependency mapping (pipdeptree or bundled fallback)
//  2. [depgraph] - Directed dependency graph rooted at the project
//  3. [layout] - Deterministic 3-D force-directed placement
//  4. [community] - Louvain community detection (best effort)
//  5. [classify] - Colors, titles, hover text and marker sizes per package
//  6. [render] - Interactive HTML document and static PNG preview
//  7. [pipeline] - Orchestration of all stages with timing and warnings
//
// # Architecture
//
// The typical data flow:
//
//	Installed Python environment (pipdeptree)
//	         ↓
//	    [resolve] package (dependency mapping)
//	         ↓
//	    [depgraph] package (directed graph + direct set)
//	         ↓
//	    [layout] + [community] + [classify] (positions + styling)
//	         ↓
//	    [render] package (HTML + PNG)
//
// # Quick Start
//
// Run the whole pipeline from pre-resolved data:
//
//	import (
//	    "context"
//	    "github.com/pydepviz/pydepviz/pkg/pipeline"
//	    "github.com/pydepviz/pydepviz/pkg/resolve"
//	)
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    ProjectName: "myapp",
//	    Resolver: resolve.Static{Data: map[string][]string{
//	        "myapp":    {"requests"},
//	        "requests": {"urllib3"},
//	    }},
//	})
//	if err != nil {
//	    panic(err)
//	}
//	html := result.Artifacts[pipeline.FormatHTML]
//
// Supporting packages: [errors] carries the coded error taxonomy, [fonts]
// supplies the raster typeface, [observability] exposes stage hooks, and
// [buildinfo] carries ldflags-injected version information.
package pkg
