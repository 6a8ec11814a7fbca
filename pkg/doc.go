// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of
jobcfg.

From top-down, jobcfg code is layered in this way:

# Entry Point

jobcfg is built into a single command-line tool:

	./cmd/jobcfg

# Commands

jobcfg implements four commands: "lint" (the default), "inspect", "fmt", and
"version".

	pkg/cmd
	pkg/cmd/lint

# Document Kinds

Each supported document family gets its own package: decoding the parsed YAML
tree into a typed structure, plus the semantic checks over it.

	pkg/recipe      // package-build recipe manifests
	pkg/monitor     // model monitoring job documents
	pkg/pipeline    // pipeline job documents (steps, bindings, step graph)
	pkg/citemplate  // CI template invocations and template contracts

pkg/kinds identifies which family a document belongs to.

# Checking Machinery

Shared machinery the kind packages are built from: positioned shape accessors
and violation rendering (pkg/checks), the "${{ }}" binding and "${NAME}"
placeholder grammars (pkg/exprs), and near-miss key suggestions (pkg/spell).

# YAML Structures

jobcfg delegates parsing YAML to the de facto standard YAML library
(https://github.com/go-yaml/yaml/tree/v3) and converts the output into a
composite tree of its own yamldoc.Node structure, each node annotated with
its source position (pkg/filepos). pkg/yamlfmt prints that tree back in
canonical form.

# Utilities

	pkg/files       // input enumeration: paths, dirs, stdin, HTTP
	pkg/toolconfig  // jobcfg.toml: version pins, lint tweaks
	pkg/cmd/ui
	pkg/orderedmap
	pkg/version
*/
package pkg
