// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package yamlfmt re-prints YAML documents into a canonical form: two-space
indents, inlined array items, scalars serialized the way the YAML library
would write them.
*/
package yamlfmt
