// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package recipe models the package-build recipe manifest: what to fetch,
what it needs at build and run time, how to smoke-test it, and who keeps
it working.

Versions inside a recipe are pinned through "${NAME}" placeholders that
resolve against a pin environment at check time.
*/
package recipe
