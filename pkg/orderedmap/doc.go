// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a map implementation where the order of keys is
maintained (unlike the native Go map).

This flavor of map keeps jobcfg's normalized output deterministic and in
the same order the author wrote the document.
*/
package orderedmap
