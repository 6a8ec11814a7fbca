// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package citemplate models the CI pipeline template invocation: a trigger
policy, declared parameters, and an "extends" reference whose override
parameters must satisfy the extended template's parameter contract.
*/
package citemplate
