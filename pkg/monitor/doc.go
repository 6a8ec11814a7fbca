// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package monitor models the monitoring job document: a recurrence trigger
plus a set of named monitoring signals, each evaluated over production and
reference data windows against metric thresholds.
*/
package monitor
