// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cfgkit/jobcfg/pkg/checks"
	"github.com/cfgkit/jobcfg/pkg/filepos"
)

var (
	frequencies = []string{"minute", "hour", "day", "week", "month"}
	weekDays    = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	signalTypes = []string{"data_drift", "prediction_drift", "data_quality", "feature_attribution_drift"}
	mlTasks     = []string{"classification", "regression"}

	// spans follow the ISO-8601 day/hour duration subset, eg P7D, PT12H, P1DT6H
	spanRegexp = regexp.MustCompile(`^P(\d+D)?(T\d+H)?$`)

	deploymentIDRegexp = regexp.MustCompile(`^azureml:[^:\s]+:[^:\s]+$`)

	// metrics expressed as rates or normalized distances; thresholds must
	// stay within (0, 1]
	ratioMetrics = map[string]struct{}{
		"jensen_shannon_distance":         {},
		"normalized_wasserstein_distance": {},
		"pearsons_chi_squared_test":       {},
		"two_sample_kolmogorov_test":      {},
		"null_value_rate":                 {},
		"data_type_error_rate":            {},
		"out_of_bounds_rate":              {},
	}

	dateFormats = []string{"2006-01-02", time.RFC3339}
)

// Check runs the semantic checks over a decoded monitoring job: recurrence
// bounds, time zone, window shapes, signal types, and threshold ranges.
func (j *Job) Check() checks.Check {
	var chk checks.Check

	chk.Merge(j.Trigger.check())

	for _, signal := range j.Monitor.Signals {
		chk.Merge(signal.check())
	}

	if target := j.Monitor.Target; target.EndpointDeploymentID.Value != "" {
		if !deploymentIDRegexp.MatchString(target.EndpointDeploymentID.Value) {
			chk.Add(checks.NewInvalidValueError(target.EndpointDeploymentID.Position,
				"monitoring target is not a deployment reference:",
				target.EndpointDeploymentID.Value, "azureml:<endpoint>:<deployment>"))
		}
	}
	if target := j.Monitor.Target; target.MLTask.Value != "" {
		checks.OneOf(&chk, target.MLTask, mlTasks, "this ml task")
	}

	return chk
}

func (t Trigger) check() checks.Check {
	var chk checks.Check

	if t.Type.Value != "" && t.Type.Value != "recurrence" {
		chk.Add(checks.NewInvalidValueError(t.Type.Position,
			"trigger type is not supported:", t.Type.Value, "recurrence"))
	}

	if t.Frequency.Value != "" {
		checks.OneOf(&chk, t.Frequency, frequencies, "this frequency")
	}

	if t.Interval < 1 {
		chk.Add(checks.NewInvalidValueError(t.IntervalPos,
			"interval must be at least 1:", fmt.Sprintf("%d", t.Interval), ""))
	}

	if t.TimeZone.Value != "" {
		if _, err := time.LoadLocation(t.TimeZone.Value); err != nil {
			chk.Add(checks.NewInvalidValueError(t.TimeZone.Position,
				"time zone is not a known IANA zone:", t.TimeZone.Value, ""))
		}
	}

	for _, hour := range t.Hours {
		if hour.Value < 0 || hour.Value > 23 {
			chk.Add(checks.NewInvalidValueError(hour.Position,
				"hour is out of range:", fmt.Sprintf("%d", hour.Value), "0 through 23"))
		}
	}
	for _, minute := range t.Minutes {
		if minute.Value < 0 || minute.Value > 59 {
			chk.Add(checks.NewInvalidValueError(minute.Position,
				"minute is out of range:", fmt.Sprintf("%d", minute.Value), "0 through 59"))
		}
	}

	for _, day := range t.WeekDays {
		lowered := checks.String{Value: strings.ToLower(day.Value), Position: day.Position}
		if !checks.OneOf(&chk, lowered, weekDays, "this week day") {
			continue
		}
		if t.Frequency.Value != "" && t.Frequency.Value != "week" {
			chk.Add(checks.NewInvalidValueError(day.Position,
				"week_days only apply to weekly recurrence:", day.Value,
				fmt.Sprintf("no week_days with frequency '%s'", t.Frequency.Value)))
		}
	}

	return chk
}

func (s Signal) check() checks.Check {
	var chk checks.Check

	if s.Type.Value != "" {
		checks.OneOf(&chk, s.Type, signalTypes, "this signal type")
	}

	if s.ProductionData != nil {
		chk.Merge(s.ProductionData.check())
	}
	if s.ReferenceData != nil {
		chk.Merge(s.ReferenceData.check())
	}

	for _, threshold := range s.Thresholds {
		chk.Merge(threshold.check())
	}

	return chk
}

// check enforces that a data block uses exactly one window style: fixed
// (window_start + window_end), trailing (lookback_window_size [+ offset]),
// or static (no window fields at all).
func (b DataBlock) check() checks.Check {
	var chk checks.Check

	fixed := b.WindowStart.Value != "" || b.WindowEnd.Value != ""
	trailing := b.LookbackSize.Value != "" || b.LookbackOffset.Value != ""

	if fixed && trailing {
		chk.Add(checks.NewInvalidValueError(b.Position,
			"data block mixes fixed and trailing window fields:", "",
			"either window_start/window_end or lookback_window_size"))
		return chk
	}

	if fixed {
		start, startOk := parseDate(b.WindowStart.Value)
		end, endOk := parseDate(b.WindowEnd.Value)

		if b.WindowStart.Value == "" || !startOk {
			chk.Add(checks.NewInvalidValueError(positionOr(b.WindowStart, b), "window_start does not parse:",
				b.WindowStart.Value, "a date (2006-01-02) or RFC3339 timestamp"))
		}
		if b.WindowEnd.Value == "" || !endOk {
			chk.Add(checks.NewInvalidValueError(positionOr(b.WindowEnd, b), "window_end does not parse:",
				b.WindowEnd.Value, "a date (2006-01-02) or RFC3339 timestamp"))
		}
		if startOk && endOk && !start.Before(end) {
			chk.Add(checks.NewInvalidValueError(b.WindowStart.Position,
				"fixed window is empty:", fmt.Sprintf("start %s, end %s", b.WindowStart.Value, b.WindowEnd.Value),
				"window_start earlier than window_end"))
		}
	}

	if trailing {
		if b.LookbackSize.Value == "" {
			chk.Add(checks.NewMissingKeyError(b.Position, "lookback_window_size", "a trailing window"))
		} else if !spanRegexp.MatchString(b.LookbackSize.Value) || b.LookbackSize.Value == "P" {
			chk.Add(checks.NewInvalidValueError(b.LookbackSize.Position,
				"lookback_window_size does not parse:", b.LookbackSize.Value, "a day/hour span, eg P7D or PT12H"))
		}
		if b.LookbackOffset.Value != "" && (!spanRegexp.MatchString(b.LookbackOffset.Value) || b.LookbackOffset.Value == "P") {
			chk.Add(checks.NewInvalidValueError(b.LookbackOffset.Position,
				"lookback_window_offset does not parse:", b.LookbackOffset.Value, "a day/hour span, eg P7D or PT12H"))
		}
	}

	return chk
}

func (t Threshold) check() checks.Check {
	var chk checks.Check

	// a nil ValuePos means the threshold key was absent or mistyped,
	// which the decode step already reported
	if t.MetricName.Value == "" || t.ValuePos == nil {
		return chk
	}

	if t.Value <= 0 {
		chk.Add(checks.NewInvalidValueError(t.ValuePos,
			"threshold must be positive:", fmt.Sprintf("%v", t.Value), ""))
		return chk
	}

	if _, ratio := ratioMetrics[t.MetricName.Value]; ratio && t.Value > 1 {
		chk.Add(checks.NewInvalidValueError(t.ValuePos,
			fmt.Sprintf("metric '%s' is a ratio; its threshold cannot exceed 1:", t.MetricName.Value),
			fmt.Sprintf("%v", t.Value), "a value in (0, 1]"))
	}

	return chk
}

func parseDate(val string) (time.Time, bool) {
	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, val); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func positionOr(s checks.String, b DataBlock) *filepos.Position {
	if s.Position != nil {
		return s.Position
	}
	return b.Position
}
