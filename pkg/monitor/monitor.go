// Copyright 2026 The jobcfg Authors.
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"github.com/cfgkit/jobcfg/pkg/checks"
	"github.com/cfgkit/jobcfg/pkg/filepos"
	"github.com/cfgkit/jobcfg/pkg/yamldoc"
)

// Job is a parsed monitoring job document.
type Job struct {
	Name    checks.String
	Trigger Trigger
	Monitor Monitor

	// Properties and Tags are flat string mappings, kept in document order.
	Properties *yamldoc.Map
	Tags       *yamldoc.Map

	Position *filepos.Position
}

type Trigger struct {
	Type      checks.String
	Frequency checks.String
	Interval  int
	TimeZone  checks.String
	Hours     []Int
	Minutes   []Int
	WeekDays  []checks.String

	IntervalPos *filepos.Position
	Position    *filepos.Position
}

// Int is a scalar integer together with the position it was parsed at.
type Int struct {
	Value    int
	Position *filepos.Position
}

type Monitor struct {
	Compute      Compute
	Target       Target
	Signals      []Signal
	AlertEnabled bool

	Position *filepos.Position
}

type Compute struct {
	InstanceType   checks.String
	RuntimeVersion checks.String
}

type Target struct {
	MLTask               checks.String
	EndpointDeploymentID checks.String
}

// Signal is one named monitoring signal under create_monitor.
type Signal struct {
	Name     string
	Type     checks.String
	NamePos  *filepos.Position
	Position *filepos.Position

	ProductionData *DataBlock
	ReferenceData  *DataBlock
	Thresholds     []Threshold
}

// DataBlock is a production_data or reference_data block: a data asset
// reference plus one of the three window styles (fixed, trailing, static).
type DataBlock struct {
	InputData checks.String

	WindowStart checks.String
	WindowEnd   checks.String

	LookbackSize   checks.String
	LookbackOffset checks.String

	Position *filepos.Position
}

type Threshold struct {
	FeatureType checks.String
	MetricName  checks.String
	Value       float64
	ValuePos    *filepos.Position
	Position    *filepos.Position
}

// NewFromDocument decodes a monitoring job document, recording shape
// violations as it goes.
func NewFromDocument(doc *yamldoc.Document) (*Job, checks.Check) {
	var chk checks.Check

	root, ok := doc.Value.(*yamldoc.Map)
	if !ok {
		chk.Add(checks.NewMismatchedTypeError(doc.Position, checks.TypeOf(doc.Value), "map"))
		return nil, chk
	}

	job := &Job{Position: doc.Position}

	checks.DisallowUnknownKeys(&chk, root,
		"kind", "name", "trigger", "create_monitor", "properties", "tags")

	job.Name, _ = checks.RequiredStringAt(&chk, root, "name", "a monitoring job")

	if trigger := checks.RequiredMapAt(&chk, root, "trigger", "a monitoring job"); trigger != nil {
		job.Trigger = parseTrigger(&chk, trigger)
	}

	if mon := checks.RequiredMapAt(&chk, root, "create_monitor", "a monitoring job"); mon != nil {
		job.Monitor = parseMonitor(&chk, mon)
	}

	job.Properties = checks.StringMapAt(&chk, root, "properties")
	job.Tags = checks.StringMapAt(&chk, root, "tags")

	return job, chk
}

func parseTrigger(chk *checks.Check, m *yamldoc.Map) Trigger {
	trigger := Trigger{Position: m.GetPosition(), Interval: 1}

	checks.DisallowUnknownKeys(chk, m,
		"type", "frequency", "interval", "time_zone", "schedule")

	trigger.Type, _ = checks.RequiredStringAt(chk, m, "type", "a trigger")
	trigger.Frequency, _ = checks.RequiredStringAt(chk, m, "frequency", "a trigger")
	if interval, pos, ok := checks.IntAt(chk, m, "interval"); ok {
		trigger.Interval = interval
		trigger.IntervalPos = pos
	}
	trigger.TimeZone, _ = checks.StringAt(chk, m, "time_zone")

	if schedule := checks.MapAt(chk, m, "schedule"); schedule != nil {
		checks.DisallowUnknownKeys(chk, schedule, "hours", "minutes", "week_days")
		trigger.Hours = parseInts(chk, schedule, "hours")
		trigger.Minutes = parseInts(chk, schedule, "minutes")
		trigger.WeekDays = checks.StringsAt(chk, schedule, "week_days")
	}

	return trigger
}

func parseInts(chk *checks.Check, m *yamldoc.Map, key string) []Int {
	array := checks.ArrayAt(chk, m, key)
	if array == nil {
		return nil
	}

	var result []Int
	for _, item := range array.Items {
		switch typed := item.Value.(type) {
		case int:
			result = append(result, Int{Value: typed, Position: item.Position})
		case int64:
			result = append(result, Int{Value: int(typed), Position: item.Position})
		default:
			chk.Add(checks.NewMismatchedTypeError(item.Position, checks.TypeOf(item.Value), "integer"))
		}
	}
	return result
}

func parseMonitor(chk *checks.Check, m *yamldoc.Map) Monitor {
	mon := Monitor{Position: m.GetPosition()}

	checks.DisallowUnknownKeys(chk, m,
		"compute", "monitoring_target", "monitoring_signals", "alert_enabled")

	if compute := checks.RequiredMapAt(chk, m, "compute", "create_monitor"); compute != nil {
		checks.DisallowUnknownKeys(chk, compute, "instance_type", "runtime_version")
		mon.Compute.InstanceType, _ = checks.RequiredStringAt(chk, compute, "instance_type", "compute")
		mon.Compute.RuntimeVersion, _ = checks.StringAt(chk, compute, "runtime_version")
	}

	if target := checks.MapAt(chk, m, "monitoring_target"); target != nil {
		checks.DisallowUnknownKeys(chk, target, "ml_task", "endpoint_deployment_id")
		mon.Target.MLTask, _ = checks.StringAt(chk, target, "ml_task")
		mon.Target.EndpointDeploymentID, _ = checks.StringAt(chk, target, "endpoint_deployment_id")
	}

	if signals := checks.MapAt(chk, m, "monitoring_signals"); signals != nil {
		for _, item := range signals.Items {
			name, ok := item.Key.(string)
			if !ok {
				chk.Add(checks.NewMismatchedTypeError(item.Position, checks.TypeOf(item.Key), "string key"))
				continue
			}
			signalMap, ok := item.Value.(*yamldoc.Map)
			if !ok {
				chk.Add(checks.NewMismatchedTypeError(item.Position, checks.TypeOf(item.Value), "map"))
				continue
			}
			mon.Signals = append(mon.Signals, parseSignal(chk, name, item.Position, signalMap))
		}
	}

	mon.AlertEnabled, _ = checks.BoolAt(chk, m, "alert_enabled")

	return mon
}

func parseSignal(chk *checks.Check, name string, namePos *filepos.Position, m *yamldoc.Map) Signal {
	signal := Signal{Name: name, NamePos: namePos, Position: m.GetPosition()}

	checks.DisallowUnknownKeys(chk, m,
		"type", "production_data", "reference_data", "metric_thresholds")

	signal.Type, _ = checks.RequiredStringAt(chk, m, "type", "a monitoring signal")

	if data := checks.MapAt(chk, m, "production_data"); data != nil {
		signal.ProductionData = parseDataBlock(chk, data)
	}
	if data := checks.MapAt(chk, m, "reference_data"); data != nil {
		signal.ReferenceData = parseDataBlock(chk, data)
	}

	if thresholds := checks.ArrayAt(chk, m, "metric_thresholds"); thresholds != nil {
		for _, item := range thresholds.Items {
			thresholdMap, ok := item.Value.(*yamldoc.Map)
			if !ok {
				chk.Add(checks.NewMismatchedTypeError(item.Position, checks.TypeOf(item.Value), "map"))
				continue
			}
			signal.Thresholds = append(signal.Thresholds, parseThreshold(chk, thresholdMap, item.Position))
		}
	}

	return signal
}

func parseDataBlock(chk *checks.Check, m *yamldoc.Map) *DataBlock {
	block := &DataBlock{Position: m.GetPosition()}

	checks.DisallowUnknownKeys(chk, m,
		"input_data", "window_start", "window_end",
		"lookback_window_size", "lookback_window_offset")

	block.InputData, _ = checks.RequiredStringAt(chk, m, "input_data", "a data block")
	block.WindowStart, _ = checks.StringAt(chk, m, "window_start")
	block.WindowEnd, _ = checks.StringAt(chk, m, "window_end")
	block.LookbackSize, _ = checks.StringAt(chk, m, "lookback_window_size")
	block.LookbackOffset, _ = checks.StringAt(chk, m, "lookback_window_offset")

	return block
}

func parseThreshold(chk *checks.Check, m *yamldoc.Map, pos *filepos.Position) Threshold {
	threshold := Threshold{Position: pos}

	checks.DisallowUnknownKeys(chk, m,
		"applicable_feature_type", "metric_name", "threshold")

	threshold.FeatureType, _ = checks.StringAt(chk, m, "applicable_feature_type")
	threshold.MetricName, _ = checks.RequiredStringAt(chk, m, "metric_name", "a metric threshold")

	if m.Item("threshold") == nil {
		chk.Add(checks.NewMissingKeyError(pos, "threshold", "a metric threshold"))
	} else if val, valPos, ok := checks.FloatAt(chk, m, "threshold"); ok {
		threshold.Value = val
		threshold.ValuePos = valPos
	}

	return threshold
}
