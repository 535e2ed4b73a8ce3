package risk

import "time"

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordEvaluation(string, bool, int)   {}
func (n *NoopMetricsCollector) RecordRuleHit(string)                 {}
func (n *NoopMetricsCollector) RecordError(string, string)           {}
func (n *NoopMetricsCollector) RecordDuration(string, time.Duration) {}
