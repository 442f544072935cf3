package scheduler

// Statistics represents aggregate scheduling metrics
type Statistics struct {
	AverageWaitTime     float64 `json:"averageWaitTime" yaml:"averageWaitTime"`
	AverageResponseTime float64 `json:"averageResponseTime" yaml:"averageResponseTime"`
	Throughput          float64 `json:"throughput" yaml:"throughput"`
	Completed           int     `json:"completed" yaml:"completed"`
	Time                int     `json:"time" yaml:"time"`
}

// counters accumulate monotonically; statistics are derived from them only.
type counters struct {
	totalWaitTime     int
	totalResponseTime int
	completed         int
}

func (c *counters) statistics(now int) Statistics {
	ret := Statistics{Completed: c.completed, Time: now}
	if c.completed > 0 {
		ret.AverageWaitTime = float64(c.totalWaitTime) / float64(c.completed)
		ret.AverageResponseTime = float64(c.totalResponseTime) / float64(c.completed)
	}
	if now > 0 {
		ret.Throughput = float64(c.completed) / float64(now)
	}
	return ret
}
