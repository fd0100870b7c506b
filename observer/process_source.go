package observer

import (
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessSource infers "resumed" events from process creation times, the
// desktop stand-in for the platform usage-stats query. A process whose
// creation falls inside the requested range counts as having come to the
// foreground at that instant.
type ProcessSource struct{}

func NewProcessSource() *ProcessSource {
	return &ProcessSource{}
}

func (ps *ProcessSource) ResumedEvents(start, end time.Time) ([]ResumedEvent, error) {
	processes, err := process.Processes()
	if err != nil {
		return nil, err
	}

	var events []ResumedEvent
	for _, p := range processes {
		if p == nil {
			continue
		}
		name, err := p.Name()
		if err != nil {
			continue
		}
		createdMs, err := p.CreateTime()
		if err != nil {
			continue
		}
		created := time.UnixMilli(createdMs)
		if created.Before(start) || created.After(end) {
			continue
		}
		events = append(events, ResumedEvent{AppID: name, Timestamp: created})
	}
	return events, nil
}
