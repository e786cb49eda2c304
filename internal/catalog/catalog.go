package catalog

import "time"

/*
A Summary is a record of what a single conversion run did.
It is the primitive for verifying and auditing conversions:
a completed run always reports how many leaf candidates were
seen and how many were dropped, so silent data loss stays
observable even when individual causes are not itemized.
*/

// Summary represents the counters of one parse (or parse+export) run.
type Summary struct {
	StartTime  time.Time `json:"start_time" yaml:"start_time"`
	EndTime    time.Time `json:"end_time" yaml:"end_time"`
	Source     string    `json:"source" yaml:"source"`
	Candidates int       `json:"candidates" yaml:"candidates"`
	Created    int       `json:"created" yaml:"created"`
	Errors     int       `json:"errors" yaml:"errors"`
	Completed  bool      `json:"completed" yaml:"completed"`
}
