// Package countdown splits the time left before an event into display units.
package countdown

import "time"

// Remaining is the time left until a target, truncated to whole seconds.
type Remaining struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Started bool `json:"started"`
}

// Until returns what is left between now and target. Once target is reached
// every unit is zero and Started is true.
func Until(now, target time.Time) Remaining {
	d := target.Sub(now)
	if d <= 0 {
		return Remaining{Started: true}
	}
	total := int64(d / time.Second)
	return Remaining{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}
