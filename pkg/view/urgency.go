package view

import (
	"math"
	"time"

	"todoconsole/pkg/api"
)

// Tier classifies how close a due date is. It is derived fresh at
// render time and never persisted.
type Tier int

// Urgency tiers, from no deadline to overdue-or-imminent.
const (
	TierNone Tier = iota
	TierNormal
	TierWarning
	TierUrgent
)

const (
	urgentDays  = 7
	warningDays = 14
)

// Urgency returns the tier for a due date relative to now. Days are
// counted with a ceiling, so a due date later today is one full day out
// at midnight boundaries and already counts against the threshold.
func Urgency(due *api.Date, now time.Time) Tier {
	if due == nil || due.IsZero() {
		return TierNone
	}

	days := int(math.Ceil(due.Time().Sub(now).Hours() / 24))

	switch {
	case days <= urgentDays:
		return TierUrgent
	case days <= warningDays:
		return TierWarning
	default:
		return TierNormal
	}
}
