package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"todoconsole/pkg/api"
	"todoconsole/pkg/view"
)

func fixedToday() time.Time {
	return time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
}

func dueOn(assert *assert.Assertions, s string) *api.Date {
	date, err := api.ParseDate(s)
	assert.Nil(err)

	return &date
}

func TestUrgencyTiers(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	today := fixedToday()

	assert.Equal(view.TierUrgent, view.Urgency(dueOn(assert, "2024-07-05"), today))
	assert.Equal(view.TierWarning, view.Urgency(dueOn(assert, "2024-07-10"), today))
	assert.Equal(view.TierNormal, view.Urgency(dueOn(assert, "2024-07-20"), today))
	assert.Equal(view.TierNone, view.Urgency(nil, today))
}

func TestUrgencyBoundaries(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	today := fixedToday()

	// exactly 7 days out is still urgent, 8 is warning
	assert.Equal(view.TierUrgent, view.Urgency(dueOn(assert, "2024-07-08"), today))
	assert.Equal(view.TierWarning, view.Urgency(dueOn(assert, "2024-07-09"), today))

	// exactly 14 days out is still warning, 15 is normal
	assert.Equal(view.TierWarning, view.Urgency(dueOn(assert, "2024-07-15"), today))
	assert.Equal(view.TierNormal, view.Urgency(dueOn(assert, "2024-07-16"), today))

	// overdue stays urgent
	assert.Equal(view.TierUrgent, view.Urgency(dueOn(assert, "2024-06-01"), today))
}

func TestViewUrgencyUsesInjectedClock(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	v := view.New(&fakeClient{}, fixedToday)

	assert.Equal(view.TierUrgent, v.Urgency(dueOn(assert, "2024-07-05")))
	assert.Equal(view.TierNone, v.Urgency(nil))
}
