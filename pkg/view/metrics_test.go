package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"todoconsole/pkg/view"
)

func TestFormatAverageTime(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal("01:01:01", view.FormatAverageTime(3661))
	assert.Equal("00:00:59", view.FormatAverageTime(59))
	assert.Equal("00:00:00", view.FormatAverageTime(0))
	assert.Equal("00:01:00", view.FormatAverageTime(60))

	// hours are unbounded past 24
	assert.Equal("100:00:00", view.FormatAverageTime(360000))

	// fractional seconds truncate
	assert.Equal("00:00:59", view.FormatAverageTime(59.9))
}
