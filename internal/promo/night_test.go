package promo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tawsila/internal/models"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 1, 15, hour, minute, 0, 0, time.Local)
}

func TestInNightWindowBoundaries(t *testing.T) {
	assert.False(t, InNightWindow(at(19, 59)))
	assert.True(t, InNightWindow(at(20, 0)), "window opens at 20:00")
	assert.True(t, InNightWindow(at(23, 59)))
	assert.True(t, InNightWindow(at(0, 0)), "window wraps midnight")
	assert.True(t, InNightWindow(at(5, 59)))
	assert.False(t, InNightWindow(at(6, 0)), "window closes at 06:00")
	assert.False(t, InNightWindow(at(12, 0)))
}

func TestDefaultTheme(t *testing.T) {
	assert.Equal(t, models.ThemeDark, DefaultTheme(at(22, 0)))
	assert.Equal(t, models.ThemeLight, DefaultTheme(at(10, 0)))
}

func TestNightFlagRefresh(t *testing.T) {
	current := at(12, 0)
	flag := NewNightFlag(func() time.Time { return current })
	assert.False(t, flag.Active())

	current = at(21, 0)
	assert.False(t, flag.Active(), "flag only changes on refresh, not per read")

	flag.Refresh()
	assert.True(t, flag.Active())
}
