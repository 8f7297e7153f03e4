package promo

import (
	"sync"
	"time"

	"tawsila/internal/models"
)

// Night window bounds, local clock. The window wraps midnight.
const (
	nightStartHour = 20
	nightEndHour   = 6
)

// InNightWindow reports whether t falls inside the 20:00-06:00 promotional
// window.
func InNightWindow(t time.Time) bool {
	h := t.Hour()
	return h >= nightStartHour || h < nightEndHour
}

// DefaultTheme is the first-load heuristic for accounts with no stored
// preference: dark at night, light otherwise. Evaluated once at read time;
// the stored value never auto-flips afterwards.
func DefaultTheme(t time.Time) models.Theme {
	if InNightWindow(t) {
		return models.ThemeDark
	}
	return models.ThemeLight
}

// NightFlag caches the cosmetic night-bonus state. It is independent of the
// light/dark theme and is refreshed on a timer rather than computed per
// request, matching how the banner behaves product-side (updates within a
// minute of the window edge).
type NightFlag struct {
	mu     sync.RWMutex
	active bool
	now    func() time.Time
}

func NewNightFlag(now func() time.Time) *NightFlag {
	if now == nil {
		now = time.Now
	}
	f := &NightFlag{now: now}
	f.Refresh()
	return f
}

func (f *NightFlag) Refresh() {
	active := InNightWindow(f.now())
	f.mu.Lock()
	f.active = active
	f.mu.Unlock()
}

func (f *NightFlag) Active() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.active
}
