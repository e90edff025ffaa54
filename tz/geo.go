package tz

import (
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"
)

type locator interface {
	GetTimezoneName(lng, lat float64) string
}

var defaultLocator = sync.OnceValues(func() (locator, error) {
	f, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, err
	}
	return f, nil
})

// Locate returns the zone in effect at a coordinate, using the simplified
// timezone boundaries bundled with tzf. The boundary data is loaded on first
// use.
func (r *Registry) Locate(lng, lat float64) (*Zone, error) {
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("locate %g,%g: coordinate out of range", lng, lat)
	}
	f, err := defaultLocator()
	if err != nil {
		return nil, fmt.Errorf("locate: load timezone boundaries: %w", err)
	}
	name := f.GetTimezoneName(lng, lat)
	if name == "" {
		return nil, fmt.Errorf("locate %g,%g: %w", lng, lat, ErrUnknownZone)
	}
	z, err := r.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("locate %g,%g: %w", lng, lat, err)
	}
	return z, nil
}
