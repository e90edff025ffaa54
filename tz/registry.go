package tz

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrUnknownZone is returned when a zone isn't in the registry.
var ErrUnknownZone = errors.New("unknown timezone")

// Registry stores zones, links between zone names, and countries. It is safe
// for concurrent use. Zones are decoded on first use.
type Registry struct {
	mu        sync.RWMutex
	version   string
	entries   map[string]*entry   // by normalized name
	links     map[string]string   // normalized name -> normalized name
	names     map[string]string   // normalized name -> display name
	countries map[string]*Country // by upper-case code
	def       *Zone
	policy    Policy

	load singleflight.Group

	guessMu sync.Mutex
	guessed string
}

// entry is a zone which may not have been decoded yet.
type entry struct {
	zone   *Zone
	packed string
	source func() (*Zone, error)
	alias  bool
}

// Country is a ISO 3166 country and the zones used in it.
type Country struct {
	Code  string
	Zones []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:   map[string]*entry{},
		links:     map[string]string{},
		names:     map[string]string{},
		countries: map[string]*Country{},
		policy:    DefaultPolicy,
	}
}

// NormalizeName converts a zone name into the form used for lookups.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "/", "_")
}

// AddZone adds zones in the packed format.
func (r *Registry) AddZone(packed ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range packed {
		name, _, _ := strings.Cut(p, "|")
		if name == "" {
			return fmt.Errorf("add zone: %w: missing name", ErrInvalidPacked)
		}
		n := NormalizeName(name)
		r.entries[n] = &entry{packed: p}
		r.names[n] = name
	}
	r.resetGuess()
	return nil
}

// Add adds decoded zones.
func (r *Registry) Add(zones ...*Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, z := range zones {
		if !z.Valid() {
			return fmt.Errorf("add zone %q: invalid zone data", z.Name)
		}
		n := NormalizeName(z.Name)
		r.entries[n] = &entry{zone: z}
		r.names[n] = z.Name
	}
	r.resetGuess()
	return nil
}

// AddSource adds a zone which is built by fn on first use.
func (r *Registry) AddSource(name string, fn func() (*Zone, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := NormalizeName(name)
	r.entries[n] = &entry{source: fn}
	r.names[n] = name
	r.resetGuess()
}

// AddLocation adds a zone derived from loc on first use.
func (r *Registry) AddLocation(name string, loc *time.Location) {
	r.AddSource(name, func() (*Zone, error) {
		return FromLocation(name, loc)
	})
}

// AddLink adds aliases in the form "Canonical/Name|Alias/Name". Either side
// can be resolved through the other.
func (r *Registry) AddLink(links ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range links {
		a, b, ok := strings.Cut(l, "|")
		if !ok || a == "" || b == "" {
			return fmt.Errorf("add link %q: expected two names separated by |", l)
		}
		na, nb := NormalizeName(a), NormalizeName(b)
		r.links[na] = nb
		r.names[na] = a
		r.links[nb] = na
		r.names[nb] = b
	}
	return nil
}

// AddCountries adds countries in the form "CC|Zone/One Zone/Two".
func (r *Registry) AddCountries(countries ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range countries {
		code, zones, ok := strings.Cut(c, "|")
		if !ok || len(code) != 2 {
			return fmt.Errorf("add country %q: expected code|zones", c)
		}
		code = strings.ToUpper(code)
		cc := &Country{Code: code, Zones: strings.Fields(zones)}
		r.countries[code] = cc
	}
	return nil
}

// Zone returns the zone for name, following links. The returned zone has the
// requested display name.
func (r *Registry) Zone(name string) (*Zone, bool) {
	z, err := r.get(NormalizeName(name), false)
	if err != nil {
		if !errors.Is(err, ErrUnknownZone) {
			slog.Warn("failed to load zone", "name", name, "error", err)
		}
		return nil, false
	}
	return z, true
}

// Lookup is like Zone, but returns an error.
func (r *Registry) Lookup(name string) (*Zone, error) {
	z, err := r.get(NormalizeName(name), false)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", name, err)
	}
	return z, nil
}

// Exists reports whether name is a zone or link.
func (r *Registry) Exists(name string) bool {
	_, ok := r.Zone(name)
	return ok
}

func (r *Registry) get(n string, viaLink bool) (*Zone, error) {
	r.mu.RLock()
	e, ok := r.entries[n]
	link, linked := r.links[n]
	r.mu.RUnlock()

	if ok {
		return r.decode(n, e)
	}
	if linked && !viaLink {
		z, err := r.get(link, true)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		c := z.WithName(r.names[n])
		r.entries[n] = &entry{zone: c, alias: true}
		r.mu.Unlock()
		return c, nil
	}
	return nil, ErrUnknownZone
}

func (r *Registry) decode(n string, e *entry) (*Zone, error) {
	r.mu.RLock()
	z := e.zone
	r.mu.RUnlock()
	if z != nil {
		return z, nil
	}
	v, err, _ := r.load.Do(n, func() (any, error) {
		r.mu.RLock()
		packed, source, z := e.packed, e.source, e.zone
		r.mu.RUnlock()
		if z != nil {
			return z, nil
		}
		var err error
		if source != nil {
			z, err = source()
		} else {
			z, err = Unpack(packed)
		}
		if err != nil {
			return nil, err
		}
		if !z.Valid() {
			return nil, fmt.Errorf("decode zone %q: invalid zone data", z.Name)
		}
		r.mu.Lock()
		e.zone, e.packed, e.source = z, "", nil
		r.mu.Unlock()
		return z, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Zone), nil
}

// Names returns the sorted display names of all zones and links.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.names))
	for _, name := range r.names {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// zoneNames returns the display names of all zones, excluding links.
func (r *Registry) zoneNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for n, e := range r.entries {
		if e.alias {
			continue
		}
		names = append(names, r.names[n])
	}
	slices.Sort(names)
	return names
}

// Countries returns the sorted country codes.
func (r *Registry) Countries() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.countries))
	for c := range r.countries {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// ZonesForCountry returns the zone names used in the country code.
func (r *Registry) ZonesForCountry(code string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.countries[strings.ToUpper(code)]
	if !ok {
		return nil, false
	}
	return slices.Clone(c.Zones), true
}

// SetDefault sets the zone used for values created in local time. An empty
// name clears it.
func (r *Registry) SetDefault(name string) error {
	if name == "" {
		r.mu.Lock()
		r.def = nil
		r.mu.Unlock()
		return nil
	}
	z, err := r.Lookup(name)
	if err != nil {
		return fmt.Errorf("set default zone: %w", err)
	}
	r.mu.Lock()
	r.def = z
	r.mu.Unlock()
	return nil
}

// DefaultZone returns the default zone, if set.
func (r *Registry) DefaultZone() (*Zone, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.def, r.def != nil
}

// Policy returns the transition policy used for wall-clock conversions.
func (r *Registry) Policy() Policy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.policy
}

// SetPolicy changes the transition policy.
func (r *Registry) SetPolicy(p Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policy = p
}

// Version returns the data version, if known.
func (r *Registry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// SetVersion sets the data version.
func (r *Registry) SetVersion(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.version = v
}

func (r *Registry) resetGuess() {
	r.guessMu.Lock()
	r.guessed = ""
	r.guessMu.Unlock()
}
