package locale

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Registry stores locale definitions. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	locales  map[string]*Locale
	families map[string][]pending // children waiting for an undefined parent
	current  *Locale
}

type pending struct {
	tag  string
	spec Spec
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry creates a registry containing the built-in locales, with en as
// the current locale.
func NewRegistry() *Registry {
	r := &Registry{
		locales:  map[string]*Locale{},
		families: map[string][]pending{},
	}
	for _, b := range builtins {
		if err := r.define(b.Tag, b.Spec); err != nil {
			panic(err)
		}
	}
	r.current = r.locales["en"]
	return r
}

// Normalize lowercases tag and replaces underscores with hyphens.
func Normalize(tag string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(tag)), "_", "-")
}

// Define defines or redefines the locale tag. If spec names a parent which
// doesn't exist yet, the definition is deferred until the parent is defined.
// Defining a locale doesn't change the current locale.
func (r *Registry) Define(tag string, spec Spec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.define(tag, spec)
}

func (r *Registry) define(tag string, spec Spec) error {
	tag = Normalize(tag)
	if tag == "" {
		return ErrEmptyTag
	}
	spec.Parent = Normalize(spec.Parent)

	base := baseSpec
	if old, ok := r.locales[tag]; ok {
		slog.Warn("redefining existing locale, use Update to change part of a locale instead", "tag", tag)
		base = old.spec
	}
	if spec.Parent != "" {
		if spec.Parent == tag {
			return errorf(tag, "locale cannot be its own parent")
		}
		p, ok := r.locales[spec.Parent]
		if !ok {
			slog.Debug("deferring locale definition until parent is defined", "tag", tag, "parent", spec.Parent)
			r.families[spec.Parent] = append(r.families[spec.Parent], pending{tag, spec})
			return nil
		}
		base = p.spec
	}

	l, err := newLocale(tag, base.merge(spec))
	if err != nil {
		return err
	}
	r.locales[tag] = l
	if r.current != nil && r.current.tag == tag {
		r.current = l
	}

	if children := r.families[tag]; len(children) != 0 {
		delete(r.families, tag)
		for _, c := range children {
			if err := r.define(c.tag, c.spec); err != nil {
				slog.Warn("failed to define deferred child locale", "tag", c.tag, "parent", tag, "error", err)
			}
		}
	}
	return nil
}

// Update merges spec over the existing definition of tag (or over the base
// configuration if it doesn't exist). If spec is nil, the previous definition
// is restored, or the locale is removed if there wasn't one.
func (r *Registry) Update(tag string, spec *Spec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tag = Normalize(tag)
	if tag == "" {
		return ErrEmptyTag
	}
	old, exists := r.locales[tag]

	if spec == nil {
		if !exists {
			return nil
		}
		if old.prev != nil {
			r.locales[tag] = old.prev
		} else {
			delete(r.locales, tag)
		}
		if r.current == old {
			if old.prev != nil {
				r.current = old.prev
			} else {
				r.current = r.locales["en"]
			}
		}
		return nil
	}

	base := baseSpec
	if exists {
		base = old.spec
	} else if p := Normalize(spec.Parent); p != "" {
		if pl, ok := r.locales[p]; ok {
			base = pl.spec
		}
	}
	upd := *spec
	if upd.Parent == "" {
		upd.Parent = base.Parent
	}
	l, err := newLocale(tag, base.merge(upd))
	if err != nil {
		return err
	}
	l.prev = old
	r.locales[tag] = l
	if r.current == old && exists {
		r.current = l
	}
	return nil
}

// Get returns the locale for tag, trying progressively shorter prefixes of it
// (e.g., en-gb-x, en-gb, en).
func (r *Registry) Get(tag string) (*Locale, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.choose([]string{tag})
}

// Resolve returns the first locale matching any of tags (see Get), falling
// back to the current locale.
func (r *Registry) Resolve(tags ...string) *Locale {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if l, ok := r.choose(tags); ok {
		return l
	}
	return r.current
}

// choose implements the progressive matching: for each tag, the longest
// prefix is tried first, but a prefix is skipped if the next tag would match
// it at least as well.
func (r *Registry) choose(tags []string) (*Locale, bool) {
	for i := 0; i < len(tags); i++ {
		split := strings.Split(Normalize(tags[i]), "-")
		var next []string
		if i+1 < len(tags) {
			next = strings.Split(Normalize(tags[i+1]), "-")
		}
		for j := len(split); j > 0; j-- {
			if l, ok := r.locales[strings.Join(split[:j], "-")]; ok {
				return l, true
			}
			if next != nil && len(next) >= j && commonPrefix(split, next) >= j-1 {
				break
			}
		}
	}
	return nil, false
}

func commonPrefix(a, b []string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// SetCurrent changes the current locale to the first one matching tags, and
// returns it. If none match, the current locale is unchanged.
func (r *Registry) SetCurrent(tags ...string) *Locale {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.choose(tags); ok {
		r.current = l
	} else if len(tags) != 0 {
		slog.Warn("locale not found, current locale unchanged", "tags", tags, "current", r.current.tag)
	}
	return r.current
}

// Current returns the current locale.
func (r *Registry) Current() *Locale {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Tags returns the sorted tags of all defined locales.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.locales))
	for t := range r.locales {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}

// Pending returns the tags of locales which are waiting on an undefined
// parent.
func (r *Registry) Pending() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m := make(map[string][]string, len(r.families))
	for p, cs := range r.families {
		for _, c := range cs {
			m[p] = append(m[p], c.tag)
		}
	}
	return m
}

// Get looks up a locale in the default registry.
func Get(tag string) (*Locale, bool) {
	return defaultRegistry.Get(tag)
}

// Resolve resolves a locale in the default registry.
func Resolve(tags ...string) *Locale {
	return defaultRegistry.Resolve(tags...)
}

// Define defines a locale in the default registry.
func Define(tag string, spec Spec) error {
	return defaultRegistry.Define(tag, spec)
}

// Update updates a locale in the default registry.
func Update(tag string, spec *Spec) error {
	return defaultRegistry.Update(tag, spec)
}

// Current returns the current locale of the default registry.
func Current() *Locale {
	return defaultRegistry.Current()
}

// SetCurrent sets the current locale of the default registry.
func SetCurrent(tags ...string) *Locale {
	return defaultRegistry.SetCurrent(tags...)
}
