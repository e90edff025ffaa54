package tz

import (
	_ "embed"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/tidwall/gjson"
)

//go:embed zones.json
var manifest []byte

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	if err := r.loadManifest(manifest); err != nil {
		panic(err)
	}
	return r
})

// Default returns the process-wide registry. On first use, it is populated
// with the zones listed in the embedded manifest, with transitions taken from
// Go's tzdata.
func Default() *Registry {
	return defaultRegistry()
}

// loadManifest adds zones built from time.LoadLocation for each name in a
// manifest:
//
//	{
//		"version": "...",
//		"zones": [{"name": "America/New_York", "population": 21000000, "countries": ["US"]}, ...],
//		"links": ["America/New_York|US/Eastern", ...]
//	}
func (r *Registry) loadManifest(buf []byte) error {
	if !gjson.ValidBytes(buf) {
		return fmt.Errorf("load manifest: invalid json")
	}
	v := gjson.ParseBytes(buf)

	var (
		links     []string
		countries = map[string][]string{}
		order     []string
	)
	for _, z := range v.Get("zones").Array() {
		name := z.Get("name").String()
		if name == "" {
			return fmt.Errorf("load manifest: zone without name")
		}
		population := z.Get("population").Int()
		var codes []string
		for _, c := range z.Get("countries").Array() {
			code := strings.ToUpper(c.String())
			codes = append(codes, code)
			if _, ok := countries[code]; !ok {
				order = append(order, code)
			}
			countries[code] = append(countries[code], name)
		}
		r.AddSource(name, func() (*Zone, error) {
			loc, err := time.LoadLocation(name)
			if err != nil {
				return nil, fmt.Errorf("load zone %q from tzdata: %w", name, err)
			}
			z, err := FromLocation(name, loc)
			if err != nil {
				return nil, err
			}
			z.Population = population
			z.Countries = codes
			return z, nil
		})
	}
	for _, l := range v.Get("links").Array() {
		links = append(links, l.String())
	}
	if err := r.AddLink(links...); err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	var cs []string
	for _, code := range order {
		cs = append(cs, code+"|"+strings.Join(countries[code], " "))
	}
	if err := r.AddCountries(cs...); err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	version := v.Get("version").String()
	if version == "tzdata" {
		version += "-" + runtime.Version() // whatever is bundled with the toolchain
	}
	r.SetVersion(version)
	slog.Debug("loaded zone manifest", "zones", len(v.Get("zones").Array()), "links", len(links), "countries", len(cs))
	return nil
}
