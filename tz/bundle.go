package tz

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Bundle is zone data in the moment-timezone JSON format:
//
//	{
//		"version": "2024a",
//		"zones": ["America/New_York|EST EDT EWT EPT|50 40 40 40|...", ...],
//		"links": ["America/New_York|US/Eastern", ...],
//		"countries": ["US|America/New_York America/Detroit ...", ...]
//	}
type Bundle struct {
	Version   string   `json:"version"`
	Zones     []string `json:"zones"`
	Links     []string `json:"links"`
	Countries []string `json:"countries,omitempty"`
}

// Compression is the compression used for a bundle.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	}
	return fmt.Sprintf("Compression(%d)", int(c))
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// ReadBundle reads a bundle, which may be gzip or zstd compressed.
func ReadBundle(r io.Reader) (*Bundle, error) {
	br := bufio.NewReader(r)
	magic, _ := br.Peek(4)

	var (
		buf []byte
		err error
	)
	switch {
	case bytes.HasPrefix(magic, zstdMagic):
		var zr *zstd.Decoder
		if zr, err = zstd.NewReader(br); err != nil {
			return nil, fmt.Errorf("read bundle: zstd: %w", err)
		}
		defer zr.Close()
		buf, err = io.ReadAll(zr)
	case bytes.HasPrefix(magic, gzipMagic):
		var zr *gzip.Reader
		if zr, err = gzip.NewReader(br); err != nil {
			return nil, fmt.Errorf("read bundle: gzip: %w", err)
		}
		defer zr.Close()
		buf, err = io.ReadAll(zr)
	default:
		buf, err = io.ReadAll(br)
	}
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	return ParseBundle(buf)
}

// ParseBundle parses an uncompressed bundle.
func ParseBundle(buf []byte) (*Bundle, error) {
	if !gjson.ValidBytes(buf) {
		return nil, fmt.Errorf("parse bundle: invalid json")
	}
	v := gjson.ParseBytes(buf)
	if !v.IsObject() {
		return nil, fmt.Errorf("parse bundle: expected object, got %s", v.Type)
	}
	var (
		b   Bundle
		err error
	)
	b.Version = v.Get("version").String()
	if b.Zones, err = bundleStrings(v, "zones"); err != nil {
		return nil, err
	}
	if b.Links, err = bundleStrings(v, "links"); err != nil {
		return nil, err
	}
	if b.Countries, err = bundleStrings(v, "countries"); err != nil {
		return nil, err
	}
	return &b, nil
}

func bundleStrings(v gjson.Result, key string) ([]string, error) {
	x := v.Get(key)
	if !x.Exists() || x.Type == gjson.Null {
		return nil, nil
	}
	if !x.IsArray() {
		return nil, fmt.Errorf("parse bundle: %s: expected array, got %s", key, x.Type)
	}
	var r []string
	for i, e := range x.Array() {
		if e.Type != gjson.String {
			return nil, fmt.Errorf("parse bundle: %s[%d]: expected string, got %s", key, i, e.Type)
		}
		r = append(r, e.Str)
	}
	return r, nil
}

// Load reads a bundle into the registry.
func (r *Registry) Load(rd io.Reader) error {
	b, err := ReadBundle(rd)
	if err != nil {
		return err
	}
	return r.LoadBundle(b)
}

// LoadBundle adds the contents of b to the registry. Zones are decoded
// lazily, so malformed zones are only reported when they are used.
func (r *Registry) LoadBundle(b *Bundle) error {
	if err := r.AddZone(b.Zones...); err != nil {
		return fmt.Errorf("load bundle: %w", err)
	}
	if err := r.AddLink(b.Links...); err != nil {
		return fmt.Errorf("load bundle: %w", err)
	}
	if err := r.AddCountries(b.Countries...); err != nil {
		return fmt.Errorf("load bundle: %w", err)
	}
	if b.Version != "" {
		r.SetVersion(b.Version)
	}
	slog.Debug("loaded zone bundle", "version", b.Version, "zones", len(b.Zones), "links", len(b.Links), "countries", len(b.Countries))
	return nil
}

// Export packs the named zones (or all zones if none are specified), the
// links between them, and the countries into a bundle.
func (r *Registry) Export(names ...string) (*Bundle, error) {
	if len(names) == 0 {
		names = r.zoneNames()
	}
	b := &Bundle{
		Version: r.Version(),
	}
	include := map[string]bool{}
	for _, name := range names {
		z, err := r.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		b.Zones = append(b.Zones, Pack(z))
		include[NormalizeName(name)] = true
	}

	r.mu.RLock()
	for a, c := range r.links {
		if include[a] && !include[c] {
			b.Links = append(b.Links, r.names[a]+"|"+r.names[c])
		}
	}
	for _, c := range r.countries {
		var zones []string
		for _, z := range c.Zones {
			if include[NormalizeName(z)] {
				zones = append(zones, z)
			}
		}
		if len(zones) != 0 {
			b.Countries = append(b.Countries, c.Code+"|"+strings.Join(zones, " "))
		}
	}
	r.mu.RUnlock()

	slices.Sort(b.Links)
	slices.Sort(b.Countries)
	return b, nil
}

// WriteBundle writes b with the specified compression. If indent is true, the
// JSON is pretty-printed.
func WriteBundle(w io.Writer, b *Bundle, c Compression, indent bool) error {
	buf, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	if indent {
		buf = pretty.Pretty(buf)
	}
	switch c {
	case None:
		_, err = w.Write(buf)
	case Gzip:
		zw := gzip.NewWriter(w)
		if _, err = zw.Write(buf); err == nil {
			err = zw.Close()
		}
	case Zstd:
		var zw *zstd.Encoder
		if zw, err = zstd.NewWriter(w); err == nil {
			if _, err = zw.Write(buf); err == nil {
				err = zw.Close()
			}
		}
	default:
		err = fmt.Errorf("unsupported compression %s", c)
	}
	if err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	return nil
}
