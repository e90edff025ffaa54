// Command chrono parses, converts and formats dates.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pgaskin/chrono/locale"
	"github.com/pgaskin/chrono/moment"
	"github.com/pgaskin/chrono/tz"
)

const EnvPrefix = "CHRONO"

var (
	Format   = flag.String("format", "", "Output format (default ISO 8601 with offset)")
	In       = flag_Strings("in", "Input format (may be specified multiple times; the best match is used)")
	Strict   = flag.Bool("strict", false, "Require input to exactly match the input formats")
	UTC      = flag.Bool("utc", false, "Parse and output in UTC")
	TZ       = flag.String("tz", "", "Output timezone name (e.g., America/New_York)")
	Locale   = flag.String("locale", "", "Locale tag (e.g., en-gb)")
	Locales  = flag.String("locales", "", "Directory of additional YAML/TOML/JSON locale files")
	Bundle   = flag.String("bundle", "", "Additional moment-timezone zone bundle (may be gzip or zstd compressed)")
	Zones    = flag.Bool("zones", false, "List the known zone names and exit")
	Guess    = flag.Bool("guess", false, "Print the guessed host zone name and exit")
	Locate   = flag.String("locate", "", "Output in the zone at a coordinate (lng,lat)")
	Relative = flag.Bool("relative", false, "Also print the time relative to now")
	LogLevel = flag_Level("log-level", 0, "Log level (debug/info/warn/error)")
	LogJSON  = flag.Bool("log-json", false, "Output logs as JSON")
)

func flag_Level(name string, value slog.Level, usage string) *slog.Level {
	v := new(slog.Level)
	flag.TextVar(v, name, value, usage)
	return v
}

func flag_Strings(name string, usage string) *[]string {
	v := new([]string)
	flag.Func(name, usage, func(s string) error {
		if s == "" {
			return errors.New("empty value")
		}
		*v = append(*v, s)
		return nil
	})
	return v
}

func main() {
	// parse config
	flag.CommandLine.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options] [input...]\n", flag.CommandLine.Name())
		fmt.Fprintf(flag.CommandLine.Output(), "\noptions:\n")
		flag.CommandLine.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\nnote: all options can be specified as environment variables with the prefix %q and dashes replaced with underscores\n", EnvPrefix)
	}
	for _, e := range os.Environ() {
		if e, ok := strings.CutPrefix(e, EnvPrefix+"_"); ok {
			if k, v, ok := strings.Cut(e, "="); ok {
				if err := flag.CommandLine.Set(strings.ReplaceAll(strings.ToLower(k), "_", "-"), v); err != nil {
					fmt.Fprintf(flag.CommandLine.Output(), "env %s: %v\n", k, err)
					flag.CommandLine.Usage()
					os.Exit(2)
				}
			}
		}
	}
	flag.Parse()

	// setup slog if required
	var logOptions *slog.HandlerOptions
	if *LogLevel != 0 {
		logOptions = &slog.HandlerOptions{
			Level: *LogLevel,
		}
	}
	if *LogJSON {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, logOptions)))
	} else if logOptions != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, logOptions)))
	}

	if err := load(); err != nil {
		slog.Error("load data", "error", err)
		os.Exit(1)
	}

	switch {
	case *Zones:
		for _, n := range tz.Default().Names() {
			fmt.Println(n)
		}
		return
	case *Guess:
		n := tz.Default().Guess(false)
		if n == "" {
			slog.Error("failed to guess zone")
			os.Exit(1)
		}
		fmt.Println(n)
		return
	}

	zone, err := outputZone(tz.Default(), *TZ, *Locate)
	if err != nil {
		slog.Error("resolve output zone", "error", err)
		os.Exit(1)
	}

	c := converter{
		Formats:  *In,
		Format:   *Format,
		Zone:     zone,
		Relative: *Relative,
	}
	if *Locale != "" {
		c.Options = append(c.Options, moment.WithLocale(*Locale))
	}
	if *Strict {
		c.Options = append(c.Options, moment.Strict())
	}
	if *UTC {
		c.Options = append(c.Options, moment.UTC())
	}

	if flag.NArg() == 0 {
		c.Now(os.Stdout)
		return
	}
	var failed bool
	for _, arg := range flag.Args() {
		if err := c.Convert(os.Stdout, arg); err != nil {
			slog.Error("failed to convert input", "input", arg, "error", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// load adds the locale and zone data specified on the command line to the
// default registries.
func load() error {
	if *Locales != "" {
		n, err := locale.Default().LoadFS(os.DirFS(*Locales))
		if err != nil {
			return fmt.Errorf("load locales from %q: %w", *Locales, err)
		}
		slog.Info("loaded locales", "dir", *Locales, "count", n)
	}
	if *Bundle != "" {
		f, err := os.Open(*Bundle)
		if err != nil {
			return fmt.Errorf("load bundle: %w", err)
		}
		defer f.Close()

		if err := tz.Default().Load(f); err != nil {
			return fmt.Errorf("load bundle %q: %w", *Bundle, err)
		}
		slog.Info("loaded zone bundle", "file", *Bundle, "version", tz.Default().Version())
	}
	return nil
}

// outputZone resolves the zone named by name, or the zone at the coordinate
// in locate. If neither is set, it returns nil.
func outputZone(r *tz.Registry, name, locate string) (*tz.Zone, error) {
	switch {
	case name != "" && locate != "":
		return nil, errors.New("only one of a zone name or a coordinate may be specified")
	case name != "":
		return r.Lookup(name)
	case locate != "":
		lng, lat, err := parseCoord(locate)
		if err != nil {
			return nil, err
		}
		z, err := r.Locate(lng, lat)
		if err != nil {
			return nil, err
		}
		slog.Debug("located zone", "lng", lng, "lat", lat, "zone", z.Name)
		return z, nil
	}
	return nil, nil
}

func parseCoord(s string) (lng, lat float64, err error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("parse coordinate %q: expected lng,lat", s)
	}
	if lng, err = strconv.ParseFloat(strings.TrimSpace(a), 64); err != nil {
		return 0, 0, fmt.Errorf("parse coordinate %q: longitude: %w", s, err)
	}
	if lat, err = strconv.ParseFloat(strings.TrimSpace(b), 64); err != nil {
		return 0, 0, fmt.Errorf("parse coordinate %q: latitude: %w", s, err)
	}
	return lng, lat, nil
}

type converter struct {
	Formats  []string
	Format   string
	Zone     *tz.Zone
	Relative bool
	Options  []moment.Option
}

// Convert parses input and writes it to w.
func (c converter) Convert(w io.Writer, input string) error {
	var m moment.Moment
	switch len(c.Formats) {
	case 0:
		m = moment.Parse(input, c.Options...)
	case 1:
		m = moment.ParseFormat(input, c.Formats[0], c.Options...)
	default:
		m = moment.ParseFormats(input, c.Formats, c.Options...)
	}
	if !m.IsValid() {
		if f := m.InvalidAt(); f != moment.NoField {
			return fmt.Errorf("invalid date (%s overflow)", f)
		}
		return errors.New("invalid date")
	}
	c.write(w, m)
	return nil
}

// Now writes the current time to w.
func (c converter) Now(w io.Writer) {
	c.write(w, moment.Now(c.Options...))
}

func (c converter) write(w io.Writer, m moment.Moment) {
	if c.Zone != nil {
		m = m.InZone(c.Zone, false)
	}
	if c.Relative {
		fmt.Fprintf(w, "%s\t%s\n", m.Format(c.Format), m.FromNow(false))
	} else {
		fmt.Fprintln(w, m.Format(c.Format))
	}
}
