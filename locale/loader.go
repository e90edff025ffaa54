package locale

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ParseFile decodes a locale definition. The format is chosen based on the
// file extension (.yaml, .yml, .toml or .json).
func ParseFile(name string, buf []byte) (Spec, error) {
	var spec Spec
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(buf))
		dec.KnownFields(true)
		if err := dec.Decode(&spec); err != nil {
			return spec, fmt.Errorf("parse yaml: %w", err)
		}
	case ".toml":
		md, err := toml.Decode(string(buf), &spec)
		if err != nil {
			return spec, fmt.Errorf("parse toml: %w", err)
		}
		if u := md.Undecoded(); len(u) != 0 {
			return spec, fmt.Errorf("parse toml: unknown key %q", u[0].String())
		}
	case ".json":
		if !gjson.ValidBytes(buf) {
			return spec, fmt.Errorf("parse json: invalid json")
		}
		var err error
		if spec, err = parseJSON(gjson.ParseBytes(buf)); err != nil {
			return spec, fmt.Errorf("parse json: %w", err)
		}
	default:
		return spec, fmt.Errorf("unsupported locale file extension %q", ext)
	}
	return spec, nil
}

func parseJSON(v gjson.Result) (Spec, error) {
	var spec Spec
	if !v.IsObject() {
		return spec, fmt.Errorf("expected object, got %s", v.Type)
	}
	var err error
	v.ForEach(func(key, value gjson.Result) bool {
		switch k := key.String(); k {
		case "parentLocale":
			spec.Parent = value.String()
		case "months":
			spec.Months, err = jsonStrings(k, value)
		case "monthsShort":
			spec.MonthsShort, err = jsonStrings(k, value)
		case "monthsParseExact":
			spec.MonthsParseExact = value.Bool()
		case "weekdays":
			spec.Weekdays, err = jsonStrings(k, value)
		case "weekdaysShort":
			spec.WeekdaysShort, err = jsonStrings(k, value)
		case "weekdaysMin":
			spec.WeekdaysMin, err = jsonStrings(k, value)
		case "longDateFormat":
			spec.LongDateFormat, err = jsonMap(k, value)
		case "calendar":
			spec.Calendar, err = jsonMap(k, value)
		case "relativeTime":
			spec.RelativeTime, err = jsonMap(k, value)
		case "ordinal":
			spec.Ordinal = value.String()
		case "dayOfMonthOrdinalParse":
			spec.OrdinalParse = value.String()
		case "am":
			spec.AM = value.String()
		case "pm":
			spec.PM = value.String()
		case "meridiemParse":
			spec.MeridiemParse = value.String()
		case "week":
			if !value.IsObject() {
				err = fmt.Errorf("%s: expected object", k)
				break
			}
			spec.Week = &Week{
				Dow: int(value.Get("dow").Int()),
				Doy: int(value.Get("doy").Int()),
			}
		case "invalidDate":
			spec.InvalidDate = value.String()
		default:
			err = fmt.Errorf("unknown key %q", k)
		}
		return err == nil
	})
	return spec, err
}

func jsonStrings(k string, v gjson.Result) ([]string, error) {
	if !v.IsArray() {
		return nil, fmt.Errorf("%s: expected array, got %s", k, v.Type)
	}
	var r []string
	for _, x := range v.Array() {
		if x.Type != gjson.String {
			return nil, fmt.Errorf("%s: expected string, got %s", k, x.Type)
		}
		r = append(r, x.Str)
	}
	return r, nil
}

func jsonMap(k string, v gjson.Result) (map[string]string, error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("%s: expected object, got %s", k, v.Type)
	}
	r := map[string]string{}
	var err error
	v.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			err = fmt.Errorf("%s.%s: expected string, got %s", k, key.String(), value.Type)
			return false
		}
		r[key.String()] = value.Str
		return true
	})
	return r, err
}

// LoadFS defines every locale file in the root of fsys, using the file name
// without the extension as the tag. Files may be in any order; children are
// defined as soon as their parent is. It returns the number of locales read.
func (r *Registry) LoadFS(fsys fs.FS) (int, error) {
	ents, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return 0, fmt.Errorf("read locale dir: %w", err)
	}
	var n int
	for _, ent := range ents {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		switch strings.ToLower(path.Ext(name)) {
		case ".yaml", ".yml", ".toml", ".json":
		default:
			continue
		}
		buf, err := fs.ReadFile(fsys, name)
		if err != nil {
			return n, fmt.Errorf("read locale %q: %w", name, err)
		}
		spec, err := ParseFile(name, buf)
		if err != nil {
			return n, fmt.Errorf("load locale %q: %w", name, err)
		}
		tag := strings.TrimSuffix(name, path.Ext(name))
		if err := r.Define(tag, spec); err != nil {
			return n, fmt.Errorf("define locale %q: %w", tag, err)
		}
		slog.Debug("loaded locale", "tag", Normalize(tag), "file", name)
		n++
	}
	if p := r.Pending(); len(p) != 0 {
		slog.Warn("some locales are missing their parent", "pending", p)
	}
	return n, nil
}
