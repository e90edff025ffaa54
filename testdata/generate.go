//go:build ignore

package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pgaskin/chrono/tz"
)

// regenerates the compressed variants of the sample bundle
func main() {
	src := filepath.Join("bundles", "sample.json")
	slog.Info("reading bundle", "name", src)

	buf, err := os.ReadFile(src)
	if err != nil {
		slog.Error("failed to read bundle", "error", err)
		os.Exit(1)
	}
	b, err := tz.ParseBundle(buf)
	if err != nil {
		slog.Error("failed to parse bundle", "error", err)
		os.Exit(1)
	}
	for ext, c := range map[string]tz.Compression{
		".gz":  tz.Gzip,
		".zst": tz.Zstd,
	} {
		var out bytes.Buffer
		if err := tz.WriteBundle(&out, b, c, true); err != nil {
			slog.Error("failed to write bundle", "compression", c, "error", err)
			os.Exit(1)
		}
		n := src + ext
		slog.Info("writing", "name", n)
		if err := os.WriteFile(n, out.Bytes(), 0644); err != nil {
			slog.Error("failed to write file", "error", err)
			os.Exit(1)
		}
	}
}
