// Package testdata contains locale definitions and zone bundles shared by
// tests.
package testdata

import (
	"embed"
	"io/fs"
	"path"
	"testing"
)

//go:generate go run generate.go

//go:embed locales bundles
var testdata embed.FS

// Locales returns the locale definition files. The file name without the
// extension is the locale tag.
func Locales() fs.FS {
	sf, err := fs.Sub(testdata, "locales")
	if err != nil {
		panic(err)
	}
	return sf
}

// Bundle returns the contents of the named zone bundle, panicking if it
// doesn't exist.
func Bundle(name string) []byte {
	buf, err := fs.ReadFile(testdata, path.Join("bundles", name))
	if err != nil {
		panic("testdata: nothing for " + name)
	}
	return buf
}

// Bundles runs fn as a subtest for each stored zone bundle, including the
// compressed variants.
func Bundles(t *testing.T, fn func(t *testing.T, buf []byte)) {
	fis, err := fs.ReadDir(testdata, "bundles")
	if err != nil {
		panic(err)
	}
	for _, fi := range fis {
		if !fi.IsDir() {
			t.Run(fi.Name(), func(t *testing.T) {
				fn(t, Bundle(fi.Name()))
			})
		}
	}
}
