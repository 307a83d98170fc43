package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

const exampleExt = ".ds"

//go:embed examples/*.ds
var examplesFS embed.FS

//go:embed web
var webFS embed.FS

// WebUI is the preview page, rooted at internal/assets/web.
var WebUI fs.FS

func init() {
	// Embed paths include the leading directory; strip it for serving at '/'.
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	WebUI = sub
}

// ExampleNames lists the embedded example scripts in display order, without the
// numeric prefix and extension ("1-clock.ds" is "clock").
func ExampleNames() []string {
	files := exampleFiles()
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = exampleName(f)
	}
	return names
}

// Example returns the script of the named example.
func Example(name string) (string, error) {
	for _, f := range exampleFiles() {
		if exampleName(f) == name {
			data, err := examplesFS.ReadFile(path.Join("examples", f))
			if err != nil {
				return "", err
			}
			return string(data), nil
		}
	}
	return "", fmt.Errorf("example %q: %w", name, fs.ErrNotExist)
}

func exampleFiles() []string {
	entries, err := examplesFS.ReadDir("examples")
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), exampleExt) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files
}

func exampleName(file string) string {
	name := strings.TrimSuffix(file, exampleExt)
	if i := strings.IndexByte(name, '-'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
