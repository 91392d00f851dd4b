// Package requirements reads pip-style requirements files into the ordered
// list of package specifiers they name.
package requirements

import (
	"bufio"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// Parse returns every non-blank, non-comment line of r, trimmed, in order.
// Lines have no length limit.
// Specifiers are opaque: version constraints, extras and markers are kept
// verbatim.
func Parse(r io.Reader) ([]string, error) {
	pkgs := []string{}
	reader := bufio.NewReader(r)
	for {
		raw, err := reader.ReadString('\n')
		if line := strings.TrimSpace(raw); line != "" && !strings.HasPrefix(line, "#") {
			pkgs = append(pkgs, line)
		}
		if err == io.EOF {
			return pkgs, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func ParseFile(fs afero.Fs, path string) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
