package requirements

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "comments and blanks dropped",
			input: "# comment\nflask==2.0\n\nrequests>=2.25\n",
			want:  []string{"flask==2.0", "requests>=2.25"},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "   numpy  \n\t# indented comment\n\tpandas[excel]>=2 ; python_version>'3.8'\r\n",
			want:  []string{"numpy", "pandas[excel]>=2 ; python_version>'3.8'"},
		},
		{
			name:  "no trailing newline",
			input: "six",
			want:  []string{"six"},
		},
		{
			name:  "inline text after specifier kept verbatim",
			input: "wheel # pinned elsewhere\n",
			want:  []string{"wheel # pinned elsewhere"},
		},
		{
			name:  "only comments",
			input: "# a\n#b\n\n   \n",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/requirements.txt", []byte("b\na\n"), 0644))

	got, err := ParseFile(fs, "/work/requirements.txt")
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, got)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(afero.NewMemMapFs(), "/work/missing.txt")
	require.Error(t, err)
}

func TestParseLongLine(t *testing.T) {
	long := "pkg @ https://example.invalid/" + strings.Repeat("a", 2<<20)
	got, err := Parse(strings.NewReader("flask\n" + long + "\nsix\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"flask", long, "six"}, got)
}
