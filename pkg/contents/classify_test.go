package contents

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "single package",
			line: "usr/bin/vim editors/vim",
			want: []string{"editors/vim"},
		},
		{
			name: "multiple packages",
			line: "bin/a pkg1,pkg2,pkg3",
			want: []string{"pkg1", "pkg2", "pkg3"},
		},
		{
			name: "area prefixes kept verbatim",
			line: "usr/share/doc/x admin/foo,doc/bar",
			want: []string{"admin/foo", "doc/bar"},
		},
		{
			name: "empty line",
			line: "",
			want: nil,
		},
		{
			name: "whitespace only",
			line: "   \t  ",
			want: nil,
		},
		{
			name: "multiple whitespace runs use last field",
			line: "usr/share/a file   \t  pkg1,pkg2",
			want: []string{"pkg1", "pkg2"},
		},
		{
			name: "no whitespace degenerates to whole line",
			line: "garbage-without-spaces",
			want: []string{"garbage-without-spaces"},
		},
		{
			name: "no whitespace with commas still splits",
			line: "pkg1,pkg2",
			want: []string{"pkg1", "pkg2"},
		},
		{
			name: "empty tokens dropped",
			line: "bin/a pkg1,,pkg2,",
			want: []string{"pkg1", "pkg2"},
		},
		{
			name: "only commas yields nothing",
			line: "bin/a ,,,",
			want: nil,
		},
		{
			name: "surrounding whitespace trimmed",
			line: "  bin/a pkg1  ",
			want: []string{"pkg1"},
		},
		{
			name: "duplicate names preserved",
			line: "bin/a pkg1,pkg1",
			want: []string{"pkg1", "pkg1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func BenchmarkClassify(b *testing.B) {
	line := "usr/share/doc/some/deep/path/README.Debian admin/base-files,doc/debian-doc,utils/coreutils"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Classify(line)
	}
}
