package detect

import (
	"errors"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOSName(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"windows", "windows"},
		{"darwin", "macos"},
		{"linux", "linux"},
		{"freebsd", "linux"},
		{"plan9", "linux"},
	}
	for _, tt := range tests {
		if got := osName(tt.goos); got != tt.want {
			t.Errorf("osName(%q) = %q, want %q", tt.goos, got, tt.want)
		}
	}
}

func TestOSTemplates(t *testing.T) {
	tests := []struct {
		system string
		want   []string
	}{
		{"windows", []string{"Windows"}},
		{"macos", []string{"macOS"}},
		{"linux", []string{"Linux"}},
		{"something-else", []string{"Linux"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, OSTemplates(tt.system)); diff != "" {
			t.Errorf("OSTemplates(%q) mismatch (-want +got):\n%s", tt.system, diff)
		}
	}
}

// fakeLookPath reports only the listed tools as installed.
func fakeLookPath(installed ...string) LookPathFunc {
	set := make(map[string]bool, len(installed))
	for _, tool := range installed {
		set[tool] = true
	}
	return func(file string) (string, error) {
		if set[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
}

func TestDevTemplates(t *testing.T) {
	tests := []struct {
		name      string
		installed []string
		want      []string
	}{
		{"nothing installed", nil, nil},
		{"node only", []string{"node"}, []string{"Node"}},
		{"python and node", []string{"python3", "node"}, []string{"Python", "Node"}},
		{"python3 and python dedupe", []string{"python3", "python"}, []string{"Python"}},
		{"cargo and rustc dedupe", []string{"cargo", "rustc"}, []string{"Rust"}},
		{
			"several tools keep table order",
			[]string{"java", "go", "node"},
			[]string{"Node", "Go", "Java"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DevTemplates(fakeLookPath(tt.installed...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DevTemplates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAutoTemplatesOSFirst(t *testing.T) {
	got := AutoTemplates(fakeLookPath("python3", "node"))

	if len(got) < 3 {
		t.Fatalf("AutoTemplates = %v, want OS template plus Python and Node", got)
	}
	wantFirst := OSTemplates(OperatingSystem())[0]
	if got[0] != wantFirst {
		t.Errorf("first template = %q, want OS template %q", got[0], wantFirst)
	}
	if got[1] != "Python" || got[2] != "Node" {
		t.Errorf("dev templates out of order: %v", got)
	}
}

func TestAutoTemplatesNoTools(t *testing.T) {
	got := AutoTemplates(fakeLookPath())
	want := OSTemplates(OperatingSystem())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AutoTemplates mismatch (-want +got):\n%s", diff)
	}
}

func TestAutoTemplatesNoDuplicates(t *testing.T) {
	got := AutoTemplates(fakeLookPath("python3", "python", "cargo", "rustc"))
	seen := make(map[string]int)
	for _, tmpl := range got {
		seen[tmpl]++
	}
	for tmpl, n := range seen {
		if n > 1 {
			t.Errorf("template %q appears %d times in %v", tmpl, n, got)
		}
	}
}

func TestHost(t *testing.T) {
	info := Host()
	if info.Arch != runtime.GOARCH {
		t.Errorf("Arch = %q, want %q", info.Arch, runtime.GOARCH)
	}
	if info.Platform == "" {
		t.Error("Platform should never be empty")
	}
}
