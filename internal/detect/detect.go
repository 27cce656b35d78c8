// Package detect guesses which templates fit the current machine by looking
// at the operating system and the development tools available on PATH.
package detect

import (
	"os/exec"
	"runtime"
)

// OperatingSystem reports the running system as "windows", "macos" or
// "linux". Anything unrecognized is treated as linux.
func OperatingSystem() string {
	return osName(runtime.GOOS)
}

func osName(goos string) string {
	switch goos {
	case "windows":
		return "windows"
	case "darwin":
		return "macos"
	default:
		return "linux"
	}
}

// OSTemplates returns the template names covering OS noise files
// (Thumbs.db, .DS_Store, swap files) for the given system name.
func OSTemplates(system string) []string {
	switch system {
	case "windows":
		return []string{"Windows"}
	case "macos":
		return []string{"macOS"}
	default:
		return []string{"Linux"}
	}
}

// devTools maps a binary on PATH to the template it suggests. Order matters:
// detection output follows this list, so results are deterministic.
var devTools = []struct {
	tool     string
	template string
}{
	{"python3", "Python"},
	{"python", "Python"},
	{"node", "Node"},
	{"go", "Go"},
	{"cargo", "Rust"},
	{"rustc", "Rust"},
	{"java", "Java"},
	{"ruby", "Ruby"},
	{"php", "PHP"},
	{"swift", "Swift"},
	{"dart", "Dart"},
	{"dotnet", "VisualStudio"},
	{"elixir", "Elixir"},
}

// LookPathFunc matches the signature of exec.LookPath. Tests substitute a
// fake to control which tools appear installed.
type LookPathFunc func(file string) (string, error)

// DevTemplates returns templates suggested by development tools found on
// PATH. A nil lookPath uses exec.LookPath.
func DevTemplates(lookPath LookPathFunc) []string {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	var found []string
	seen := make(map[string]bool)
	for _, dt := range devTools {
		if seen[dt.template] {
			continue
		}
		if _, err := lookPath(dt.tool); err == nil {
			seen[dt.template] = true
			found = append(found, dt.template)
		}
	}
	return found
}

// AutoTemplates combines OS and development-tool detection. OS templates
// come first and duplicates are dropped.
func AutoTemplates(lookPath LookPathFunc) []string {
	templates := OSTemplates(OperatingSystem())
	seen := make(map[string]bool, len(templates))
	for _, t := range templates {
		seen[t] = true
	}
	for _, t := range DevTemplates(lookPath) {
		if seen[t] {
			continue
		}
		seen[t] = true
		templates = append(templates, t)
	}
	return templates
}
