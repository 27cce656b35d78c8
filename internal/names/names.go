// Package names resolves user-supplied template names to the canonical
// file names used by the github/gitignore repository. Resolution is
// case-insensitive and alias-aware, so "py", "python" and "Python.gitignore"
// all map to "Python".
package names

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// aliases maps common shorthand to official template names. Keys are
// lowercase; lookups lowercase the input first.
var aliases = map[string]string{
	// Languages
	"c":          "C",
	"c++":        "C++",
	"cpp":        "C++",
	"cxx":        "C++",
	"csharp":     "VisualStudio",
	"c#":         "VisualStudio",
	"fsharp":     "FSharp",
	"vb":         "VisualBasic",
	"vbnet":      "VisualBasic",
	"go":         "Go",
	"golang":     "Go",
	"rust":       "Rust",
	"java":       "Java",
	"kotlin":     "Kotlin",
	"scala":      "Scala",
	"sbt":        "Scala",
	"python":     "Python",
	"py":         "Python",
	"ruby":       "Ruby",
	"php":        "PHP",
	"perl":       "Perl",
	"r":          "R",
	"matlab":     "MATLAB",
	"octave":     "Octave",
	"julia":      "Julia",
	"haskell":    "Haskell",
	"ocaml":      "OCaml",
	"erlang":     "Erlang",
	"elixir":     "Elixir",
	"clojure":    "Clojure",
	"lisp":       "CommonLisp",
	"scheme":     "Scheme",
	"racket":     "Racket",
	"lua":        "Lua",
	"tcl":        "Tcl",
	"awk":        "Awk",
	"bash":       "Bash",
	"zsh":        "Zsh",
	"fish":       "Fish",
	"powershell": "PowerShell",
	"ps1":        "PowerShell",

	// JavaScript ecosystem
	"node":       "Node",
	"npm":        "Node",
	"yarn":       "Node",
	"js":         "Node",
	"javascript": "Node",
	"ts":         "TypeScript",
	"typescript": "TypeScript",
	"react":      "React",
	"vue":        "Vue",
	"angular":    "Angular",
	"svelte":     "Svelte",
	"next":       "Next.js",
	"nuxt":       "Nuxt.js",
	"gatsby":     "Gatsby",

	// Frameworks and build tools
	"django":  "Django",
	"flask":   "Flask",
	"fastapi": "FastAPI",
	"rails":   "Rails",
	"spring":  "Spring",
	"gradle":  "Gradle",
	"maven":   "Maven",

	// Editors and IDEs (Global/ templates)
	"vscode":    "Global/VisualStudioCode",
	"jetbrains": "Global/JetBrains",
	"intellij":  "Global/JetBrains",
	"idea":      "Global/JetBrains",
	"vim":       "Global/Vim",
	"emacs":     "Global/Emacs",
	"sublime":   "Global/SublimeText",
	"atom":      "Global/Atom",
	"eclipse":   "Global/Eclipse",
	"netbeans":  "Global/NetBeans",
	"xcode":     "Global/Xcode",

	// Operating systems and platforms
	"macos":   "Global/macOS",
	"mac":     "Global/macOS",
	"windows": "Global/Windows",
	"linux":   "Global/Linux",
	"android": "Global/Android",
	"ios":     "Global/iOS",

	// Infrastructure
	"docker":     "Docker",
	"kubernetes": "Kubernetes",
	"k8s":        "Kubernetes",
	"terraform":  "Terraform",
	"ansible":    "Ansible",
	"vagrant":    "Vagrant",
	"packer":     "Packer",
	"helm":       "Helm",

	// Version control
	"git":       "Git",
	"svn":       "Subversion",
	"hg":        "Mercurial",
	"bzr":       "Bazaar",
	"cvs":       "CVS",
	"darcs":     "Darcs",
	"fossil":    "Fossil",
	"monotone":  "Monotone",
	"arch":      "Arch",
	"bitkeeper": "BitKeeper",
	"perforce":  "Perforce",
	"p4":        "Perforce",
	"p4v":       "Perforce",
	"p4d":       "Perforce",
	"clearcase": "ClearCase",
	"tfs":       "TFS",
	"vss":       "VSS",
	"rcs":       "RCS",
	"sccs":      "SCCS",
}

// Resolver resolves template names. User-defined overrides take precedence
// over the builtin alias table.
type Resolver struct {
	overrides map[string]string
}

// NewResolver returns a Resolver that consults overrides before the builtin
// aliases. Override keys are matched case-insensitively.
func NewResolver(overrides map[string]string) *Resolver {
	r := &Resolver{}
	if len(overrides) > 0 {
		r.overrides = make(map[string]string, len(overrides))
		for alias, canonical := range overrides {
			r.overrides[strings.ToLower(alias)] = canonical
		}
	}
	return r
}

// Normalize returns the canonical form of a single template name. A trailing
// ".gitignore" suffix is stripped, aliases are applied, and unknown
// all-lowercase names get their first letter uppercased.
func (r *Resolver) Normalize(name string) string {
	name = strings.TrimSuffix(name, ".gitignore")
	key := strings.ToLower(name)
	if r != nil {
		if canonical, ok := r.overrides[key]; ok {
			return canonical
		}
	}
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return titleize(name)
}

// Resolve normalizes every name in the list and drops duplicates, keeping
// the first occurrence's position.
func (r *Resolver) Resolve(list []string) []string {
	resolved := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, name := range list {
		canonical := r.Normalize(name)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		resolved = append(resolved, canonical)
	}
	return resolved
}

var defaultResolver = &Resolver{}

// Normalize resolves a single name using only the builtin aliases.
func Normalize(name string) string {
	return defaultResolver.Normalize(name)
}

// Resolve resolves a list of names using only the builtin aliases.
func Resolve(list []string) []string {
	return defaultResolver.Resolve(list)
}

// Parse splits a comma- or space-separated list of template names, dropping
// empty entries. "python, go node" yields ["python", "go", "node"].
func Parse(input string) []string {
	return strings.Fields(strings.ReplaceAll(input, ",", " "))
}

// titleize uppercases the first letter of all-lowercase path segments.
// Segments already carrying uppercase letters pass through untouched, so
// canonical names like "Global/macOS" or "Next.js" round-trip exactly.
func titleize(name string) string {
	parts := strings.Split(name, "/")
	for i, part := range parts {
		if part == strings.ToLower(part) {
			parts[i] = upperFirst(part)
		}
	}
	return strings.Join(parts, "/")
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
