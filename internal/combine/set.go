package combine

// TemplateSet is an insertion-ordered mapping from template name to raw
// template content. Section order in the combined output and first-wins
// deduplication both follow insertion order, so a plain map cannot be used
// here. Adding a name twice overwrites the content but keeps the position
// of the first insertion.
type TemplateSet struct {
	names    []string
	contents map[string]string
}

// NewTemplateSet returns an empty set.
func NewTemplateSet() *TemplateSet {
	return &TemplateSet{contents: make(map[string]string)}
}

// Add inserts or replaces the content for name.
func (s *TemplateSet) Add(name, content string) {
	if s.contents == nil {
		s.contents = make(map[string]string)
	}
	if _, ok := s.contents[name]; !ok {
		s.names = append(s.names, name)
	}
	s.contents[name] = content
}

// Get returns the content for name.
func (s *TemplateSet) Get(name string) (string, bool) {
	content, ok := s.contents[name]
	return content, ok
}

// Names returns the template names in insertion order. The returned slice
// is a copy; mutating it does not affect the set.
func (s *TemplateSet) Names() []string {
	return append([]string(nil), s.names...)
}

// Len reports the number of templates in the set.
func (s *TemplateSet) Len() int {
	return len(s.names)
}
