package config

// Section names understood by the provisioning driver.
const (
	SectionPacman  = "pacman"  // packages from the official repositories
	SectionAUR     = "aur"     // packages from the Arch User Repository
	SectionService = "service" // services to enable and restart
	SectionScript  = "script"  // shell command lines to run

	// DefaultSection holds values every other section can interpolate.
	// Its entries are never provisioned themselves.
	DefaultSection = "DEFAULT"
)

// Entry is one key = value pair of a section. The key labels the entry on
// the terminal; the value is what gets installed, enabled or run.
type Entry struct {
	Key   string
	Value string
}

// Section is a named, ordered list of entries as they appear in the file.
type Section struct {
	Name    string
	Entries []Entry
}

// Len returns the number of entries in the section.
func (s Section) Len() int { return len(s.Entries) }

// Get returns the value for key and whether it exists.
func (s Section) Get(key string) (string, bool) {
	for _, e := range s.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// File is a parsed provisioning file with sections in file order.
// The DEFAULT section is not part of Sections.
type File struct {
	Path     string
	Sections []Section
}

// Section returns the named section, or an empty one when the file has none.
func (f *File) Section(name string) Section {
	for _, s := range f.Sections {
		if s.Name == name {
			return s
		}
	}
	return Section{Name: name}
}
