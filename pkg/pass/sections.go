package pass

import "fmt"

// Section names one of the five field sections.
type Section int

const (
	SectionHeader Section = iota
	SectionPrimary
	SectionSecondary
	SectionAuxiliary
	SectionBack

	sectionCount = 5
)

// Sections lists the sections in the order they are written.
var Sections = [sectionCount]Section{SectionHeader, SectionPrimary, SectionSecondary, SectionAuxiliary, SectionBack}

var sectionNames = [sectionCount]string{"header", "primary", "secondary", "auxiliary", "back"}

func (s Section) String() string {
	if !s.valid() {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionNames[s]
}

// PropertyName is the array key used in pass.json, e.g. headerFields.
func (s Section) PropertyName() string {
	return s.String() + "Fields"
}

func (s Section) valid() bool {
	return s >= 0 && s < sectionCount
}

// AddField appends field to section. The key must be non-empty and unused in
// every section of the request; otherwise ErrMissingKey or a
// DuplicateKeyError is returned and the request is left unchanged.
func (r *Request) AddField(section Section, field Field) error {
	if !section.valid() {
		return fmt.Errorf("pass: unknown field section %d", int(section))
	}
	if field.Key == "" {
		return ErrMissingKey
	}
	if existing, found := r.findKey(field.Key); found {
		return &DuplicateKeyError{Key: field.Key, Section: existing}
	}
	r.sections[section] = append(r.sections[section], field)
	return nil
}

func (r *Request) AddHeaderField(field Field) error {
	return r.AddField(SectionHeader, field)
}

func (r *Request) AddPrimaryField(field Field) error {
	return r.AddField(SectionPrimary, field)
}

func (r *Request) AddSecondaryField(field Field) error {
	return r.AddField(SectionSecondary, field)
}

func (r *Request) AddAuxiliaryField(field Field) error {
	return r.AddField(SectionAuxiliary, field)
}

func (r *Request) AddBackField(field Field) error {
	return r.AddField(SectionBack, field)
}

// Fields returns a copy of the fields in section, in insertion order.
func (r *Request) Fields(section Section) []Field {
	if !section.valid() {
		return nil
	}
	return append([]Field(nil), r.sections[section]...)
}

func (r *Request) HeaderFields() []Field    { return r.Fields(SectionHeader) }
func (r *Request) PrimaryFields() []Field   { return r.Fields(SectionPrimary) }
func (r *Request) SecondaryFields() []Field { return r.Fields(SectionSecondary) }
func (r *Request) AuxiliaryFields() []Field { return r.Fields(SectionAuxiliary) }
func (r *Request) BackFields() []Field      { return r.Fields(SectionBack) }

// HasField reports whether key is used in any section.
func (r *Request) HasField(key string) bool {
	_, found := r.findKey(key)
	return found
}

func (r *Request) findKey(key string) (Section, bool) {
	for _, section := range Sections {
		for _, field := range r.sections[section] {
			if field.Key == key {
				return section, true
			}
		}
	}
	return 0, false
}
