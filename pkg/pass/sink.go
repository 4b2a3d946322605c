package pass

// Sink receives the token stream produced by Request.Write. Implementations
// keep the first error they encounter and ignore later calls; Write reports
// it through Err once the document is complete. jsonwriter.Writer is the
// standard implementation.
type Sink interface {
	BeginObject()
	EndObject()
	BeginArray()
	EndArray()
	// Name writes a property name inside an object.
	Name(name string)
	String(v string)
	Bool(v bool)
	Int(v int64)
	Float(v float64)
	// Decimal writes an already validated decimal literal as a raw number.
	Decimal(lexical string)
	// Raw writes a pre-serialised JSON fragment as a single value.
	Raw(fragment []byte)
	Err() error
}

func writeString(s Sink, name, value string) {
	s.Name(name)
	s.String(value)
}

func writeOptionalString(s Sink, name, value string) {
	if value == "" {
		return
	}
	writeString(s, name, value)
}

func writeOptionalBool(s Sink, name string, value *bool) {
	if value == nil {
		return
	}
	s.Name(name)
	s.Bool(*value)
}
