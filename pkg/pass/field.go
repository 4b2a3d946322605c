package pass

// Field is a labelled value shown in one of the five field sections. The
// common keys live on Field itself; Content carries the variant (Text, Date or
// Number) with its own value encoding. A nil Content omits the value key.
type Field struct {
	Key               string
	Label             string
	ChangeMessage     string
	TextAlignment     TextAlignment
	AttributedValue   string
	DataDetectorTypes []DataDetector
	// Row places auxiliary fields of some styles on the first (0) or second
	// (1) row.
	Row     *int
	Content FieldContent
}

// FieldContent is implemented by Text, Date and Number only.
type FieldContent interface {
	isFieldContent()
}

// Text is a plain string value.
type Text struct {
	Value string
}

// Date is a date/time value displayed with the given styles.
type Date struct {
	Value           Timestamp
	DateStyle       DateStyle
	TimeStyle       DateStyle
	IsRelative      *bool
	IgnoresTimeZone *bool
}

// Number is an exact decimal value. Setting CurrencyCode displays it as a
// currency amount.
type Number struct {
	Value        Decimal
	CurrencyCode string
	NumberStyle  NumberStyle
}

func (Text) isFieldContent()   {}
func (Date) isFieldContent()   {}
func (Number) isFieldContent() {}

// NewTextField returns a field holding a string value.
func NewTextField(key, label, value string) Field {
	return Field{Key: key, Label: label, Content: Text{Value: value}}
}

// NewDateField returns a field holding a date. Pass the zero DateStyle to
// leave either style key out.
func NewDateField(key, label string, value Timestamp, dateStyle, timeStyle DateStyle) Field {
	return Field{Key: key, Label: label, Content: Date{Value: value, DateStyle: dateStyle, TimeStyle: timeStyle}}
}

// NewNumberField returns a field holding a decimal number.
func NewNumberField(key, label string, value Decimal, style NumberStyle) Field {
	return Field{Key: key, Label: label, Content: Number{Value: value, NumberStyle: style}}
}

// NewCurrencyField returns a number field displayed in the given ISO 4217
// currency.
func NewCurrencyField(key, label string, value Decimal, currencyCode string) Field {
	return Field{Key: key, Label: label, Content: Number{Value: value, CurrencyCode: currencyCode}}
}

func (f Field) WithLabel(label string) Field {
	f.Label = label
	return f
}

func (f Field) WithChangeMessage(message string) Field {
	f.ChangeMessage = message
	return f
}

func (f Field) WithAlignment(alignment TextAlignment) Field {
	f.TextAlignment = alignment
	return f
}

// WithAttributedValue sets the HTML-ish value shown instead of the plain
// value. Only anchor tags survive sanitising at write time.
func (f Field) WithAttributedValue(value string) Field {
	f.AttributedValue = value
	return f
}

func (f Field) WithRow(row int) Field {
	f.Row = &row
	return f
}

// WithDataDetectors sets the detectors applied to the value. Calling it with
// no arguments writes an empty list, which disables detection.
func (f Field) WithDataDetectors(detectors ...DataDetector) Field {
	f.DataDetectorTypes = append([]DataDetector{}, detectors...)
	return f
}

// writeField renders the shared keys, then the variant keys and value.
func writeField(s Sink, f Field, sanitize func(string) string) {
	s.BeginObject()
	writeString(s, "key", f.Key)
	writeOptionalString(s, "changeMessage", f.ChangeMessage)
	writeOptionalString(s, "textAlignment", string(f.TextAlignment))
	writeOptionalString(s, "label", f.Label)

	switch content := f.Content.(type) {
	case Text:
		writeString(s, "value", content.Value)
	case Date:
		writeOptionalString(s, "dateStyle", string(content.DateStyle))
		writeOptionalString(s, "timeStyle", string(content.TimeStyle))
		writeOptionalBool(s, "isRelative", content.IsRelative)
		writeOptionalBool(s, "ignoresTimeZone", content.IgnoresTimeZone)
		writeString(s, "value", content.Value.Format())
	case Number:
		writeOptionalString(s, "currencyCode", content.CurrencyCode)
		writeOptionalString(s, "numberStyle", string(content.NumberStyle))
		s.Name("value")
		s.Decimal(content.Value.String())
	}

	if f.AttributedValue != "" {
		value := f.AttributedValue
		if sanitize != nil {
			value = sanitize(value)
		}
		writeString(s, "attributedValue", value)
	}
	if f.DataDetectorTypes != nil {
		s.Name("dataDetectorTypes")
		s.BeginArray()
		for _, detector := range f.DataDetectorTypes {
			s.String(string(detector))
		}
		s.EndArray()
	}
	if f.Row != nil {
		s.Name("row")
		s.Int(int64(*f.Row))
	}
	s.EndObject()
}
