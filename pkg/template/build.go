package template

import (
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-passkit/pkg/pass"
)

// Build converts the definition into a request. Image paths are read from
// fsys; when fsys is nil the filesystem the definition was loaded from is
// used. Fields are added in document order, so a key repeated anywhere in the
// template fails with pass.ErrDuplicateKey.
func (d *Definition) Build(fsys fs.FS) (*pass.Request, error) {
	if d == nil {
		return nil, fmt.Errorf("template: nil definition")
	}
	if fsys == nil {
		fsys = d.fsys
	}

	r := pass.NewRequest()
	r.PassTypeIdentifier = d.PassTypeIdentifier
	r.SerialNumber = d.SerialNumber
	r.Description = d.Description
	r.TeamIdentifier = d.TeamIdentifier
	r.OrganizationName = d.OrganizationName
	r.SharingProhibited = d.SharingProhibited
	if d.Style != "" {
		r.Style = d.Style
	}
	r.TransitType = d.TransitType

	r.ForegroundColor = d.ForegroundColor
	r.BackgroundColor = d.BackgroundColor
	r.LabelColor = d.LabelColor
	r.LogoText = d.LogoText
	r.SuppressStripShine = d.SuppressStripShine
	r.GroupingIdentifier = d.GroupingIdentifier

	r.RelevantDate = d.RelevantDate
	r.MaxDistance = d.MaxDistance
	r.Locations = append([]pass.Location(nil), d.Locations...)
	r.Beacons = append([]pass.Beacon(nil), d.Beacons...)

	r.ExpirationDate = d.ExpirationDate
	r.Voided = d.Voided

	r.AssociatedStoreIdentifiers = append([]int64(nil), d.AssociatedStoreIdentifiers...)
	r.AppLaunchURL = d.AppLaunchURL
	r.AuthenticationToken = d.AuthenticationToken
	r.WebServiceURL = d.WebServiceURL
	r.UserInfo = d.UserInfo

	if d.NFC != nil {
		nfc := *d.NFC
		r.NFC = &nfc
	}
	if d.Barcode != nil {
		b := d.Barcode
		r.SetBarcode(b.Format, b.Message, b.MessageEncoding, b.AltText)
	}
	for _, b := range d.Barcodes {
		r.AddBarcode(b.Format, b.Message, b.MessageEncoding, b.AltText)
	}

	for idx, defs := range d.Fields.bySection() {
		section := pass.Sections[idx]
		for pos, def := range defs {
			field, err := def.field()
			if err != nil {
				return nil, fmt.Errorf("template: %s field %d: %w", section, pos, err)
			}
			if err := r.AddField(section, field); err != nil {
				return nil, fmt.Errorf("template: %s field %q: %w", section, def.Key, err)
			}
		}
	}

	for pos, def := range d.Semantics {
		tag, err := def.tag()
		if err != nil {
			return nil, fmt.Errorf("template: semantic tag %d (%s): %w", pos, def.Name, err)
		}
		r.AddSemanticTag(tag)
	}

	for _, language := range sortedKeys(d.Localizations) {
		entries := d.Localizations[language]
		for _, key := range sortedKeys(entries) {
			r.AddLocalization(language, key, entries[key])
		}
	}

	if err := d.loadImages(fsys, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (d *Definition) loadImages(fsys fs.FS, r *pass.Request) error {
	if len(d.Images) == 0 {
		return nil
	}
	if fsys == nil {
		return fmt.Errorf("template: images require a filesystem")
	}
	for _, name := range sortedKeys(d.Images) {
		var role pass.ImageRole
		if err := role.UnmarshalText([]byte(name)); err != nil {
			return fmt.Errorf("template: image %q: %w", name, err)
		}
		target := d.resolve(d.Images[name])
		data, err := fs.ReadFile(fsys, target)
		if err != nil {
			return fmt.Errorf("template: read image %s: %w", target, err)
		}
		r.SetImage(role, data)
	}
	return nil
}

func (def FieldDefinition) field() (pass.Field, error) {
	if strings.TrimSpace(def.Key) == "" {
		return pass.Field{}, pass.ErrMissingKey
	}
	field := pass.Field{
		Key:               def.Key,
		Label:             def.Label,
		ChangeMessage:     def.ChangeMessage,
		TextAlignment:     def.TextAlignment,
		AttributedValue:   def.AttributedValue,
		DataDetectorTypes: def.DataDetectorTypes,
		Row:               def.Row,
	}

	kind := strings.ToLower(strings.TrimSpace(def.Type))
	if kind == "" {
		kind = FieldText
		if def.Value != nil && def.Value.Kind == ScalarNumber {
			kind = FieldNumber
		}
	}

	switch kind {
	case FieldText:
		if def.Value != nil {
			field.Content = pass.Text{Value: def.Value.Text}
		}
	case FieldDate:
		if def.Value == nil {
			return pass.Field{}, fmt.Errorf("date field %q has no value", def.Key)
		}
		ts, err := pass.ParseTimestamp(def.Value.Text)
		if err != nil {
			return pass.Field{}, err
		}
		field.Content = pass.Date{
			Value:           ts,
			DateStyle:       def.DateStyle,
			TimeStyle:       def.TimeStyle,
			IsRelative:      def.IsRelative,
			IgnoresTimeZone: def.IgnoresTimeZone,
		}
	case FieldNumber, "currency":
		if def.Value == nil {
			return pass.Field{}, fmt.Errorf("number field %q has no value", def.Key)
		}
		value, err := pass.ParseDecimal(def.Value.Text)
		if err != nil {
			return pass.Field{}, err
		}
		field.Content = pass.Number{Value: value, CurrencyCode: def.CurrencyCode, NumberStyle: def.NumberStyle}
	default:
		return pass.Field{}, fmt.Errorf("unknown field type %q", def.Type)
	}
	return field, nil
}

func (def SemanticDefinition) tag() (pass.SemanticTag, error) {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return pass.SemanticTag{}, fmt.Errorf("semantic tag name is required")
	}

	kind := strings.ToLower(strings.TrimSpace(def.Type))
	if kind == "" {
		kind = def.inferType()
	}

	switch kind {
	case "string":
		return pass.StringTag(name, def.Value.String()), nil
	case "strings":
		return pass.StringsTag(name, def.Values...), nil
	case "date":
		ts, err := pass.ParseTimestamp(def.Value.String())
		if err != nil {
			return pass.SemanticTag{}, err
		}
		return pass.DateTag(name, ts), nil
	case "number":
		value, err := pass.ParseDecimal(def.Value.String())
		if err != nil {
			return pass.SemanticTag{}, err
		}
		return pass.NumberTag(name, value), nil
	case "bool":
		value, err := strconv.ParseBool(def.Value.String())
		if err != nil {
			return pass.SemanticTag{}, fmt.Errorf("invalid bool %q", def.Value.String())
		}
		return pass.BoolTag(name, value), nil
	case "currency":
		if def.Amount == nil {
			return pass.SemanticTag{}, fmt.Errorf("currency tag requires an amount")
		}
		if _, err := pass.ParseDecimal(def.Amount.Text); err != nil {
			return pass.SemanticTag{}, err
		}
		return pass.CurrencyTag(name, def.Amount.Text, def.CurrencyCode), nil
	case "location":
		if def.Latitude == nil || def.Longitude == nil {
			return pass.SemanticTag{}, fmt.Errorf("location tag requires latitude and longitude")
		}
		return pass.LocationTag(name, *def.Latitude, *def.Longitude), nil
	case "personname", "person":
		if def.PersonName == nil {
			return pass.SemanticTag{}, fmt.Errorf("person name tag requires personName")
		}
		p := def.PersonName
		return pass.SemanticTag{Name: name, Value: pass.PersonName{
			GivenName:  p.GivenName,
			MiddleName: p.MiddleName,
			FamilyName: p.FamilyName,
			NamePrefix: p.NamePrefix,
			NameSuffix: p.NameSuffix,
			Nickname:   p.Nickname,
		}}, nil
	case "seats":
		seats := make([]pass.Seat, 0, len(def.Seats))
		for _, s := range def.Seats {
			seats = append(seats, pass.Seat{
				Section:     s.Section,
				Row:         s.Row,
				Number:      s.Number,
				Identifier:  s.Identifier,
				Type:        s.Type,
				Description: s.Description,
			})
		}
		return pass.SemanticTag{Name: name, Value: pass.SemanticSeats(seats)}, nil
	default:
		return pass.SemanticTag{}, fmt.Errorf("unknown semantic type %q", def.Type)
	}
}

func (def SemanticDefinition) inferType() string {
	switch {
	case def.Values != nil:
		return "strings"
	case def.Amount != nil:
		return "currency"
	case def.Latitude != nil || def.Longitude != nil:
		return "location"
	case def.PersonName != nil:
		return "personname"
	case def.Seats != nil:
		return "seats"
	case def.Value != nil && def.Value.Kind == ScalarNumber:
		return "number"
	case def.Value != nil && def.Value.Kind == ScalarBool:
		return "bool"
	default:
		return "string"
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
