package template

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-passkit/pkg/pass"
)

// Definition is the decoded form of a pass template.
type Definition struct {
	PassTypeIdentifier string `json:"passTypeIdentifier" yaml:"passTypeIdentifier"`
	SerialNumber       string `json:"serialNumber" yaml:"serialNumber"`
	Description        string `json:"description" yaml:"description"`
	TeamIdentifier     string `json:"teamIdentifier" yaml:"teamIdentifier"`
	OrganizationName   string `json:"organizationName" yaml:"organizationName"`
	SharingProhibited  bool   `json:"sharingProhibited" yaml:"sharingProhibited"`

	Style       pass.Style       `json:"style" yaml:"style"`
	TransitType pass.TransitType `json:"transitType" yaml:"transitType"`

	ForegroundColor    string `json:"foregroundColor" yaml:"foregroundColor"`
	BackgroundColor    string `json:"backgroundColor" yaml:"backgroundColor"`
	LabelColor         string `json:"labelColor" yaml:"labelColor"`
	LogoText           string `json:"logoText" yaml:"logoText"`
	SuppressStripShine *bool  `json:"suppressStripShine" yaml:"suppressStripShine"`
	GroupingIdentifier string `json:"groupingIdentifier" yaml:"groupingIdentifier"`

	RelevantDate *pass.Timestamp `json:"relevantDate" yaml:"relevantDate"`
	MaxDistance  *int            `json:"maxDistance" yaml:"maxDistance"`
	Locations    []pass.Location `json:"locations" yaml:"locations"`
	Beacons      []pass.Beacon   `json:"beacons" yaml:"beacons"`

	ExpirationDate *pass.Timestamp `json:"expirationDate" yaml:"expirationDate"`
	Voided         *bool           `json:"voided" yaml:"voided"`

	AssociatedStoreIdentifiers []int64 `json:"associatedStoreIdentifiers" yaml:"associatedStoreIdentifiers"`
	AppLaunchURL               string  `json:"appLaunchURL" yaml:"appLaunchURL"`

	AuthenticationToken string `json:"authenticationToken" yaml:"authenticationToken"`
	WebServiceURL       string `json:"webServiceURL" yaml:"webServiceURL"`

	UserInfo map[string]any `json:"userInfo" yaml:"userInfo"`

	NFC      *pass.NFC      `json:"nfc" yaml:"nfc"`
	Barcode  *pass.Barcode  `json:"barcode" yaml:"barcode"`
	Barcodes []pass.Barcode `json:"barcodes" yaml:"barcodes"`

	Fields        FieldSections                `json:"fields" yaml:"fields"`
	Semantics     []SemanticDefinition         `json:"semantics" yaml:"semantics"`
	Localizations map[string]map[string]string `json:"localizations" yaml:"localizations"`
	// Images maps an image role (icon, logo, strip...) to a path relative to
	// the template file.
	Images map[string]string `json:"images" yaml:"images"`

	source string
	fsys   fs.FS
}

// Source returns the path the definition was loaded from, if any.
func (d *Definition) Source() string {
	if d == nil {
		return ""
	}
	return d.source
}

// FieldSections groups field definitions by section.
type FieldSections struct {
	Header    []FieldDefinition `json:"header" yaml:"header"`
	Primary   []FieldDefinition `json:"primary" yaml:"primary"`
	Secondary []FieldDefinition `json:"secondary" yaml:"secondary"`
	Auxiliary []FieldDefinition `json:"auxiliary" yaml:"auxiliary"`
	Back      []FieldDefinition `json:"back" yaml:"back"`
}

func (s FieldSections) bySection() [][]FieldDefinition {
	return [][]FieldDefinition{s.Header, s.Primary, s.Secondary, s.Auxiliary, s.Back}
}

// Field types accepted in FieldDefinition.Type.
const (
	FieldText   = "text"
	FieldDate   = "date"
	FieldNumber = "number"
)

// FieldDefinition describes one field. Type selects the value encoding; when
// empty it is inferred from Value (numbers become number fields, everything
// else text).
type FieldDefinition struct {
	Key               string              `json:"key" yaml:"key"`
	Label             string              `json:"label" yaml:"label"`
	ChangeMessage     string              `json:"changeMessage" yaml:"changeMessage"`
	TextAlignment     pass.TextAlignment  `json:"textAlignment" yaml:"textAlignment"`
	AttributedValue   string              `json:"attributedValue" yaml:"attributedValue"`
	DataDetectorTypes []pass.DataDetector `json:"dataDetectorTypes" yaml:"dataDetectorTypes"`
	Row               *int                `json:"row" yaml:"row"`

	Type  string  `json:"type" yaml:"type"`
	Value *Scalar `json:"value" yaml:"value"`

	DateStyle       pass.DateStyle `json:"dateStyle" yaml:"dateStyle"`
	TimeStyle       pass.DateStyle `json:"timeStyle" yaml:"timeStyle"`
	IsRelative      *bool          `json:"isRelative" yaml:"isRelative"`
	IgnoresTimeZone *bool          `json:"ignoresTimeZone" yaml:"ignoresTimeZone"`

	CurrencyCode string           `json:"currencyCode" yaml:"currencyCode"`
	NumberStyle  pass.NumberStyle `json:"numberStyle" yaml:"numberStyle"`
}

// SemanticDefinition describes one semantic tag. Type is optional: a tag with
// Values is a string list, one with Amount a currency amount, one with
// Latitude a location, one with Seats a seat list, one with PersonName a
// person name, and otherwise Value decides between string, number and bool.
// Set Type to "date" for date tags.
type SemanticDefinition struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`

	Value        *Scalar           `json:"value" yaml:"value"`
	Values       []string          `json:"values" yaml:"values"`
	Amount       *Scalar           `json:"amount" yaml:"amount"`
	CurrencyCode string            `json:"currencyCode" yaml:"currencyCode"`
	Latitude     *float64          `json:"latitude" yaml:"latitude"`
	Longitude    *float64          `json:"longitude" yaml:"longitude"`
	PersonName   *PersonDefinition `json:"personName" yaml:"personName"`
	Seats        []SeatDefinition  `json:"seats" yaml:"seats"`
}

type PersonDefinition struct {
	GivenName  string `json:"givenName" yaml:"givenName"`
	MiddleName string `json:"middleName" yaml:"middleName"`
	FamilyName string `json:"familyName" yaml:"familyName"`
	NamePrefix string `json:"namePrefix" yaml:"namePrefix"`
	NameSuffix string `json:"nameSuffix" yaml:"nameSuffix"`
	Nickname   string `json:"nickname" yaml:"nickname"`
}

type SeatDefinition struct {
	Section     string `json:"seatSection" yaml:"seatSection"`
	Row         string `json:"seatRow" yaml:"seatRow"`
	Number      string `json:"seatNumber" yaml:"seatNumber"`
	Identifier  string `json:"seatIdentifier" yaml:"seatIdentifier"`
	Type        string `json:"seatType" yaml:"seatType"`
	Description string `json:"seatDescription" yaml:"seatDescription"`
}

// ScalarKind records how a scalar was written in the source document.
type ScalarKind uint8

const (
	ScalarString ScalarKind = iota
	ScalarNumber
	ScalarBool
)

// Scalar is a template value kept in its source spelling, so 12.50 stays
// 12.50 instead of passing through float64.
type Scalar struct {
	Text string
	Kind ScalarKind
}

// UnmarshalYAML keeps the literal text of the node. Unquoted ints and floats
// are numbers and unquoted booleans are bools.
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("template: line %d: expected a scalar value", node.Line)
	}
	s.Text = node.Value
	s.Kind = ScalarString
	if node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		return nil
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		s.Kind = ScalarNumber
	case "!!bool":
		s.Kind = ScalarBool
		s.Text = strings.ToLower(node.Value)
	}
	return nil
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "true" || raw == "false":
		s.Text, s.Kind = raw, ScalarBool
	case strings.HasPrefix(raw, `"`):
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("template: decode value: %w", err)
		}
		s.Text, s.Kind = text, ScalarString
	case raw == "null" || strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, "["):
		return fmt.Errorf("template: expected a scalar value, got %s", raw)
	default:
		s.Text, s.Kind = raw, ScalarNumber
	}
	return nil
}

func (s *Scalar) String() string {
	if s == nil {
		return ""
	}
	return s.Text
}
