package pass

import (
	"io"
	"log/slog"
)

// FormatVersion is the only pass.json format version.
const FormatVersion = 1

// Request is the aggregate root of a pass: identifiers, appearance,
// relevance, barcodes, the five field sections and semantic tags. It is not
// safe for concurrent use; callers sharing a Request must serialise access.
type Request struct {
	// Standard keys. The core does not check that they are set.
	PassTypeIdentifier string
	SerialNumber       string
	Description        string
	TeamIdentifier     string
	OrganizationName   string
	SharingProhibited  bool

	Style       Style
	TransitType TransitType

	// Appearance. Colours accept #rgb, #rrggbb or rgb(r,g,b).
	ForegroundColor    string
	BackgroundColor    string
	LabelColor         string
	LogoText           string
	SuppressStripShine *bool
	GroupingIdentifier string

	// Relevance.
	RelevantDate *Timestamp
	MaxDistance  *int
	Locations    []Location
	Beacons      []Beacon

	// Expiration.
	ExpirationDate *Timestamp
	Voided         *bool

	// Associated apps.
	AssociatedStoreIdentifiers []int64
	AppLaunchURL               string

	// Web service. Both keys are written only when AuthenticationToken is set.
	AuthenticationToken string
	WebServiceURL       string

	// UserInfo is passed through to pass.json unchanged.
	UserInfo map[string]any

	NFC *NFC

	// Barcode is the legacy single barcode; Barcodes lists fallbacks in order.
	// Both are written independently.
	Barcode  *Barcode
	Barcodes []Barcode

	// Images holds raw image bytes for the packaging step.
	Images map[ImageRole][]byte

	sections      [sectionCount][]Field
	semantics     []SemanticTag
	localizations []*Localization

	populate     func(*Request) error
	populated    bool
	populateErr  error
	logger       *slog.Logger
	sanitize     func(string) string
	sanitizerSet bool
}

// NewRequest returns an empty generic pass request.
func NewRequest() *Request {
	return &Request{Style: StyleGeneric}
}

// SetLogger sets the logger used for debug output while writing. A nil logger
// silences output.
func (r *Request) SetLogger(logger *slog.Logger) *Request {
	r.logger = logger
	return r
}

// SetPopulator registers a hook that runs once, at the start of the first
// Write, to add fields or tags computed late. Later writes skip it so output
// stays identical across calls. If the hook fails, every later Write returns
// the same error until a new hook is set.
func (r *Request) SetPopulator(fn func(*Request) error) *Request {
	r.populate = fn
	r.populated = false
	r.populateErr = nil
	return r
}

// HasPopulator reports whether a populate hook is registered, whether or not
// it has run yet.
func (r *Request) HasPopulator() bool {
	return r.populate != nil
}

// SetAttributedValueSanitizer replaces the sanitiser applied to attributed
// values while writing. Pass nil to write attributed values unchanged.
func (r *Request) SetAttributedValueSanitizer(fn func(string) string) *Request {
	r.sanitize = fn
	r.sanitizerSet = true
	return r
}

// AddBarcode appends a barcode to the barcodes list.
func (r *Request) AddBarcode(format BarcodeFormat, message, encoding, altText string) *Request {
	r.Barcodes = append(r.Barcodes, NewBarcode(format, message, encoding, altText))
	return r
}

// SetBarcode sets the legacy single barcode.
func (r *Request) SetBarcode(format BarcodeFormat, message, encoding, altText string) *Request {
	barcode := NewBarcode(format, message, encoding, altText)
	r.Barcode = &barcode
	return r
}

// AddLocation appends a relevant location.
func (r *Request) AddLocation(latitude, longitude float64, relevantText string) *Request {
	r.Locations = append(r.Locations, Location{Latitude: latitude, Longitude: longitude, RelevantText: relevantText})
	return r
}

// AddBeacon appends a relevant beacon. Pass nil for major to leave both major
// and minor out.
func (r *Request) AddBeacon(proximityUUID, relevantText string, major, minor *uint16) *Request {
	r.Beacons = append(r.Beacons, Beacon{ProximityUUID: proximityUUID, RelevantText: relevantText, Major: major, Minor: minor})
	return r
}

// AddAssociatedStoreIdentifier appends an App Store identifier.
func (r *Request) AddAssociatedStoreIdentifier(id int64) *Request {
	r.AssociatedStoreIdentifiers = append(r.AssociatedStoreIdentifiers, id)
	return r
}

// AddSemanticTag appends a semantic tag. Tags are not deduplicated.
func (r *Request) AddSemanticTag(tags ...SemanticTag) *Request {
	r.semantics = append(r.semantics, tags...)
	return r
}

// SemanticTags returns a copy of the semantic tags in insertion order.
func (r *Request) SemanticTags() []SemanticTag {
	return append([]SemanticTag(nil), r.semantics...)
}

// AddLocalization sets a translation for a language, creating the language on
// first use. Keys are matched case-insensitively within a language.
func (r *Request) AddLocalization(language, key, value string) *Request {
	loc, ok := r.Localization(language)
	if !ok {
		loc = &Localization{Language: language}
		r.localizations = append(r.localizations, loc)
	}
	loc.Set(key, value)
	return r
}

// Localization returns the translations for a language.
func (r *Request) Localization(language string) (*Localization, bool) {
	for _, loc := range r.localizations {
		if loc.Language == language {
			return loc, true
		}
	}
	return nil, false
}

// Localizations returns the languages in the order they were first added.
func (r *Request) Localizations() []*Localization {
	return append([]*Localization(nil), r.localizations...)
}

// SetImage stores the bytes of an image for the packaging step.
func (r *Request) SetImage(role ImageRole, data []byte) *Request {
	if r.Images == nil {
		r.Images = make(map[ImageRole][]byte)
	}
	r.Images[role] = data
	return r
}

func (r *Request) attributedSanitizer() func(string) string {
	if r.sanitizerSet {
		return r.sanitize
	}
	return SanitizeAttributedValue
}

func (r *Request) log() *slog.Logger {
	if r.logger == nil {
		return discardLogger
	}
	return r.logger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
