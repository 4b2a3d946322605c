package pass

import (
	"fmt"
	"strings"
	"unicode"
)

// Style selects the style-specific object the field sections are nested under.
type Style string

const (
	StyleGeneric      Style = "Generic"
	StyleBoardingPass Style = "BoardingPass"
	StyleCoupon       Style = "Coupon"
	StyleEventTicket  Style = "EventTicket"
	StyleStoreCard    Style = "StoreCard"
)

var styles = []Style{StyleGeneric, StyleBoardingPass, StyleCoupon, StyleEventTicket, StyleStoreCard}

// Key returns the pass.json property name for the style: the style name with
// its first character lower-cased (BoardingPass becomes boardingPass). The
// zero value is treated as StyleGeneric.
func (s Style) Key() string {
	name := string(s)
	if name == "" {
		name = string(StyleGeneric)
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func (s *Style) UnmarshalText(text []byte) error {
	v, err := matchEnum("style", "", string(text), styles)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// TransitType is required for boarding passes and ignored otherwise.
type TransitType string

const (
	TransitAir     TransitType = "PKTransitTypeAir"
	TransitBoat    TransitType = "PKTransitTypeBoat"
	TransitBus     TransitType = "PKTransitTypeBus"
	TransitGeneric TransitType = "PKTransitTypeGeneric"
	TransitTrain   TransitType = "PKTransitTypeTrain"
)

var transitTypes = []TransitType{TransitAir, TransitBoat, TransitBus, TransitGeneric, TransitTrain}

func (t *TransitType) UnmarshalText(text []byte) error {
	v, err := matchEnum("transit type", "PKTransitType", string(text), transitTypes)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// TextAlignment controls how a field's label and value are aligned. The zero
// value leaves the key out of the document.
type TextAlignment string

const (
	AlignLeft    TextAlignment = "PKTextAlignmentLeft"
	AlignCenter  TextAlignment = "PKTextAlignmentCenter"
	AlignRight   TextAlignment = "PKTextAlignmentRight"
	AlignNatural TextAlignment = "PKTextAlignmentNatural"
)

var alignments = []TextAlignment{AlignLeft, AlignCenter, AlignRight, AlignNatural}

func (a *TextAlignment) UnmarshalText(text []byte) error {
	v, err := matchEnum("text alignment", "PKTextAlignment", string(text), alignments)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// DateStyle is used for both the dateStyle and timeStyle keys of date fields.
type DateStyle string

const (
	DateStyleNone   DateStyle = "PKDateStyleNone"
	DateStyleShort  DateStyle = "PKDateStyleShort"
	DateStyleMedium DateStyle = "PKDateStyleMedium"
	DateStyleLong   DateStyle = "PKDateStyleLong"
	DateStyleFull   DateStyle = "PKDateStyleFull"
)

var dateStyles = []DateStyle{DateStyleNone, DateStyleShort, DateStyleMedium, DateStyleLong, DateStyleFull}

func (d *DateStyle) UnmarshalText(text []byte) error {
	v, err := matchEnum("date style", "PKDateStyle", string(text), dateStyles)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// NumberStyle controls how number fields are displayed.
type NumberStyle string

const (
	NumberStyleDecimal    NumberStyle = "PKNumberStyleDecimal"
	NumberStylePercent    NumberStyle = "PKNumberStylePercent"
	NumberStyleScientific NumberStyle = "PKNumberStyleScientific"
	NumberStyleSpellOut   NumberStyle = "PKNumberStyleSpellOut"
)

var numberStyles = []NumberStyle{NumberStyleDecimal, NumberStylePercent, NumberStyleScientific, NumberStyleSpellOut}

func (n *NumberStyle) UnmarshalText(text []byte) error {
	v, err := matchEnum("number style", "PKNumberStyle", string(text), numberStyles)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// DataDetector names a data detector applied to back field values.
type DataDetector string

const (
	DetectPhoneNumber   DataDetector = "PKDataDetectorTypePhoneNumber"
	DetectLink          DataDetector = "PKDataDetectorTypeLink"
	DetectAddress       DataDetector = "PKDataDetectorTypeAddress"
	DetectCalendarEvent DataDetector = "PKDataDetectorTypeCalendarEvent"
)

var dataDetectors = []DataDetector{DetectPhoneNumber, DetectLink, DetectAddress, DetectCalendarEvent}

func (d *DataDetector) UnmarshalText(text []byte) error {
	v, err := matchEnum("data detector", "PKDataDetectorType", string(text), dataDetectors)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// BarcodeFormat is the symbology of a barcode.
type BarcodeFormat string

const (
	BarcodeQR      BarcodeFormat = "PKBarcodeFormatQR"
	BarcodePDF417  BarcodeFormat = "PKBarcodeFormatPDF417"
	BarcodeAztec   BarcodeFormat = "PKBarcodeFormatAztec"
	BarcodeCode128 BarcodeFormat = "PKBarcodeFormatCode128"
)

var barcodeFormats = []BarcodeFormat{BarcodeQR, BarcodePDF417, BarcodeAztec, BarcodeCode128}

func (b *BarcodeFormat) UnmarshalText(text []byte) error {
	v, err := matchEnum("barcode format", "PKBarcodeFormat", string(text), barcodeFormats)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ImageRole identifies an image asset in the bundle. Images are carried on the
// request for the packaging step and never appear in pass.json.
type ImageRole string

const (
	ImageIcon       ImageRole = "icon"
	ImageLogo       ImageRole = "logo"
	ImageStrip      ImageRole = "strip"
	ImageBackground ImageRole = "background"
	ImageFooter     ImageRole = "footer"
	ImageThumbnail  ImageRole = "thumbnail"
)

var imageRoles = []ImageRole{ImageIcon, ImageLogo, ImageStrip, ImageBackground, ImageFooter, ImageThumbnail}

// FileName returns the bundle file name for the role at the given scale
// (1, 2 or 3). Scales other than 2 and 3 map to the base name.
func (r ImageRole) FileName(scale int) string {
	switch scale {
	case 2, 3:
		return fmt.Sprintf("%s@%dx.png", r, scale)
	default:
		return string(r) + ".png"
	}
}

func (r *ImageRole) UnmarshalText(text []byte) error {
	v, err := matchEnum("image role", "", string(text), imageRoles)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// matchEnum resolves raw against the full wire names and their short forms
// (the name without prefix). Matching ignores case, '-', '_' and spaces so
// "boarding-pass", "BoardingPass" and "PKTransitTypeAir"/"air" all resolve.
// Empty input resolves to the zero value.
func matchEnum[T ~string](kind, prefix, raw string, values []T) (T, error) {
	var zero T
	needle := normalizeEnum(raw)
	if needle == "" {
		return zero, nil
	}
	for _, v := range values {
		full := string(v)
		if normalizeEnum(full) == needle || normalizeEnum(strings.TrimPrefix(full, prefix)) == needle {
			return v, nil
		}
	}
	return zero, fmt.Errorf("pass: unknown %s %q", kind, raw)
}

func normalizeEnum(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch r {
		case '-', '_', ' ':
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
