package pass

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-passkit/pkg/jsonwriter"
)

// prepared holds values that can fail to encode. They are computed before the
// first token is written so a failing request never leaves a partial document
// in the sink.
type prepared struct {
	foreground string
	background string
	label      string
	userInfo   []byte
}

// Write emits the complete pass.json document into s. The populate hook runs
// first (once per request), then keys are written in this order: semantics,
// standard keys, userInfo, relevance, appearance, expiration, barcodes, nfc,
// the style object with the five field sections, the legacy barcode and the
// web service keys. Writing an unmodified request again produces identical
// output. A failed hook is not retried; its error is returned by every later
// Write until SetPopulator is called again.
func (r *Request) Write(s Sink) error {
	if r.populateErr != nil {
		return r.populateErr
	}
	if r.populate != nil && !r.populated {
		r.populated = true
		if err := r.populate(r); err != nil {
			r.populateErr = fmt.Errorf("pass: populate fields: %w", err)
			return r.populateErr
		}
	}

	values, err := r.prepare()
	if err != nil {
		return err
	}

	logger := r.log()
	s.BeginObject()

	logger.Debug("writing semantics", "tags", len(r.semantics))
	writeSemantics(s, r.semantics)

	logger.Debug("writing standard keys")
	r.writeStandardKeys(s)

	logger.Debug("writing user information")
	if values.userInfo != nil {
		s.Name("userInfo")
		s.Raw(values.userInfo)
	}

	logger.Debug("writing relevance keys")
	r.writeRelevanceKeys(s)

	logger.Debug("writing appearance keys")
	r.writeAppearanceKeys(s, values)

	logger.Debug("writing expiration keys")
	r.writeExpirationKeys(s)

	logger.Debug("writing barcode keys", "barcodes", len(r.Barcodes))
	r.writeBarcodes(s)

	if r.NFC != nil {
		logger.Debug("writing nfc keys")
		r.writeNFC(s)
	}

	logger.Debug("opening style section", "style", r.Style.Key())
	s.Name(r.Style.Key())
	s.BeginObject()
	for _, section := range Sections {
		logger.Debug("writing "+section.String()+" fields", "count", len(r.sections[section]))
		r.writeSection(s, section)
	}
	if r.Style == StyleBoardingPass {
		writeString(s, "transitType", string(r.TransitType))
	}
	logger.Debug("closing style section")
	s.EndObject()

	if r.Barcode != nil {
		s.Name("barcode")
		r.Barcode.write(s)
	}
	r.writeWebServiceKeys(s)

	s.EndObject()
	if err := s.Err(); err != nil {
		return fmt.Errorf("pass: write: %w", err)
	}
	return nil
}

// MarshalJSON renders the request as compact JSON.
func (r *Request) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(jsonwriter.New(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Request) prepare() (prepared, error) {
	var out prepared
	var err error
	if out.foreground, err = NormalizeColor(r.ForegroundColor); err != nil {
		return prepared{}, err
	}
	if out.background, err = NormalizeColor(r.BackgroundColor); err != nil {
		return prepared{}, err
	}
	if out.label, err = NormalizeColor(r.LabelColor); err != nil {
		return prepared{}, err
	}
	if r.UserInfo != nil {
		if out.userInfo, err = json.Marshal(r.UserInfo); err != nil {
			return prepared{}, fmt.Errorf("pass: encode userInfo: %w", err)
		}
	}
	return out, nil
}

func (r *Request) writeStandardKeys(s Sink) {
	writeString(s, "passTypeIdentifier", r.PassTypeIdentifier)
	s.Name("formatVersion")
	s.Int(FormatVersion)
	writeString(s, "serialNumber", r.SerialNumber)
	writeString(s, "description", r.Description)
	writeString(s, "organizationName", r.OrganizationName)
	writeString(s, "teamIdentifier", r.TeamIdentifier)
	s.Name("sharingProhibited")
	s.Bool(r.SharingProhibited)
	writeOptionalString(s, "logoText", r.LogoText)

	if len(r.AssociatedStoreIdentifiers) > 0 {
		s.Name("associatedStoreIdentifiers")
		s.BeginArray()
		for _, id := range r.AssociatedStoreIdentifiers {
			s.Int(id)
		}
		s.EndArray()
	}
	writeOptionalString(s, "appLaunchURL", r.AppLaunchURL)
}

func (r *Request) writeRelevanceKeys(s Sink) {
	if r.RelevantDate != nil {
		writeString(s, "relevantDate", r.RelevantDate.Format())
	}
	if r.MaxDistance != nil {
		s.Name("maxDistance")
		s.Int(int64(*r.MaxDistance))
	}
	if len(r.Locations) > 0 {
		s.Name("locations")
		s.BeginArray()
		for _, location := range r.Locations {
			location.write(s)
		}
		s.EndArray()
	}
	if len(r.Beacons) > 0 {
		s.Name("beacons")
		s.BeginArray()
		for _, beacon := range r.Beacons {
			beacon.write(s)
		}
		s.EndArray()
	}
}

func (r *Request) writeAppearanceKeys(s Sink, values prepared) {
	writeOptionalString(s, "foregroundColor", values.foreground)
	writeOptionalString(s, "backgroundColor", values.background)
	writeOptionalString(s, "labelColor", values.label)
	writeOptionalBool(s, "suppressStripShine", r.SuppressStripShine)
	writeOptionalString(s, "groupingIdentifier", r.GroupingIdentifier)
}

func (r *Request) writeExpirationKeys(s Sink) {
	if r.ExpirationDate != nil {
		writeString(s, "expirationDate", r.ExpirationDate.Format())
	}
	writeOptionalBool(s, "voided", r.Voided)
}

func (r *Request) writeBarcodes(s Sink) {
	if len(r.Barcodes) == 0 {
		return
	}
	s.Name("barcodes")
	s.BeginArray()
	for _, barcode := range r.Barcodes {
		barcode.write(s)
	}
	s.EndArray()
}

func (r *Request) writeNFC(s Sink) {
	if r.NFC.Message == "" {
		return
	}
	s.Name("nfc")
	r.NFC.write(s)
}

func (r *Request) writeSection(s Sink, section Section) {
	sanitize := r.attributedSanitizer()
	s.Name(section.PropertyName())
	s.BeginArray()
	for _, field := range r.sections[section] {
		writeField(s, field, sanitize)
	}
	s.EndArray()
}

// writeWebServiceKeys writes authenticationToken and webServiceURL together,
// and only when a token is set. The URL is written even when empty.
func (r *Request) writeWebServiceKeys(s Sink) {
	if r.AuthenticationToken == "" {
		return
	}
	writeString(s, "authenticationToken", r.AuthenticationToken)
	writeString(s, "webServiceURL", r.WebServiceURL)
}
