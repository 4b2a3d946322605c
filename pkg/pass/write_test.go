package pass_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-passkit/pkg/jsonwriter"
	"github.com/goliatone/go-passkit/pkg/pass"
)

func writeCompact(t *testing.T, r *pass.Request) string {
	t.Helper()
	var buf bytes.Buffer
	if err := r.Write(jsonwriter.New(&buf)); err != nil {
		t.Fatalf("write: %v", err)
	}
	return buf.String()
}

func topLevelKeys(t *testing.T, data string) []string {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(data))
	if _, err := dec.Token(); err != nil {
		t.Fatalf("read opening token: %v", err)
	}
	var keys []string
	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			t.Fatalf("read key: %v", err)
		}
		keys = append(keys, token.(string))
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			t.Fatalf("skip value for %v: %v", token, err)
		}
	}
	return keys
}

func sectionJSON(t *testing.T, data, style, section string) string {
	t.Helper()
	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &root); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(root[style], &sections); err != nil {
		t.Fatalf("decode %s: %v", style, err)
	}
	raw, ok := sections[section]
	if !ok {
		t.Fatalf("section %s missing from %s", section, root[style])
	}
	return string(raw)
}

func boolPtr(v bool) *bool { return &v }

func TestWriteMinimalRequest(t *testing.T) {
	got := writeCompact(t, pass.NewRequest())
	want := `{"passTypeIdentifier":"","formatVersion":1,"serialNumber":"","description":"",` +
		`"organizationName":"","teamIdentifier":"","sharingProhibited":false,` +
		`"generic":{"headerFields":[],"primaryFields":[],"secondaryFields":[],"auxiliaryFields":[],"backFields":[]}}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("minimal document mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteKeyOrder(t *testing.T) {
	maxDistance := 250
	relevant := pass.WithOffset(time.Date(2018, 1, 5, 12, 0, 0, 0, time.UTC), -5*time.Hour)
	expires := pass.UTC(time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC))
	major := uint16(1)

	r := pass.NewRequest()
	r.PassTypeIdentifier = "pass.com.example.boarding"
	r.SerialNumber = "E5982H-I2"
	r.Description = "Boarding pass"
	r.OrganizationName = "Skyline"
	r.TeamIdentifier = "A93A5CM278"
	r.Style = pass.StyleBoardingPass
	r.TransitType = pass.TransitAir
	r.LogoText = "Skyline"
	r.AppLaunchURL = "skyline://boarding"
	r.UserInfo = map[string]any{"tier": "gold"}
	r.RelevantDate = &relevant
	r.MaxDistance = &maxDistance
	r.ForegroundColor = "#fff"
	r.BackgroundColor = "#17BB52"
	r.LabelColor = "rgb(0,0,0)"
	r.SuppressStripShine = boolPtr(true)
	r.GroupingIdentifier = "trip-42"
	r.ExpirationDate = &expires
	r.Voided = boolPtr(false)
	r.NFC = &pass.NFC{Message: "nfc-payload"}
	r.AuthenticationToken = "vxwxd7J8AlNNFPS8k0a0FfUFtq0ewzFdc"
	r.WebServiceURL = "https://example.com/passes/"
	r.AddSemanticTag(pass.AirlineCode("SK")).
		AddAssociatedStoreIdentifier(123456789).
		AddLocation(37.331, -122.029, "Gate is near").
		AddBeacon("E2C56DB5-DFFB-48D2-B060-D0F5A71096E0", "", &major, nil).
		AddBarcode(pass.BarcodeQR, "123456", "", "").
		SetBarcode(pass.BarcodePDF417, "123456", "", "")

	got := topLevelKeys(t, writeCompact(t, r))
	want := []string{
		"semantics",
		"passTypeIdentifier", "formatVersion", "serialNumber", "description",
		"organizationName", "teamIdentifier", "sharingProhibited", "logoText",
		"associatedStoreIdentifiers", "appLaunchURL",
		"userInfo",
		"relevantDate", "maxDistance", "locations", "beacons",
		"foregroundColor", "backgroundColor", "labelColor", "suppressStripShine", "groupingIdentifier",
		"expirationDate", "voided",
		"barcodes",
		"nfc",
		"boardingPass",
		"barcode",
		"authenticationToken", "webServiceURL",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("top-level key order mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteEncodesScalarValues(t *testing.T) {
	maxDistance := 250
	relevant := pass.WithOffset(time.Date(2018, 1, 5, 12, 0, 0, 0, time.UTC), -5*time.Hour)
	minor := uint16(7)

	r := pass.NewRequest()
	r.RelevantDate = &relevant
	r.MaxDistance = &maxDistance
	r.ForegroundColor = "#fff"
	r.BackgroundColor = "#17BB52"
	r.AddAssociatedStoreIdentifier(9223372036854775807)
	r.AddBeacon("uuid-1", "", nil, &minor)

	got := writeCompact(t, r)
	for _, fragment := range []string{
		`"associatedStoreIdentifiers":[9223372036854775807]`,
		`"relevantDate":"2018-01-05T12:00:00-05:00"`,
		`"maxDistance":250`,
		`"foregroundColor":"rgb(15,15,15)"`,
		`"backgroundColor":"rgb(23,187,82)"`,
		`"beacons":[{"proximityUUID":"uuid-1"}]`,
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %s in %s", fragment, got)
		}
	}
}

func TestWriteBoardingPassTransitType(t *testing.T) {
	r := pass.NewRequest()
	r.Style = pass.StyleBoardingPass
	r.TransitType = pass.TransitTrain

	got := writeCompact(t, r)
	want := `"boardingPass":{"headerFields":[],"primaryFields":[],"secondaryFields":[],"auxiliaryFields":[],"backFields":[],"transitType":"PKTransitTypeTrain"}`
	if !strings.Contains(got, want) {
		t.Fatalf("expected %s in %s", want, got)
	}

	r.Style = pass.StyleCoupon
	got = writeCompact(t, r)
	if strings.Contains(got, "transitType") {
		t.Fatalf("transitType must only be written for boarding passes: %s", got)
	}
	if !strings.Contains(got, `"coupon":{`) {
		t.Fatalf("expected coupon style object in %s", got)
	}
}

func TestWriteFieldEncoding(t *testing.T) {
	departs := pass.NewDateField("departs", "Departs",
		pass.WithOffset(time.Date(2018, 1, 5, 12, 0, 0, 0, time.UTC), -5*time.Hour),
		pass.DateStyleShort, pass.DateStyleNone)
	date := departs.Content.(pass.Date)
	date.IsRelative = boolPtr(true)
	departs.Content = date

	r := pass.NewRequest()
	mustAdd(t, r.AddPrimaryField(pass.NewCurrencyField("balance", "Balance", pass.MustDecimal("12.50"), "GBP")))
	mustAdd(t, r.AddPrimaryField(departs))
	mustAdd(t, r.AddAuxiliaryField(pass.NewTextField("aux-1", "Label", "Test").
		WithRow(1).
		WithAlignment(pass.AlignRight).
		WithChangeMessage("Now %@")))
	mustAdd(t, r.AddAuxiliaryField(pass.Field{Key: "blank", Label: "Blank"}))
	mustAdd(t, r.AddBackField(pass.NewNumberField("score", "", pass.MustDecimal("-0.50"), pass.NumberStylePercent).
		WithDataDetectors()))

	got := writeCompact(t, r)

	wantPrimary := `[{"key":"balance","label":"Balance","currencyCode":"GBP","value":12.50},` +
		`{"key":"departs","label":"Departs","dateStyle":"PKDateStyleShort","timeStyle":"PKDateStyleNone","isRelative":true,"value":"2018-01-05T12:00:00-05:00"}]`
	if diff := cmp.Diff(wantPrimary, sectionJSON(t, got, "generic", "primaryFields")); diff != "" {
		t.Fatalf("primary fields mismatch (-want +got):\n%s", diff)
	}

	wantAuxiliary := `[{"key":"aux-1","changeMessage":"Now %@","textAlignment":"PKTextAlignmentRight","label":"Label","value":"Test","row":1},` +
		`{"key":"blank","label":"Blank"}]`
	if diff := cmp.Diff(wantAuxiliary, sectionJSON(t, got, "generic", "auxiliaryFields")); diff != "" {
		t.Fatalf("auxiliary fields mismatch (-want +got):\n%s", diff)
	}

	wantBack := `[{"key":"score","numberStyle":"PKNumberStylePercent","value":-0.50,"dataDetectorTypes":[]}]`
	if diff := cmp.Diff(wantBack, sectionJSON(t, got, "generic", "backFields")); diff != "" {
		t.Fatalf("back fields mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSanitizesAttributedValues(t *testing.T) {
	r := pass.NewRequest()
	mustAdd(t, r.AddBackField(pass.NewTextField("site", "Site", "example.com").
		WithAttributedValue(`<a href="https://example.com">Visit</a><script>alert(1)</script>`)))

	var doc struct {
		Generic struct {
			BackFields []struct {
				AttributedValue string `json:"attributedValue"`
			} `json:"backFields"`
		} `json:"generic"`
	}
	if err := json.Unmarshal([]byte(writeCompact(t, r)), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	value := doc.Generic.BackFields[0].AttributedValue
	if !strings.Contains(value, `href="https://example.com"`) || !strings.Contains(value, ">Visit</a>") {
		t.Fatalf("expected link to survive sanitising, got %q", value)
	}
	if strings.Contains(value, "script") || strings.Contains(value, "alert") {
		t.Fatalf("expected script to be removed, got %q", value)
	}

	r.SetAttributedValueSanitizer(nil)
	if err := json.Unmarshal([]byte(writeCompact(t, r)), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(doc.Generic.BackFields[0].AttributedValue, "<script>") {
		t.Fatalf("expected raw value with sanitiser disabled")
	}
}

func TestAddFieldRejectsDuplicateKeysAcrossSections(t *testing.T) {
	r := pass.NewRequest()
	mustAdd(t, r.AddHeaderField(pass.NewTextField("gate", "Gate", "23")))

	err := r.AddBackField(pass.NewTextField("gate", "Gate", "24"))
	if !errors.Is(err, pass.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	var dup *pass.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeyError, got %T", err)
	}
	if dup.Key != "gate" || dup.Section != pass.SectionHeader {
		t.Fatalf("unexpected duplicate details: %+v", dup)
	}
	if len(r.BackFields()) != 0 || len(r.HeaderFields()) != 1 {
		t.Fatalf("rejected field must not be stored: header=%d back=%d", len(r.HeaderFields()), len(r.BackFields()))
	}
	if !r.HasField("gate") || r.HasField("seat") {
		t.Fatalf("HasField reported wrong membership")
	}

	if err := r.AddPrimaryField(pass.Field{Label: "No key"}); !errors.Is(err, pass.ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
	if err := r.AddField(pass.Section(9), pass.NewTextField("x", "", "")); err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

func TestWriteIsIdempotent(t *testing.T) {
	calls := 0
	r := pass.NewRequest()
	r.SerialNumber = "001"
	r.SetPopulator(func(req *pass.Request) error {
		calls++
		return req.AddBackField(pass.NewTextField("terms", "Terms", "No refunds"))
	})

	first := writeCompact(t, r)
	second := writeCompact(t, r)
	if first != second {
		t.Fatalf("repeated writes differ:\n%s\n%s", first, second)
	}
	if calls != 1 {
		t.Fatalf("populator ran %d times, want 1", calls)
	}
	if !strings.Contains(first, `"backFields":[{"key":"terms","label":"Terms","value":"No refunds"}]`) {
		t.Fatalf("populated field missing from %s", first)
	}
}

func TestWritePopulatorError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	r := pass.NewRequest().SetPopulator(func(req *pass.Request) error {
		calls++
		if err := req.AddHeaderField(pass.NewTextField("a", "", "1")); err != nil {
			return err
		}
		return boom
	})

	for attempt := 1; attempt <= 2; attempt++ {
		var buf bytes.Buffer
		err := r.Write(jsonwriter.New(&buf))
		if !errors.Is(err, boom) {
			t.Fatalf("write %d: expected populator error, got %v", attempt, err)
		}
		if buf.Len() != 0 {
			t.Fatalf("write %d: expected nothing written, got %s", attempt, buf.String())
		}
	}
	if calls != 1 {
		t.Fatalf("expected populator to run once, ran %d times", calls)
	}

	r.SetPopulator(nil)
	if got := writeCompact(t, r); !strings.Contains(got, `"headerFields":[{"key":"a","value":"1"}]`) {
		t.Fatalf("expected write to succeed after hook reset, got %s", got)
	}
}

func TestWriteInvalidColorLeavesSinkEmpty(t *testing.T) {
	r := pass.NewRequest()
	r.LabelColor = "#12"

	var buf bytes.Buffer
	err := r.Write(jsonwriter.New(&buf))
	if !errors.Is(err, pass.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %s", buf.String())
	}
}

func TestWriteWebServiceKeysAreCoupled(t *testing.T) {
	r := pass.NewRequest()
	r.WebServiceURL = "https://example.com/passes/"
	got := writeCompact(t, r)
	if strings.Contains(got, "webServiceURL") || strings.Contains(got, "authenticationToken") {
		t.Fatalf("web service keys must be omitted without a token: %s", got)
	}

	r = pass.NewRequest()
	r.AuthenticationToken = "token-1234567890abcdef"
	got = writeCompact(t, r)
	if !strings.HasSuffix(got, `"authenticationToken":"token-1234567890abcdef","webServiceURL":""}`) {
		t.Fatalf("expected both web service keys at the end: %s", got)
	}
}

func TestWriteSemantics(t *testing.T) {
	r := pass.NewRequest()
	r.AddSemanticTag(
		pass.AirlineCode("EX"),
		pass.FlightNumber(1234),
		pass.Balance("12.50", "USD"),
		pass.PerformerNames("Band A", "Band B"),
		pass.Silenced(true),
		pass.SemanticTag{Name: "ignored"},
	)

	got := writeCompact(t, r)
	want := `{"semantics":{"airlineCode":"EX","flightNumber":1234,"balance":{"amount":"12.50","currencyCode":"USD"},` +
		`"performerNames":["Band A","Band B"],"silenced":true},"passTypeIdentifier":""`
	if !strings.HasPrefix(got, want) {
		t.Fatalf("semantics mismatch:\nwant prefix %s\ngot %s", want, got)
	}

	if strings.Contains(writeCompact(t, pass.NewRequest()), "semantics") {
		t.Fatalf("empty semantics must be omitted")
	}

	unset := pass.NewRequest().AddSemanticTag(pass.SemanticTag{Name: "ignored"}, pass.SemanticTag{Name: "alsoIgnored"})
	if got := writeCompact(t, unset); strings.Contains(got, "semantics") {
		t.Fatalf("tags without values must not open a semantics object: %s", got)
	}
}

func TestWriteNFCRequiresMessage(t *testing.T) {
	r := pass.NewRequest()
	r.NFC = &pass.NFC{EncryptionPublicKey: "key"}
	if strings.Contains(writeCompact(t, r), `"nfc"`) {
		t.Fatalf("nfc without a message must be omitted")
	}

	r.NFC = &pass.NFC{Message: "hello", RequiresAuthentication: boolPtr(true)}
	if got := writeCompact(t, r); !strings.Contains(got, `"nfc":{"message":"hello","requiresAuthentication":true}`) {
		t.Fatalf("unexpected nfc encoding: %s", got)
	}
}

func TestWriteBarcodes(t *testing.T) {
	r := pass.NewRequest().
		AddBarcode(pass.BarcodeQR, "123", "", "Ticket 123").
		AddBarcode(pass.BarcodeCode128, "123", "utf-8", "")

	got := writeCompact(t, r)
	want := `"barcodes":[{"format":"PKBarcodeFormatQR","message":"123","messageEncoding":"iso-8859-1","altText":"Ticket 123"},` +
		`{"format":"PKBarcodeFormatCode128","message":"123","messageEncoding":"utf-8"}]`
	if !strings.Contains(got, want) {
		t.Fatalf("expected %s in %s", want, got)
	}
	if strings.Contains(got, `"barcode":`) {
		t.Fatalf("legacy barcode must be omitted when unset: %s", got)
	}
}

func TestWriteReportsSinkErrors(t *testing.T) {
	err := pass.NewRequest().Write(jsonwriter.New(failingWriter{}))
	if err == nil || !strings.Contains(err.Error(), "pass: write") {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}

func TestMarshalJSON(t *testing.T) {
	r := pass.NewRequest()
	r.UserInfo = map[string]any{"b": 2, "a": "x"}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"userInfo":{"a":"x","b":2}`) {
		t.Fatalf("unexpected userInfo encoding: %s", data)
	}
}

func TestLocalizationStrings(t *testing.T) {
	r := pass.NewRequest().
		AddLocalization("en", "gate", "Gate").
		AddLocalization("en", "quote", `Say "hi"`+"\n").
		AddLocalization("fr", "gate", "Porte").
		AddLocalization("en", "GATE", "Boarding gate")

	en, ok := r.Localization("en")
	if !ok {
		t.Fatalf("expected en localization")
	}
	if en.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", en.Len())
	}
	if value, _ := en.Lookup("Gate"); value != "Boarding gate" {
		t.Fatalf("Lookup = %q", value)
	}
	want := "\"gate\" = \"Boarding gate\";\n\"quote\" = \"Say \\\"hi\\\"\\n\";\n"
	if diff := cmp.Diff(want, string(en.Strings())); diff != "" {
		t.Fatalf("strings mismatch (-want +got):\n%s", diff)
	}

	var languages []string
	for _, loc := range r.Localizations() {
		languages = append(languages, loc.Language)
	}
	if diff := cmp.Diff([]string{"en", "fr"}, languages); diff != "" {
		t.Fatalf("language order mismatch (-want +got):\n%s", diff)
	}
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add field: %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}
