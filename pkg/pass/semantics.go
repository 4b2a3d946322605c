package pass

// SemanticTag is a machine-readable annotation written under the semantics
// object. Tags are kept in insertion order and duplicates are allowed.
type SemanticTag struct {
	Name  string
	Value SemanticValue
}

// SemanticValue is implemented by the semantic value variants in this package.
type SemanticValue interface {
	writeSemantic(s Sink)
}

// SemanticString is a plain string tag value.
type SemanticString string

// SemanticStrings is a list of strings, for tags such as performerNames.
type SemanticStrings []string

// SemanticDate is a date tag value using the Timestamp rendering rule.
type SemanticDate Timestamp

// SemanticNumber is an exact numeric tag value.
type SemanticNumber Decimal

// SemanticBool is a boolean tag value.
type SemanticBool bool

// CurrencyAmount is an amount with its ISO 4217 currency code. The amount is
// written as a string.
type CurrencyAmount struct {
	Amount       string
	CurrencyCode string
}

// SemanticLocation is a coordinate pair.
type SemanticLocation struct {
	Latitude  float64
	Longitude float64
}

// PersonName holds the components of a person's name.
type PersonName struct {
	GivenName  string
	MiddleName string
	FamilyName string
	NamePrefix string
	NameSuffix string
	Nickname   string
}

// Seat describes one seat for event and transit passes.
type Seat struct {
	Section     string
	Row         string
	Number      string
	Identifier  string
	Type        string
	Description string
}

// SemanticSeats is the value of the seats tag.
type SemanticSeats []Seat

func (v SemanticString) writeSemantic(s Sink) { s.String(string(v)) }

func (v SemanticStrings) writeSemantic(s Sink) {
	s.BeginArray()
	for _, item := range v {
		s.String(item)
	}
	s.EndArray()
}

func (v SemanticDate) writeSemantic(s Sink) { s.String(Timestamp(v).Format()) }

func (v SemanticNumber) writeSemantic(s Sink) { s.Decimal(Decimal(v).String()) }

func (v SemanticBool) writeSemantic(s Sink) { s.Bool(bool(v)) }

func (v CurrencyAmount) writeSemantic(s Sink) {
	s.BeginObject()
	writeString(s, "amount", v.Amount)
	writeOptionalString(s, "currencyCode", v.CurrencyCode)
	s.EndObject()
}

func (v SemanticLocation) writeSemantic(s Sink) {
	s.BeginObject()
	s.Name("latitude")
	s.Float(v.Latitude)
	s.Name("longitude")
	s.Float(v.Longitude)
	s.EndObject()
}

func (v PersonName) writeSemantic(s Sink) {
	s.BeginObject()
	writeOptionalString(s, "namePrefix", v.NamePrefix)
	writeOptionalString(s, "givenName", v.GivenName)
	writeOptionalString(s, "middleName", v.MiddleName)
	writeOptionalString(s, "familyName", v.FamilyName)
	writeOptionalString(s, "nameSuffix", v.NameSuffix)
	writeOptionalString(s, "nickname", v.Nickname)
	s.EndObject()
}

func (v SemanticSeats) writeSemantic(s Sink) {
	s.BeginArray()
	for _, seat := range v {
		s.BeginObject()
		writeOptionalString(s, "seatSection", seat.Section)
		writeOptionalString(s, "seatRow", seat.Row)
		writeOptionalString(s, "seatNumber", seat.Number)
		writeOptionalString(s, "seatIdentifier", seat.Identifier)
		writeOptionalString(s, "seatType", seat.Type)
		writeOptionalString(s, "seatDescription", seat.Description)
		s.EndObject()
	}
	s.EndArray()
}

// StringTag returns a tag with a string value under an arbitrary name.
func StringTag(name, value string) SemanticTag {
	return SemanticTag{Name: name, Value: SemanticString(value)}
}

// StringsTag returns a tag with a list of strings under an arbitrary name.
func StringsTag(name string, values ...string) SemanticTag {
	return SemanticTag{Name: name, Value: SemanticStrings(append([]string(nil), values...))}
}

func DateTag(name string, value Timestamp) SemanticTag {
	return SemanticTag{Name: name, Value: SemanticDate(value)}
}

func NumberTag(name string, value Decimal) SemanticTag {
	return SemanticTag{Name: name, Value: SemanticNumber(value)}
}

func BoolTag(name string, value bool) SemanticTag {
	return SemanticTag{Name: name, Value: SemanticBool(value)}
}

func CurrencyTag(name, amount, currencyCode string) SemanticTag {
	return SemanticTag{Name: name, Value: CurrencyAmount{Amount: amount, CurrencyCode: currencyCode}}
}

func LocationTag(name string, latitude, longitude float64) SemanticTag {
	return SemanticTag{Name: name, Value: SemanticLocation{Latitude: latitude, Longitude: longitude}}
}

func AirlineCode(code string) SemanticTag { return StringTag("airlineCode", code) }

func FlightCode(code string) SemanticTag { return StringTag("flightCode", code) }

func FlightNumber(number int64) SemanticTag {
	return NumberTag("flightNumber", DecimalFromInt(number))
}

func DepartureGate(gate string) SemanticTag { return StringTag("departureGate", gate) }

func DepartureAirportCode(code string) SemanticTag { return StringTag("departureAirportCode", code) }

func DestinationAirportCode(code string) SemanticTag { return StringTag("destinationAirportCode", code) }

func OriginalDepartureDate(value Timestamp) SemanticTag {
	return DateTag("originalDepartureDate", value)
}

func EventName(name string) SemanticTag { return StringTag("eventName", name) }

func VenueName(name string) SemanticTag { return StringTag("venueName", name) }

func VenueLocation(latitude, longitude float64) SemanticTag {
	return LocationTag("venueLocation", latitude, longitude)
}

func PerformerNames(names ...string) SemanticTag { return StringsTag("performerNames", names...) }

// Balance is the balance of a store card, written as {amount, currencyCode}.
func Balance(amount, currencyCode string) SemanticTag {
	return CurrencyTag("balance", amount, currencyCode)
}

func TotalPrice(amount, currencyCode string) SemanticTag {
	return CurrencyTag("totalPrice", amount, currencyCode)
}

func PassengerName(name PersonName) SemanticTag {
	return SemanticTag{Name: "passengerName", Value: name}
}

func Seats(seats ...Seat) SemanticTag {
	return SemanticTag{Name: "seats", Value: SemanticSeats(append([]Seat(nil), seats...))}
}

// Silenced suppresses system notifications for the pass when true.
func Silenced(silenced bool) SemanticTag { return BoolTag("silenced", silenced) }

func writeSemantics(s Sink, tags []SemanticTag) {
	set := make([]SemanticTag, 0, len(tags))
	for _, tag := range tags {
		if tag.Value != nil {
			set = append(set, tag)
		}
	}
	if len(set) == 0 {
		return
	}
	s.Name("semantics")
	s.BeginObject()
	for _, tag := range set {
		s.Name(tag.Name)
		tag.Value.writeSemantic(s)
	}
	s.EndObject()
}
