package pass

// DefaultMessageEncoding is used when a barcode is created without an
// explicit message encoding.
const DefaultMessageEncoding = "iso-8859-1"

// Barcode describes a barcode shown on the pass.
type Barcode struct {
	Format          BarcodeFormat `json:"format" yaml:"format"`
	Message         string        `json:"message" yaml:"message"`
	MessageEncoding string        `json:"messageEncoding" yaml:"messageEncoding"`
	AltText         string        `json:"altText,omitempty" yaml:"altText,omitempty"`
}

// NewBarcode builds a barcode; an empty encoding falls back to
// DefaultMessageEncoding.
func NewBarcode(format BarcodeFormat, message, encoding, altText string) Barcode {
	if encoding == "" {
		encoding = DefaultMessageEncoding
	}
	return Barcode{Format: format, Message: message, MessageEncoding: encoding, AltText: altText}
}

func (b Barcode) write(s Sink) {
	s.BeginObject()
	writeString(s, "format", string(b.Format))
	writeString(s, "message", b.Message)
	writeString(s, "messageEncoding", b.MessageEncoding)
	writeOptionalString(s, "altText", b.AltText)
	s.EndObject()
}

// Location is a geographic point where the pass is relevant.
type Location struct {
	Latitude     float64  `json:"latitude" yaml:"latitude"`
	Longitude    float64  `json:"longitude" yaml:"longitude"`
	Altitude     *float64 `json:"altitude,omitempty" yaml:"altitude,omitempty"`
	RelevantText string   `json:"relevantText,omitempty" yaml:"relevantText,omitempty"`
}

func (l Location) write(s Sink) {
	s.BeginObject()
	s.Name("latitude")
	s.Float(l.Latitude)
	s.Name("longitude")
	s.Float(l.Longitude)
	if l.Altitude != nil {
		s.Name("altitude")
		s.Float(*l.Altitude)
	}
	writeOptionalString(s, "relevantText", l.RelevantText)
	s.EndObject()
}

// Beacon is a Bluetooth LE beacon marking a place where the pass is relevant.
// Minor is only written when Major is set.
type Beacon struct {
	ProximityUUID string  `json:"proximityUUID" yaml:"proximityUUID"`
	RelevantText  string  `json:"relevantText,omitempty" yaml:"relevantText,omitempty"`
	Major         *uint16 `json:"major,omitempty" yaml:"major,omitempty"`
	Minor         *uint16 `json:"minor,omitempty" yaml:"minor,omitempty"`
}

func (b Beacon) write(s Sink) {
	s.BeginObject()
	writeString(s, "proximityUUID", b.ProximityUUID)
	writeOptionalString(s, "relevantText", b.RelevantText)
	if b.Major != nil {
		s.Name("major")
		s.Int(int64(*b.Major))
		if b.Minor != nil {
			s.Name("minor")
			s.Int(int64(*b.Minor))
		}
	}
	s.EndObject()
}

// NFC holds the payload for NFC-enabled passes. The nfc object is only
// written when Message is non-empty.
type NFC struct {
	Message                string `json:"message" yaml:"message"`
	EncryptionPublicKey    string `json:"encryptionPublicKey,omitempty" yaml:"encryptionPublicKey,omitempty"`
	RequiresAuthentication *bool  `json:"requiresAuthentication,omitempty" yaml:"requiresAuthentication,omitempty"`
}

func (n NFC) write(s Sink) {
	s.BeginObject()
	writeString(s, "message", n.Message)
	writeOptionalString(s, "encryptionPublicKey", n.EncryptionPublicKey)
	writeOptionalBool(s, "requiresAuthentication", n.RequiresAuthentication)
	s.EndObject()
}
