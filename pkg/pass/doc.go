// Package pass defines the wallet pass data model and the serialisation engine
// that turns it into the pass.json document embedded in a pass bundle.
//
// A Request is populated through mutation helpers (AddPrimaryField,
// AddBarcode, AddLocation, AddSemanticTag, ...) and emitted with Write, which
// streams every key in the fixed order the wallet platform expects into a
// Sink. Field keys are unique across all five field sections; the add helpers
// reject duplicates with a DuplicateKeyError and leave the request untouched.
//
// Value encoding is format sensitive: timestamps keep their explicit UTC or
// offset marker (see Timestamp), colours are normalised from #rgb/#rrggbb to
// rgb(r,g,b), decimals are written as raw JSON numbers with their original
// scale, and associated store identifiers round-trip as 64-bit integers.
//
// The package does not check business rules such as missing identifiers. It
// guarantees structural and formatting correctness and leaves acceptance to
// the platform consuming the document.
package pass
