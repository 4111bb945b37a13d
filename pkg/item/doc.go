// Package item implements the dynamic field system of the Grid API: items
// whose attributes ("fields") are typed by the server, each type dictating
// the shape of the field's configuration, its values, and how changed values
// are rendered back into a create/update payload.
//
// Decoding is deliberately lenient. The set of field types is open on the
// server side, so an unrecognized type tag never fails a decode; it resolves
// to the undefined variant, which keeps the raw field identity but carries
// no values and silently discards mutation. Everything else in the package
// follows from that contract: one generic Field container dispatches on the
// type tag through a registry, and per-type behavior (value decoding,
// multiplicity, write-back projection) lives with the value variants.
//
// Items and fields are plain in-memory structures with no internal locking.
// Decode a fresh record into a new Item and swap it in whole; callers that
// mutate from multiple goroutines must serialize access themselves.
package item
