// Package response turns the line stream of an MPD response into typed
// values.
//
// Each command is answered in one of a small set of shapes, selected by
// Kind: nothing, a single item, a list of values sharing a key, a single
// record, a sequence of records split at delimiter keys, grouped records,
// or sticker name/value pairs. Record keys are lowercased; a key that
// occurs more than once inside a record keeps its first position and
// collects all values.
//
// Grouper exposes the record fold incrementally so that long listings can
// be consumed one record at a time.
package response
