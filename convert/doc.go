// Package convert is the conversion service used by property binding when a
// value does not fit any setter parameter directly.
//
// A Service tries, in order: registered caster functions, the primitive
// conversion categories, encoding.TextUnmarshaler targets, date-time and
// duration formats, and finally weakly typed decoding of maps, slices and
// scalars. Pointer targets are filled through their element type.
package convert
