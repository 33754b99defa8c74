// Package formats reads and writes the on-disk forms of baked animation data:
// dense clips (.dclip, little-endian binary) and loop quality curves (msgpack).
package formats
