//go:build !safe

package jwt

import "unsafe"

// BytesToString converts a byte slice to a string without memory allocation.
//
// The resulting string shares the memory of "b", so "b" must not be
// modified afterwards. Build with the "safe" tag for a copying conversion.
func BytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// StringToBytes converts a string to a byte slice without memory allocation.
// The returned slice must be treated as read-only.
func StringToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
