package engine

import (
	"strconv"
	"strings"
)

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Field appends an escaped object key to a JSON Pointer (RFC 6901).
func Field(ptr, name string) string { return ptr + "/" + pointerEscaper.Replace(name) }

// Index appends an array index to a JSON Pointer.
func Index(ptr string, i int) string { return ptr + "/" + strconv.Itoa(i) }

// Render turns the internal pointer form into the public one, where the
// document root is "/".
func Render(ptr string) string {
	if ptr == "" {
		return "/"
	}
	return ptr
}
