package core

import "strings"

// Key codes match GLFW's physical key values.
const (
	KeySpace  = 32
	KeyMinus  = 45
	KeyEqual  = 61
	KeyP      = 80
	KeyS      = 83
	KeyEscape = 256
	KeyF1     = 290
	KeyF12    = 301
)

// KeyByName maps config key names to key codes.
var KeyByName = map[string]int{
	"space":  KeySpace,
	"minus":  KeyMinus,
	"-":      KeyMinus,
	"equal":  KeyEqual,
	"=":      KeyEqual,
	"p":      KeyP,
	"s":      KeyS,
	"escape": KeyEscape,
	"f1":     KeyF1,
	"f12":    KeyF12,
}

// LookupKey resolves a key name case-insensitively.
func LookupKey(name string) (int, bool) {
	k, ok := KeyByName[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}
