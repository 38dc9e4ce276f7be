package controller

import "github.com/gdamore/tcell/v2"

// Printable keystrokes defined as tcell keys so they can live in the
// same event maps as function keys. The values are the ASCII codes,
// which tcell keeps clear of its own key constants.
const (
	KeyA tcell.Key = iota + 97
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

const (
	KeyShiftA tcell.Key = iota + 65
	KeyShiftB
	KeyShiftC
	KeyShiftD
	KeyShiftE
	KeyShiftF
	KeyShiftG
	KeyShiftH
	KeyShiftI
	KeyShiftJ
	KeyShiftK
	KeyShiftL
	KeyShiftM
	KeyShiftN
	KeyShiftO
	KeyShiftP
	KeyShiftQ
	KeyShiftR
	KeyShiftS
	KeyShiftT
	KeyShiftU
	KeyShiftV
	KeyShiftW
	KeyShiftX
	KeyShiftY
	KeyShiftZ
)

const (
	KeySpace tcell.Key = 32
	KeySlash tcell.Key = 47
)

// initKeys registers display names for the printable keys so headers
// can render them through tcell.KeyNames like any other key.
func initKeys() {
	for key := KeyA; key <= KeyZ; key++ {
		tcell.KeyNames[key] = string(rune(key))
	}

	for key := KeyShiftA; key <= KeyShiftZ; key++ {
		tcell.KeyNames[key] = string(rune(key))
	}

	tcell.KeyNames[KeySpace] = "space"
	tcell.KeyNames[KeySlash] = "/"
}

// AsKey converts rune-based keystrokes to their key equivalent.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}

	return tcell.Key(evt.Rune())
}
