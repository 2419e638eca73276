package pets

import (
	"strconv"
	"strings"
)

// Handle es un elemento visual opaco (sprite, zona de colisión, globo de texto).
type Handle interface {
	ID() string
	Place(left, bottom float64)
	// Position devuelve la representación en píxeles ("120px").
	Position() (left, bottom string)
	// Remove debe ser idempotente.
	Remove()
}

type HandleKind string

const (
	HandleSprite    HandleKind = "sprite"
	HandleCollision HandleKind = "collision"
	HandleSpeech    HandleKind = "speech"
)

// HandleFactory crea handles de presentación para una mascota.
type HandleFactory interface {
	NewHandle(kind HandleKind, species Species, color Color, size Size) Handle
}

type Handles struct {
	Sprite    Handle
	Collision Handle
	Speech    Handle
}

// NewHandles crea el trío de handles de una mascota.
func NewHandles(f HandleFactory, species Species, color Color, size Size) Handles {
	return Handles{
		Sprite:    f.NewHandle(HandleSprite, species, color, size),
		Collision: f.NewHandle(HandleCollision, species, color, size),
		Speech:    f.NewHandle(HandleSpeech, species, color, size),
	}
}

func (h Handles) Release() {
	for _, x := range []Handle{h.Sprite, h.Collision, h.Speech} {
		if x != nil {
			x.Remove()
		}
	}
}

// Record une la criatura con sus handles y atributos estáticos. 1:1, nacen y mueren juntos.
type Record struct {
	Handles Handles
	Pet     Behavior
	Color   Color
	Species Species
}

func NewRecord(h Handles, pet Behavior, color Color, species Species) *Record {
	return &Record{Handles: h, Pet: pet, Color: color, Species: species}
}

// Release libera los handles. Se puede llamar más de una vez.
func (r *Record) Release() {
	r.Handles.Release()
	r.Color = ColorNull
	r.Species = SpeciesNull
}

// Sync escribe la posición lógica en sprite y zona de colisión.
func (r *Record) Sync() {
	left, bottom := r.Pet.Left(), r.Pet.Bottom()
	if r.Handles.Sprite != nil {
		r.Handles.Sprite.Place(left, bottom)
	}
	if r.Handles.Collision != nil {
		r.Handles.Collision.Place(left, bottom)
	}
}

// Position devuelve la posición tal como está escrita en el sprite.
func (r *Record) Position() (left, bottom string) {
	if r.Handles.Sprite == nil {
		return FormatPixels(r.Pet.Left()), FormatPixels(r.Pet.Bottom())
	}
	return r.Handles.Sprite.Position()
}

// FormatPixels: 12.7 -> "12px".
func FormatPixels(v float64) string {
	return strconv.Itoa(int(v)) + "px"
}

// ParsePixels toma el prefijo entero ("120px" -> 120). Si no hay número devuelve 0.
func ParsePixels(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// Blueprint describe una mascota a construir (spawn o recuperación).
type Blueprint struct {
	Species Species
	Color   Color
	Size    Size
	Left    float64
	Bottom  float64
	Name    string
}
