package memory

import (
	"sync"

	"pet-playground/internal/domain/pets"

	"github.com/google/uuid"
)

// Factory crea handles en memoria. Lleva la cuenta de los vivos para el render y los tests.
type Factory struct {
	mu   sync.Mutex
	live map[string]*Handle
}

func NewFactory() *Factory {
	return &Factory{live: make(map[string]*Handle)}
}

func (f *Factory) NewHandle(kind pets.HandleKind, species pets.Species, color pets.Color, size pets.Size) pets.Handle {
	h := &Handle{
		id:      uuid.NewString(),
		Kind:    kind,
		Species: species,
		Color:   color,
		Size:    size,
		left:    "0px",
		bottom:  "0px",
		factory: f,
	}

	f.mu.Lock()
	f.live[h.id] = h
	f.mu.Unlock()
	return h
}

// Live devuelve cuántos handles siguen sin liberar.
func (f *Factory) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// Get busca un handle vivo por id.
func (f *Factory) Get(id string) (*Handle, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.live[id]
	return h, ok
}

func (f *Factory) release(id string) {
	f.mu.Lock()
	delete(f.live, id)
	f.mu.Unlock()
}

// Handle guarda la posición como la escribiría el DOM ("12px").
type Handle struct {
	id      string
	Kind    pets.HandleKind
	Species pets.Species
	Color   pets.Color
	Size    pets.Size

	mu      sync.Mutex
	left    string
	bottom  string
	removed bool
	factory *Factory
}

func (h *Handle) ID() string { return h.id }

func (h *Handle) Place(left, bottom float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.removed {
		return
	}
	h.left = pets.FormatPixels(left)
	h.bottom = pets.FormatPixels(bottom)
}

func (h *Handle) Position() (string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.left, h.bottom
}

func (h *Handle) Removed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.removed
}

func (h *Handle) Remove() {
	h.mu.Lock()
	if h.removed {
		h.mu.Unlock()
		return
	}
	h.removed = true
	h.mu.Unlock()

	h.factory.release(h.id)
}
