package pets

import (
	"time"

	"pet-playground/internal/platform/logger"
)

const (
	FriendBubble         = "❤️"
	FriendBubbleDuration = 2 * time.Second
)

// Friendship es un vínculo formado durante un barrido.
type Friendship struct {
	Pet    string
	Friend string
}

// Collection es la población viva. Es el único dueño de la secuencia; el resto
// recibe copias de lectura y no debe guardarlas entre ticks.
type Collection struct {
	pets []*Record
	log  logger.Logger
}

func NewCollection(log logger.Logger) *Collection {
	if log == nil {
		log = logger.Discard()
	}
	return &Collection{log: log}
}

// Pets devuelve una copia en orden de creación.
func (c *Collection) Pets() []*Record {
	out := make([]*Record, len(c.pets))
	copy(out, c.pets)
	return out
}

func (c *Collection) Len() int { return len(c.pets) }

// Behaviors devuelve las criaturas en orden (vista de solo lectura para la pelota).
func (c *Collection) Behaviors() []Behavior {
	out := make([]Behavior, 0, len(c.pets))
	for _, r := range c.pets {
		out = append(out, r.Pet)
	}
	return out
}

// Push agrega al final. No valida unicidad.
func (c *Collection) Push(r *Record) {
	c.pets = append(c.pets, r)
}

// Remove libera los handles del registro y lo saca de la secuencia.
func (c *Collection) Remove(target *Record) {
	for i, r := range c.pets {
		if r != target {
			continue
		}
		r.Release()
		c.pets = append(c.pets[:i:i], c.pets[i+1:]...)
		return
	}
}

// Reset libera todo y vacía la población.
func (c *Collection) Reset() {
	for _, r := range c.pets {
		r.Release()
	}
	c.pets = nil
}

// Locate busca por nombre; gana el primero en orden de iteración.
func (c *Collection) Locate(name string) *Record {
	for _, r := range c.pets {
		if r.Pet.Name() == name {
			return r
		}
	}
	return nil
}

// LocatePet busca por la tripleta completa.
func (c *Collection) LocatePet(name string, species Species, color Color) *Record {
	for _, r := range c.pets {
		if r.Pet.Name() == name && r.Species == species && r.Color == color {
			return r
		}
	}
	return nil
}

// SeekNewFriends hace el barrido de proximidad entre mascotas sin amigo.
// El test espacial es asimétrico: solo detecta candidatos a la derecha del solitario.
func (c *Collection) SeekNewFriends() []Friendship {
	if len(c.pets) <= 1 {
		return nil
	}

	friendless := make([]*Record, 0, len(c.pets))
	for _, r := range c.pets {
		if !r.Pet.HasFriend() {
			friendless = append(friendless, r)
		}
	}
	if len(friendless) <= 1 {
		return nil
	}

	var formed []Friendship
	for _, lonely := range friendless {
		for _, candidate := range friendless {
			if candidate == lonely {
				continue
			}
			if !candidate.Pet.CanChase() {
				continue
			}
			left := lonely.Pet.Left()
			if candidate.Pet.Left() <= left || candidate.Pet.Left() >= left+lonely.Pet.Width() {
				continue
			}

			c.log.Debug("pet wants to make a friend", map[string]any{
				"pet":       lonely.Pet.Name(),
				"candidate": candidate.Pet.Name(),
			})
			if lonely.Pet.MakeFriendsWith(candidate.Pet) {
				candidate.Pet.ShowSpeechBubble(FriendBubble, FriendBubbleDuration)
				lonely.Pet.ShowSpeechBubble(FriendBubble, FriendBubbleDuration)
				formed = append(formed, Friendship{Pet: lonely.Pet.Name(), Friend: candidate.Pet.Name()})
			}
		}
	}
	return formed
}

// DispatchPointerOver dispara el swipe de la mascota dueña de la zona de colisión.
// Devuelve true si hubo reacción.
func (c *Collection) DispatchPointerOver(collisionID string) bool {
	for _, r := range c.pets {
		if r.Handles.Collision == nil || r.Handles.Collision.ID() != collisionID {
			continue
		}
		if !r.Pet.CanSwipe() {
			return false
		}
		r.Pet.Swipe()
		return true
	}
	return false
}
