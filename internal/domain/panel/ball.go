package panel

import "pet-playground/internal/domain/pets"

// ball es la pelota compartida del panel.
type ball struct {
	withMouse bool
	thrown    bool
	left      float64
}

// throw deja la pelota en x y manda a perseguirla a las que pueden.
func (b *ball) throw(x float64, units []pets.Behavior) int {
	b.thrown = true
	b.left = x

	n := 0
	for _, u := range units {
		c, ok := u.(pets.Chaser)
		if !ok || !u.CanChase() {
			continue
		}
		c.Chase(x)
		n++
	}
	return n
}

func (b *ball) view() *BallView {
	if !b.thrown {
		return nil
	}
	return &BallView{Left: pets.FormatPixels(b.left), WithMouse: b.withMouse}
}
