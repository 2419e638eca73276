package panel

import (
	"time"

	"pet-playground/internal/domain/pets"
)

type PetView struct {
	Name        string       `json:"name"`
	Species     pets.Species `json:"type"`
	Color       pets.Color   `json:"color"`
	Left        string       `json:"left"`
	Bottom      string       `json:"bottom"`
	Friend      string       `json:"friend,omitempty"`
	Bubble      string       `json:"bubble,omitempty"`
	Emoji       string       `json:"emoji"`
	CollisionID string       `json:"collision_id,omitempty"`
}

type BallView struct {
	Left      string `json:"left"`
	WithMouse bool   `json:"with_mouse"`
}

type RenderView struct {
	Ready     bool      `json:"ready"`
	Paused    bool      `json:"paused"`
	Ball      *BallView `json:"ball,omitempty"`
	Pets      []PetView `json:"pets"`
	Generated time.Time `json:"generated_at"`
}

func viewOf(r *pets.Record) PetView {
	left, bottom := r.Position()
	v := PetView{
		Name:    r.Pet.Name(),
		Species: r.Species,
		Color:   r.Color,
		Left:    left,
		Bottom:  bottom,
		Bubble:  r.Pet.Bubble(),
		Emoji:   r.Pet.Emoji(),
	}
	if f := r.Pet.Friend(); f != nil {
		v.Friend = f.Name()
	}
	if r.Handles.Collision != nil {
		v.CollisionID = r.Handles.Collision.ID()
	}
	return v
}
