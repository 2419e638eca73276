package pets

import (
	"encoding/json"
	"time"
)

// Behavior es el contrato de una criatura animada. El orquestador depende solo de esto,
// nunca de una especie concreta.
type Behavior interface {
	Name() string
	Left() float64
	Bottom() float64
	Width() float64

	HasFriend() bool
	Friend() Behavior
	CanChase() bool
	CanSwipe() bool

	// NextFrame avanza un frame de la máquina de estados.
	NextFrame()
	Swipe()
	// MakeFriendsWith devuelve true solo si se formó un vínculo nuevo.
	MakeFriendsWith(other Behavior) bool
	ShowSpeechBubble(text string, d time.Duration)

	// State / RecoverState: blob opaco por especie, el core no lo interpreta.
	State() json.RawMessage
	RecoverState(raw json.RawMessage) error
	RecoverFriend(friend Behavior)

	Emoji() string
	Hello() string
	Bubble() string
}

// Chaser lo implementan las criaturas que saben perseguir la pelota.
type Chaser interface {
	Chase(targetLeft float64)
}
