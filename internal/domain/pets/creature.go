package pets

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

// State es el estado de la máquina de movimiento de una criatura.
type State string

const (
	StateSitIdle      State = "sit-idle"
	StateWalkRight    State = "walk-right"
	StateWalkLeft     State = "walk-left"
	StateRunRight     State = "run-right"
	StateRunLeft      State = "run-left"
	StateLie          State = "lie"
	StateSwipe        State = "swipe"
	StateChase        State = "chase"
	StateIdleWithBall State = "idle-with-ball"
	StateChaseFriend  State = "chase-friend"
)

const (
	minHoldFrames    = 30
	holdJitterFrames = 40
	swipeFrames      = 6
	ballIdleFrames   = 25
	runFactor        = 2
	swipeBubble      = "👋"
)

// transitions: estados siguientes posibles al terminar cada estado.
var transitions = map[State][]State{
	StateSitIdle:      {StateWalkRight, StateWalkLeft, StateRunRight, StateRunLeft, StateLie},
	StateWalkRight:    {StateSitIdle, StateWalkLeft, StateRunLeft},
	StateWalkLeft:     {StateSitIdle, StateWalkRight, StateRunRight},
	StateRunRight:     {StateSitIdle, StateWalkLeft},
	StateRunLeft:      {StateSitIdle, StateWalkRight},
	StateLie:          {StateSitIdle, StateWalkRight, StateWalkLeft},
	StateIdleWithBall: {StateSitIdle, StateWalkRight, StateWalkLeft},
	StateChaseFriend:  {StateSitIdle, StateLie},
}

type CreatureConfig struct {
	Name     string
	Species  Species
	Size     Size
	Left     float64
	Bottom   float64
	Viewport float64 // ancho del área visible en px; 0 = sin límite derecho

	Rand *rand.Rand
	Now  func() time.Time
}

// Creature es la implementación por defecto de Behavior, compartida por todas las especies
// (cambian velocidad, paleta y saludo).
type Creature struct {
	name     string
	species  Species
	info     speciesInfo
	width    float64
	left     float64
	bottom   float64
	viewport float64

	state  State
	held   State // estado a retomar después de un swipe
	frames int
	hold   int

	ballTarget float64
	friend     Behavior

	bubble      string
	bubbleUntil time.Time

	rnd *rand.Rand
	now func() time.Time
}

func NewCreature(cfg CreatureConfig) (*Creature, error) {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidPet)
	}
	info, ok := catalogue[cfg.Species]
	if !ok {
		return nil, fmt.Errorf("%w: pet type %q doesn't exist", ErrInvalidPet, cfg.Species)
	}

	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	c := &Creature{
		name:     name,
		species:  cfg.Species,
		info:     info,
		width:    cfg.Size.Width(),
		left:     cfg.Left,
		bottom:   cfg.Bottom,
		viewport: cfg.Viewport,
		rnd:      rnd,
		now:      now,
	}
	c.enter(StateSitIdle)
	return c, nil
}

func (c *Creature) Name() string       { return c.name }
func (c *Creature) Species() Species   { return c.species }
func (c *Creature) Left() float64      { return c.left }
func (c *Creature) Bottom() float64    { return c.bottom }
func (c *Creature) Width() float64     { return c.width }
func (c *Creature) Emoji() string      { return c.info.emoji }
func (c *Creature) Hello() string      { return c.info.hello }
func (c *Creature) Current() State     { return c.state }
func (c *Creature) Friend() Behavior   { return c.friend }
func (c *Creature) HasFriend() bool    { return c.friend != nil }
func (c *Creature) CanChase() bool     { return c.state != StateChase && c.state != StateIdleWithBall }
func (c *Creature) CanSwipe() bool     { return c.state != StateSwipe && c.state != StateChase }
func (c *Creature) speed() float64     { return float64(c.info.speed) }
func (c *Creature) isStill() bool      { return c.info.speed == SpeedStill }
func (c *Creature) rightEdge() float64 { return math.Max(0, c.viewport-c.width) }

func (c *Creature) NextFrame() {
	c.frames++

	switch c.state {
	case StateWalkRight:
		if !c.moveBy(c.speed()) {
			c.enter(StateWalkLeft)
			return
		}
	case StateWalkLeft:
		if !c.moveBy(-c.speed()) {
			c.enter(StateWalkRight)
			return
		}
	case StateRunRight:
		if !c.moveBy(c.speed() * runFactor) {
			c.enter(StateRunLeft)
			return
		}
	case StateRunLeft:
		if !c.moveBy(-c.speed() * runFactor) {
			c.enter(StateRunRight)
			return
		}
	case StateChase:
		if c.approach(c.ballTarget, c.speed()*runFactor) {
			c.enter(StateIdleWithBall)
		}
		return
	case StateChaseFriend:
		if c.friend == nil {
			c.enter(StateSitIdle)
			return
		}
		if c.approach(c.friend.Left(), c.speed()) {
			c.enter(c.pickNext())
			return
		}
	case StateSwipe:
		if c.frames >= c.hold {
			next := c.held
			if next == "" || next == StateSwipe || next == StateIdleWithBall {
				next = StateSitIdle
			}
			c.enter(next)
		}
		return
	}

	if c.frames >= c.hold {
		c.enter(c.pickNext())
	}
}

// moveBy desplaza dentro de [0, rightEdge]. Devuelve false si chocó con un borde.
func (c *Creature) moveBy(dx float64) bool {
	next := c.left + dx
	if next < 0 {
		c.left = 0
		return false
	}
	if c.viewport > 0 && next > c.rightEdge() {
		c.left = c.rightEdge()
		return false
	}
	c.left = next
	return true
}

// approach avanza hacia target; devuelve true al llegar (a menos de medio ancho).
func (c *Creature) approach(target, step float64) bool {
	d := target - c.left
	if math.Abs(d) <= c.width/2 || step == 0 {
		return true
	}
	if d > 0 {
		c.moveBy(math.Min(step, d))
	} else {
		c.moveBy(math.Max(-step, d))
	}
	return false
}

func (c *Creature) pickNext() State {
	if c.isStill() {
		return StateSitIdle
	}
	if c.friend != nil && c.state == StateSitIdle && c.rnd.IntN(4) == 0 {
		return StateChaseFriend
	}
	opts := transitions[c.state]
	if len(opts) == 0 {
		return StateSitIdle
	}
	return opts[c.rnd.IntN(len(opts))]
}

func (c *Creature) enter(s State) {
	c.state = s
	c.frames = 0
	switch s {
	case StateSwipe:
		c.hold = swipeFrames
	case StateIdleWithBall:
		c.hold = ballIdleFrames
	default:
		c.hold = minHoldFrames + c.rnd.IntN(holdJitterFrames)
	}
}

func (c *Creature) Swipe() {
	if !c.CanSwipe() {
		return
	}
	c.held = c.state
	c.enter(StateSwipe)
	c.ShowSpeechBubble(swipeBubble, time.Second)
}

// Chase arranca la persecución de la pelota hasta targetLeft.
func (c *Creature) Chase(targetLeft float64) {
	if !c.CanChase() || c.isStill() {
		return
	}
	c.ballTarget = targetLeft
	c.enter(StateChase)
}

func (c *Creature) MakeFriendsWith(other Behavior) bool {
	if other == nil || other == Behavior(c) {
		return false
	}
	if c.friend != nil || other.HasFriend() {
		return false
	}
	c.friend = other
	other.RecoverFriend(c)
	return true
}

// RecoverFriend registra el vínculo y lo hace recíproco si el otro está solo.
func (c *Creature) RecoverFriend(friend Behavior) {
	if friend == nil || friend == Behavior(c) {
		return
	}
	c.friend = friend
	if !friend.HasFriend() {
		friend.RecoverFriend(c)
	}
}

func (c *Creature) ShowSpeechBubble(text string, d time.Duration) {
	c.bubble = text
	c.bubbleUntil = c.now().Add(d)
}

// Bubble devuelve el texto visible, o "" si ya expiró.
func (c *Creature) Bubble() string {
	if c.bubble == "" || !c.now().Before(c.bubbleUntil) {
		return ""
	}
	return c.bubble
}

type creatureState struct {
	State  State `json:"state"`
	Frames int   `json:"frames"`
	Hold   int   `json:"hold"`
}

func (c *Creature) State() json.RawMessage {
	st := creatureState{State: c.state, Frames: c.frames, Hold: c.hold}
	// la pelota no se persiste
	if st.State == StateChase || st.State == StateIdleWithBall || st.State == StateSwipe {
		st = creatureState{State: StateSitIdle}
	}
	b, _ := json.Marshal(st)
	return b
}

func (c *Creature) RecoverState(raw json.RawMessage) error {
	var st creatureState
	if err := json.Unmarshal(raw, &st); err != nil {
		return fmt.Errorf("recover state: %w", err)
	}
	if _, ok := transitions[st.State]; !ok {
		return fmt.Errorf("recover state: unknown state %q", st.State)
	}
	c.state = st.State
	c.frames = st.Frames
	c.hold = st.Hold
	if c.hold <= 0 {
		c.hold = minHoldFrames
	}
	return nil
}
