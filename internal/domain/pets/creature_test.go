package pets

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"
)

func newTestCreature(t *testing.T, name string, species Species, left float64) *Creature {
	t.Helper()
	c, err := NewCreature(CreatureConfig{
		Name:     name,
		Species:  species,
		Size:     SizeSmall,
		Left:     left,
		Viewport: 400,
		Rand:     rand.New(rand.NewPCG(1, 2)),
		Now:      func() time.Time { return time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewCreature: %v", err)
	}
	return c
}

func TestNewCreature_RejectsInvalidConfig(t *testing.T) {
	if _, err := NewCreature(CreatureConfig{Name: "  ", Species: SpeciesCat}); !errors.Is(err, ErrInvalidPet) {
		t.Fatalf("expected ErrInvalidPet for empty name, got %v", err)
	}
	if _, err := NewCreature(CreatureConfig{Name: "Rex", Species: "dragon"}); !errors.Is(err, ErrInvalidPet) {
		t.Fatalf("expected ErrInvalidPet for unknown species, got %v", err)
	}
}

func TestCreature_StaysInsideViewport(t *testing.T) {
	c := newTestCreature(t, "Zap", SpeciesZappy, 200)
	for i := 0; i < 5000; i++ {
		c.NextFrame()
		if c.Left() < 0 || c.Left() > 400-c.Width() {
			t.Fatalf("frame %d: left out of bounds: %v", i, c.Left())
		}
		if c.Bottom() != 0 {
			t.Fatalf("expected creature to stay on the floor")
		}
	}
}

func TestCreature_StillSpeciesNeverMoves(t *testing.T) {
	c := newTestCreature(t, "Rocky", SpeciesRocky, 120)
	c.Chase(10)
	for i := 0; i < 500; i++ {
		c.NextFrame()
	}
	if c.Left() != 120 {
		t.Fatalf("expected rock to stay at 120, got %v", c.Left())
	}
}

func TestCreature_MakeFriendsWith_Reciprocal(t *testing.T) {
	a := newTestCreature(t, "A", SpeciesCat, 0)
	b := newTestCreature(t, "B", SpeciesDog, 10)
	c := newTestCreature(t, "C", SpeciesFox, 20)

	if a.MakeFriendsWith(a) {
		t.Fatalf("a pet must not befriend itself")
	}
	if !a.MakeFriendsWith(b) {
		t.Fatalf("expected new bond")
	}
	if a.Friend() != Behavior(b) || b.Friend() != Behavior(a) {
		t.Fatalf("expected reciprocal bond")
	}
	if a.MakeFriendsWith(b) || c.MakeFriendsWith(a) {
		t.Fatalf("expected no second bond with already bonded pets")
	}
	if c.HasFriend() {
		t.Fatalf("expected C to stay friendless")
	}
}

func TestCreature_ChaseBlocksFriendSeeking(t *testing.T) {
	c := newTestCreature(t, "Milo", SpeciesDog, 0)
	c.Chase(300)
	if c.CanChase() || c.CanSwipe() {
		t.Fatalf("expected chasing pet to be busy")
	}
	for i := 0; i < 500 && c.Current() == StateChase; i++ {
		c.NextFrame()
	}
	if c.Current() != StateIdleWithBall {
		t.Fatalf("expected idle-with-ball after reaching the ball, got %s", c.Current())
	}
	if c.Left() < 300-c.Width()/2 {
		t.Fatalf("expected pet near the ball, got %v", c.Left())
	}
}

func TestCreature_SwipeReturnsToPreviousState(t *testing.T) {
	c := newTestCreature(t, "Milo", SpeciesDog, 100)
	c.enter(StateLie)
	c.Swipe()
	if c.Current() != StateSwipe || c.Bubble() != swipeBubble {
		t.Fatalf("expected swipe with bubble, got %s %q", c.Current(), c.Bubble())
	}
	c.Swipe() // ignorado mientras hace swipe
	for i := 0; i < swipeFrames; i++ {
		c.NextFrame()
	}
	if c.Current() != StateLie {
		t.Fatalf("expected to resume lie, got %s", c.Current())
	}
}

func TestCreature_SpeechBubbleExpires(t *testing.T) {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	c := newTestCreature(t, "Milo", SpeciesDog, 0)
	c.now = func() time.Time { return now }

	c.ShowSpeechBubble(FriendBubble, FriendBubbleDuration)
	if c.Bubble() != FriendBubble {
		t.Fatalf("expected visible bubble")
	}
	now = now.Add(FriendBubbleDuration)
	if c.Bubble() != "" {
		t.Fatalf("expected bubble to expire")
	}
}

func TestCreature_StateRoundTrip(t *testing.T) {
	a := newTestCreature(t, "A", SpeciesCat, 0)
	a.enter(StateWalkLeft)
	a.frames = 7

	b := newTestCreature(t, "B", SpeciesCat, 0)
	if err := b.RecoverState(a.State()); err != nil {
		t.Fatalf("RecoverState: %v", err)
	}
	if b.Current() != StateWalkLeft || b.frames != 7 || b.hold != a.hold {
		t.Fatalf("state not restored: %s frames=%d hold=%d", b.Current(), b.frames, b.hold)
	}

	if err := b.RecoverState([]byte(`{"state":"flying"}`)); err == nil {
		t.Fatalf("expected error for unknown state")
	}
	if err := b.RecoverState([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for invalid blob")
	}
}

func TestCreature_ChaseIsNotPersisted(t *testing.T) {
	a := newTestCreature(t, "A", SpeciesDog, 0)
	a.Chase(200)

	b := newTestCreature(t, "B", SpeciesDog, 0)
	if err := b.RecoverState(a.State()); err != nil {
		t.Fatalf("RecoverState: %v", err)
	}
	if b.Current() != StateSitIdle {
		t.Fatalf("expected sit-idle after recovering a chase, got %s", b.Current())
	}
}
