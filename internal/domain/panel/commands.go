package panel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-playground/internal/domain/pets"
)

// Command es un mensaje entrante del canal de comandos.
type Command struct {
	Command string `json:"command"`

	Type  string `json:"type,omitempty"`
	Color string `json:"color,omitempty"`
	Name  string `json:"name,omitempty"`
	Size  string `json:"size,omitempty"`

	Enabled     *bool    `json:"enabled,omitempty"`
	X           *float64 `json:"x,omitempty"`
	CollisionID string   `json:"collision_id,omitempty"`
}

// Message es la respuesta del host al panel.
type Message struct {
	Command string `json:"command"`
	Text    string `json:"text"`
}

const (
	MessageInfo  = "info"
	MessageError = "error"
)

func info(text string) Message     { return Message{Command: MessageInfo, Text: text} }
func errorMsg(text string) Message { return Message{Command: MessageError, Text: text} }

// Handle despacha un comando del canal. Cada comando es aislado; nunca cae en el siguiente.
func (s *Service) Handle(ctx context.Context, c Command) []Message {
	switch c.Command {
	case "throw-with-mouse":
		s.ThrowWithMouse(c.Enabled != nil && *c.Enabled)
		return nil

	case "throw-ball":
		if c.X != nil {
			if _, err := s.ThrowAt(*c.X); err != nil {
				return []Message{errorMsg(err.Error())}
			}
			return nil
		}
		s.ThrowBall()
		return nil

	case "spawn-pet":
		in := SpawnInput{
			Species: pets.NormalizeSpecies(c.Type),
			Color:   pets.Color(c.Color),
			Name:    c.Name,
		}
		if c.Size != "" {
			in.Size = pets.ParseSize(c.Size)
		}
		v, err := s.Spawn(ctx, in)
		if err != nil {
			return []Message{errorMsg(err.Error())}
		}
		return []Message{info(fmt.Sprintf("%s %s joined the panel", v.Emoji, v.Name))}

	case "list-pets":
		lines := make([]string, 0)
		for _, p := range s.List() {
			lines = append(lines, p.String())
		}
		return []Message{{Command: "list-pets", Text: strings.Join(lines, "\n")}}

	case "roll-call":
		lines := s.RollCall()
		out := make([]Message, 0, len(lines))
		for _, l := range lines {
			out = append(out, info(l))
		}
		return out

	case "delete-pet":
		err := s.Delete(ctx, c.Name, pets.NormalizeSpecies(c.Type), pets.Color(c.Color))
		switch {
		case errors.Is(err, ErrNotFound):
			return []Message{errorMsg("Could not find pet " + c.Name)}
		case err != nil:
			return []Message{errorMsg(err.Error())}
		}
		return []Message{info("👋 Removed pet " + c.Name)}

	case "reset-pet":
		if err := s.Reset(ctx); err != nil {
			return []Message{errorMsg(err.Error())}
		}
		return nil

	case "pause-pet":
		if err := s.Pause(ctx); err != nil {
			return []Message{errorMsg(err.Error())}
		}
		return nil

	case "resume-pet":
		if err := s.Resume(ctx); err != nil {
			return []Message{errorMsg(err.Error())}
		}
		return nil

	case "pointer-over":
		s.PointerOver(c.CollisionID)
		return nil

	case "ready":
		s.Ready()
		return nil

	case "tick":
		if _, err := s.Tick(ctx); err != nil {
			return []Message{errorMsg(err.Error())}
		}
		return nil
	}

	s.metrics.ObserveCommand("unknown", "invalid")
	return []Message{errorMsg(fmt.Sprintf("unknown command %q", c.Command))}
}
