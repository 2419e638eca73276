package session

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PetEntry es una mascota persistida. Los tags siguen el layout que guarda el host.
type PetEntry struct {
	PetName   string          `json:"petName,omitempty"`
	PetType   string          `json:"petType,omitempty"`
	PetColor  string          `json:"petColor,omitempty"`
	PetState  json.RawMessage `json:"petState,omitempty"`
	PetFriend string          `json:"petFriend,omitempty"`
	ElLeft    string          `json:"elLeft,omitempty"`
	ElBottom  string          `json:"elBottom,omitempty"`
}

// PersistedSession es el snapshot completo de la población.
// PetCounter queda crudo: puede venir ausente o no numérico en estados viejos.
type PersistedSession struct {
	PetCounter json.RawMessage `json:"petCounter,omitempty"`
	PetStates  []PetEntry      `json:"petStates"`

	// entradas que no se pudieron decodificar; Recover las descarta
	invalid []invalidEntry
}

type invalidEntry struct {
	raw json.RawMessage
	err error
}

// UnmarshalJSON decodifica cada entrada por separado: una entrada con tipos
// inesperados se aparta en vez de invalidar todo el estado.
func (s *PersistedSession) UnmarshalJSON(data []byte) error {
	var wire struct {
		PetCounter json.RawMessage `json:"petCounter"`
		PetStates  json.RawMessage `json:"petStates"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	out := PersistedSession{PetCounter: wire.PetCounter}
	raw := strings.TrimSpace(string(wire.PetStates))

	if raw != "" && raw != "null" {
		var entries []json.RawMessage
		if err := json.Unmarshal(wire.PetStates, &entries); err != nil {
			out.invalid = append(out.invalid, invalidEntry{
				raw: wire.PetStates,
				err: fmt.Errorf("petStates: %w", err),
			})
		} else {
			out.PetStates = make([]PetEntry, 0, len(entries))
		}
		for i, e := range entries {
			var pe PetEntry
			if err := json.Unmarshal(e, &pe); err != nil {
				out.invalid = append(out.invalid, invalidEntry{
					raw: e,
					err: fmt.Errorf("petStates[%d]: %w", i, err),
				})
				continue
			}
			out.PetStates = append(out.PetStates, pe)
		}
	}

	*s = out
	return nil
}

// Counter interpreta petCounter; ausente o no numérico => 1.
func (s *PersistedSession) Counter() int {
	if s == nil {
		return 1
	}
	raw := strings.TrimSpace(string(s.PetCounter))
	if raw == "" || raw == "null" {
		return 1
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return 1
	}
	return int(f)
}

// SetCounter guarda el contador como número JSON.
func (s *PersistedSession) SetCounter(n int) {
	s.PetCounter = json.RawMessage(strconv.Itoa(n))
}
