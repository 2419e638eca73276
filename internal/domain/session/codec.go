package session

import (
	"strings"

	"pet-playground/internal/domain/pets"
	"pet-playground/internal/platform/logger"
)

// Save proyecta la población al formato persistido. No muta nada.
func Save(pop *pets.Collection, counter int) PersistedSession {
	out := PersistedSession{PetStates: make([]PetEntry, 0, pop.Len())}

	for _, r := range pop.Pets() {
		left, bottom := r.Position()
		e := PetEntry{
			PetName:  r.Pet.Name(),
			PetType:  string(r.Species),
			PetColor: string(r.Color),
			PetState: r.Pet.State(),
			ElLeft:   left,
			ElBottom: bottom,
		}
		if f := r.Pet.Friend(); f != nil {
			e.PetFriend = f.Name()
		}
		out.PetStates = append(out.PetStates, e)
	}

	out.SetCounter(counter)
	return out
}

type RecoverOptions struct {
	// Build crea handles + criatura. Debe liberar lo que creó si falla.
	Build func(bp pets.Blueprint) (*pets.Record, error)
	// Name genera un nombre cuando el guardado viene vacío.
	Name func(species pets.Species) string
	Size pets.Size
	Log  logger.Logger

	// OnDiscard se llama por cada entrada descartada (métricas).
	OnDiscard func(e PetEntry, err error)
}

type RecoverResult struct {
	Recovered int
	Discarded int
}

type pending struct {
	rec   *pets.Record
	entry PetEntry
}

// Recover reconstruye la población en dos fases:
//  1. construir cada entrada (una entrada corrupta se descarta y se sigue);
//  2. restaurar estado opaco y resolver amigos por nombre sobre la población ya completa.
func Recover(s *PersistedSession, pop *pets.Collection, opts RecoverOptions) RecoverResult {
	var res RecoverResult
	if s == nil {
		return res
	}
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}

	for _, inv := range s.invalid {
		log.Warn("state had unreadable pet entry, discarding", map[string]any{
			"entry": string(inv.raw),
			"error": inv.err.Error(),
		})
		res.Discarded++
		if opts.OnDiscard != nil {
			opts.OnDiscard(PetEntry{}, inv.err)
		}
	}

	recovered := make([]pending, 0, len(s.PetStates))

	for _, e := range s.PetStates {
		bp := blueprintFor(e, opts)

		rec, err := opts.Build(bp)
		if err != nil {
			log.Warn("state had invalid pet, discarding", map[string]any{
				"pet_type":  e.PetType,
				"pet_color": e.PetColor,
				"pet_name":  e.PetName,
				"error":     err.Error(),
			})
			res.Discarded++
			if opts.OnDiscard != nil {
				opts.OnDiscard(e, err)
			}
			continue
		}

		pop.Push(rec)
		recovered = append(recovered, pending{rec: rec, entry: e})
	}

	for _, p := range recovered {
		if len(p.entry.PetState) > 0 && string(p.entry.PetState) != "null" {
			if err := p.rec.Pet.RecoverState(p.entry.PetState); err != nil {
				log.Warn("could not recover pet state", map[string]any{
					"pet_name": p.rec.Pet.Name(),
					"error":    err.Error(),
				})
			}
		}

		if p.entry.PetFriend == "" {
			continue
		}
		// referencia colgante: se ignora en silencio
		friend := pop.Locate(p.entry.PetFriend)
		if friend == nil || friend.Pet == p.rec.Pet {
			continue
		}
		p.rec.Pet.RecoverFriend(friend.Pet)
	}

	res.Recovered = len(recovered)
	return res
}

func blueprintFor(e PetEntry, opts RecoverOptions) pets.Blueprint {
	species := pets.SpeciesCat
	if strings.TrimSpace(e.PetType) != "" {
		species = pets.NormalizeSpecies(e.PetType)
	}

	color := pets.ColorBrown
	if strings.TrimSpace(e.PetColor) != "" {
		color = pets.Color(e.PetColor)
	}

	name := e.PetName
	if strings.TrimSpace(name) == "" && opts.Name != nil {
		name = opts.Name(species)
	}

	return pets.Blueprint{
		Species: species,
		Color:   color,
		Size:    opts.Size,
		Left:    float64(pets.ParsePixels(e.ElLeft)),
		Bottom:  float64(pets.ParsePixels(e.ElBottom)),
		Name:    name,
	}
}
