package pets

import "math/rand/v2"

var commonNames = []string{
	"Bella", "Charlie", "Luna", "Lucy", "Max", "Bailey", "Cooper", "Daisy", "Sadie", "Molly",
	"Buddy", "Lola", "Stella", "Tucker", "Bentley", "Zoey", "Harley", "Maggie", "Riley", "Bear",
	"Sophie", "Duke", "Jax", "Oliver", "Chloe", "Jack", "Penny", "Milo", "Rocky", "Ruby",
	"Nala", "Gizmo", "Pepper", "Ziggy", "Coco", "Oreo", "Mochi", "Biscuit", "Peanut", "Noodle",
}

var speciesNames = map[Species][]string{
	SpeciesClippy:     {"Clippy", "Clippit", "Paperclip"},
	SpeciesCrab:       {"Ferris", "Crabby", "Sebastian", "Clawdia"},
	SpeciesDeno:       {"Rex", "Dino", "Denny", "Spike"},
	SpeciesRocky:      {"Rocky", "Pebble", "Boulder", "Rubble"},
	SpeciesRubberDuck: {"Quackers", "Ducky", "Sir Quacks", "Rubber"},
	SpeciesSnake:      {"Hiss", "Slinky", "Monty", "Noodle"},
	SpeciesZappy:      {"Zappy", "Sparky", "Volt", "Bolt"},
	SpeciesTotoro:     {"Totoro", "Chibi", "Chu"},
}

// RandomName devuelve un nombre para la especie. rnd puede ser nil.
func RandomName(species Species, rnd *rand.Rand) string {
	pool := commonNames
	if v, ok := speciesNames[species]; ok {
		pool = v
	}
	if rnd == nil {
		return pool[rand.IntN(len(pool))]
	}
	return pool[rnd.IntN(len(pool))]
}
