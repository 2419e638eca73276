package pets

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPet: especie desconocida, color fuera de paleta o nombre vacío.
var ErrInvalidPet = errors.New("invalid pet")

// Species define las especies soportadas.
type Species string

const (
	SpeciesNull       Species = "null"
	SpeciesBunny      Species = "bunny"
	SpeciesCat        Species = "cat"
	SpeciesChicken    Species = "chicken"
	SpeciesClippy     Species = "clippy"
	SpeciesCockatiel  Species = "cockatiel"
	SpeciesCrab       Species = "crab"
	SpeciesDeno       Species = "deno"
	SpeciesDog        Species = "dog"
	SpeciesFox        Species = "fox"
	SpeciesFrog       Species = "frog"
	SpeciesHorse      Species = "horse"
	SpeciesMod        Species = "mod"
	SpeciesPanda      Species = "panda"
	SpeciesRat        Species = "rat"
	SpeciesRocky      Species = "rocky"
	SpeciesRubberDuck Species = "rubber-duck"
	SpeciesSnail      Species = "snail"
	SpeciesSnake      Species = "snake"
	SpeciesTotoro     Species = "totoro"
	SpeciesTurtle     Species = "turtle"
	SpeciesZappy      Species = "zappy"
)

// legacySpecies mapea identificadores viejos a los actuales.
var legacySpecies = map[string]Species{
	"rubber duck": SpeciesRubberDuck,
}

// NormalizeSpecies aplica el fix-up de nombres históricos.
func NormalizeSpecies(s string) Species {
	if v, ok := legacySpecies[s]; ok {
		return v
	}
	return Species(s)
}

// Color define los colores posibles (cada especie admite un subconjunto).
type Color string

const (
	ColorNull       Color = "null"
	ColorAkita      Color = "akita"
	ColorBlack      Color = "black"
	ColorBrown      Color = "brown"
	ColorGray       Color = "gray"
	ColorGreen      Color = "green"
	ColorLightBrown Color = "lightbrown"
	ColorMagical    Color = "magical"
	ColorOrange     Color = "orange"
	ColorPaintBeige Color = "paintbeige"
	ColorPaintBlack Color = "paintblack"
	ColorPaintBrown Color = "paintbrown"
	ColorPurple     Color = "purple"
	ColorRed        Color = "red"
	ColorSocksBeige Color = "socksbeige"
	ColorSocksBlack Color = "socksblack"
	ColorSocksBrown Color = "socksbrown"
	ColorWarrior    Color = "warrior"
	ColorWhite      Color = "white"
	ColorYellow     Color = "yellow"
)

// Size define el tamaño de sprite.
// @Enum nano, small, medium, large
type Size string

const (
	SizeNano   Size = "nano"
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

func ParseSize(s string) Size {
	switch Size(strings.ToLower(strings.TrimSpace(s))) {
	case SizeNano:
		return SizeNano
	case SizeMedium:
		return SizeMedium
	case SizeLarge:
		return SizeLarge
	default:
		return SizeSmall
	}
}

// Width devuelve el ancho en px del sprite para el tamaño.
func (s Size) Width() float64 {
	switch s {
	case SizeNano:
		return 30
	case SizeMedium:
		return 55
	case SizeLarge:
		return 110
	default:
		return 40
	}
}

// Speed es el desplazamiento base por frame (px).
type Speed float64

const (
	SpeedStill    Speed = 0
	SpeedVerySlow Speed = 1
	SpeedSlow     Speed = 2
	SpeedNormal   Speed = 3
	SpeedFast     Speed = 4
	SpeedVeryFast Speed = 5
)

type speciesInfo struct {
	speed  Speed
	colors []Color
	emoji  string
	hello  string
}

var catalogue = map[Species]speciesInfo{
	SpeciesBunny:      {SpeedVeryFast, []Color{ColorBrown, ColorWhite, ColorPurple}, "🐰", "thump thump!"},
	SpeciesCat:        {SpeedNormal, []Color{ColorBlack, ColorBrown, ColorWhite, ColorLightBrown, ColorOrange}, "🐱", "meow!"},
	SpeciesChicken:    {SpeedNormal, []Color{ColorWhite}, "🐔", "puk puk!"},
	SpeciesClippy:     {SpeedSlow, []Color{ColorBlack, ColorBrown, ColorGreen, ColorYellow}, "📎", "Hi, I'm Clippy, would you like some assistance today?"},
	SpeciesCockatiel:  {SpeedNormal, []Color{ColorGray}, "🦜", "Hello, I'm a cockatiel!"},
	SpeciesCrab:       {SpeedSlow, []Color{ColorRed}, "🦀", "Hi, I'm Crabsolutely Clawsome Crab 👋!"},
	SpeciesDeno:       {SpeedSlow, []Color{ColorGreen}, "🦕", "Rawr!"},
	SpeciesDog:        {SpeedNormal, []Color{ColorBlack, ColorBrown, ColorWhite, ColorRed, ColorAkita}, "🐶", "woof!"},
	SpeciesFox:        {SpeedFast, []Color{ColorRed, ColorWhite}, "🦊", "fox says hello 👋!"},
	SpeciesFrog:       {SpeedNormal, []Color{ColorGreen}, "🐸", "Ribbit!"},
	SpeciesHorse:      {SpeedNormal, []Color{ColorBlack, ColorBrown, ColorWhite, ColorMagical, ColorPaintBeige, ColorPaintBlack, ColorPaintBrown, ColorSocksBeige, ColorSocksBlack, ColorSocksBrown, ColorWarrior}, "🐴", "Neigh!"},
	SpeciesMod:        {SpeedNormal, []Color{ColorPurple}, "🤖", "Hi, I'm a mod!"},
	SpeciesPanda:      {SpeedSlow, []Color{ColorBlack, ColorBrown}, "🐼", "Bamboo please!"},
	SpeciesRat:        {SpeedNormal, []Color{ColorGray, ColorWhite, ColorBrown}, "🐀", "Squeak!"},
	SpeciesRocky:      {SpeedStill, []Color{ColorGray}, "💎", "👋 I'm rock! I ... rock."},
	SpeciesRubberDuck: {SpeedFast, []Color{ColorYellow}, "🐥", "Hi, I'm rubber duck, talk to me about your problems!"},
	SpeciesSnail:      {SpeedVerySlow, []Color{ColorBrown}, "🐌", "Hi, I'm a snail!"},
	SpeciesSnake:      {SpeedVerySlow, []Color{ColorGreen}, "🐍", "Sss!"},
	SpeciesTotoro:     {SpeedNormal, []Color{ColorGray}, "🐾", "Try Laughing. Then Whatever Scares You Will Go Away. 🎭"},
	SpeciesTurtle:     {SpeedVerySlow, []Color{ColorGreen, ColorOrange}, "🐢", "Slow and steady!"},
	SpeciesZappy:      {SpeedVeryFast, []Color{ColorYellow}, "⚡", "⚡ Zappy!"},
}

// Valid indica si la especie existe en el catálogo.
func (s Species) Valid() bool {
	_, ok := catalogue[s]
	return ok
}

// AvailableColors devuelve la paleta de la especie.
func AvailableColors(s Species) ([]Color, error) {
	info, ok := catalogue[s]
	if !ok {
		return nil, fmt.Errorf("%w: pet type %q doesn't exist", ErrInvalidPet, s)
	}
	out := make([]Color, len(info.colors))
	copy(out, info.colors)
	return out, nil
}

// AllowsColor valida color contra la paleta de la especie.
func AllowsColor(s Species, c Color) bool {
	info, ok := catalogue[s]
	if !ok {
		return false
	}
	for _, v := range info.colors {
		if v == c {
			return true
		}
	}
	return false
}

// NormalizeColor devuelve el color si la especie lo admite, si no el primero de su paleta.
func NormalizeColor(c Color, s Species) (Color, error) {
	colors, err := AvailableColors(s)
	if err != nil {
		return ColorNull, err
	}
	for _, v := range colors {
		if v == c {
			return c, nil
		}
	}
	return colors[0], nil
}

// AllSpecies lista el catálogo en orden alfabético.
func AllSpecies() []Species {
	return []Species{
		SpeciesBunny, SpeciesCat, SpeciesChicken, SpeciesClippy, SpeciesCockatiel,
		SpeciesCrab, SpeciesDeno, SpeciesDog, SpeciesFox, SpeciesFrog, SpeciesHorse,
		SpeciesMod, SpeciesPanda, SpeciesRat, SpeciesRocky, SpeciesRubberDuck,
		SpeciesSnail, SpeciesSnake, SpeciesTotoro, SpeciesTurtle, SpeciesZappy,
	}
}
