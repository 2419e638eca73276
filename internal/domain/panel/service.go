package panel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"pet-playground/internal/domain/pets"
	"pet-playground/internal/domain/session"
	"pet-playground/internal/platform/logger"
)

var (
	ErrNotFound      = errors.New("pet not found")
	ErrThrowDisabled = errors.New("throwing with the mouse is disabled")
)

// Metrics lo implementa observability.Collector.
type Metrics interface {
	SetPopulation(n int)
	IncTick()
	AddFriendships(n int)
	IncRecoveryDiscarded()
	ObserveCommand(command, outcome string)
}

type noopMetrics struct{}

func (noopMetrics) SetPopulation(int)             {}
func (noopMetrics) IncTick()                      {}
func (noopMetrics) AddFriendships(int)            {}
func (noopMetrics) IncRecoveryDiscarded()         {}
func (noopMetrics) ObserveCommand(string, string) {}

type Options struct {
	Repo    session.Repository
	Handles pets.HandleFactory
	Log     logger.Logger
	Metrics Metrics

	Size     pets.Size
	Floor    float64
	Viewport float64

	// Names genera nombres; default pets.RandomName.
	Names func(pets.Species) string
	Rand  *rand.Rand
	Now   func() time.Time
}

// Service es el dispatcher de comandos. Es el único que muta la población;
// los comandos quedan serializados por mu.
type Service struct {
	mu sync.Mutex

	repo    session.Repository
	handles pets.HandleFactory
	log     logger.Logger
	metrics Metrics

	size     pets.Size
	floor    float64
	viewport float64
	names    func(pets.Species) string
	rnd      *rand.Rand
	now      func() time.Time

	pets    *pets.Collection
	counter int
	ready   bool
	ball    *ball

	// paused guarda el contador previo a Pause; no afecta los ticks.
	paused   bool
	resumeTo int
}

func NewService(opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	var m Metrics = noopMetrics{}
	if opts.Metrics != nil {
		m = opts.Metrics
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	names := opts.Names
	if names == nil {
		names = func(s pets.Species) string { return pets.RandomName(s, rnd) }
	}
	size := opts.Size
	if size == "" {
		size = pets.SizeSmall
	}

	return &Service{
		repo:     opts.Repo,
		handles:  opts.Handles,
		log:      log,
		metrics:  m,
		size:     size,
		floor:    opts.Floor,
		viewport: opts.Viewport,
		names:    names,
		rnd:      rnd,
		now:      now,
		pets:     pets.NewCollection(log),
		ball:     &ball{},
	}
}

// DefaultPet es la mascota con la que arranca una sesión nueva.
type DefaultPet struct {
	Species pets.Species
	Color   pets.Color
}

// Start recupera la sesión guardada, o crea una nueva con la mascota por defecto.
func (s *Service) Start(ctx context.Context, def DefaultPet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	if st == nil {
		s.log.Info("no state, starting a new session", map[string]any{
			"pet_type":  string(def.Species),
			"pet_color": string(def.Color),
		})
		s.counter = 1

		color, err := pets.NormalizeColor(def.Color, def.Species)
		if err != nil {
			return err
		}
		rec, err := s.build(pets.Blueprint{
			Species: def.Species,
			Color:   color,
			Size:    s.size,
			Left:    s.randomStartPosition(),
			Bottom:  s.floor,
			Name:    s.names(def.Species),
		})
		if err != nil {
			return err
		}
		s.pets.Push(rec)
		return s.saveLocked(ctx)
	}

	s.counter = st.Counter()
	res := session.Recover(st, s.pets, session.RecoverOptions{
		Build: s.build,
		Name:  s.names,
		Size:  s.size,
		Log:   s.log,
		OnDiscard: func(session.PetEntry, error) {
			s.metrics.IncRecoveryDiscarded()
		},
	})
	s.log.Info("session recovered", map[string]any{
		"recovered":   res.Recovered,
		"discarded":   res.Discarded,
		"pet_counter": s.counter,
	})
	s.metrics.SetPopulation(s.pets.Len())
	return nil
}

// Ready marca que la superficie de render está lista; antes de esto Tick no hace nada.
func (s *Service) Ready() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		s.log.Info("panel ready", nil)
	}
	s.ready = true
}

// Tick: barrido de amigos, luego un frame por mascota, luego save. En ese orden.
// Devuelve false si no corrió: antes de Ready no hay efectos.
func (s *Service) Tick(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return false, nil
	}

	formed := s.pets.SeekNewFriends()
	for _, f := range formed {
		s.log.Info("new friendship", map[string]any{"pet": f.Pet, "friend": f.Friend})
	}

	for _, r := range s.pets.Pets() {
		r.Pet.NextFrame()
		r.Sync()
	}

	s.metrics.IncTick()
	s.metrics.AddFriendships(len(formed))
	return true, s.saveLocked(ctx)
}

type SpawnInput struct {
	Species pets.Species
	Color   pets.Color
	Size    pets.Size // vacío => tamaño del panel
	Name    string    // vacío => nombre generado
}

// Spawn crea una mascota en una posición aleatoria sobre el piso.
func (s *Service) Spawn(ctx context.Context, in SpawnInput) (PetView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := in.Size
	if size == "" {
		size = s.size
	}
	name := strings.TrimSpace(in.Name)
	if name == "" && in.Species.Valid() {
		name = s.names(in.Species)
	}

	rec, err := s.build(pets.Blueprint{
		Species: in.Species,
		Color:   in.Color,
		Size:    size,
		Left:    s.randomStartPosition(),
		Bottom:  s.floor,
		Name:    name,
	})
	if err != nil {
		s.metrics.ObserveCommand("spawn-pet", "invalid")
		return PetView{}, err
	}

	s.pets.Push(rec)
	s.metrics.ObserveCommand("spawn-pet", "ok")
	s.log.Info("pet spawned", map[string]any{
		"pet_name":  rec.Pet.Name(),
		"pet_type":  string(rec.Species),
		"pet_color": string(rec.Color),
	})
	return viewOf(rec), s.saveLocked(ctx)
}

type PetSummary struct {
	Species pets.Species `json:"type"`
	Name    string       `json:"name"`
	Color   pets.Color   `json:"color"`
}

func (p PetSummary) String() string {
	return fmt.Sprintf("%s,%s,%s", p.Species, p.Name, p.Color)
}

// List devuelve species,name,color por mascota. Solo lectura.
func (s *Service) List() []PetSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]PetSummary, 0, s.pets.Len())
	for _, r := range s.pets.Pets() {
		out = append(out, PetSummary{Species: r.Species, Name: r.Pet.Name(), Color: r.Color})
	}
	return out
}

// RollCall devuelve una línea legible por mascota. Solo lectura.
func (s *Service) RollCall() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, s.pets.Len())
	for _, r := range s.pets.Pets() {
		out = append(out, fmt.Sprintf("%s %s (%s %s): %s", r.Pet.Emoji(), r.Pet.Name(), r.Color, r.Species, r.Pet.Hello()))
	}
	return out
}

// Delete borra la mascota identificada por la tripleta. Si no existe => ErrNotFound.
func (s *Service) Delete(ctx context.Context, name string, species pets.Species, color pets.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.pets.LocatePet(name, species, color)
	if rec == nil {
		s.metrics.ObserveCommand("delete-pet", "not_found")
		return ErrNotFound
	}

	s.pets.Remove(rec)
	s.metrics.ObserveCommand("delete-pet", "ok")
	s.log.Info("pet removed", map[string]any{"pet_name": name})
	return s.saveLocked(ctx)
}

// Reset destruye todas las mascotas y pone el contador en 0.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pets.Reset()
	s.counter = 0
	s.paused = false
	s.metrics.ObserveCommand("reset-pet", "ok")
	return s.saveLocked(ctx)
}

// Pause deja el contador en 1. No destruye mascotas ni frena los ticks.
func (s *Service) Pause(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.paused {
		s.resumeTo = s.counter
		s.paused = true
	}
	s.counter = 1
	s.metrics.ObserveCommand("pause-pet", "ok")
	return s.saveLocked(ctx)
}

// Resume devuelve el contador al valor previo a Pause. Sin pausa previa no lo toca.
func (s *Service) Resume(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		s.counter = s.resumeTo
		s.paused = false
	}
	s.metrics.ObserveCommand("resume-pet", "ok")
	return s.saveLocked(ctx)
}

// ThrowWithMouse habilita/deshabilita lanzar la pelota con el puntero.
func (s *Service) ThrowWithMouse(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ball.withMouse = enabled
}

// ThrowBall lanza la pelota a un punto aleatorio. Devuelve cuántas mascotas la persiguen.
func (s *Service) ThrowBall() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	x := s.rnd.Float64() * math.Max(s.viewport, 1)
	return s.ball.throw(x, s.pets.Behaviors())
}

// ThrowAt lanza la pelota a x (px); solo con throw-with-mouse habilitado.
func (s *Service) ThrowAt(x float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ball.withMouse {
		return 0, ErrThrowDisabled
	}
	return s.ball.throw(x, s.pets.Behaviors()), nil
}

// PointerOver despacha el evento de puntero sobre una zona de colisión.
func (s *Service) PointerOver(collisionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pets.DispatchPointerOver(collisionID)
}

// Counter devuelve el contador de actividad actual.
func (s *Service) Counter() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter
}

// Render devuelve la vista de cada mascota con su posición en píxeles.
func (s *Service) Render() RenderView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := RenderView{
		Ready:     s.ready,
		Paused:    s.paused,
		Ball:      s.ball.view(),
		Pets:      make([]PetView, 0, s.pets.Len()),
		Generated: s.now(),
	}
	for _, r := range s.pets.Pets() {
		out.Pets = append(out.Pets, viewOf(r))
	}
	return out
}

// build crea handles y criatura. Si algo falla, libera lo creado.
func (s *Service) build(bp pets.Blueprint) (*pets.Record, error) {
	hs := pets.NewHandles(s.handles, bp.Species, bp.Color, bp.Size)

	if !bp.Species.Valid() {
		hs.Release()
		return nil, fmt.Errorf("%w: pet type %q doesn't exist", pets.ErrInvalidPet, bp.Species)
	}
	if !pets.AllowsColor(bp.Species, bp.Color) {
		hs.Release()
		return nil, fmt.Errorf("%w: invalid color %q for pet type %q", pets.ErrInvalidPet, bp.Color, bp.Species)
	}

	creature, err := pets.NewCreature(pets.CreatureConfig{
		Name:     bp.Name,
		Species:  bp.Species,
		Size:     bp.Size,
		Left:     bp.Left,
		Bottom:   bp.Bottom,
		Viewport: s.viewport,
		Rand:     s.rnd,
		Now:      s.now,
	})
	if err != nil {
		hs.Release()
		return nil, err
	}

	s.counter++
	rec := pets.NewRecord(hs, creature, bp.Color, bp.Species)
	rec.Sync()
	return rec, nil
}

func (s *Service) saveLocked(ctx context.Context) error {
	s.metrics.SetPopulation(s.pets.Len())
	if err := s.repo.Set(ctx, session.Save(s.pets, s.counter)); err != nil {
		s.log.Error("save session failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Service) randomStartPosition() float64 {
	return math.Floor(s.rnd.Float64() * s.viewport * 0.7)
}
