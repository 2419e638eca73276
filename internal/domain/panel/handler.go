package panel

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"pet-playground/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", spawnPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/roll-call", rollCallHandler(svc))
		pr.Post("/reset", resetHandler(svc))
		pr.Delete("/{species}/{color}/{name}", deletePetHandler(svc))
	})

	r.Route("/session", func(sr chi.Router) {
		sr.Post("/pause", pauseHandler(svc))
		sr.Post("/resume", resumeHandler(svc))
		sr.Post("/ready", readyHandler(svc))
	})

	r.Post("/tick", tickHandler(svc))
	r.Post("/ball/throw", throwBallHandler(svc))
	r.Put("/ball/throw-with-mouse", throwWithMouseHandler(svc))
	r.Post("/collisions/{handleID}/pointer-over", pointerOverHandler(svc))
	r.Get("/render", renderHandler(svc))
}

type spawnPetRequest struct {
	Type  string `json:"type"`
	Color string `json:"color"`
	Name  string `json:"name"`
	Size  string `json:"size"` // opcional
}

type textResponse struct {
	Text string `json:"text"`
}

type rollCallResponse struct {
	Lines []string `json:"lines"`
}

type throwBallRequest struct {
	// X en píxeles; solo se usa con throw-with-mouse habilitado.
	X *float64 `json:"x"`
}

type throwWithMouseRequest struct {
	Enabled bool `json:"enabled"`
}

func spawnPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req spawnPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Type) == "" {
			http.Error(w, "type is required", http.StatusBadRequest)
			return
		}

		in := SpawnInput{
			Species: pets.NormalizeSpecies(req.Type),
			Color:   pets.Color(req.Color),
			Name:    req.Name,
		}
		if req.Size != "" {
			in.Size = pets.ParseSize(req.Size)
		}

		v, err := svc.Spawn(r.Context(), in)
		if err != nil {
			if errors.Is(err, pets.ErrInvalidPet) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, v)
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.List()

		// ?format=text devuelve el formato del panel: species,name,color por línea
		if r.URL.Query().Get("format") == "text" {
			lines := make([]string, 0, len(items))
			for _, p := range items {
				lines = append(lines, p.String())
			}
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(strings.Join(lines, "\n")))
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func rollCallHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, rollCallResponse{Lines: svc.RollCall()})
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if v, err := url.PathUnescape(name); err == nil {
			name = v
		}
		species := pets.NormalizeSpecies(chi.URLParam(r, "species"))
		color := pets.Color(chi.URLParam(r, "color"))

		err := svc.Delete(r.Context(), name, species, color)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeJSON(w, http.StatusNotFound, textResponse{Text: "Could not find pet " + name})
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, textResponse{Text: "👋 Removed pet " + name})
	}
}

func resetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Reset(r.Context()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func pauseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Pause(r.Context()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func resumeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Resume(r.Context()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func readyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		svc.Ready()
		w.WriteHeader(http.StatusNoContent)
	}
}

func tickHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ran, err := svc.Tick(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ran": ran})
	}
}

func throwBallHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req throwBallRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		if req.X == nil {
			writeJSON(w, http.StatusOK, map[string]int{"chasers": svc.ThrowBall()})
			return
		}

		n, err := svc.ThrowAt(*req.X)
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"chasers": n})
	}
}

func throwWithMouseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req throwWithMouseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		svc.ThrowWithMouse(req.Enabled)
		w.WriteHeader(http.StatusNoContent)
	}
}

func pointerOverHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handled := svc.PointerOver(chi.URLParam(r, "handleID"))
		writeJSON(w, http.StatusOK, map[string]bool{"handled": handled})
	}
}

func renderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, svc.Render())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
