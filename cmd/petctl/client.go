package main

import (
	"context"
	"net/http"
	"net/url"

	"pet-playground/internal/domain/panel"
	"pet-playground/internal/platform/httpclient"
)

// panelClient mapea los comandos de petctl a la API HTTP del host.
type panelClient struct {
	http *httpclient.Client
}

func (c *panelClient) spawn(ctx context.Context, species, color, name string) (panel.PetView, error) {
	var v panel.PetView
	err := c.http.DoJSON(ctx, http.MethodPost, "/pets", map[string]string{
		"type":  species,
		"color": color,
		"name":  name,
	}, &v)
	return v, err
}

func (c *panelClient) list(ctx context.Context) (string, error) {
	return c.http.DoText(ctx, http.MethodGet, "/pets?format=text")
}

func (c *panelClient) rollCall(ctx context.Context) ([]string, error) {
	var out struct {
		Lines []string `json:"lines"`
	}
	err := c.http.DoJSON(ctx, http.MethodGet, "/pets/roll-call", nil, &out)
	return out.Lines, err
}

// delete devuelve el texto del host también cuando la mascota no existe.
func (c *panelClient) delete(ctx context.Context, species, color, name string) (string, error) {
	path := "/pets/" + url.PathEscape(species) + "/" + url.PathEscape(color) + "/" + url.PathEscape(name)

	var out struct {
		Text string `json:"text"`
	}
	err := c.http.DoJSON(ctx, http.MethodDelete, path, nil, &out)
	if httpclient.StatusCode(err) == http.StatusNotFound {
		return "Could not find pet " + name, err
	}
	return out.Text, err
}

func (c *panelClient) post(ctx context.Context, cmd string) error {
	path := map[string]string{
		"reset":  "/pets/reset",
		"pause":  "/session/pause",
		"resume": "/session/resume",
	}[cmd]
	return c.http.DoJSON(ctx, http.MethodPost, path, nil, nil)
}

func (c *panelClient) throw(ctx context.Context, x *float64) (int, error) {
	var in any
	if x != nil {
		in = map[string]float64{"x": *x}
	}
	var out struct {
		Chasers int `json:"chasers"`
	}
	err := c.http.DoJSON(ctx, http.MethodPost, "/ball/throw", in, &out)
	return out.Chasers, err
}

func (c *panelClient) tick(ctx context.Context) (bool, error) {
	var out struct {
		Ran bool `json:"ran"`
	}
	err := c.http.DoJSON(ctx, http.MethodPost, "/tick", nil, &out)
	return out.Ran, err
}
