// Package page holds the console screens. Pages are fixtures: they render
// whatever they are asked to once the access guard has let the request through.
package page

import (
	"context"

	"retail-mis-console/internal/model"
)

// Context is what a page receives for one render
type Context struct {
	View    model.ViewID
	Payload string
	Session *model.Session
}

// Widget is one block of a rendered page
type Widget struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Data  any    `json:"data,omitempty"`
}

// Page is the JSON document returned for a view
type Page struct {
	Title   string       `json:"title"`
	View    model.ViewID `json:"view"`
	Payload string       `json:"payload,omitempty"`
	Widgets []Widget     `json:"widgets"`
}

type Renderer interface {
	Render(ctx context.Context, pc Context) (*Page, error)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(ctx context.Context, pc Context) (*Page, error)

func (f RendererFunc) Render(ctx context.Context, pc Context) (*Page, error) {
	return f(ctx, pc)
}

// StatusSource reports database connectivity
type StatusSource interface {
	DatabaseStatus(ctx context.Context) (*model.DBStatus, error)
}

// RoleViews lists the views a role may open
type RoleViews interface {
	ViewsFor(role model.Role) []model.ViewID
}

// Deps are the collaborators some pages need
type Deps struct {
	Status StatusSource
	Access RoleViews
}

// Login is the public sign-in screen
func Login() *Page {
	return &Page{
		Title: "Sign in",
		View:  model.LoginView,
		Widgets: []Widget{
			{Type: "form", Title: "Sign in to the console", Data: map[string]any{
				"action": "/console/login",
				"fields": []string{"email", "password"},
			}},
		},
	}
}

func newPage(pc Context, title string, widgets ...Widget) *Page {
	if widgets == nil {
		widgets = []Widget{}
	}
	return &Page{Title: title, View: pc.View, Payload: pc.Payload, Widgets: widgets}
}

func static(title string, widgets ...Widget) Renderer {
	return RendererFunc(func(_ context.Context, pc Context) (*Page, error) {
		return newPage(pc, title, widgets...), nil
	})
}
