package service

import (
	"context"
	"errors"
	"fmt"

	"retail-mis-console/internal/model"
	"retail-mis-console/internal/page"
)

var (
	ErrNotAuthorized = errors.New("render requires an authorized decision")
	ErrNoPage        = errors.New("no page registered for view")
)

// ViewRegistry maps permission keys to the pages that render them
type ViewRegistry struct {
	pages map[model.ViewID]page.Renderer
}

// NewViewRegistry fails unless pages and the permission table cover exactly the same views
func NewViewRegistry(table *PermissionTable, pages map[model.ViewID]page.Renderer) (*ViewRegistry, error) {
	r := &ViewRegistry{pages: make(map[model.ViewID]page.Renderer, len(pages))}
	for v, p := range pages {
		r.pages[v] = p
	}
	if err := r.Verify(table); err != nil {
		return nil, err
	}
	return r, nil
}

// Verify reports every permission key without a page and every page without a permission key
func (r *ViewRegistry) Verify(table *PermissionTable) error {
	var errs []error
	for _, v := range table.Views() {
		if r.pages[v] == nil {
			errs = append(errs, fmt.Errorf("view %q has a permission entry but no page", v))
		}
	}
	for v := range r.pages {
		if v.Base() != v {
			errs = append(errs, fmt.Errorf("page registered under parameterised id %q", v))
			continue
		}
		if !table.Has(v) {
			errs = append(errs, fmt.Errorf("page %q has no permission entry", v))
		}
	}
	return errors.Join(errs...)
}

// Render runs the page of an authorized decision. The payload reaches the page unchanged.
func (r *ViewRegistry) Render(ctx context.Context, d Decision) (*page.Page, error) {
	if !d.Authorized() {
		return nil, ErrNotAuthorized
	}
	p, ok := r.pages[d.View]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPage, d.View)
	}
	return p.Render(ctx, page.Context{
		View:    d.View,
		Payload: d.Payload,
		Session: d.Session,
	})
}
