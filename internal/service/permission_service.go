package service

import (
	"fmt"
	"sort"

	"retail-mis-console/internal/model"
)

// PermissionTable maps base view ids to the roles allowed to open them.
// It is immutable after construction and safe for concurrent use.
type PermissionTable struct {
	entries map[model.ViewID]map[model.Role]struct{}
}

// NewPermissionTable builds the table from view definitions
func NewPermissionTable(defs []model.ViewDefinition) (*PermissionTable, error) {
	entries := make(map[model.ViewID]map[model.Role]struct{}, len(defs))
	for _, def := range defs {
		if def.ID == "" || def.ID.Base() != def.ID {
			return nil, fmt.Errorf("invalid view id %q", def.ID)
		}
		if _, dup := entries[def.ID]; dup {
			return nil, fmt.Errorf("view %q defined twice", def.ID)
		}
		if len(def.Roles) == 0 {
			return nil, fmt.Errorf("view %q allows no roles", def.ID)
		}

		roles := make(map[model.Role]struct{}, len(def.Roles))
		for _, r := range def.Roles {
			if !r.Valid() {
				return nil, fmt.Errorf("view %q: %w: %q", def.ID, model.ErrUnknownRole, r)
			}
			roles[r] = struct{}{}
		}
		entries[def.ID] = roles
	}
	return &PermissionTable{entries: entries}, nil
}

// IsAllowed reports whether role may open view. The payload suffix is ignored;
// views missing from the table are denied to every role.
func (t *PermissionTable) IsAllowed(view model.ViewID, role model.Role) bool {
	roles, ok := t.entries[view.Base()]
	if !ok {
		return false
	}
	_, ok = roles[role]
	return ok
}

// Has reports whether the base of view has an entry
func (t *PermissionTable) Has(view model.ViewID) bool {
	_, ok := t.entries[view.Base()]
	return ok
}

// Views returns the permission keys, sorted
func (t *PermissionTable) Views() []model.ViewID {
	views := make([]model.ViewID, 0, len(t.entries))
	for v := range t.entries {
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool { return views[i] < views[j] })
	return views
}

// RolesFor returns the roles allowed to open view in catalog order
func (t *PermissionTable) RolesFor(view model.ViewID) []model.Role {
	roles, ok := t.entries[view.Base()]
	if !ok {
		return nil
	}
	out := make([]model.Role, 0, len(roles))
	for _, info := range model.Roles {
		if _, ok := roles[info.Code]; ok {
			out = append(out, info.Code)
		}
	}
	return out
}

// ViewsFor returns the permission keys role may open, sorted
func (t *PermissionTable) ViewsFor(role model.Role) []model.ViewID {
	var views []model.ViewID
	for _, v := range t.Views() {
		if t.IsAllowed(v, role) {
			views = append(views, v)
		}
	}
	return views
}
