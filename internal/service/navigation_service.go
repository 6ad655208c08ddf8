package service

import (
	"fmt"

	"retail-mis-console/internal/model"
)

// NavigationResolver projects the view definitions onto what a role may see.
// Everything it returns passes the permission table for that role.
type NavigationResolver struct {
	table    *PermissionTable
	defs     []model.ViewDefinition
	defaults map[model.Role]model.ViewID
}

// Menu is the full navigation payload for one role
type Menu struct {
	Role         model.Role          `json:"role"`
	RoleName     string              `json:"role_name"`
	DefaultView  model.ViewID        `json:"default_view"`
	DefaultRoute string              `json:"default_route"`
	Sections     []model.NavSection  `json:"sections"`
	QuickActions []model.QuickAction `json:"quick_actions"`
}

// NewNavigationResolver fails unless every catalog role has a default view it is allowed to open
func NewNavigationResolver(table *PermissionTable, defs []model.ViewDefinition, defaults map[model.Role]model.ViewID) (*NavigationResolver, error) {
	for _, info := range model.Roles {
		view, ok := defaults[info.Code]
		if !ok || view == "" {
			return nil, fmt.Errorf("role %s has no default view", info.Code)
		}
		if !table.IsAllowed(view, info.Code) {
			return nil, fmt.Errorf("role %s cannot open its default view %s", info.Code, view)
		}
	}
	for role := range defaults {
		if !role.Valid() {
			return nil, fmt.Errorf("default view for %w: %q", model.ErrUnknownRole, role)
		}
	}

	copied := make(map[model.Role]model.ViewID, len(defaults))
	for r, v := range defaults {
		copied[r] = v
	}
	return &NavigationResolver{table: table, defs: defs, defaults: copied}, nil
}

// NavItems returns the role's navigation grouped by section, in display order.
// Empty sections are omitted.
func (n *NavigationResolver) NavItems(role model.Role) []model.NavSection {
	bySection := make(map[model.Section][]model.NavItem)
	for _, def := range n.defs {
		if !def.InNav || !n.table.IsAllowed(def.ID, role) {
			continue
		}
		bySection[def.Section] = append(bySection[def.Section], model.NavItem{
			ID:    def.ID,
			Label: def.Label,
			Icon:  def.Icon,
			Route: model.ViewRoute(def.ID),
		})
	}

	sections := make([]model.NavSection, 0, len(bySection))
	for _, s := range model.Sections {
		if items := bySection[s]; len(items) > 0 {
			sections = append(sections, model.NavSection{Title: s, Items: items})
		}
	}
	return sections
}

// QuickActions returns the role's shortcuts in definition order
func (n *NavigationResolver) QuickActions(role model.Role) []model.QuickAction {
	actions := []model.QuickAction{}
	for _, def := range n.defs {
		if def.QuickAction == nil || !n.table.IsAllowed(def.ID, role) {
			continue
		}
		actions = append(actions, model.QuickAction{
			ID:          def.ID,
			Label:       def.QuickAction.Label,
			Icon:        def.Icon,
			Route:       model.ViewRoute(def.ID),
			Description: def.QuickAction.Description,
		})
	}
	return actions
}

// DefaultView returns the landing view of role; false for roles outside the catalog
func (n *NavigationResolver) DefaultView(role model.Role) (model.ViewID, bool) {
	if !role.Valid() {
		return "", false
	}
	view, ok := n.defaults[role]
	return view, ok
}

// Menu assembles sections, quick actions and the default view of role
func (n *NavigationResolver) Menu(role model.Role) (*Menu, error) {
	view, ok := n.DefaultView(role)
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownRole, role)
	}
	return &Menu{
		Role:         role,
		RoleName:     role.DisplayName(),
		DefaultView:  view,
		DefaultRoute: model.ViewRoute(view),
		Sections:     n.NavItems(role),
		QuickActions: n.QuickActions(role),
	}, nil
}

// NewDefaultAccessModel builds the permission table and resolver from the built-in definitions
func NewDefaultAccessModel() (*PermissionTable, *NavigationResolver, error) {
	table, err := NewPermissionTable(model.ViewDefinitions)
	if err != nil {
		return nil, nil, err
	}
	nav, err := NewNavigationResolver(table, model.ViewDefinitions, model.DefaultViews)
	if err != nil {
		return nil, nil, err
	}
	return table, nav, nil
}
