package service

import (
	"testing"

	"retail-mis-console/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultModel(t *testing.T) (*PermissionTable, *NavigationResolver) {
	t.Helper()
	table, nav, err := NewDefaultAccessModel()
	require.NoError(t, err)
	return table, nav
}

func TestDefaultViewIsAllowedForEveryRole(t *testing.T) {
	table, nav := defaultModel(t)

	for _, info := range model.Roles {
		view, ok := nav.DefaultView(info.Code)
		require.True(t, ok, info.Code)
		assert.NotEmpty(t, view)
		assert.True(t, table.IsAllowed(view, info.Code), "%s default %s", info.Code, view)
	}
}

func TestDefaultViewPerRole(t *testing.T) {
	_, nav := defaultModel(t)

	want := map[model.Role]model.ViewID{
		model.RoleSuperAdmin:     model.ViewDashboard,
		model.RoleSystemAdmin:    model.ViewAdminUsers,
		model.RoleManager:        model.ViewDashboard,
		model.RoleCashier:        model.ViewPOS,
		model.RoleInventoryClerk: model.ViewInventory,
	}
	for role, view := range want {
		got, ok := nav.DefaultView(role)
		assert.True(t, ok)
		assert.Equal(t, view, got, role)
	}
}

func TestDefaultViewUnknownRole(t *testing.T) {
	_, nav := defaultModel(t)

	_, ok := nav.DefaultView("Owner")
	assert.False(t, ok)
	_, ok = nav.DefaultView("")
	assert.False(t, ok)
}

func TestNavItemsAndQuickActionsAreAllowed(t *testing.T) {
	table, nav := defaultModel(t)

	for _, info := range model.Roles {
		for _, section := range nav.NavItems(info.Code) {
			assert.NotEmpty(t, section.Items, "empty section %s", section.Title)
			for _, item := range section.Items {
				assert.True(t, table.IsAllowed(item.ID, info.Code), "%s nav %s", info.Code, item.ID)
				assert.Equal(t, model.ViewRoute(item.ID), item.Route)
			}
		}
		for _, action := range nav.QuickActions(info.Code) {
			assert.True(t, table.IsAllowed(action.ID, info.Code), "%s quick action %s", info.Code, action.ID)
		}
	}
}

func TestNavItemsSkipParameterisedViews(t *testing.T) {
	_, nav := defaultModel(t)

	for _, section := range nav.NavItems(model.RoleSuperAdmin) {
		for _, item := range section.Items {
			assert.NotEqual(t, model.ViewAdminRolesEdit, item.ID)
		}
	}
}

func TestNavItemsSectionOrder(t *testing.T) {
	_, nav := defaultModel(t)

	var titles []model.Section
	for _, section := range nav.NavItems(model.RoleCashier) {
		titles = append(titles, section.Title)
	}
	assert.Equal(t, []model.Section{model.SectionOverview, model.SectionSales, model.SectionAccount}, titles)
}

func TestNavigationForUnknownRoleIsEmpty(t *testing.T) {
	_, nav := defaultModel(t)

	assert.Empty(t, nav.NavItems("Owner"))
	assert.NotNil(t, nav.QuickActions("Owner"))
	assert.Empty(t, nav.QuickActions("Owner"))

	_, err := nav.Menu("Owner")
	assert.ErrorIs(t, err, model.ErrUnknownRole)
}

func TestQuickActionsCashier(t *testing.T) {
	_, nav := defaultModel(t)

	var ids []model.ViewID
	for _, a := range nav.QuickActions(model.RoleCashier) {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []model.ViewID{model.ViewPOS, model.ViewCRM}, ids)
}

func TestMenu(t *testing.T) {
	_, nav := defaultModel(t)

	menu, err := nav.Menu(model.RoleInventoryClerk)
	require.NoError(t, err)
	assert.Equal(t, "Inventory Clerk", menu.RoleName)
	assert.Equal(t, model.ViewInventory, menu.DefaultView)
	assert.Equal(t, "/console/views/inventory", menu.DefaultRoute)
	assert.NotEmpty(t, menu.Sections)
	assert.NotEmpty(t, menu.QuickActions)
}

func TestNewNavigationResolverValidatesDefaults(t *testing.T) {
	table := defaultTable(t)

	defaults := map[model.Role]model.ViewID{}
	for r, v := range model.DefaultViews {
		defaults[r] = v
	}
	defaults[model.RoleCashier] = model.ViewAdminDB
	_, err := NewNavigationResolver(table, model.ViewDefinitions, defaults)
	assert.ErrorContains(t, err, "cannot open its default view")

	delete(defaults, model.RoleCashier)
	_, err = NewNavigationResolver(table, model.ViewDefinitions, defaults)
	assert.ErrorContains(t, err, "has no default view")
}
