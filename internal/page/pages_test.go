package page

import (
	"context"
	"errors"
	"testing"
	"time"

	"retail-mis-console/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusFunc func(ctx context.Context) (*model.DBStatus, error)

func (f statusFunc) DatabaseStatus(ctx context.Context) (*model.DBStatus, error) {
	return f(ctx)
}

type staticViews []model.ViewID

func (v staticViews) ViewsFor(model.Role) []model.ViewID {
	return v
}

func testSession() *model.Session {
	return &model.Session{
		Name:      "Store Manager",
		Role:      model.RoleManager,
		Email:     "manager@example.com",
		ExpiresAt: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestEveryPageRenders(t *testing.T) {
	pages := Pages(Deps{})

	for id, r := range pages {
		p, err := r.Render(context.Background(), Context{View: id, Session: testSession()})
		require.NoError(t, err, id)
		assert.Equal(t, id, p.View)
		assert.NotEmpty(t, p.Title, id)
		assert.NotNil(t, p.Widgets, id)
	}
}

func TestDatabasePage(t *testing.T) {
	checked := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	up := statusFunc(func(context.Context) (*model.DBStatus, error) {
		return &model.DBStatus{Status: model.DBStatusConnected, LatencyMS: 3, CheckedAt: checked}, nil
	})

	p, err := Pages(Deps{Status: up})[model.ViewAdminDB].Render(context.Background(), Context{View: model.ViewAdminDB})
	require.NoError(t, err)
	require.Len(t, p.Widgets, 1)
	data := p.Widgets[0].Data.(map[string]any)
	assert.Equal(t, model.DBStatusConnected, data["status"])
	assert.Equal(t, int64(3), data["latency_ms"])
	assert.Equal(t, DBPollSeconds, data["poll_interval_seconds"])

	down := statusFunc(func(context.Context) (*model.DBStatus, error) { return nil, errors.New("timeout") })
	p, err = Pages(Deps{Status: down})[model.ViewAdminDB].Render(context.Background(), Context{View: model.ViewAdminDB})
	require.NoError(t, err)
	data = p.Widgets[0].Data.(map[string]any)
	assert.Equal(t, "unavailable", data["status"])
}

func TestRoleEditorReadsPayload(t *testing.T) {
	editor := Pages(Deps{Access: staticViews{model.ViewPOS}})[model.ViewAdminRolesEdit]

	p, err := editor.Render(context.Background(), Context{View: model.ViewAdminRolesEdit, Payload: "Cashier"})
	require.NoError(t, err)
	assert.Equal(t, "Edit Role: Cashier", p.Title)
	assert.Equal(t, "Cashier", p.Payload)
	row := p.Widgets[0].Data.(roleRow)
	assert.Equal(t, []model.ViewID{model.ViewPOS}, row.Views)

	p, err = editor.Render(context.Background(), Context{View: model.ViewAdminRolesEdit, Payload: "Owner"})
	require.NoError(t, err)
	assert.Equal(t, "notice", p.Widgets[0].Type)
}

func TestRoleListLinksToEditor(t *testing.T) {
	p, err := Pages(Deps{})[model.ViewAdminRoles].Render(context.Background(), Context{View: model.ViewAdminRoles})
	require.NoError(t, err)

	rows := p.Widgets[0].Data.([]roleRow)
	require.Len(t, rows, len(model.Roles))
	assert.Equal(t, "/console/views/admin-roles-edit|SuperAdmin", rows[0].EditRoute)
}

func TestProfileNeedsSession(t *testing.T) {
	profile := Pages(Deps{})[model.ViewProfile]

	_, err := profile.Render(context.Background(), Context{View: model.ViewProfile})
	assert.Error(t, err)

	p, err := profile.Render(context.Background(), Context{View: model.ViewProfile, Session: testSession()})
	require.NoError(t, err)
	assert.Equal(t, "Store Manager", p.Widgets[0].Title)
}

func TestLoginPage(t *testing.T) {
	p := Login()
	assert.Equal(t, model.LoginView, p.View)
	assert.NotEmpty(t, p.Widgets)
}
