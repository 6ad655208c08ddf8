package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewIDSplit(t *testing.T) {
	tests := []struct {
		in      ViewID
		base    ViewID
		payload string
	}{
		{"dashboard", "dashboard", ""},
		{"admin-roles-edit|Manager", "admin-roles-edit", "Manager"},
		{"admin-roles-edit|a|b", "admin-roles-edit", "a|b"},
		{"admin-roles-edit|", "admin-roles-edit", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		base, payload := tt.in.Split()
		assert.Equal(t, tt.base, base, tt.in)
		assert.Equal(t, tt.payload, payload, tt.in)
	}
}

func TestViewIDWithPayload(t *testing.T) {
	assert.Equal(t, ViewID("admin-roles-edit|Cashier"), ViewAdminRolesEdit.WithPayload("Cashier"))
	assert.Equal(t, ViewID("admin-roles-edit|Cashier"), ViewID("admin-roles-edit|Manager").WithPayload("Cashier"))
}

func TestViewDefinitionsAreWellFormed(t *testing.T) {
	seen := map[ViewID]bool{}
	for _, def := range ViewDefinitions {
		assert.False(t, seen[def.ID], "duplicate view %s", def.ID)
		seen[def.ID] = true
		assert.NotContains(t, string(def.ID), PayloadSeparator)
		assert.NotEmpty(t, def.Roles, "view %s has no roles", def.ID)
		assert.Contains(t, Sections, def.Section)
		for _, r := range def.Roles {
			assert.True(t, r.Valid(), "view %s lists unknown role %s", def.ID, r)
		}
	}
	for _, info := range Roles {
		assert.NotEmpty(t, DefaultViews[info.Code], "role %s has no default view", info.Code)
	}
}

func TestSessionExpiredAt(t *testing.T) {
	s := &Session{}
	now := s.ExpiresAt
	assert.True(t, s.ExpiredAt(now))
	assert.False(t, s.ExpiredAt(now.Add(-1)))
}
