package page

import (
	"context"
	"errors"

	"retail-mis-console/internal/model"
)

// DBPollSeconds is how often the database page asks to be refreshed
const DBPollSeconds = 10

// Pages returns one renderer per console view
func Pages(deps Deps) map[model.ViewID]Renderer {
	return map[model.ViewID]Renderer{
		model.ViewDashboard:        RendererFunc(dashboard),
		model.ViewPOS:              static("Point of Sale", table("Cart", posCart), kpi("Totals", posTotals)),
		model.ViewSalesHistory:     static("Sales History", table("Recent sales", salesHistory)),
		model.ViewInventory:        static("Inventory", table("Products", products)),
		model.ViewStockAdjustments: static("Stock Adjustments", table("Adjustments", stockAdjustments)),
		model.ViewProcurement:      static("Purchase Orders", table("Open orders", purchaseOrders)),
		model.ViewSuppliers:        static("Suppliers", table("Suppliers", suppliers)),
		model.ViewHR:               static("Employees", table("Staff", employees)),
		model.ViewPayroll:          static("Payroll", table("Current period", payroll)),
		model.ViewCRM:              static("Customers", table("Loyalty members", customers)),
		model.ViewFinance:          static("Finance", kpi("Month to date", financeSummary)),
		model.ViewReports:          static("Reports", table("Available reports", reports)),
		model.ViewAdminUsers:       static("Users", table("Console accounts", consoleUsers)),
		model.ViewAdminRoles:       roleList(deps.Access),
		model.ViewAdminRolesEdit:   roleEditor(deps.Access),
		model.ViewAdminSettings:    static("Settings", kpi("Store", storeSettings)),
		model.ViewAdminLogs:        static("Audit Logs", table("Recent events", auditLogs)),
		model.ViewAdminDB:          databaseStatus(deps.Status),
		model.ViewProfile:          RendererFunc(profile),
	}
}

func table(title string, rows any) Widget {
	return Widget{Type: "table", Title: title, Data: rows}
}

func kpi(title string, values any) Widget {
	return Widget{Type: "kpi", Title: title, Data: values}
}

func dashboard(_ context.Context, pc Context) (*Page, error) {
	widgets := []Widget{kpi("Today", dashboardKPIs)}
	if pc.Session != nil {
		widgets = append([]Widget{{
			Type:  "greeting",
			Title: "Welcome back, " + pc.Session.Name,
			Data:  map[string]string{"role": pc.Session.Role.DisplayName()},
		}}, widgets...)
	}
	return newPage(pc, "Dashboard", widgets...), nil
}

func profile(_ context.Context, pc Context) (*Page, error) {
	if pc.Session == nil {
		return nil, errors.New("profile needs a session")
	}
	return newPage(pc, "My Profile", Widget{
		Type:  "profile",
		Title: pc.Session.Name,
		Data: map[string]any{
			"email":      pc.Session.Email,
			"role":       pc.Session.Role,
			"role_name":  pc.Session.Role.DisplayName(),
			"expires_at": pc.Session.ExpiresAt,
		},
	}), nil
}

type roleRow struct {
	Code        model.Role     `json:"code"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Views       []model.ViewID `json:"views,omitempty"`
	EditRoute   string         `json:"edit_route,omitempty"`
}

func roleList(access RoleViews) Renderer {
	return RendererFunc(func(_ context.Context, pc Context) (*Page, error) {
		rows := make([]roleRow, 0, len(model.Roles))
		for _, info := range model.Roles {
			row := roleRow{
				Code:        info.Code,
				Name:        info.Name,
				Description: info.Description,
				EditRoute:   model.ViewRoute(model.ViewAdminRolesEdit.WithPayload(string(info.Code))),
			}
			if access != nil {
				row.Views = access.ViewsFor(info.Code)
			}
			rows = append(rows, row)
		}
		return newPage(pc, "Roles", table("Roles", rows)), nil
	})
}

// roleEditor reads the role to edit from the payload
func roleEditor(access RoleViews) Renderer {
	return RendererFunc(func(_ context.Context, pc Context) (*Page, error) {
		role, err := model.ParseRole(pc.Payload)
		if err != nil {
			return newPage(pc, "Edit Role", Widget{
				Type:  "notice",
				Title: "Unknown role",
				Data:  map[string]string{"role": pc.Payload},
			}), nil
		}

		var views []model.ViewID
		if access != nil {
			views = access.ViewsFor(role)
		}
		return newPage(pc, "Edit Role: "+role.DisplayName(), Widget{
			Type:  "form",
			Title: role.DisplayName(),
			Data: roleRow{
				Code:  role,
				Name:  role.DisplayName(),
				Views: views,
			},
		}), nil
	})
}

func databaseStatus(src StatusSource) Renderer {
	return RendererFunc(func(ctx context.Context, pc Context) (*Page, error) {
		data := map[string]any{"poll_interval_seconds": DBPollSeconds}
		if src == nil {
			data["status"] = "unavailable"
			return newPage(pc, "Database", Widget{Type: "status", Title: "Connectivity", Data: data}), nil
		}

		status, err := src.DatabaseStatus(ctx)
		if err != nil {
			data["status"] = "unavailable"
			data["error"] = "Could not reach the status endpoint"
		} else {
			data["status"] = status.Status
			data["latency_ms"] = status.LatencyMS
			data["checked_at"] = status.CheckedAt
		}
		return newPage(pc, "Database", Widget{Type: "status", Title: "Connectivity", Data: data}), nil
	})
}
