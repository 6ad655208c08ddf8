package model

import "strings"

// ViewID names a console screen. Anything after the first '|' is an opaque
// payload for the target page, the part before it is the permission key.
type ViewID string

// PayloadSeparator splits a ViewID into its base and payload
const PayloadSeparator = "|"

// LoginView is the public entry point. It is not part of the permission table.
const LoginView ViewID = "login"

const (
	ViewDashboard        ViewID = "dashboard"
	ViewPOS              ViewID = "pos"
	ViewSalesHistory     ViewID = "sales-history"
	ViewInventory        ViewID = "inventory"
	ViewStockAdjustments ViewID = "stock-adjustments"
	ViewProcurement      ViewID = "procurement"
	ViewSuppliers        ViewID = "suppliers"
	ViewHR               ViewID = "hr"
	ViewPayroll          ViewID = "payroll"
	ViewCRM              ViewID = "crm"
	ViewFinance          ViewID = "finance"
	ViewReports          ViewID = "reports"
	ViewAdminUsers       ViewID = "admin-users"
	ViewAdminRoles       ViewID = "admin-roles"
	ViewAdminRolesEdit   ViewID = "admin-roles-edit"
	ViewAdminSettings    ViewID = "admin-settings"
	ViewAdminLogs        ViewID = "admin-logs"
	ViewAdminDB          ViewID = "admin-db"
	ViewProfile          ViewID = "profile"
)

// Split returns the permission key and the payload of v
func (v ViewID) Split() (base ViewID, payload string) {
	s := string(v)
	if i := strings.Index(s, PayloadSeparator); i >= 0 {
		return ViewID(s[:i]), s[i+len(PayloadSeparator):]
	}
	return v, ""
}

// Base returns the permission key of v
func (v ViewID) Base() ViewID {
	base, _ := v.Split()
	return base
}

// WithPayload builds a parameterised ViewID
func (v ViewID) WithPayload(payload string) ViewID {
	return ViewID(string(v.Base()) + PayloadSeparator + payload)
}

// Section groups navigation entries for display. It has no access-control meaning.
type Section string

const (
	SectionOverview  Section = "Overview"
	SectionSales     Section = "Sales"
	SectionInventory Section = "Inventory"
	SectionPeople    Section = "People"
	SectionFinance   Section = "Finance"
	SectionAdmin     Section = "Administration"
	SectionAccount   Section = "Account"
)

// Sections lists sections in display order
var Sections = []Section{
	SectionOverview,
	SectionSales,
	SectionInventory,
	SectionPeople,
	SectionFinance,
	SectionAdmin,
	SectionAccount,
}

// QuickActionSpec marks a view as a dashboard shortcut
type QuickActionSpec struct {
	Label       string
	Description string
}

// ViewDefinition is the single source for permissions, navigation and quick actions.
type ViewDefinition struct {
	ID          ViewID
	Label       string
	Icon        string
	Section     Section
	Roles       []Role
	InNav       bool // parameterised views are reached from other pages only
	QuickAction *QuickActionSpec
}

var allRoles = []Role{RoleSuperAdmin, RoleSystemAdmin, RoleManager, RoleCashier, RoleInventoryClerk}

// ViewDefinitions is the registered set of console views
var ViewDefinitions = []ViewDefinition{
	{
		ID: ViewDashboard, Label: "Dashboard", Icon: "layout-dashboard", Section: SectionOverview,
		Roles: allRoles, InNav: true,
	},
	{
		ID: ViewPOS, Label: "Point of Sale", Icon: "shopping-cart", Section: SectionSales,
		Roles: []Role{RoleSuperAdmin, RoleManager, RoleCashier}, InNav: true,
		QuickAction: &QuickActionSpec{Label: "New Sale", Description: "Open a checkout on this terminal"},
	},
	{
		ID: ViewSalesHistory, Label: "Sales History", Icon: "receipt", Section: SectionSales,
		Roles: []Role{RoleSuperAdmin, RoleManager, RoleCashier}, InNav: true,
	},
	{
		ID: ViewCRM, Label: "Customers", Icon: "users-round", Section: SectionSales,
		Roles: []Role{RoleSuperAdmin, RoleManager, RoleCashier}, InNav: true,
		QuickAction: &QuickActionSpec{Label: "Find Customer", Description: "Look up loyalty members"},
	},
	{
		ID: ViewInventory, Label: "Inventory", Icon: "package", Section: SectionInventory,
		Roles: []Role{RoleSuperAdmin, RoleManager, RoleInventoryClerk}, InNav: true,
		QuickAction: &QuickActionSpec{Label: "Check Stock", Description: "Search products and stock levels"},
	},
	{
		ID: ViewStockAdjustments, Label: "Stock Adjustments", Icon: "clipboard-list", Section: SectionInventory,
		Roles: []Role{RoleSuperAdmin, RoleManager, RoleInventoryClerk}, InNav: true,
		QuickAction: &QuickActionSpec{Label: "Adjust Stock", Description: "Record damage, loss or recount"},
	},
	{
		ID: ViewProcurement, Label: "Purchase Orders", Icon: "truck", Section: SectionInventory,
		Roles: []Role{RoleSuperAdmin, RoleManager, RoleInventoryClerk}, InNav: true,
		QuickAction: &QuickActionSpec{Label: "New Purchase Order", Description: "Order stock from a supplier"},
	},
	{
		ID: ViewSuppliers, Label: "Suppliers", Icon: "factory", Section: SectionInventory,
		Roles: []Role{RoleSuperAdmin, RoleManager, RoleInventoryClerk}, InNav: true,
	},
	{
		ID: ViewHR, Label: "Employees", Icon: "id-card", Section: SectionPeople,
		Roles: []Role{RoleSuperAdmin, RoleManager}, InNav: true,
	},
	{
		ID: ViewPayroll, Label: "Payroll", Icon: "wallet", Section: SectionPeople,
		Roles: []Role{RoleSuperAdmin, RoleManager}, InNav: true,
		QuickAction: &QuickActionSpec{Label: "Run Payroll", Description: "Review the current pay period"},
	},
	{
		ID: ViewFinance, Label: "Finance", Icon: "landmark", Section: SectionFinance,
		Roles: []Role{RoleSuperAdmin, RoleManager}, InNav: true,
	},
	{
		ID: ViewReports, Label: "Reports", Icon: "chart-bar", Section: SectionFinance,
		Roles: []Role{RoleSuperAdmin, RoleSystemAdmin, RoleManager}, InNav: true,
		QuickAction: &QuickActionSpec{Label: "Daily Report", Description: "Sales and stock summary for today"},
	},
	{
		ID: ViewAdminUsers, Label: "Users", Icon: "user-cog", Section: SectionAdmin,
		Roles: []Role{RoleSuperAdmin, RoleSystemAdmin}, InNav: true,
		QuickAction: &QuickActionSpec{Label: "Add User", Description: "Create a console account"},
	},
	{
		ID: ViewAdminRoles, Label: "Roles", Icon: "shield", Section: SectionAdmin,
		Roles: []Role{RoleSuperAdmin, RoleSystemAdmin}, InNav: true,
	},
	{
		ID: ViewAdminRolesEdit, Label: "Edit Role", Icon: "shield-check", Section: SectionAdmin,
		Roles: []Role{RoleSuperAdmin, RoleSystemAdmin},
	},
	{
		ID: ViewAdminSettings, Label: "Settings", Icon: "settings", Section: SectionAdmin,
		Roles: []Role{RoleSuperAdmin, RoleSystemAdmin}, InNav: true,
	},
	{
		ID: ViewAdminLogs, Label: "Audit Logs", Icon: "scroll-text", Section: SectionAdmin,
		Roles: []Role{RoleSuperAdmin, RoleSystemAdmin}, InNav: true,
	},
	{
		ID: ViewAdminDB, Label: "Database", Icon: "database", Section: SectionAdmin,
		Roles: []Role{RoleSuperAdmin}, InNav: true,
		QuickAction: &QuickActionSpec{Label: "Database Status", Description: "Check database connectivity"},
	},
	{
		ID: ViewProfile, Label: "My Profile", Icon: "user", Section: SectionAccount,
		Roles: allRoles, InNav: true,
	},
}

// DefaultViews is where each role lands after login or a rejected request
var DefaultViews = map[Role]ViewID{
	RoleSuperAdmin:     ViewDashboard,
	RoleSystemAdmin:    ViewAdminUsers,
	RoleManager:        ViewDashboard,
	RoleCashier:        ViewPOS,
	RoleInventoryClerk: ViewInventory,
}

// ViewRoute is the console URL for a view
func ViewRoute(v ViewID) string {
	if v == LoginView {
		return "/console/login"
	}
	return "/console/views/" + string(v)
}

// NavItem is one entry of a role's navigation
type NavItem struct {
	ID    ViewID `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Route string `json:"route"`
}

// NavSection is a titled group of navigation entries
type NavSection struct {
	Title Section   `json:"title"`
	Items []NavItem `json:"items"`
}

// QuickAction is a role-scoped shortcut
type QuickAction struct {
	ID          ViewID `json:"id"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	Route       string `json:"route"`
	Description string `json:"description,omitempty"`
}
