package page

// Static data shown by the fixture screens.

type fixtureRow map[string]any

var dashboardKPIs = fixtureRow{
	"sales_today":     "4,812.50",
	"transactions":    137,
	"low_stock_items": 9,
	"open_purchases":  3,
	"staff_on_shift":  6,
}

var posCart = []fixtureRow{
	{"sku": "BEV-001", "name": "Sparkling Water 500ml", "qty": 2, "price": "1.20"},
	{"sku": "SNK-014", "name": "Sea Salt Crisps", "qty": 1, "price": "2.49"},
}

var posTotals = fixtureRow{"subtotal": "4.89", "tax": "0.39", "total": "5.28"}

var salesHistory = []fixtureRow{
	{"receipt": "R-10231", "time": "09:14", "total": "23.10", "cashier": "Front Cashier"},
	{"receipt": "R-10232", "time": "09:26", "total": "7.45", "cashier": "Front Cashier"},
	{"receipt": "R-10233", "time": "09:41", "total": "58.00", "cashier": "Store Manager"},
}

var products = []fixtureRow{
	{"sku": "BEV-001", "name": "Sparkling Water 500ml", "stock": 240, "reorder_at": 60},
	{"sku": "SNK-014", "name": "Sea Salt Crisps", "stock": 18, "reorder_at": 30},
	{"sku": "HHL-102", "name": "Dish Soap 750ml", "stock": 75, "reorder_at": 20},
}

var stockAdjustments = []fixtureRow{
	{"sku": "SNK-014", "change": -4, "reason": "damaged"},
	{"sku": "HHL-102", "change": 5, "reason": "recount"},
}

var purchaseOrders = []fixtureRow{
	{"po": "PO-2201", "supplier": "Northwind Beverages", "status": "sent", "lines": 6},
	{"po": "PO-2202", "supplier": "Crisp & Co", "status": "draft", "lines": 2},
}

var suppliers = []fixtureRow{
	{"name": "Northwind Beverages", "contact": "orders@northwind.example", "lead_days": 3},
	{"name": "Crisp & Co", "contact": "sales@crisp.example", "lead_days": 5},
}

var employees = []fixtureRow{
	{"name": "Front Cashier", "position": "Cashier", "status": "on shift"},
	{"name": "Inventory Clerk", "position": "Stock", "status": "off"},
	{"name": "Store Manager", "position": "Manager", "status": "on shift"},
}

var payroll = []fixtureRow{
	{"employee": "Front Cashier", "hours": 38, "gross": "646.00"},
	{"employee": "Inventory Clerk", "hours": 40, "gross": "700.00"},
}

var customers = []fixtureRow{
	{"member": "M-0042", "name": "A. Rivera", "points": 1280},
	{"member": "M-0057", "name": "J. Okafor", "points": 310},
}

var financeSummary = fixtureRow{"revenue": "98,410.00", "cogs": "61,022.35", "gross_margin": "37.99%"}

var reports = []fixtureRow{
	{"id": "daily-sales", "name": "Daily sales summary"},
	{"id": "stock-valuation", "name": "Stock valuation"},
	{"id": "shrinkage", "name": "Shrinkage by category"},
}

var consoleUsers = []fixtureRow{
	{"email": "superadmin@example.com", "role": "Super Admin", "active": true},
	{"email": "cashier@example.com", "role": "Cashier", "active": true},
}

var storeSettings = fixtureRow{"store_name": "Main Street", "currency": "USD", "tax_rate": "8%"}

var auditLogs = []fixtureRow{
	{"at": "08:59", "actor": "sysadmin@example.com", "event": "user.created"},
	{"at": "09:02", "actor": "manager@example.com", "event": "payroll.reviewed"},
}
