// Package tools defines dukaan's callable tool surface: the static catalog
// the assistant advertises to the language model, the Result value every
// execution returns, and converters that render the catalog into each
// provider's wire format.
//
// The catalog is the single source of truth for the tool contract: the
// executor's dispatch table and the system prompt's usage guidance are both
// keyed by the names defined here.
package tools

import (
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Tool names. Navigation and settings tools run locally; the rest dispatch to
// the remote tool-execution service.
const (
	ToolGetProducts       = "get_products"
	ToolAddProduct        = "add_product"
	ToolUpdateProduct     = "update_product"
	ToolDeleteProduct     = "delete_product"
	ToolCreateInvoice     = "create_invoice"
	ToolGetInvoices       = "get_invoices"
	ToolMarkInvoicePaid   = "mark_invoice_paid"
	ToolGenerateUPIQR     = "generate_upi_qr"
	ToolGetDailyReport    = "get_daily_report"
	ToolGenerateReportPDF = "generate_report_pdf"
	ToolGenerateCustomPDF = "generate_custom_pdf"

	ToolOpenAppScreen  = "open_app_screen"
	ToolOpenScanner    = "open_scanner"
	ToolPrefillInvoice = "prefill_invoice"

	ToolUpdateUserSettings = "update_user_settings"
	ToolGetAppSettings     = "get_app_settings"
	ToolGetAppState        = "get_app_state"
)

var catalog = []mcptypes.Tool{
	mcptypes.NewTool(ToolGetProducts,
		mcptypes.WithDescription("Lists the shop's products with name, price, quantity and cost price"),
		mcptypes.WithString("search", mcptypes.Description("Optional name filter")),
	),
	mcptypes.NewTool(ToolAddProduct,
		mcptypes.WithDescription("Adds a new product to the inventory"),
		mcptypes.WithString("name", mcptypes.Required(), mcptypes.Description("Product name")),
		mcptypes.WithNumber("price", mcptypes.Required(), mcptypes.Description("Selling price per unit in rupees")),
		mcptypes.WithNumber("quantity", mcptypes.Required(), mcptypes.Description("Stock quantity")),
		mcptypes.WithNumber("cost_price", mcptypes.Description("Cost price per unit in rupees")),
		mcptypes.WithString("category", mcptypes.Description("Optional product category")),
	),
	mcptypes.NewTool(ToolUpdateProduct,
		mcptypes.WithDescription("Updates fields of an existing product; omitted fields are unchanged"),
		mcptypes.WithString("product_id", mcptypes.Required(), mcptypes.Description("Id of the product to update")),
		mcptypes.WithString("name", mcptypes.Description("New product name")),
		mcptypes.WithNumber("price", mcptypes.Description("New selling price")),
		mcptypes.WithNumber("quantity", mcptypes.Description("New stock quantity")),
		mcptypes.WithNumber("cost_price", mcptypes.Description("New cost price")),
	),
	mcptypes.NewTool(ToolDeleteProduct,
		mcptypes.WithDescription("Removes a product from the inventory"),
		mcptypes.WithString("product_id", mcptypes.Required(), mcptypes.Description("Id of the product to delete")),
	),
	mcptypes.NewTool(ToolCreateInvoice,
		mcptypes.WithDescription("Creates an invoice for a customer from a list of line items"),
		mcptypes.WithString("customer_name", mcptypes.Required(), mcptypes.Description("Customer the invoice is billed to")),
		mcptypes.WithArray("items", mcptypes.Required(),
			mcptypes.Description("Line items: objects with name, quantity and price"),
			mcptypes.Items(map[string]any{"type": "object"}),
		),
		mcptypes.WithString("seller_name", mcptypes.Description("Seller shown on the invoice; defaults to the shop name")),
	),
	mcptypes.NewTool(ToolGetInvoices,
		mcptypes.WithDescription("Lists invoices, optionally filtered by status"),
		mcptypes.WithString("status", mcptypes.Description("Filter: paid or unpaid"), mcptypes.Enum("paid", "unpaid")),
	),
	mcptypes.NewTool(ToolMarkInvoicePaid,
		mcptypes.WithDescription("Marks an invoice as paid"),
		mcptypes.WithString("invoice_id", mcptypes.Required(), mcptypes.Description("Id of the invoice")),
	),
	mcptypes.NewTool(ToolGenerateUPIQR,
		mcptypes.WithDescription("Generates a UPI payment QR code image for an amount"),
		mcptypes.WithNumber("amount", mcptypes.Required(), mcptypes.Description("Amount in rupees")),
		mcptypes.WithString("payee_upi_id", mcptypes.Description("Payee UPI id; defaults to the shop's configured UPI id")),
		mcptypes.WithString("payee_name", mcptypes.Description("Payee display name; defaults to the owner's name")),
		mcptypes.WithString("note", mcptypes.Description("Optional transaction note")),
	),
	mcptypes.NewTool(ToolGetDailyReport,
		mcptypes.WithDescription("Fetches the sales report for a day"),
		mcptypes.WithString("date", mcptypes.Description("Day in YYYY-MM-DD; defaults to today")),
	),
	mcptypes.NewTool(ToolGenerateReportPDF,
		mcptypes.WithDescription("Generates a sales report PDF"),
		mcptypes.WithString("type", mcptypes.Required(), mcptypes.Description("Report period"), mcptypes.Enum("daily", "weekly", "monthly")),
		mcptypes.WithString("date", mcptypes.Description("Anchor day in YYYY-MM-DD; defaults to today")),
	),
	mcptypes.NewTool(ToolGenerateCustomPDF,
		mcptypes.WithDescription("Generates a PDF document from a title and markdown content"),
		mcptypes.WithString("title", mcptypes.Required(), mcptypes.Description("Document title")),
		mcptypes.WithString("content", mcptypes.Required(), mcptypes.Description("Markdown body of the document")),
	),

	mcptypes.NewTool(ToolOpenAppScreen,
		mcptypes.WithDescription("Navigates the app to a screen"),
		mcptypes.WithString("screen", mcptypes.Required(),
			mcptypes.Description("Target screen"),
			mcptypes.Enum("inventory", "billing", "dashboard", "settings", "chat"),
		),
	),
	mcptypes.NewTool(ToolOpenScanner,
		mcptypes.WithDescription("Opens the barcode scanner"),
	),
	mcptypes.NewTool(ToolPrefillInvoice,
		mcptypes.WithDescription("Opens the billing screen with the invoice form prefilled"),
		mcptypes.WithString("customer_name", mcptypes.Description("Customer to prefill")),
		mcptypes.WithArray("items", mcptypes.Description("Line items to prefill"),
			mcptypes.Items(map[string]any{"type": "object"}),
		),
	),

	mcptypes.NewTool(ToolUpdateUserSettings,
		mcptypes.WithDescription("Updates the owner's settings; only the provided fields change"),
		mcptypes.WithString("name", mcptypes.Description("Owner's name")),
		mcptypes.WithString("shop_name", mcptypes.Description("Shop name")),
		mcptypes.WithString("upi_id", mcptypes.Description("UPI id used for payment QR codes")),
		mcptypes.WithString("email", mcptypes.Description("Contact email")),
		mcptypes.WithString("language", mcptypes.Description("Preferred reply language code, e.g. en or hi")),
		mcptypes.WithBoolean("show_cp", mcptypes.Description("Whether cost price is shown on inventory screens")),
	),
	mcptypes.NewTool(ToolGetAppSettings,
		mcptypes.WithDescription("Reads the owner's current settings"),
	),
	mcptypes.NewTool(ToolGetAppState,
		mcptypes.WithDescription("Summarizes the business: product count, inventory value, paid invoices and revenue"),
	),
}

// Registry returns the full tool catalog. The slice is rebuilt per call so
// callers can namespace or filter without touching the shared table.
func Registry() []mcptypes.Tool {
	out := make([]mcptypes.Tool, len(catalog))
	copy(out, catalog)
	return out
}

// IsLocal reports whether a tool executes on-device (navigation, settings,
// aggregate state) rather than against the remote tool service.
func IsLocal(name string) bool {
	switch name {
	case ToolOpenAppScreen, ToolOpenScanner, ToolPrefillInvoice,
		ToolUpdateUserSettings, ToolGetAppSettings, ToolGetAppState:
		return true
	}
	return false
}
