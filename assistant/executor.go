// Package assistant implements dukaan's tool-orchestration core: the
// executor that dispatches model-requested tool calls, the two-phase
// conversation orchestrator, and the artifact extractor that lifts QR
// images, PDFs, documents and navigation instructions out of tool results.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dukaan/backend"
	"dukaan/config"
	"dukaan/storage"
	"dukaan/tools"
)

// Navigation actions emitted by the local navigation tools. The UI layer
// switches on these to move between screens.
const (
	NavOpenScreen     = "open_screen"
	NavOpenScanner    = "open_scanner"
	NavPrefillInvoice = "prefill_invoice"
)

// ToolService executes a named tool against the remote tool-execution
// service. backend.Client implements it; tests substitute a fake to assert
// call counts and injected arguments.
type ToolService interface {
	ExecuteTool(ctx context.Context, name string, args map[string]any) (any, error)
}

// DataService provides the typed reads get_app_state aggregates over.
type DataService interface {
	GetProducts(ctx context.Context, userID string) ([]backend.Product, error)
	GetInvoices(ctx context.Context, userID string) ([]backend.Invoice, error)
}

// ExecContext carries the per-call identity a tool execution runs under:
// the authenticated user id (empty when logged out) and a read-only
// snapshot of the owner's profile taken at the start of the turn.
type ExecContext struct {
	UserID  string
	Profile config.Profile
}

type handlerFunc func(ctx context.Context, ec ExecContext, args map[string]any) tools.Result

// Executor resolves tool calls to local handlers or remote dispatch.
// Every path returns a tools.Result value; Execute never returns an error
// and never panics across the orchestration boundary.
type Executor struct {
	remote    ToolService
	data      DataService
	profiles  *config.ProfileStore
	snapshots *storage.SnapshotStore
	dispatch  map[string]handlerFunc
}

// NewExecutor builds an executor. snapshots may be nil; when present,
// successful get_app_state reads are cached there and served stale if the
// data service becomes unreachable.
func NewExecutor(remote ToolService, data DataService, profiles *config.ProfileStore, snapshots *storage.SnapshotStore) *Executor {
	e := &Executor{
		remote:    remote,
		data:      data,
		profiles:  profiles,
		snapshots: snapshots,
	}

	// Local tools resolve through this table; anything else goes remote.
	e.dispatch = map[string]handlerFunc{
		tools.ToolOpenAppScreen:      e.openAppScreen,
		tools.ToolOpenScanner:        e.openScanner,
		tools.ToolPrefillInvoice:     e.prefillInvoice,
		tools.ToolUpdateUserSettings: e.updateUserSettings,
		tools.ToolGetAppSettings:     e.getAppSettings,
		tools.ToolGetAppState:        e.getAppState,
	}

	return e
}

// Execute runs one tool call. Failures come back as Result values so the
// model can react to them in natural language on the second pass.
func (e *Executor) Execute(ctx context.Context, name string, args map[string]any, ec ExecContext) tools.Result {
	if args == nil {
		args = map[string]any{}
	}

	if handler, ok := e.dispatch[name]; ok {
		return handler(ctx, ec, args)
	}

	return e.executeRemote(ctx, name, args, ec)
}

func (e *Executor) openAppScreen(_ context.Context, _ ExecContext, args map[string]any) tools.Result {
	screen, _ := args["screen"].(string)
	if screen == "" {
		return tools.Failure(tools.ToolOpenAppScreen, "missing_screen", "No screen was specified.")
	}

	return tools.OK(tools.ToolOpenAppScreen, map[string]any{
		"success":          true,
		"navigationAction": NavOpenScreen,
		"navigationData":   map[string]any{"screen": screen},
		"message":          fmt.Sprintf("Opening the %s screen", screen),
	})
}

func (e *Executor) openScanner(_ context.Context, _ ExecContext, _ map[string]any) tools.Result {
	return tools.OK(tools.ToolOpenScanner, map[string]any{
		"success":          true,
		"navigationAction": NavOpenScanner,
		"message":          "Opening the barcode scanner",
	})
}

func (e *Executor) prefillInvoice(_ context.Context, _ ExecContext, args map[string]any) tools.Result {
	data := map[string]any{}
	if customer, ok := args["customer_name"].(string); ok && customer != "" {
		data["customer_name"] = customer
	}
	if items, ok := args["items"]; ok {
		data["items"] = items
	}

	return tools.OK(tools.ToolPrefillInvoice, map[string]any{
		"success":          true,
		"navigationAction": NavPrefillInvoice,
		"navigationData":   data,
		"message":          "Opening billing with the invoice prefilled",
	})
}

func (e *Executor) updateUserSettings(_ context.Context, _ ExecContext, args map[string]any) tools.Result {
	var update config.ProfileUpdate

	if v, ok := args["name"].(string); ok {
		update.Name = &v
	}
	if v, ok := args["shop_name"].(string); ok {
		update.ShopName = &v
	}
	if v, ok := args["upi_id"].(string); ok {
		update.UPIID = &v
	}
	if v, ok := args["email"].(string); ok {
		update.Email = &v
	}
	if v, ok := args["language"].(string); ok {
		update.Language = &v
	}
	if v, ok := args["show_cp"].(bool); ok {
		update.ShowCP = &v
	}

	if err := e.profiles.Apply(update); err != nil {
		return tools.Failure(tools.ToolUpdateUserSettings, "settings_update_failed", err.Error())
	}

	return tools.OK(tools.ToolUpdateUserSettings, settingsPayload(e.profiles.Get()))
}

func (e *Executor) getAppSettings(_ context.Context, _ ExecContext, _ map[string]any) tools.Result {
	return tools.OK(tools.ToolGetAppSettings, settingsPayload(e.profiles.Get()))
}

func settingsPayload(p config.Profile) map[string]any {
	return map[string]any{
		"name":      p.Name,
		"shop_name": p.ShopName,
		"upi_id":    p.UPIID,
		"email":     p.Email,
		"language":  p.Language,
		"show_cp":   p.ShowCP,
	}
}

// getAppState aggregates a business summary from the data service. When the
// service is unreachable and a cached snapshot exists, the snapshot is
// served instead, flagged stale.
func (e *Executor) getAppState(ctx context.Context, ec ExecContext, _ map[string]any) tools.Result {
	if ec.UserID == "" {
		return tools.Failure(tools.ToolGetAppState, "User not authenticated", "Log in to see your business summary.")
	}

	products, perr := e.data.GetProducts(ctx, ec.UserID)
	invoices, ierr := e.data.GetInvoices(ctx, ec.UserID)

	if perr != nil || ierr != nil {
		if cached := e.loadCachedState(ec.UserID); cached != nil {
			return tools.OK(tools.ToolGetAppState, cached)
		}
		err := perr
		if err == nil {
			err = ierr
		}
		return tools.Failure(tools.ToolGetAppState, err.Error(), "Could not load your business data.")
	}

	state := summarize(products, invoices)
	e.cacheState(ec.UserID, products, invoices)

	return tools.OK(tools.ToolGetAppState, state)
}

func summarize(products []backend.Product, invoices []backend.Invoice) map[string]any {
	var inventoryValue float64
	for _, p := range products {
		inventoryValue += p.Price * p.Quantity
	}

	var paidCount int
	var revenue float64
	for _, inv := range invoices {
		if inv.Status == "paid" {
			paidCount++
			revenue += inv.Total
		}
	}

	return map[string]any{
		"product_count":      len(products),
		"inventory_value":    inventoryValue,
		"invoice_count":      len(invoices),
		"paid_invoice_count": paidCount,
		"total_revenue":      revenue,
	}
}

func (e *Executor) cacheState(userID string, products []backend.Product, invoices []backend.Invoice) {
	if e.snapshots == nil {
		return
	}

	productsJSON, perr := json.Marshal(products)
	invoicesJSON, ierr := json.Marshal(invoices)
	if perr != nil || ierr != nil {
		return
	}

	err := e.snapshots.Save(storage.BusinessSnapshot{
		UserID:   userID,
		Products: productsJSON,
		Invoices: invoicesJSON,
	})
	if err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("[executor] snapshot save failed: %v", err)
	}
}

func (e *Executor) loadCachedState(userID string) map[string]any {
	if e.snapshots == nil {
		return nil
	}

	snap, err := e.snapshots.Load(userID)
	if err != nil || snap == nil {
		return nil
	}

	var products []backend.Product
	var invoices []backend.Invoice
	if json.Unmarshal(snap.Products, &products) != nil || json.Unmarshal(snap.Invoices, &invoices) != nil {
		return nil
	}

	state := summarize(products, invoices)
	state["stale"] = true
	state["fetched_at"] = snap.FetchedAt.Format(time.RFC3339)
	return state
}

// executeRemote handles every tool not in the local dispatch table. The
// session user id is injected into the argument bag, profile defaults fill
// omitted arguments, and failures normalize to Result values.
func (e *Executor) executeRemote(ctx context.Context, name string, args map[string]any, ec ExecContext) tools.Result {
	if ec.UserID == "" {
		return tools.Failure(name, "Not authenticated", "Log in to use this feature.")
	}

	// Copy before mutating; the argument map belongs to the caller.
	injected := make(map[string]any, len(args)+2)
	for k, v := range args {
		injected[k] = v
	}
	injected["user_id"] = ec.UserID

	switch name {
	case tools.ToolGenerateUPIQR:
		if _, ok := injected["payee_upi_id"].(string); !ok {
			if ec.Profile.UPIID == "" {
				return tools.Failure(name, "No UPI id configured",
					"Add your UPI id in settings before generating payment QR codes.")
			}
			injected["payee_upi_id"] = ec.Profile.UPIID
		}
		if _, ok := injected["payee_name"].(string); !ok {
			payee := ec.Profile.Name
			if payee == "" {
				payee = ec.Profile.ShopName
			}
			injected["payee_name"] = payee
		}

	case tools.ToolCreateInvoice:
		if _, ok := injected["seller_name"].(string); !ok {
			seller := ec.Profile.ShopName
			if seller == "" {
				seller = ec.Profile.Name
			}
			injected["seller_name"] = seller
		}

	case tools.ToolGetDailyReport:
		if _, ok := injected["date"].(string); !ok {
			injected["date"] = time.Now().Format("2006-01-02")
		}
	}

	payload, err := e.remote.ExecuteTool(ctx, name, injected)
	if err != nil {
		return tools.Failure(name, err.Error(), "The request could not be completed.")
	}

	return tools.OK(name, payload)
}
