package router

import (
	"net/http"
	"strings"

	"pos-billing/app/controller"
)

type Controllers struct {
	Billing     *controller.BillingController
	Fulfillment *controller.FulfillmentController
	Invoice     *controller.InvoiceController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Draft collection - create a new draft or list recoverable autosaves
	http.HandleFunc("/billing/drafts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Billing.CreateDraft(w, r)
		} else if r.Method == http.MethodGet {
			controllers.Billing.ListRecoverableDrafts(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Hydrate a draft from a persisted transaction
	http.HandleFunc("/billing/drafts/load", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		controllers.Billing.LoadDraft(w, r)
	})

	// Draft sub-routes: /billing/drafts/:id/...
	http.HandleFunc("/billing/drafts/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/billing/drafts/"), "/")
		parts := strings.Split(path, "/")
		draftID := parts[0]
		if draftID == "" {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		// GET/DELETE /billing/drafts/:id
		if len(parts) == 1 {
			if r.Method == http.MethodGet {
				controllers.Billing.GetDraft(w, r, draftID)
			} else if r.Method == http.MethodDelete {
				controllers.Billing.DiscardDraft(w, r, draftID)
			} else {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		switch parts[1] {
		case "items":
			// POST /billing/drafts/:id/items
			if len(parts) == 2 && r.Method == http.MethodPost {
				controllers.Billing.AddItem(w, r, draftID)
				return
			}
			// PATCH/DELETE /billing/drafts/:id/items/:itemId
			if len(parts) == 3 {
				if r.Method == http.MethodPatch {
					controllers.Billing.UpdateItem(w, r, draftID, parts[2])
					return
				}
				if r.Method == http.MethodDelete {
					controllers.Billing.RemoveItem(w, r, draftID, parts[2])
					return
				}
			}
			// POST /billing/drafts/:id/items/:itemId/checked
			if len(parts) == 4 && parts[3] == "checked" && r.Method == http.MethodPost {
				controllers.Fulfillment.UpdateChecked(w, r, draftID, parts[2])
				return
			}
		case "number":
			// PUT /billing/drafts/:id/number
			if len(parts) == 2 && r.Method == http.MethodPut {
				controllers.Billing.SetNumber(w, r, draftID)
				return
			}
		case "customer":
			// PUT /billing/drafts/:id/customer
			if len(parts) == 2 && r.Method == http.MethodPut {
				controllers.Billing.SetCustomer(w, r, draftID)
				return
			}
		case "checked":
			// POST /billing/drafts/:id/checked (batch)
			if len(parts) == 2 && r.Method == http.MethodPost {
				controllers.Fulfillment.BatchChecked(w, r, draftID)
				return
			}
			// POST /billing/drafts/:id/checked/flush
			if len(parts) == 3 && parts[2] == "flush" && r.Method == http.MethodPost {
				controllers.Fulfillment.FlushChecked(w, r, draftID)
				return
			}
		case "save":
			// POST /billing/drafts/:id/save
			if len(parts) == 2 && r.Method == http.MethodPost {
				controllers.Billing.Save(w, r, draftID)
				return
			}
		}

		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Printable invoice page: GET /billing/invoices/:id/render
	http.HandleFunc("/billing/invoices/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/billing/invoices/"), "/")
		parts := strings.Split(path, "/")
		if len(parts) == 2 && parts[1] == "render" && r.Method == http.MethodGet {
			controllers.Invoice.Render(w, r, parts[0])
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})
}
