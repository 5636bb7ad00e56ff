package billing

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"pos-billing/gateway"
	"pos-billing/models"
)

// ErrDraftNotFound is returned for operations on an unknown draft id.
var ErrDraftNotFound = errors.New("draft not found")

// Workspace bundles the per-draft state containers with the composer that
// drives them.
type Workspace struct {
	DraftID  string
	Session  *Session
	Store    *LineItemStore
	Composer *Composer
}

// Manager owns the active draft workspaces of this terminal instance.
type Manager struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace

	gateway  gateway.TransactionGatewayInterface
	printer  Printer
	exporter Exporter
	drafts   DraftStore
}

// NewManager creates a Manager. printer, exporter and drafts may be nil.
func NewManager(gw gateway.TransactionGatewayInterface, printer Printer, exporter Exporter, drafts DraftStore) *Manager {
	return &Manager{
		workspaces: make(map[string]*Workspace),
		gateway:    gw,
		printer:    printer,
		exporter:   exporter,
		drafts:     drafts,
	}
}

func (m *Manager) newWorkspace(txType models.TransactionType) *Workspace {
	draftID := uuid.NewString()
	session := NewSession(txType)
	store := NewLineItemStore()
	composer := NewComposer(draftID, session, store, m.gateway, m.printer, m.exporter, m.drafts)

	// Every line-item mutation dirties the session and autosaves the draft.
	store.SetOnChange(func() {
		session.MarkUnsaved()
		composer.Autosave(context.Background())
	})

	return &Workspace{
		DraftID:  draftID,
		Session:  session,
		Store:    store,
		Composer: composer,
	}
}

// NewDraft opens a new draft bill: a tentative transaction number is fetched
// from the remote service and held user-editable until the first save.
func (m *Manager) NewDraft(ctx context.Context, txType models.TransactionType) (*Workspace, error) {
	number, err := m.gateway.GetNextTransactionNumber(ctx, txType)
	if err != nil {
		return nil, err
	}

	ws := m.newWorkspace(txType)
	if err := ws.Session.SetTentativeNo(number); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.workspaces[ws.DraftID] = ws
	m.mu.Unlock()

	log.Printf("✅ NewDraft: opened draft %s (%s, tentative no=%d)", ws.DraftID, txType, number)
	return ws, nil
}

// LoadDraft opens a draft hydrated from an already-persisted transaction.
// The confirmed number is read-only; no next-number fetch happens.
func (m *Manager) LoadDraft(ctx context.Context, txType models.TransactionType, id string) (*Workspace, error) {
	ws := m.newWorkspace(txType)
	if err := ws.Composer.LoadTransaction(ctx, txType, id); err != nil {
		ws.Composer.Close()
		return nil, err
	}

	m.mu.Lock()
	m.workspaces[ws.DraftID] = ws
	m.mu.Unlock()

	log.Printf("✅ LoadDraft: opened draft %s for transaction %s", ws.DraftID, id)
	return ws, nil
}

// Get returns an active workspace by draft id.
func (m *Manager) Get(draftID string) (*Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.workspaces[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return ws, nil
}

// Close discards a draft: local state is reset, late responses are ignored
// and the autosaved row is removed.
func (m *Manager) Close(ctx context.Context, draftID string) error {
	m.mu.Lock()
	ws, ok := m.workspaces[draftID]
	if ok {
		delete(m.workspaces, draftID)
	}
	m.mu.Unlock()

	if !ok {
		return ErrDraftNotFound
	}

	ws.Composer.Close()
	ws.Store.Reset()
	if m.drafts != nil {
		if err := m.drafts.Delete(ctx, draftID); err != nil {
			log.Printf("⚠️ Close: failed to delete autosaved draft %s: %v", draftID, err)
		}
	}
	log.Printf("✅ Close: discarded draft %s", draftID)
	return nil
}
