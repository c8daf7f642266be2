package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"rental-dashboard/internal/client"
	"rental-dashboard/internal/domain"
	"rental-dashboard/internal/spreadsheet"
)

// API is the slice of the REST client the view-model depends on.
type API interface {
	FetchRecords(ctx context.Context) ([]domain.RentalRecord, error)
	AddRow(ctx context.Context, rec *domain.RentalRecord) error
	EditCell(ctx context.Context, tid, lokasi, field, value string) error
	UploadPDF(ctx context.Context, tid, lokasi string, slot domain.FileSlot, filename string, file io.Reader) error
	BatchDelete(ctx context.Context, ids []int32) (string, error)
}

// Notifier receives user-facing status and error messages.
type Notifier func(message string)

// ConfirmFunc gates destructive actions. Returning false aborts.
type ConfirmFunc func(prompt string) bool

// Filters holds the active filter value per dimension. Empty string
// means the dimension is inactive.
type Filters struct {
	State       string
	JenisMesin  string
	KCSupervisi string
	VendorCRO   string
}

// FilterValues lists the distinct values available per dimension.
type FilterValues struct {
	States      []string
	JenisMesin  []string
	KCSupervisi []string
	VendorCRO   []string
}

// Model owns the dashboard state: the fetched records, active filters,
// and the selection set. All state changes go through its methods; the
// mutex makes it safe to drive from multiple goroutines.
type Model struct {
	mu sync.Mutex

	api     API
	notify  Notifier
	confirm ConfirmFunc

	records   []domain.RentalRecord
	filters   Filters
	selection map[int32]bool

	loading  bool
	deleting bool

	// fetchSeq orders concurrent refreshes: a fetch that completes
	// after a newer one started is discarded so stale data never
	// overwrites fresh data.
	fetchSeq uint64
}

func NewModel(api API, notify Notifier, confirm ConfirmFunc) *Model {
	if notify == nil {
		notify = func(string) {}
	}
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	return &Model{
		api:       api,
		notify:    notify,
		confirm:   confirm,
		selection: make(map[int32]bool),
	}
}

// Loading reports whether a refresh is in flight.
func (m *Model) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Deleting reports whether a batch delete is in flight.
func (m *Model) Deleting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleting
}

// Refresh fetches all records. On success the record set is replaced
// wholesale and the selection cleared; on failure the previous state is
// kept and the error reported through the notifier.
func (m *Model) Refresh(ctx context.Context) error {
	m.mu.Lock()
	m.fetchSeq++
	seq := m.fetchSeq
	m.loading = true
	m.mu.Unlock()

	records, err := m.api.FetchRecords(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.fetchSeq {
		// A newer refresh started while this one was in flight.
		return nil
	}
	m.loading = false

	if err != nil {
		m.reportLocked(err, "Failed to load rental data")
		return err
	}
	m.records = records
	m.selection = make(map[int32]bool)
	return nil
}

// Records returns a copy of the full record set in fetch order.
func (m *Model) Records() []domain.RentalRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.RentalRecord(nil), m.records...)
}

// SetFilters replaces the active filters. Selection is kept: hiding a
// selected row does not deselect it, but select-all only ever covers
// visible rows.
func (m *Model) SetFilters(f Filters) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters = f
}

// ActiveFilters returns the current filter values.
func (m *Model) ActiveFilters() Filters {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filters
}

// FilterOptions returns the distinct non-empty values per dimension,
// computed over the full record set, sorted for stable display.
func (m *Model) FilterOptions() FilterValues {
	m.mu.Lock()
	defer m.mu.Unlock()

	states := map[string]bool{}
	machines := map[string]bool{}
	branches := map[string]bool{}
	vendors := map[string]bool{}
	for i := range m.records {
		rec := &m.records[i]
		if rec.State != "" {
			states[string(rec.State)] = true
		}
		if rec.JenisMesin != "" {
			machines[rec.JenisMesin] = true
		}
		if rec.KCSupervisi != "" {
			branches[rec.KCSupervisi] = true
		}
		if rec.VendorCRO != nil && *rec.VendorCRO != "" {
			vendors[*rec.VendorCRO] = true
		}
	}
	return FilterValues{
		States:      sortedKeys(states),
		JenisMesin:  sortedKeys(machines),
		KCSupervisi: sortedKeys(branches),
		VendorCRO:   sortedKeys(vendors),
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func matches(rec *domain.RentalRecord, f Filters) bool {
	if f.State != "" && string(rec.State) != f.State {
		return false
	}
	if f.JenisMesin != "" && rec.JenisMesin != f.JenisMesin {
		return false
	}
	if f.KCSupervisi != "" && rec.KCSupervisi != f.KCSupervisi {
		return false
	}
	if f.VendorCRO != "" {
		if rec.VendorCRO == nil || *rec.VendorCRO != f.VendorCRO {
			return false
		}
	}
	return true
}

// FilteredRecords returns the records matching every active filter,
// in fetch order. With no filters active it returns the full set.
func (m *Model) FilteredRecords() []domain.RentalRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filteredLocked()
}

func (m *Model) filteredLocked() []domain.RentalRecord {
	out := make([]domain.RentalRecord, 0, len(m.records))
	for i := range m.records {
		if matches(&m.records[i], m.filters) {
			out = append(out, m.records[i])
		}
	}
	return out
}

// Warnings returns the records currently in the warning state.
func (m *Model) Warnings() []domain.RentalRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.RentalRecord
	for i := range m.records {
		if m.records[i].State == domain.RecordStateWarning {
			out = append(out, m.records[i])
		}
	}
	return out
}

// ToggleSelection marks or unmarks one record. Records without a
// database id cannot be selected.
func (m *Model) ToggleSelection(id int32, checked bool) {
	if id == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if checked {
		m.selection[id] = true
	} else {
		delete(m.selection, id)
	}
}

// SelectAll(true) rebuilds the selection as exactly the currently
// filtered rows that carry a non-zero id; rows hidden by the filter are
// never selected. SelectAll(false) clears the selection entirely.
func (m *Model) SelectAll(checked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selection = make(map[int32]bool)
	if !checked {
		return
	}
	for _, rec := range m.filteredLocked() {
		if rec.ID != 0 {
			m.selection[rec.ID] = true
		}
	}
}

// Selected returns the selected ids in ascending order.
func (m *Model) Selected() []int32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int32, 0, len(m.selection))
	for id := range m.selection {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsSelected reports whether the record with the given id is selected.
func (m *Model) IsSelected(id int32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selection[id]
}

// SelectableCount returns how many of the filtered rows carry an id.
// A mismatch with the filtered row count signals rows the backend
// returned without ids, which the UI surfaces as a diagnostic.
func (m *Model) SelectableCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, rec := range m.filteredLocked() {
		if rec.ID != 0 {
			n++
		}
	}
	return n
}

// BatchDelete removes the selected records after confirmation, then
// re-fetches. With nothing selected or confirmation declined it is a
// no-op.
func (m *Model) BatchDelete(ctx context.Context) error {
	ids := m.Selected()
	if len(ids) == 0 {
		m.notify("No rows selected")
		return nil
	}
	if !m.confirm(fmt.Sprintf("Delete %d selected record(s)?", len(ids))) {
		return nil
	}

	m.mu.Lock()
	m.deleting = true
	m.mu.Unlock()

	msg, err := m.api.BatchDelete(ctx, ids)

	m.mu.Lock()
	m.deleting = false
	if err != nil {
		m.reportLocked(err, "Failed to delete records")
		m.mu.Unlock()
		return err
	}
	m.notify(msg)
	m.mu.Unlock()

	return m.Refresh(ctx)
}

// EditCell updates one field then re-fetches. No optimistic patching.
func (m *Model) EditCell(ctx context.Context, tid, lokasi, field, value string) error {
	if err := m.api.EditCell(ctx, tid, lokasi, field, value); err != nil {
		m.report(err, "Failed to update field")
		return err
	}
	return m.Refresh(ctx)
}

// UploadFile attaches a PDF to one of the record's document slots. The
// file type is checked before any network call is made.
func (m *Model) UploadFile(ctx context.Context, tid, lokasi string, slot domain.FileSlot, filename string, file io.Reader) error {
	if !strings.EqualFold(strings.TrimPrefix(filenameExt(filename), "."), "pdf") {
		m.notify("Only PDF files are allowed")
		return errors.New("only PDF files are allowed")
	}
	if err := m.api.UploadPDF(ctx, tid, lokasi, slot, filename, file); err != nil {
		m.report(err, "Failed to upload file")
		return err
	}
	return m.Refresh(ctx)
}

func filenameExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

// AddRow creates a new record then re-fetches. The identifying fields
// must be present; optional fields may be nil.
func (m *Model) AddRow(ctx context.Context, rec *domain.RentalRecord) error {
	if rec.JenisMesin == "" || rec.TID == "" || rec.KCSupervisi == "" || rec.Lokasi == "" {
		m.notify("Jenis mesin, TID, KC supervisi and lokasi are required")
		return errors.New("missing required fields")
	}
	if err := m.api.AddRow(ctx, rec); err != nil {
		m.report(err, "Failed to add row")
		return err
	}
	return m.Refresh(ctx)
}

// ExportAll writes the full record set to an xlsx workbook.
func (m *Model) ExportAll(stem string) error {
	return m.export(m.Records(), stem)
}

// ExportFiltered writes only the currently filtered records.
func (m *Model) ExportFiltered(stem string) error {
	return m.export(m.FilteredRecords(), stem)
}

func (m *Model) export(records []domain.RentalRecord, stem string) error {
	if err := spreadsheet.Export(records, stem); err != nil {
		m.notify("Failed to export data")
		return err
	}
	m.notify(fmt.Sprintf("Exported %d record(s)", len(records)))
	return nil
}

// report surfaces an operation failure, preferring the backend's detail
// message. Session expiry is passed through verbatim so callers can
// drop back to the login flow.
func (m *Model) report(err error, fallback string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reportLocked(err, fallback)
}

func (m *Model) reportLocked(err error, fallback string) {
	switch {
	case errors.Is(err, client.ErrSessionExpired):
		m.notify("Session expired, please log in again")
	default:
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			m.notify(apiErr.Detail)
		} else {
			m.notify(fallback)
		}
	}
}
