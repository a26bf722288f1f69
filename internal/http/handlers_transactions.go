package http

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"smartfinance/internal/api"
	"smartfinance/internal/core"
	"smartfinance/internal/log"
)

type transactionRow struct {
	ID           int64
	Icon         string
	Color        string
	Description  string
	CategoryName string
	Date         string
	Amount       string
	Income       bool
}

type transactionsView struct {
	Username   string
	Rows       []transactionRow
	Categories []core.Category
	Filter     core.DateFilter
	Today      string
}

// handleTransactions renders the filtered list. Categories and
// transactions are fetched independently: each failure is logged and
// only its half of the page degrades.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentTx)
	filter := filterFromQuery(r.URL.Query())

	cats, err := s.api.Categories(r.Context(), sess.Token)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to fetch categories", log.FieldError, err)
	}

	txs, err := s.api.Transactions(r.Context(), sess.Token, filter)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to fetch transactions",
			log.FieldError, err,
			log.FieldStartDate, filter.Start,
			log.FieldEndDate, filter.End)
	}

	idx := core.IndexCategories(cats)
	rows := make([]transactionRow, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, buildRow(t, idx))
	}

	view := transactionsView{
		Rows:       rows,
		Categories: cats,
		Filter:     filter,
		Today:      time.Now().Format("2006-01-02"),
	}
	if sess.Identity != nil {
		view.Username = sess.Identity.Username
	}

	s.render(w, r, "transactions_page", view)
}

// buildRow shapes one transaction for display: category icon/color
// with fallbacks, description falling back to the category name, and
// the amount signed by the category's type.
func buildRow(t core.Transaction, idx core.CategoryIndex) transactionRow {
	var cat core.Category
	if t.Category != nil {
		cat = *t.Category
		if cat.Icon == "" {
			cat.Icon = core.DefaultCategoryIcon
		}
		if cat.Color == "" {
			cat.Color = core.DefaultCategoryColor
		}
	} else {
		cat = idx.Lookup(t.CategoryID)
	}

	desc := t.Description
	if desc == "" {
		desc = cat.Name
	}

	return transactionRow{
		ID:           t.ID,
		Icon:         cat.Icon,
		Color:        cat.Color,
		Description:  desc,
		CategoryName: cat.Name,
		Date:         t.Date.Display(),
		Amount:       core.SignedAmount(t.Amount, cat.Type),
		Income:       cat.Type == core.Income,
	}
}

// handleCreateTransaction validates the form and issues the create
// call. The submitted category must belong to the currently selected
// type; the full list is re-fetched on the redirect rather than
// patched in place.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentTx)

	in, txType, ok := s.parseTransactionForm(w, r)
	if !ok {
		return
	}

	// The category must come from the set matching the selected type.
	allowed, err := s.api.CategoriesByType(r.Context(), sess.Token, txType)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to fetch categories for validation", log.FieldError, err)
		s.redirectToList(w, r)
		return
	}
	if !containsCategory(allowed, in.CategoryID) {
		logger.WarnContext(r.Context(), "Category inconsistent with selected type",
			log.FieldCategoryID, in.CategoryID, "type", string(txType))
		http.Error(w, "category does not match transaction type", http.StatusBadRequest)
		return
	}

	if _, err := s.api.CreateTransaction(r.Context(), sess.Token, in); err != nil {
		logger.ErrorContext(r.Context(), "Failed to create transaction",
			log.FieldOperation, log.OpCreate, log.FieldError, err)
	}
	s.redirectToList(w, r)
}

// handleUpdateTransaction replaces a transaction's fields in place.
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentTx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}
	in, _, ok := s.parseTransactionForm(w, r)
	if !ok {
		return
	}

	if _, err := s.api.UpdateTransaction(r.Context(), sess.Token, id, in); err != nil {
		logger.ErrorContext(r.Context(), "Failed to update transaction",
			log.FieldOperation, log.OpUpdate, log.FieldTxID, id, log.FieldError, err)
	}
	s.redirectToList(w, r)
}

// handleDeleteTransaction issues the backend delete. The browser-side
// confirm prompt has already run by the time this handler is reached;
// a declined prompt never submits the form.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentTx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	if err := s.api.DeleteTransaction(r.Context(), sess.Token, id); err != nil {
		logger.ErrorContext(r.Context(), "Failed to delete transaction",
			log.FieldOperation, log.OpDelete, log.FieldTxID, id, log.FieldError, err)
	}
	s.redirectToList(w, r)
}

// parseTransactionForm extracts and converts the shared create/update
// fields. It writes the error response itself when the form is bad.
func (s *Server) parseTransactionForm(w http.ResponseWriter, r *http.Request) (api.TransactionInput, core.CategoryType, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return api.TransactionInput{}, "", false
	}

	amount, err := core.ParseAmount(r.PostFormValue("amount"))
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return api.TransactionInput{}, "", false
	}
	date, err := core.ParseDate(r.PostFormValue("date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return api.TransactionInput{}, "", false
	}
	categoryID, err := strconv.ParseInt(r.PostFormValue("category_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid category", http.StatusBadRequest)
		return api.TransactionInput{}, "", false
	}
	txType := core.CategoryType(r.PostFormValue("type"))
	if txType != core.Income && txType != core.Expense {
		http.Error(w, "invalid transaction type", http.StatusBadRequest)
		return api.TransactionInput{}, "", false
	}

	return api.TransactionInput{
		Amount:      amount,
		Date:        date,
		Description: sanitizeInput(r.PostFormValue("description")),
		CategoryID:  categoryID,
	}, txType, true
}

// redirectToList sends the browser back to the list, preserving the
// active date filter carried in hidden form fields.
func (s *Server) redirectToList(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	if v := r.PostFormValue("start_date"); v != "" {
		q.Set("start_date", v)
	}
	if v := r.PostFormValue("end_date"); v != "" {
		q.Set("end_date", v)
	}
	target := "/transactions"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// filterFromQuery builds the date filter, keeping blank bounds out of
// the outbound request entirely.
func filterFromQuery(q url.Values) core.DateFilter {
	f := core.DateFilter{}
	if v := q.Get("start_date"); v != "" {
		if _, err := core.ParseDate(v); err == nil {
			f.Start = v
		}
	}
	if v := q.Get("end_date"); v != "" {
		if _, err := core.ParseDate(v); err == nil {
			f.End = v
		}
	}
	return f
}

func containsCategory(cats []core.Category, id int64) bool {
	for _, c := range cats {
		if c.ID == id {
			return true
		}
	}
	return false
}
