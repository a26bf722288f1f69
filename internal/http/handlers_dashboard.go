package http

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"smartfinance/internal/core"
	"smartfinance/internal/log"
)

// dashboardView is the fully formatted model for the dashboard page.
type dashboardView struct {
	Username        string
	TotalIncome     string
	TotalExpenses   string
	Balance         string
	BalanceNegative bool
	Slices          []core.ChartSlice
	HasChart        bool
}

// handleDashboard fetches the summary and the expense breakdown
// concurrently and joins both before rendering. Either fetch failing
// is logged and the affected figures degrade to zeroed/empty data;
// the page never turns into an error state.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentDashboard)

	var (
		summary core.Summary
		items   []core.ChartItem
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		got, err := s.api.Summary(ctx, sess.Token)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to fetch dashboard summary", log.FieldError, err)
			return nil
		}
		summary = got
		return nil
	})
	g.Go(func() error {
		got, err := s.api.ExpenseChart(ctx, sess.Token)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to fetch expense chart", log.FieldError, err)
			return nil
		}
		items = got
		return nil
	})
	_ = g.Wait()

	slices := core.BuildRing(items)
	view := dashboardView{
		TotalIncome:     summary.TotalIncome.FormatUSD(),
		TotalExpenses:   summary.TotalExpenses.FormatUSD(),
		Balance:         summary.Balance.FormatUSD(),
		BalanceNegative: summary.Balance.Negative(),
		Slices:          slices,
		HasChart:        len(slices) > 0,
	}
	if sess.Identity != nil {
		view.Username = sess.Identity.Username
	}

	s.render(w, r, "dashboard_page", view)
}
