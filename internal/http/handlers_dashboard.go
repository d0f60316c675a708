package http

import (
	"log/slog"
	"net/http"

	"taksa/internal/core"
	applog "taksa/internal/log"
	"taksa/internal/services"
)

type breakdownRow struct {
	Label  string
	Amount string
}

type paymentRow struct {
	Period string
	Amount string
	Date   string
	Note   string
}

// handleDashboard renders the per-apartment dues partial. It needs a login.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	apt, ok, err := s.gate.Current(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Session lookup error", applog.FieldError, err)
		InternalServerError("Грешка при зареждане").Write(w)
		return
	}
	if !ok {
		UnauthorizedError("Моля, влезте с апартамент и ПИН").Write(w)
		return
	}

	mode := ParseFeeMode(r.URL.Query(), s.defaultMode)
	period := ParsePeriodParams(r.URL.Query())

	overview, err := s.dues.Overview(r.Context(), apt, mode, period.Quarter, period.Year)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dues overview error",
			applog.FieldError, err,
			applog.FieldAptID, apt.ID,
			applog.FieldFeeMode, string(mode))
		InternalServerError("Грешка при изчисляване на таксата").Write(w)
		return
	}

	data := struct {
		AptID       string
		AptType     string
		HasGarage   bool
		Mode        string
		OtherMode   string
		Period      string
		Quarter     int
		Year        int
		Monthly     string
		Quarterly   string
		Paid        string
		Outstanding string
		Settled     bool
		Breakdown   []breakdownRow
		Payments    []paymentRow
	}{
		AptID:       apt.ID,
		AptType:     string(apt.Type),
		HasGarage:   apt.HasGarage,
		Mode:        string(mode),
		OtherMode:   string(otherMode(mode)),
		Period:      services.PeriodLabel(period.Quarter, period.Year),
		Quarter:     period.Quarter,
		Year:        period.Year,
		Monthly:     core.FormatLev(overview.Monthly),
		Quarterly:   core.FormatLev(overview.Quarterly),
		Paid:        core.FormatLev(overview.PaidTotal),
		Outstanding: core.FormatLev(overview.Outstanding()),
		Settled:     overview.Outstanding() == 0 && overview.PaidTotal > 0,
	}
	for _, line := range overview.Breakdown {
		data.Breakdown = append(data.Breakdown, breakdownRow{
			Label:  line.Label,
			Amount: core.FormatLev(line.Amount),
		})
	}
	for _, p := range overview.Payments {
		data.Payments = append(data.Payments, paymentRow{
			Period: p.Period(),
			Amount: core.FormatLev(p.Amount),
			Date:   p.Date.Format("2006-01-02"),
			Note:   p.Note,
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="dashboard"><div class="placeholder">Месечна такса: ` + data.Monthly + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", applog.FieldError, err, "template", "dashboard.html")
		_, _ = w.Write([]byte(`<section id="dashboard"><div class="placeholder">Грешка при показване</div></section>`))
	}
}

func otherMode(mode core.FeeMode) core.FeeMode {
	if mode == core.ModeClassic {
		return core.ModeIntrinsic
	}
	return core.ModeClassic
}
