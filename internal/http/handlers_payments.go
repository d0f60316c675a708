package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"taksa/internal/core"
	applog "taksa/internal/log"
)

// handleCreatePayment records a payment for the logged-in apartment.
func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	apt, ok, err := s.gate.Current(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Session lookup error", applog.FieldError, err)
		InternalServerError("Грешка при запис").Write(w)
		return
	}
	if !ok {
		UnauthorizedError("Моля, влезте с апартамент и ПИН").Write(w)
		return
	}

	amountStr := sanitizeInput(r.Form.Get("amount"))
	amount, err := core.ParseDecimal(amountStr)
	if err != nil {
		UnprocessableEntityError("Невалидна сума").Write(w)
		return
	}

	period := ParsePeriodParams(r.Form)
	payment := core.Payment{
		AptID:   apt.ID,
		Quarter: period.Quarter,
		Year:    period.Year,
		Amount:  amount,
		Date:    time.Now(),
		Note:    sanitizeInput(r.Form.Get("note")),
	}
	if err := payment.Validate(); err != nil {
		UnprocessableEntityError("Невалидни данни: " + err.Error()).Write(w)
		return
	}

	id, err := s.payments.Record(r.Context(), payment)
	if err != nil {
		slog.ErrorContext(r.Context(), "Payment record error",
			applog.FieldError, err,
			applog.FieldAptID, apt.ID,
			applog.FieldAmountLev, amount)
		InternalServerError("Грешка при запис на плащането").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerPaymentRecorded(period.Quarter, period.Year).
		TriggerSuccessNotification("Плащането е записано").
		BodyHTML(`<div class="success">Записано плащане (#` + template.HTMLEscapeString(id) + `): ` +
			template.HTMLEscapeString(core.FormatLev(amount)) +
			` за ` + template.HTMLEscapeString(payment.Period()) + `</div>`).
		Write(w)
}

// handlePayments renders the full ledger for the logged-in apartment.
func (s *Server) handlePayments(w http.ResponseWriter, r *http.Request) {
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

	pays, err := s.payments.ListForApartment(r.Context(), apt.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Payment list error", applog.FieldError, err, applog.FieldAptID, apt.ID)
		InternalServerError("Грешка при зареждане на плащанията").Write(w)
		return
	}

	data := struct {
		AptID string
		Rows  []paymentRow
		Total string
	}{AptID: apt.ID}
	var total float64
	for _, p := range pays {
		total += p.Amount
		data.Rows = append(data.Rows, paymentRow{
			Period: p.Period(),
			Amount: core.FormatLev(p.Amount),
			Date:   p.Date.Format("2006-01-02"),
			Note:   p.Note,
		})
	}
	data.Total = core.FormatLev(total)

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="payments"><div class="placeholder">Общо платено: ` + data.Total + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "payments.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", applog.FieldError, err, "template", "payments.html")
		_, _ = w.Write([]byte(`<section id="payments"><div class="placeholder">Грешка при показване</div></section>`))
	}
}
