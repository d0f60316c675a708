package http

import (
	"errors"
	"log/slog"
	"net/http"

	"taksa/internal/core"
	applog "taksa/internal/log"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	apt, loggedIn, err := s.gate.Current(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Session lookup error", applog.FieldError, err)
	}

	period := currentPeriod()
	data := struct {
		LoggedIn bool
		AptID    string
		Mode     string
		Quarter  int
		Year     int
	}{
		LoggedIn: loggedIn,
		AptID:    apt.ID,
		Mode:     string(s.defaultMode),
		Quarter:  period.Quarter,
		Year:     period.Year,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", applog.FieldError, err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	aptID := sanitizeInput(r.Form.Get("apt_id"))
	pin := sanitizeInput(r.Form.Get("pin"))

	_, err := s.gate.Login(r.Context(), aptID, pin)
	switch {
	case errors.Is(err, core.ErrUnknownApartment):
		UnauthorizedError("Няма такъв апартамент").Write(w)
		return
	case errors.Is(err, core.ErrWrongPIN):
		UnauthorizedError("Грешен PIN").Write(w)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Login error", applog.FieldError, err, applog.FieldAptID, aptID)
		InternalServerError("Грешка при вход").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerSessionChanged().
		Header("HX-Redirect", "/").
		BodyHTML(`<div class="success">Успешен вход</div>`).
		Write(w)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	if err := s.gate.Logout(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Logout error", applog.FieldError, err)
		InternalServerError("Грешка при изход").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerSessionChanged().
		Header("HX-Redirect", "/").
		Write(w)
}
