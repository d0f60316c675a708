package http

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"taksa/internal/core"
	applog "taksa/internal/log"
	"taksa/internal/roster"
)

// handleApartments renders the roster table with fees under the selected
// mode. The rendered fragment is cached per mode until an import replaces
// the roster.
func (s *Server) handleApartments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	mode := ParseFeeMode(r.URL.Query(), s.defaultMode)
	key := string(mode)

	if fragment, found := s.fragmentCache.Get(key); found {
		slog.DebugContext(r.Context(), "Roster fragment cache hit", applog.FieldFeeMode, key)
		_, _ = io.WriteString(w, fragment)
		return
	}

	apts, err := s.roster.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Roster list error", applog.FieldError, err)
		InternalServerError("Грешка при зареждане на списъка").Write(w)
		return
	}

	type aptRow struct {
		ID        string
		Type      string
		AreaM2    string
		HasGarage bool
		Monthly   string
		Quarterly string
	}
	data := struct {
		Mode      string
		OtherMode string
		Rows      []aptRow
	}{Mode: string(mode), OtherMode: string(otherMode(mode))}

	tariff := s.dues.Tariff()
	for _, a := range apts {
		monthly := core.MonthlyFee(a, tariff, mode)
		data.Rows = append(data.Rows, aptRow{
			ID:        a.ID,
			Type:      string(a.Type),
			AreaM2:    strconv.FormatFloat(a.AreaM2, 'f', -1, 64),
			HasGarage: a.HasGarage,
			Monthly:   core.FormatLev(monthly),
			Quarterly: core.FormatLev(core.QuarterlyDue(a, tariff, mode)),
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="apartments"><div class="placeholder">` + strconv.Itoa(len(apts)) + ` апартамента</div></section>`))
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "apartments.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", applog.FieldError, err, "template", "apartments.html")
		_, _ = w.Write([]byte(`<section id="apartments"><div class="placeholder">Грешка при показване</div></section>`))
		return
	}

	s.fragmentCache.Set(key, buf.String())
	_, _ = w.Write(buf.Bytes())
}

// handleExportCSV streams the roster, PINs included, as a download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	data, err := s.roster.ExportCSV(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Roster export error", applog.FieldError, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="roster.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleImportCSV replaces the roster from an uploaded CSV. The upload may
// be a multipart file field named "file" or the raw request body.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	data, err := readUpload(r)
	if err != nil {
		BadRequestError("Невалиден файл").Write(w)
		return
	}

	result, err := s.roster.ImportCSV(r.Context(), data)
	if err != nil {
		var schemaErr *roster.SchemaError
		if errors.As(err, &schemaErr) {
			UnprocessableEntityError("Липсващи колони: " + strings.Join(schemaErr.Missing, ", ")).Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Roster import error", applog.FieldError, err)
		InternalServerError("Грешка при импортиране").Write(w)
		return
	}

	// Fee tables are stale now.
	s.fragmentCache.Purge()

	slog.InfoContext(r.Context(), "Roster imported",
		"imported", result.Imported,
		"skipped", result.Skipped)

	msg := "Импортирани " + strconv.Itoa(result.Imported) + " апартамента"
	if result.Skipped > 0 {
		msg += " (пропуснати " + strconv.Itoa(result.Skipped) + " реда)"
	}
	NewHTMXResponse().
		TriggerRosterReplaced(result.Imported, result.Skipped).
		TriggerSuccessNotification(msg).
		BodyHTML(`<div class="success">` + msg + `</div>`).
		Write(w)
}

func readUpload(r *http.Request) ([]byte, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}
	return io.ReadAll(r.Body)
}
