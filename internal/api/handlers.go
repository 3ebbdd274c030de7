package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iniyantalkies/milkdiary/internal/app/bill"
	"github.com/iniyantalkies/milkdiary/internal/app/ledger"
	"github.com/iniyantalkies/milkdiary/internal/domain"
	"github.com/iniyantalkies/milkdiary/internal/infra/whatsapp"
)

// ─── License ────────────────────────────────────────────────────────────────

type licenseStatusResponse struct {
	DeviceID string `json:"device_id"`
	Locked   bool   `json:"locked"`
	Tier     string `json:"type,omitempty"`
	Expires  string `json:"exp,omitempty"`
}

func (s *Server) handleLicenseStatus(w http.ResponseWriter, r *http.Request) {
	deviceID, err := s.license.DeviceID()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	lic, unlocked, err := s.license.Status()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	resp := licenseStatusResponse{DeviceID: deviceID, Locked: !unlocked}
	if unlocked {
		resp.Tier = string(lic.Tier)
		resp.Expires = lic.ExpiresAt.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidKey)
		return
	}
	lic, err := s.license.Unlock(req.Key)
	if err != nil {
		if isDomainErr(err) {
			writeError(w, err)
		} else {
			s.internalError(w, r, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"type": string(lic.Tier),
		"exp":  lic.ExpiresAt.Format(time.RFC3339),
	})
}

func (s *Server) handleRequestLink(w http.ResponseWriter, r *http.Request) {
	link, err := s.license.RequestLink()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"link": link})
}

// ─── Calendar & Ledger ──────────────────────────────────────────────────────

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	var at time.Time
	if month == "" {
		at = time.Now()
	} else {
		var err error
		at, err = time.Parse("2006-01", month)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "month must be YYYY-MM"})
			return
		}
	}
	cells, err := s.ledger.MonthGrid(at.Year(), at.Month())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"month": at.Format("2006-01"),
		"cells": cells,
	})
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	entry, err := s.ledger.Entry(date)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"not": entry.Not, "extra": entry.Extra})
}

func (s *Server) handlePutEntry(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	var req struct {
		Kind string `json:"kind"`
		Qty  any    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request body"})
		return
	}
	entry, err := s.ledger.SetException(date, ledger.Kind(req.Kind), coerceQty(req.Qty))
	if err != nil {
		if isDomainErr(err) {
			writeError(w, err)
		} else {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"not": entry.Not, "extra": entry.Extra})
}

// coerceQty accepts a number or a string; anything non-numeric resets
// the quantity to 0, matching the update control's behavior.
func coerceQty(v any) int {
	switch q := v.(type) {
	case float64:
		return int(q)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(q))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// ─── Settings ───────────────────────────────────────────────────────────────

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.settings.Load()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var st domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request body"})
		return
	}
	if st.DailyQty < 0 {
		st.DailyQty = 0
	}
	if err := s.settings.Save(st); err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ─── Bills ──────────────────────────────────────────────────────────────────

type billResponse struct {
	*bill.Bill
	SendLink string `json:"send_link,omitempty"`
}

func (s *Server) respondBill(w http.ResponseWriter, r *http.Request, b *bill.Bill, st domain.Settings) {
	resp := billResponse{Bill: b}
	if st.Milkman != "" {
		resp.SendLink = whatsapp.BillDelivery(st.Milkman, b.Text)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBillMonth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month string `json:"month"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request body"})
		return
	}
	at := time.Now()
	if req.Month != "" {
		var err error
		at, err = time.Parse("2006-01", req.Month)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "month must be YYYY-MM"})
			return
		}
	}
	st, led, err := s.billInputs()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	b, err := bill.BuildMonth(at.Year(), at.Month(), st, led)
	if err != nil {
		writeError(w, err)
		return
	}
	s.respondBill(w, r, b, st)
}

func (s *Server) handleBillRange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request body"})
		return
	}
	st, led, err := s.billInputs()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	b, err := bill.BuildRange(req.From, req.To, st, led)
	if err != nil {
		writeError(w, err)
		return
	}
	s.respondBill(w, r, b, st)
}

func (s *Server) billInputs() (domain.Settings, domain.Ledger, error) {
	st, err := s.settings.Load()
	if err != nil {
		return st, nil, err
	}
	led, err := s.ledger.All()
	if err != nil {
		return st, nil, err
	}
	return st, led, nil
}
