package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frozen33/inventory/internal/bill"
	"github.com/frozen33/inventory/internal/calculator"
	"github.com/frozen33/inventory/internal/inventory"
	"github.com/frozen33/inventory/internal/middleware"
	"github.com/frozen33/inventory/internal/models"
	"github.com/frozen33/inventory/internal/service"
	"github.com/frozen33/inventory/internal/storage"
	"github.com/frozen33/inventory/internal/units"
)

// calculateRequest carries both the tile source and the area request.
// Fields are validated by the calculator; the handler only assembles them.
type calculateRequest struct {
	// Source selects the tile spec variant: catalog, inventory, or manual.
	Source string `json:"source"`

	// Catalog tiles.
	TileSize string `json:"tile_size,omitempty"`

	// Inventory tiles.
	ProductID string `json:"product_id,omitempty"`

	// Manual tiles.
	TileLength  float64 `json:"tile_length,omitempty"`
	TileWidth   float64 `json:"tile_width,omitempty"`
	TileUnit    string  `json:"tile_unit,omitempty"`
	TilesPerBox int     `json:"tiles_per_box,omitempty"`

	// Area request: "dimensions" or "total".
	Mode      string  `json:"mode"`
	Width     float64 `json:"width,omitempty"`
	Length    float64 `json:"length,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	TotalSqFt float64 `json:"total_sqft,omitempty"`

	// Walls only.
	DeductOpening bool `json:"deduct_opening,omitempty"`

	PricePerBox *float64 `json:"price_per_box,omitempty"`

	// AddToBill appends the result to the caller's working bill.
	AddToBill bool `json:"add_to_bill,omitempty"`
}

type calculateResponse struct {
	Item      models.LineItem `json:"item"`
	BillCount int             `json:"bill_count,omitempty"`
}

func (r calculateRequest) tileSpec() (calculator.TileSpec, error) {
	switch models.TileSource(r.Source) {
	case models.SourceCatalog:
		return calculator.CatalogTile{Size: r.TileSize}, nil
	case models.SourceInventory:
		return calculator.InventoryTile{ProductID: r.ProductID}, nil
	case models.SourceManual:
		unit, err := units.Parse(r.TileUnit)
		if err != nil {
			return nil, err
		}
		return calculator.ManualTile{
			Length:      r.TileLength,
			Width:       r.TileWidth,
			Unit:        unit,
			TilesPerBox: r.TilesPerBox,
		}, nil
	default:
		return nil, calculator.ErrInvalidTileSpec
	}
}

func (r calculateRequest) areaRequest(surface models.Surface) (calculator.AreaRequest, error) {
	if calculator.AreaMode(r.Mode) == calculator.ModeTotalArea {
		return calculator.FromTotalArea(r.TotalSqFt), nil
	}
	unit, err := units.Parse(r.Unit)
	if err != nil {
		return calculator.AreaRequest{}, err
	}
	if surface == models.SurfaceWall {
		return calculator.FromWallDimensions(r.Width, r.Length, r.Height, unit), nil
	}
	return calculator.FromDimensions(r.Width, r.Length, unit), nil
}

func (s *Server) handleCalculateFloor(w http.ResponseWriter, r *http.Request) {
	s.handleCalculate(w, r, models.SurfaceFloor)
}

func (s *Server) handleCalculateWall(w http.ResponseWriter, r *http.Request) {
	s.handleCalculate(w, r, models.SurfaceWall)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request, surface models.Surface) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	spec, err := req.tileSpec()
	if err != nil {
		writeTypedError(w, err)
		return
	}
	area, err := req.areaRequest(surface)
	if err != nil {
		writeTypedError(w, err)
		return
	}

	var item models.LineItem
	if surface == models.SurfaceWall {
		item, err = s.svc.ComputeWall(r.Context(), spec, area, req.DeductOpening, req.PricePerBox)
	} else {
		item, err = s.svc.ComputeFloor(r.Context(), spec, area, req.PricePerBox)
	}
	if err != nil {
		writeTypedError(w, err)
		return
	}

	resp := calculateResponse{Item: item}
	if req.AddToBill {
		ownerID := middleware.GetOwnerID(r.Context())
		wb, err := s.sessions.Load(ownerID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp.BillCount = wb.Add(item)
		if err := s.sessions.Save(ownerID, wb); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type workingBillResponse struct {
	Items   []models.LineItem `json:"items"`
	Summary models.Summary    `json:"summary"`
}

func (s *Server) handleGetWorkingBill(w http.ResponseWriter, r *http.Request) {
	wb, err := s.sessions.Load(middleware.GetOwnerID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, workingBillResponse{Items: wb.Items, Summary: wb.Summarize()})
}

func (s *Server) handleClearWorkingBill(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(middleware.GetOwnerID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ownerID := middleware.GetOwnerID(r.Context())
	wb, err := s.sessions.Load(ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := wb.RemoveAt(index); err != nil {
		writeTypedError(w, err)
		return
	}
	if err := s.sessions.Save(ownerID, wb); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, workingBillResponse{Items: wb.Items, Summary: wb.Summarize()})
}

type saveBillRequest struct {
	Name string `json:"name,omitempty"`
}

func (s *Server) handleSaveBill(w http.ResponseWriter, r *http.Request) {
	var req saveBillRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	ownerID := middleware.GetOwnerID(r.Context())
	wb, err := s.sessions.Load(ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	saved, err := s.svc.SaveBill(r.Context(), wb, ownerID, middleware.GetOwnerName(r.Context()), req.Name)
	if err != nil {
		writeTypedError(w, err)
		return
	}

	// The service cleared the working bill; drop the session slot too.
	s.sessions.Clear(ownerID)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	var (
		bills []models.Bill
		err   error
	)
	if r.URL.Query().Get("owner") == "me" {
		bills, err = s.svc.ListBillsByOwner(r.Context(), middleware.GetOwnerID(r.Context()))
	} else {
		bills, err = s.svc.ListBills(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bills": bills})
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	b, err := s.svc.GetBill(r.Context(), r.PathValue("id"))
	if err != nil {
		writeTypedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteBill(r.Context(), r.PathValue("id")); err != nil {
		writeTypedError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type purgeRequest struct {
	Days int `json:"days,omitempty"`
}

func (s *Server) handlePurge(w http.ResponseWriter, r *http.Request) {
	req := purgeRequest{Days: 30}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	deleted, err := s.svc.PurgeOldBills(r.Context(), req.Days)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func (s *Server) handlePurgePreview(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		days = parsed
	}

	count, err := s.svc.CountOldBills(r.Context(), days)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// writeTypedError maps the typed failures of the core onto HTTP statuses.
func writeTypedError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, inventory.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, units.ErrInvalidUnit),
		errors.Is(err, calculator.ErrInvalidTileSpec),
		errors.Is(err, calculator.ErrInvalidGeometry),
		errors.Is(err, calculator.ErrDivisionByZero),
		errors.Is(err, bill.ErrIndexOutOfRange),
		errors.Is(err, service.ErrEmptyBill):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
