package handler

import (
	"net/http"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/service"

	"github.com/gin-gonic/gin"
)

// ConsumosHandler exposes the consumption ledger of a production order.
type ConsumosHandler struct{ svc service.ConsumoService }

func NewConsumosHandler(svc service.ConsumoService) *ConsumosHandler {
	return &ConsumosHandler{svc: svc}
}

func (h *ConsumosHandler) ListarPorOrden(c *gin.Context) {
	ordenID, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorOrden(c.Request.Context(), ordenID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConsumosHandler) CrearMP(c *gin.Context) {
	ordenID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CrearConsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearMP(c.Request.Context(), ordenID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ConsumosHandler) ActualizarMP(c *gin.Context) {
	consumoID, ok := parseID(c, "consumoId")
	if !ok {
		return
	}
	var req dto.ActualizarConsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarMP(c.Request.Context(), consumoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConsumosHandler) EliminarMP(c *gin.Context) {
	consumoID, ok := parseID(c, "consumoId")
	if !ok {
		return
	}
	if err := h.svc.EliminarMP(c.Request.Context(), consumoID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConsumosHandler) CrearComponente(c *gin.Context) {
	ordenID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CrearConsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearComponente(c.Request.Context(), ordenID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ConsumosHandler) ActualizarComponente(c *gin.Context) {
	consumoID, ok := parseID(c, "consumoId")
	if !ok {
		return
	}
	var req dto.ActualizarConsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarComponente(c.Request.Context(), consumoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConsumosHandler) EliminarComponente(c *gin.Context) {
	consumoID, ok := parseID(c, "consumoId")
	if !ok {
		return
	}
	if err := h.svc.EliminarComponente(c.Request.Context(), consumoID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
