package handler

import (
	"net/http"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/apierror"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BomHandler manages a product's bill of materials and its explosion.
type BomHandler struct{ svc service.BomService }

func NewBomHandler(svc service.BomService) *BomHandler { return &BomHandler{svc: svc} }

func (h *BomHandler) Obtener(c *gin.Context) {
	productoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerBom(c.Request.Context(), productoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Explotar godoc
// @Summary Explosion del BOM a un tamaño de lote
// @Tags bom
// @Produce json
// @Param id path string true "ID del producto"
// @Param cantidad query string true "Cantidad a fabricar"
// @Success 200 {object} dto.ExplosionResponse
// @Router /v1/productos/{id}/bom/explosion [get]
func (h *BomHandler) Explotar(c *gin.Context) {
	productoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	cantidad, err := decimal.NewFromString(c.Query("cantidad"))
	if err != nil || !cantidad.IsPositive() {
		c.JSON(http.StatusBadRequest, apierror.New("cantidad invalida"))
		return
	}
	resp, err := h.svc.Explotar(c.Request.Context(), productoID, cantidad)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BomHandler) AgregarMateriaPrima(c *gin.Context) {
	productoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CrearLineaBomRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarMateriaPrima(c.Request.Context(), productoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BomHandler) ActualizarLineaMP(c *gin.Context) {
	lineaID, ok := parseID(c, "lineaId")
	if !ok {
		return
	}
	var req dto.ActualizarLineaBomRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarLineaMP(c.Request.Context(), lineaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BomHandler) EliminarLineaMP(c *gin.Context) {
	lineaID, ok := parseID(c, "lineaId")
	if !ok {
		return
	}
	if err := h.svc.EliminarLineaMP(c.Request.Context(), lineaID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BomHandler) AgregarComponente(c *gin.Context) {
	productoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CrearLineaBomRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarComponente(c.Request.Context(), productoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BomHandler) ActualizarLineaComp(c *gin.Context) {
	lineaID, ok := parseID(c, "lineaId")
	if !ok {
		return
	}
	var req dto.ActualizarLineaBomRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarLineaComp(c.Request.Context(), lineaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BomHandler) EliminarLineaComp(c *gin.Context) {
	lineaID, ok := parseID(c, "lineaId")
	if !ok {
		return
	}
	if err := h.svc.EliminarLineaComp(c.Request.Context(), lineaID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
