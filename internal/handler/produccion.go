package handler

import (
	"net/http"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/apierror"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/service"

	"github.com/gin-gonic/gin"
)

// ProduccionHandler exposes the production order lifecycle and the step
// actions of its route.
type ProduccionHandler struct{ svc service.ProduccionService }

func NewProduccionHandler(svc service.ProduccionService) *ProduccionHandler {
	return &ProduccionHandler{svc: svc}
}

// Crear godoc
// @Summary Alta de orden de produccion
// @Tags produccion
// @Accept json
// @Produce json
// @Param body body dto.CrearOrdenProduccionRequest true "Orden"
// @Success 201 {object} dto.OrdenProduccionResponse
// @Failure 400 {object} apierror.APIError "BOM/ruta faltante o stock insuficiente"
// @Router /v1/ordenes-produccion [post]
func (h *ProduccionHandler) Crear(c *gin.Context) {
	var req dto.CrearOrdenProduccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProduccionHandler) Listar(c *gin.Context) {
	var filter dto.OrdenProduccionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProduccionHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProduccionHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarOrdenProduccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProduccionHandler) Iniciar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Iniciar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProduccionHandler) Pausar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Pausar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProduccionHandler) Cancelar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Cancelar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProduccionHandler) Cerrar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CerrarOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProduccionHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Step actions ─────────────────────────────────────────────────────────────

func (h *ProduccionHandler) IniciarPaso(c *gin.Context) {
	pasoID, ok := parseID(c, "pasoId")
	if !ok {
		return
	}
	resp, err := h.svc.IniciarPaso(c.Request.Context(), pasoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProduccionHandler) PausarPaso(c *gin.Context) {
	pasoID, ok := parseID(c, "pasoId")
	if !ok {
		return
	}
	resp, err := h.svc.PausarPaso(c.Request.Context(), pasoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProduccionHandler) CompletarPaso(c *gin.Context) {
	pasoID, ok := parseID(c, "pasoId")
	if !ok {
		return
	}
	var req dto.CompletarPasoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CompletarPaso(c.Request.Context(), pasoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
