package handler

import (
	"net/http"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/apierror"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/service"

	"github.com/gin-gonic/gin"
)

// BancosHandler registers bank deposits and drives the payment allocation.
type BancosHandler struct{ svc service.PagoService }

func NewBancosHandler(svc service.PagoService) *BancosHandler {
	return &BancosHandler{svc: svc}
}

func (h *BancosHandler) Crear(c *gin.Context) {
	var req dto.CrearBancoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearBanco(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BancosHandler) Listar(c *gin.Context) {
	var filter dto.BancoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarBancos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BancosHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerBanco(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Asignar godoc
// @Summary Asignacion de un deposito a las ordenes abiertas de un cliente
// @Tags bancos
// @Accept json
// @Produce json
// @Param id path string true "ID del deposito"
// @Param body body dto.AsignarBancoRequest true "Cliente"
// @Success 200 {object} dto.AsignacionResponse
// @Failure 409 {object} apierror.APIError "Deposito ya asignado"
// @Router /v1/bancos/{id}/asignar [post]
func (h *BancosHandler) Asignar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AsignarBancoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Asignar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BancosHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarBanco(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
