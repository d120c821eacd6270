package handler

import (
	"net/http"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/service"

	"github.com/gin-gonic/gin"
)

// ProcesosHandler covers the process catalog and the per-product route.
type ProcesosHandler struct{ svc service.ProcesoService }

func NewProcesosHandler(svc service.ProcesoService) *ProcesosHandler {
	return &ProcesosHandler{svc: svc}
}

func (h *ProcesosHandler) Crear(c *gin.Context) {
	var req dto.CrearProcesoRequest
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

func (h *ProcesosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProcesosHandler) Obtener(c *gin.Context) {
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

func (h *ProcesosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProcesoRequest
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

func (h *ProcesosHandler) Eliminar(c *gin.Context) {
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

// ── Product routes ───────────────────────────────────────────────────────────

func (h *ProcesosHandler) AgregarPaso(c *gin.Context) {
	productoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CrearPasoRutaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarPaso(c.Request.Context(), productoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProcesosHandler) ListarRuta(c *gin.Context) {
	productoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarRuta(c.Request.Context(), productoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProcesosHandler) ActualizarPaso(c *gin.Context) {
	pasoID, ok := parseID(c, "pasoId")
	if !ok {
		return
	}
	var req dto.ActualizarPasoRutaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPaso(c.Request.Context(), pasoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProcesosHandler) EliminarPaso(c *gin.Context) {
	pasoID, ok := parseID(c, "pasoId")
	if !ok {
		return
	}
	if err := h.svc.EliminarPaso(c.Request.Context(), pasoID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
