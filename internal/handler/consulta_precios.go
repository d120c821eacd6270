package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 4 * time.Hour

// ConsultaPreciosHandler serves the public price check endpoint.
// No authentication required — no side effects whatsoever.
type ConsultaPreciosHandler struct {
	svc service.ProductoService
	rdb *redis.Client
}

func NewConsultaPreciosHandler(svc service.ProductoService, rdb *redis.Client) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{svc: svc, rdb: rdb}
}

// GetPrecioPorCodigo godoc
// @Summary Consulta de precios por codigo de producto (sin autenticacion)
// @Tags precio
// @Produce json
// @Param codigo path string true "Codigo de producto"
// @Success 200 {object} dto.ConsultaPreciosResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{codigo} [get]
func (h *ConsultaPreciosHandler) GetPrecioPorCodigo(c *gin.Context) {
	codigo := c.Param("codigo")
	ctx := c.Request.Context()
	cacheKey := "precio:" + codigo

	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.ConsultaPreciosResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	resp, err := h.svc.ConsultarPorCodigo(ctx, codigo)
	if err != nil {
		respondError(c, err)
		return
	}

	// Populate cache — best effort, ignore errors.
	if h.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, resp)
}
