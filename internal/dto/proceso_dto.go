package dto

// ─── Process catalog ─────────────────────────────────────────────────────────

type CrearProcesoRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2,max=80"`
	Descripcion *string `json:"descripcion"`
}

type ActualizarProcesoRequest struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=2,max=80"`
	Descripcion *string `json:"descripcion"`
}

type ProcesoResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Activo      bool    `json:"activo"`
}

// ─── Product routes ──────────────────────────────────────────────────────────

type CrearPasoRutaRequest struct {
	ProcesoID         string `json:"proceso_id" validate:"required,uuid"`
	Orden             int    `json:"orden"      validate:"required,min=1"`
	TiempoEstimadoMin *int   `json:"tiempo_estimado_min" validate:"omitempty,min=0"`
}

type ActualizarPasoRutaRequest struct {
	Orden             *int `json:"orden" validate:"omitempty,min=1"`
	TiempoEstimadoMin *int `json:"tiempo_estimado_min" validate:"omitempty,min=0"`
}

type PasoRutaResponse struct {
	ID                string  `json:"id"`
	ProductoID        string  `json:"producto_id"`
	ProcesoID         string  `json:"proceso_id"`
	Proceso           *string `json:"proceso"`
	Orden             int     `json:"orden"`
	TiempoEstimadoMin *int    `json:"tiempo_estimado_min"`
}
