package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Alexistodj124/CoprodaBackEnd/internal/domain"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/dto"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/model"
	"github.com/Alexistodj124/CoprodaBackEnd/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, nombre string) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	cliente := &model.Cliente{
		Codigo:    strings.TrimSpace(req.Codigo),
		Nombre:    strings.TrimSpace(req.Nombre),
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
	}
	if err := s.repo.Crear(ctx, cliente); err != nil {
		if esErrorDuplicado(err) {
			return nil, domain.NewConflict("ya existe un cliente con el código %s", cliente.Codigo)
		}
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("cliente")
		}
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Listar(ctx context.Context, nombre string) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.Listar(ctx, nombre)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, len(clientes))
	for i := range clientes {
		out[i] = *clienteToResponse(&clientes[i])
	}
	return out, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("cliente")
		}
		return nil, err
	}
	if req.Codigo != nil {
		cliente.Codigo = strings.TrimSpace(*req.Codigo)
	}
	if req.Nombre != nil {
		cliente.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Telefono != nil {
		cliente.Telefono = req.Telefono
	}
	if req.Direccion != nil {
		cliente.Direccion = req.Direccion
	}
	if err := s.repo.Actualizar(ctx, cliente); err != nil {
		if esErrorDuplicado(err) {
			return nil, domain.NewConflict("ya existe un cliente con el código %s", cliente.Codigo)
		}
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

// Eliminar refuses while the customer still has sales orders on file.
func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	cliente, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFound("cliente")
		}
		return err
	}
	n, err := s.repo.ContarOrdenes(ctx, cliente.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.NewConflict("el cliente tiene %d órdenes registradas", n)
	}
	if !cliente.Saldo.IsZero() {
		return domain.NewConflict("el cliente tiene saldo pendiente")
	}
	return s.repo.Eliminar(ctx, id)
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID.String(),
		Codigo:    c.Codigo,
		Nombre:    c.Nombre,
		Telefono:  c.Telefono,
		Direccion: c.Direccion,
		Saldo:     c.Saldo,
	}
}
