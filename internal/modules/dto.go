package modules

import (
	"time"

	"github.com/google/uuid"

	"github.com/avinashrao/platterly-backend/pkg/db/models"
)

// ModuleDTO is the transport shape for a storefront vertical.
type ModuleDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(m *models.Module) *ModuleDTO {
	if m == nil {
		return nil
	}
	return &ModuleDTO{
		ID:        m.ID,
		Name:      m.Name,
		Active:    m.Active,
		Image:     m.Image,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromModels(rows []models.Module) []ModuleDTO {
	out := make([]ModuleDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
