package mappers

import (
	"fmt"

	"github.com/maida-inc/maida/internal/domain/delivery"
	"github.com/maida-inc/maida/internal/infrastructure/persistence/models"
)

type DeliveryMapper interface {
	ToEntity(model *models.DeliveryModel) (*delivery.Delivery, error)
	ToModel(entity *delivery.Delivery) (*models.DeliveryModel, error)
	ToEntities(models []*models.DeliveryModel) ([]*delivery.Delivery, error)
}

type DeliveryMapperImpl struct{}

func NewDeliveryMapper() DeliveryMapper {
	return &DeliveryMapperImpl{}
}

func (m *DeliveryMapperImpl) ToEntity(model *models.DeliveryModel) (*delivery.Delivery, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := delivery.Reconstruct(
		model.ID,
		model.SID,
		model.SubscriptionID,
		model.Date,
		delivery.Window(model.Window),
		model.Address,
		delivery.DeliveryStatus(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct delivery entity: %w", err)
	}

	return entity, nil
}

func (m *DeliveryMapperImpl) ToModel(entity *delivery.Delivery) (*models.DeliveryModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.DeliveryModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		SubscriptionID: entity.SubscriptionID(),
		Date:           entity.Date(),
		Window:         string(entity.Window()),
		Address:        entity.Address(),
		Status:         entity.Status().String(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *DeliveryMapperImpl) ToEntities(deliveryModels []*models.DeliveryModel) ([]*delivery.Delivery, error) {
	entities := make([]*delivery.Delivery, 0, len(deliveryModels))
	for _, model := range deliveryModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
