package mappers

import (
	"fmt"
	"strings"

	"github.com/maida-inc/maida/internal/domain/shared/vo"
	"github.com/maida-inc/maida/internal/domain/subscription"
	svo "github.com/maida-inc/maida/internal/domain/subscription/valueobjects"
	"github.com/maida-inc/maida/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status := svo.SubscriptionStatus(model.Status)
	if !svo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	var weekdays vo.WeekdaySet
	if model.Weekdays != "" {
		set, err := vo.NewWeekdaySet(strings.Split(model.Weekdays, ","))
		if err != nil {
			return nil, fmt.Errorf("failed to parse weekdays: %w", err)
		}
		weekdays = set
	}

	entity, err := subscription.Reconstruct(subscription.ReconstructParams{
		ID:         model.ID,
		SID:        model.SID,
		CustomerID: model.CustomerID,
		PlanID:     model.PlanID,
		Status:     status,
		Duration:   vo.DurationCode(model.Duration),
		Weekdays:   weekdays,
		StartsAt:   model.StartsAt,
		RenewsAt:   model.RenewsAt,
		PauseCount: model.PauseCount,
		PausedAt:   model.PausedAt,
		ResumesAt:  model.ResumesAt,
		Subtotal:   model.Subtotal,
		Discount:   model.Discount,
		Total:      model.Total,
		Version:    model.Version,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}

	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SubscriptionModel{
		ID:         entity.ID(),
		SID:        entity.SID(),
		CustomerID: entity.CustomerID(),
		PlanID:     entity.PlanID(),
		Status:     entity.Status().String(),
		Duration:   entity.Duration().String(),
		Weekdays:   strings.Join(entity.Weekdays().Codes(), ","),
		StartsAt:   entity.StartsAt(),
		RenewsAt:   entity.RenewsAt(),
		PauseCount: entity.PauseCount(),
		PausedAt:   entity.PausedAt(),
		ResumesAt:  entity.ResumesAt(),
		Subtotal:   entity.Subtotal(),
		Discount:   entity.Discount(),
		Total:      entity.Total(),
		Version:    entity.Version(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(subscriptionModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(subscriptionModels))
	for _, model := range subscriptionModels {
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
