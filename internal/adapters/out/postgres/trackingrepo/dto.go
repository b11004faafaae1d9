// Package trackingrepo stores the conversion event outbox.
package trackingrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConversionEventDTO struct {
	ID         uuid.UUID                               `gorm:"type:uuid;primaryKey"`
	EventName  string                                  `gorm:"size:50;not null"`
	EventID    string                                  `gorm:"size:100;not null;index"`
	EventTime  time.Time                               `gorm:"not null"`
	SourceURL  string                                  `gorm:"size:2048;not null"`
	UserData   datatypes.JSONType[tracking.UserData]   `gorm:"type:jsonb"`
	CustomData datatypes.JSONType[tracking.CustomData] `gorm:"type:jsonb"`
	Status     string                                  `gorm:"size:20;not null;index:idx_conversion_events_pending,priority:1"`
	Attempts   int                                     `gorm:"not null;default:0"`
	LastError  string                                  `gorm:"type:text"`
	CreatedAt  time.Time                               `gorm:"index:idx_conversion_events_pending,priority:2"`
	SentAt     *time.Time
}

func (ConversionEventDTO) TableName() string { return "conversion_events" }

// Models returns the outbox table model.
func Models() []any {
	return []any{&ConversionEventDTO{}}
}

func fromDomain(e *tracking.ConversionEvent) ConversionEventDTO {
	dto := ConversionEventDTO{
		ID:         e.ID().Bytes(),
		EventName:  string(e.Name()),
		EventID:    e.EventID(),
		EventTime:  e.EventTime(),
		SourceURL:  e.SourceURL(),
		UserData:   datatypes.NewJSONType(e.UserData()),
		CustomData: datatypes.NewJSONType(e.CustomData()),
		Status:     string(e.Status()),
		Attempts:   e.Attempts(),
		LastError:  e.LastError(),
	}
	if e.Status() == tracking.DeliverySent {
		now := time.Now().UTC()
		dto.SentAt = &now
	}
	return dto
}

func toDomain(dto ConversionEventDTO) (*tracking.ConversionEvent, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return tracking.RestoreConversionEvent(tracking.EventState{
		ID:         id,
		Name:       tracking.EventName(dto.EventName),
		EventID:    dto.EventID,
		EventTime:  dto.EventTime,
		SourceURL:  dto.SourceURL,
		UserData:   dto.UserData.Data(),
		CustomData: dto.CustomData.Data(),
		Status:     tracking.DeliveryStatus(dto.Status),
		Attempts:   dto.Attempts,
		LastError:  dto.LastError,
	})
}
