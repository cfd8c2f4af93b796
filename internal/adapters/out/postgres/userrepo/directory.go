// Package userrepo reads owner profiles from the users table for presentation.
package userrepo

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type UserDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Email string `gorm:"uniqueIndex"`
}

func (UserDTO) TableName() string {
	return "users"
}

// GormUserDirectory implements ports.UserDirectory. Users are managed elsewhere;
// this package only reads them, apart from Add which seeds local environments.
type GormUserDirectory struct {
	db *gorm.DB
}

func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

func (d *GormUserDirectory) Add(ctx context.Context, profile ports.UserProfile) error {
	dto := UserDTO{ID: profile.ID.Bytes(), Name: profile.Name, Email: profile.Email}
	if err := d.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStorageUnavailableErrorWithCause("add user", err)
	}
	return nil
}

// Lookup returns the profiles found for ids in one query. Unknown ids are absent
// from the result.
func (d *GormUserDirectory) Lookup(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.UserProfile, error) {
	found := make(map[kernel.UUID]ports.UserProfile, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	keys := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	var dtos []UserDTO
	if err := d.db.WithContext(ctx).Where("id::text = ANY(?)", keys).Find(&dtos).Error; err != nil {
		return nil, errs.NewStorageUnavailableErrorWithCause("lookup users", err)
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		found[id] = ports.UserProfile{ID: id, Name: dto.Name, Email: dto.Email}
	}
	return found, nil
}
