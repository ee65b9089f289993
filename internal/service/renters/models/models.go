package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// CreateProfileRequest запрос на создание профиля арендодателя
// Документы передаются ссылками на уже загруженные файлы
type CreateProfileRequest struct {
	UserID             int64   `json:"-"`
	DriverLicenseImage *string `json:"driverLicenseImage,omitempty"`
	PhotoIDImage       *string `json:"photoIdImage,omitempty"`
}

// UpdateDocumentsRequest запрос на замену документов
type UpdateDocumentsRequest struct {
	UserID             int64   `json:"-"`
	DriverLicenseImage *string `json:"driverLicenseImage,omitempty"`
	PhotoIDImage       *string `json:"photoIdImage,omitempty"`
}

// VerifyRequest запрос администратора на верификацию
type VerifyRequest struct {
	TargetUserID int64
	IsAdmin      bool
}

// ProfileResponse ответ с профилем арендодателя
type ProfileResponse struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"userId"`
	DriverLicenseImage *string    `json:"driverLicenseImage,omitempty"`
	PhotoIDImage       *string    `json:"photoIdImage,omitempty"`
	IsVerified         bool       `json:"isVerified"`
	VerifiedAt         *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// FromDomainProfile конвертирует domain модель в DTO
func FromDomainProfile(p *domain.RenterProfile) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		DriverLicenseImage: p.DriverLicenseImage,
		PhotoIDImage:       p.PhotoIDImage,
		IsVerified:         p.IsVerified,
		VerifiedAt:         p.VerifiedAt,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
