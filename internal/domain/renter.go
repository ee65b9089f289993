package domain

import "time"

// RenterProfile профиль пользователя, который сдает ресурсы в аренду
type RenterProfile struct {
	ID                 int64
	UserID             int64
	DriverLicenseImage *string
	PhotoIDImage       *string
	IsVerified         bool
	VerifiedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasDocuments проверяет, что загружены оба документа
func (p *RenterProfile) HasDocuments() bool {
	return p.DriverLicenseImage != nil && *p.DriverLicenseImage != "" &&
		p.PhotoIDImage != nil && *p.PhotoIDImage != ""
}

// Verify помечает профиль верифицированным
// VerifiedAt не перезаписывается, если уже был проставлен
func (p *RenterProfile) Verify(now time.Time) error {
	if p.IsVerified {
		return ErrAlreadyVerified
	}
	if !p.HasDocuments() {
		return ErrMissingDocuments
	}
	p.IsVerified = true
	if p.VerifiedAt == nil {
		verifiedAt := now.UTC()
		p.VerifiedAt = &verifiedAt
	}
	return nil
}
