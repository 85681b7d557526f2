// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// ResumeRequest model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - FindResumeRequestByEmail returns ErrNotFound (an alias of
//     gorm.ErrRecordNotFound) when no row matches.
//   - Create operations run in a transaction: on failure the whole insert is
//     rolled back and the raw gorm error is propagated for the service layer
//     to wrap.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/donhackett/go-resume-site/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// FindResumeRequestByEmail returns the first stored request with an exact
// email match, or ErrNotFound. Read-only; no side effects.
func FindResumeRequestByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.ResumeRequest, error) {
	var r domain.ResumeRequest
	err := db.WithContext(ctx).
		Where("email = ?", email).
		Order("id ASC").
		First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// CreateResumeRequest inserts a new request row with the current UTC
// timestamp inside a transaction. On any persistence failure the transaction
// is rolled back in full (no partial row) and the error is returned.
func CreateResumeRequest(ctx context.Context, db *gorm.DB, name, email, ipAddress string) (*domain.ResumeRequest, error) {
	r := &domain.ResumeRequest{
		Name:      name,
		Email:     email,
		IPAddress: ipAddress,
		CreatedAt: time.Now().UTC(),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(r).Error
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListResumeRequests returns all stored requests ordered by id descending
// (newest first). The order is stable within one read.
func ListResumeRequests(ctx context.Context, db *gorm.DB) ([]domain.ResumeRequest, error) {
	var out []domain.ResumeRequest
	err := db.WithContext(ctx).Order("id DESC").Find(&out).Error
	return out, err
}

// ListResumeRequestsPage returns a paginated slice ordered by id descending.
// Use CountResumeRequests to obtain the total for pagination metadata.
func ListResumeRequestsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ResumeRequest, error) {
	var out []domain.ResumeRequest
	err := db.WithContext(ctx).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountResumeRequests returns the total number of stored requests.
func CountResumeRequests(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.ResumeRequest{}).Count(&total).Error
	return total, err
}
