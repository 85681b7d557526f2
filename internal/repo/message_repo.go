// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the UserMessage
// model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/donhackett/go-resume-site/internal/domain"
)

// CreateUserMessage inserts a contact message with the current UTC timestamp.
// Runs in a transaction with the same rollback contract as
// CreateResumeRequest.
func CreateUserMessage(ctx context.Context, db *gorm.DB, name, email, subject, body string) (*domain.UserMessage, error) {
	m := &domain.UserMessage{
		Name:      name,
		Email:     email,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListUserMessages returns all stored messages, newest first.
func ListUserMessages(ctx context.Context, db *gorm.DB) ([]domain.UserMessage, error) {
	var out []domain.UserMessage
	err := db.WithContext(ctx).Order("id DESC").Find(&out).Error
	return out, err
}
