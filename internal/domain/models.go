// Package domain defines the persistence models for résumé requests and
// user-submitted contact messages. These types are mapped with GORM and form
// the core data layer of the résumé site.
package domain

import "time"

// ResumeRequest records a single request to receive the résumé by email.
// Rows are append-only: once created they are never updated or deleted by
// the application (removal is an external administrative action).
//
// Fields:
//   - ID: auto-incrementing integer primary key.
//   - Name: requester name (required, bounded).
//   - Email: requester email. Deliberately NOT unique at the schema level;
//     the intake workflow performs an application-level duplicate lookup and
//     treats a match as informational.
//   - IPAddress: origin network address of the submission, may be empty.
//   - CreatedAt: creation timestamp in UTC, set once, immutable.
type ResumeRequest struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"       gorm:"type:varchar(128);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(128);index"`
	IPAddress string    `json:"ip_address" gorm:"type:varchar(64)"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for ResumeRequest.
func (ResumeRequest) TableName() string { return "resume_requests" }

// UserMessage stores a contact-form submission. Same append-only lifecycle
// as ResumeRequest.
//
// Fields:
//   - ID: auto-incrementing integer primary key.
//   - Name: sender name (required, bounded).
//   - Email: sender email (required, bounded).
//   - Subject: optional subject line.
//   - Body: optional free-text message content.
//   - CreatedAt: creation timestamp in UTC.
type UserMessage struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"       gorm:"type:varchar(128);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(128);not null"`
	Subject   string    `json:"subject"    gorm:"type:varchar(256)"`
	Body      string    `json:"body"       gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for UserMessage.
func (UserMessage) TableName() string { return "user_messages" }
