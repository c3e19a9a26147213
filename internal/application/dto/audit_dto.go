package dto

import "time"

// AuditLogResponse entrada de bitácora tal como la consume la consola.
type AuditLogResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail"`
	BeforeData string    `json:"before_data"`
	AfterData  string    `json:"after_data"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditLogListResponse lista paginada de bitácora.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
