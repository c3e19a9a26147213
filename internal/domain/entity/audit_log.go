package entity

import "time"

// Acciones registradas en la bitácora. Solo se auditan los flujos
// sensibles: transiciones de solicitudes, devoluciones, asignación de
// droguerías y cambios de configuración.
const (
	AuditActionRequestApproved   = "request.approved"
	AuditActionRequestRejected   = "request.rejected"
	AuditActionRequestDispatched = "request.dispatched"
	AuditActionReturnAccepted    = "return.accepted"
	AuditActionReturnRejected    = "return.rejected"
	AuditActionShopAssigned      = "shop.assigned"
	AuditActionShopUnassigned    = "shop.unassigned"
	AuditActionTaxSettingsSaved  = "tax_settings.saved"
	AuditActionAppSettingsSaved  = "app_settings.saved"
)

// AuditLog es una entrada de bitácora. UserName se desnormaliza para que la
// entrada sobreviva a la eliminación del usuario; BeforeData y AfterData
// guardan el estado como JSON ("null" cuando no aplica). La escritura es de
// mejor esfuerzo: un fallo al auditar nunca revierte la operación auditada.
type AuditLog struct {
	ID         string
	CompanyID  string
	UserID     string
	UserName   string
	EntityType string
	EntityID   string
	Action     string
	Detail     string
	BeforeData string
	AfterData  string
	CreatedAt  time.Time
}
