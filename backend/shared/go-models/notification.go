package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeGeneral     NotificationType = "GENERAL"
	NotificationTypePayment     NotificationType = "PAYMENT"
	NotificationTypeMeeting     NotificationType = "MEETING"
	NotificationTypeMaintenance NotificationType = "MAINTENANCE"
)

type Notification struct {
	ID          uuid.UUID        `json:"id"`
	CreatedByID uuid.UUID        `json:"created_by_id"`
	BuildingID  *uuid.UUID       `json:"building_id,omitempty"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Type        NotificationType `json:"type"`
	CreatedAt   time.Time        `json:"created_at"`
}
