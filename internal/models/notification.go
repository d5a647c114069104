package models

import "time"

type NotificationLevel string

const (
	NotificationError NotificationLevel = "error"
	NotificationInfo  NotificationLevel = "info"
)

type Notification struct {
	ID        string            `json:"id"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"createdAt"`
}
