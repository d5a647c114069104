package services

import (
	"sidebard/internal/models"
	"sidebard/internal/providers"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultNotificationCapacity = 100

type NotificationServiceInterface interface {
	Push(level models.NotificationLevel, message string) models.Notification
	Drain() []models.Notification
	Pending() int
}

// NotificationService queues toast messages until the console collects them.
// When full, the oldest message is dropped.
type NotificationService struct {
	mu       sync.Mutex
	logger   providers.Logger
	queue    []models.Notification
	capacity int
	now      func() time.Time
}

func NewNotificationService(logger providers.Logger) NotificationServiceInterface {
	return &NotificationService{
		logger:   logger,
		capacity: defaultNotificationCapacity,
		now:      time.Now,
	}
}

func (ns *NotificationService) Push(level models.NotificationLevel, message string) models.Notification {
	n := models.Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: ns.now(),
	}

	ns.mu.Lock()
	if len(ns.queue) >= ns.capacity {
		ns.queue = ns.queue[1:]
	}
	ns.queue = append(ns.queue, n)
	ns.mu.Unlock()

	if level == models.NotificationError {
		ns.logger.Warnf(providers.TypeApp, "Notification: %s", message)
	} else {
		ns.logger.Infof(providers.TypeApp, "Notification: %s", message)
	}
	return n
}

func (ns *NotificationService) Drain() []models.Notification {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	out := ns.queue
	ns.queue = nil
	if out == nil {
		out = []models.Notification{}
	}
	return out
}

func (ns *NotificationService) Pending() int {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return len(ns.queue)
}
