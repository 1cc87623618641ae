package notification

import (
	"context"
)

type Service interface {
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	QueueBulkNotification(ctx context.Context, reqs []CreateNotificationRequest) error
	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	MarkAsRead(ctx context.Context, userID string, notificationIDs []string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())
	Stop()
}
