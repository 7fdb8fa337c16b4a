package models

import "time"

// NotificationKind selects the styling of a notification.
type NotificationKind string

const (
	KindInfo    NotificationKind = "info"
	KindSuccess NotificationKind = "success"
	KindWarning NotificationKind = "warning"
	KindDanger  NotificationKind = "danger"
)

// Normalize maps unknown kinds to KindInfo.
func (k NotificationKind) Normalize() NotificationKind {
	switch k {
	case KindInfo, KindSuccess, KindWarning, KindDanger:
		return k
	}
	return KindInfo
}

// Icon returns the icon name shown next to a notification of this kind.
func (k NotificationKind) Icon() string {
	switch k {
	case KindDanger:
		return "exclamation-triangle-fill"
	case KindSuccess:
		return "check-circle-fill"
	case KindWarning:
		return "exclamation-circle-fill"
	}
	return "info-circle-fill"
}

// Notification is one dismissible message in the notification region.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
	ExpiresAt time.Time        `json:"expiresAt"`
}
