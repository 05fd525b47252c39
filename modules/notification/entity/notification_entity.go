package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"artwalk-api/core/entity"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeInvitation          NotificationType = "invitation"
	NotificationTypeJoinRequest         NotificationType = "join_request"
	NotificationTypeJoinRequestDecision NotificationType = "join_request_decision"
)

// Notification is a persisted in-app notification. Payload holds
// type-specific fields (event id, actor id) as a JSONB column.
type Notification struct {
	UserID  uuid.UUID        `db:"user_id" json:"user_id"`
	Title   string           `db:"title" json:"title"`
	Message string           `db:"message" json:"message"`
	Type    NotificationType `db:"type" json:"type"`
	Payload Payload          `db:"data" json:"data"`
	IsRead  bool             `db:"is_read" json:"is_read"`
	entity.BaseEntity
}

type Payload map[string]interface{}

func (p Payload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Payload) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("notification payload: expected []byte from driver")
	}
	return json.Unmarshal(b, p)
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
