package tasks

import (
	"context"
	"encoding/json"

	"artwalk-api/core/logger"
	"artwalk-api/modules/notification/dto"
	"artwalk-api/modules/notification/service"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TypeNotificationDeliver is the asynq task type for out-of-band
// notification delivery.
const TypeNotificationDeliver = "notification:deliver"

// DeliverPayload is the task payload enqueued by the engagement services.
type DeliverPayload struct {
	UserID  uuid.UUID              `json:"user_id"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Type    string                 `json:"type"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

func NewDeliverTask(payload DeliverPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotificationDeliver, raw), nil
}

// Dispatcher enqueues delivery tasks. A nil client disables dispatch, and
// enqueue failures are logged, never propagated: notifications are
// best-effort and must not fail the triggering operation.
type Dispatcher struct {
	client *asynq.Client
}

func NewDispatcher(client *asynq.Client) *Dispatcher {
	return &Dispatcher{client: client}
}

func (d *Dispatcher) Dispatch(payload DeliverPayload) {
	if d == nil || d.client == nil {
		return
	}
	task, err := NewDeliverTask(payload)
	if err != nil {
		logger.Error("NotificationTasks:Dispatch:Marshal", err)
		return
	}
	if _, err := d.client.Enqueue(task); err != nil {
		logger.Error("NotificationTasks:Dispatch:Enqueue", err)
	}
}

// Handler consumes delivery tasks and persists notification rows.
type Handler struct {
	svc *service.NotificationService
}

func NewHandler(svc *service.NotificationService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload DeliverPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("NotificationTasks:ProcessTask:Unmarshal", err)
		return err
	}

	return h.svc.Create(ctx, &dto.CreateNotificationRequest{
		UserID:  payload.UserID,
		Title:   payload.Title,
		Message: payload.Message,
		Type:    payload.Type,
		Data:    payload.Data,
	})
}
