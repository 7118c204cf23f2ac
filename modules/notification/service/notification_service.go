package service

import (
	"context"
	"encoding/json"
	"time"

	coreEntity "meetsync-api/core/entity"
	"meetsync-api/core/logger"
	"meetsync-api/core/params"
	"meetsync-api/modules/notification/dto"
	"meetsync-api/modules/notification/entity"
	"meetsync-api/modules/notification/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TaskDeliverNotification is the asynq task type for queued deliveries
const TaskDeliverNotification = "notification:deliver"

type deliverPayload struct {
	UserID  uuid.UUID              `json:"user_id"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Type    string                 `json:"type"`
	Data    map[string]interface{} `json:"data"`
}

type NotificationService struct {
	repo   *repository.NotificationRepository
	client *asynq.Client
}

func NewNotificationService(repo *repository.NotificationRepository, client *asynq.Client) *NotificationService {
	return &NotificationService{repo: repo, client: client}
}

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) error {
	notif := &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    entity.JSONB(req.Data),
		IsRead:  false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	return s.repo.Create(ctx, notif)
}

// Enqueue hands a notification to the background worker instead of writing
// inline, so booking requests never wait on notification persistence.
func (s *NotificationService) Enqueue(ctx context.Context, userID uuid.UUID, notifType, title, message string, data map[string]interface{}) error {
	payload, err := json.Marshal(deliverPayload{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
		Data:    data,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskDeliverNotification, payload)
	info, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second))
	if err != nil {
		logger.Error("NotificationService:Enqueue", err)
		return err
	}

	logger.Info("NotificationService:Enqueue:Queued",
		"task_id", info.ID,
		"type", notifType,
		"user_id", userID.String(),
	)
	return nil
}

// HandleDeliverTask is the asynq handler that persists queued notifications
func (s *NotificationService) HandleDeliverTask(ctx context.Context, t *asynq.Task) error {
	var payload deliverPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}

	return s.Create(ctx, &dto.CreateNotificationRequest{
		UserID:  payload.UserID,
		Title:   payload.Title,
		Message: payload.Message,
		Type:    payload.Type,
		Data:    payload.Data,
	})
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByUserID(ctx, userID, queryParams)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return s.repo.MarkAsRead(ctx, userID, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
