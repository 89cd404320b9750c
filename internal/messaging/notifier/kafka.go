package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"access-service/internal/config"
	"access-service/internal/repository/model"
)

const topic = "access-control"

const (
	permissionUpdateType = "permission-update"
	roleUpdateType       = "role-update"
)

type kafkaNotifier struct {
	logger *zap.SugaredLogger
	w      *kafka.Writer
}

func NewKafkaNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.KafkaConfig) Notifier {
	w := &kafka.Writer{
		Addr:        kafka.TCP(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		Topic:       topic,
		Async:       true,
		Balancer:    &kafka.LeastBytes{},
		ErrorLogger: zap.NewStdLog(zap.L()),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down kafka writer")
		if err := w.Close(); err != nil {
			logger.Errorw("failed to close kafka writer", "error", err)
		}
	}()

	return &kafkaNotifier{
		logger: logger,
		w:      w,
	}
}

type permissionUpdateMessage struct {
	UserId     string `json:"userId"`
	Permission string `json:"permission"`
	Action     string `json:"action"`
}

type roleUpdateMessage struct {
	UserId  string `json:"userId"`
	OldRole string `json:"oldRole"`
	NewRole string `json:"newRole"`
}

func (k *kafkaNotifier) PermissionUpdate(ctx context.Context, userId uuid.UUID, permission model.Permission,
	action PermissionAction) error {

	msg := permissionUpdateMessage{
		UserId:     userId.String(),
		Permission: string(permission),
		Action:     string(action),
	}
	if err := k.publishMessage(ctx, permissionUpdateType, userId.String(), msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (k *kafkaNotifier) RoleUpdate(ctx context.Context, userId uuid.UUID, oldRole model.Role, newRole model.Role) error {
	msg := roleUpdateMessage{
		UserId:  userId.String(),
		OldRole: string(oldRole),
		NewRole: string(newRole),
	}
	if err := k.publishMessage(ctx, roleUpdateType, userId.String(), msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (k *kafkaNotifier) publishMessage(ctx context.Context, msgType string, key string, message interface{}) error {
	bytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := k.w.WriteMessages(ctx, kafka.Message{
		Key:     []byte(key),
		Value:   bytes,
		Headers: []kafka.Header{{Key: "X-Message-Type", Value: []byte(msgType)}},
	}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
