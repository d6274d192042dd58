package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// Communication code and name recorded for status change notifications.
const (
	StatusChangedCommunicationCode = "ORDER_STATUS_CHANGED"
	statusChangedCommunicationName = "Order status changed"
)

// CommunicationRelayJob periodically re-publishes status change notifications
// for orders whose latest transition was never communicated, then records the
// communication so the order is not picked up again. It is the safety net for
// publishes lost between a commit and a broker outage.
type CommunicationRelayJob struct {
	pendingHandler queries.GetOrdersPendingNotificationQueryHandler
	recordHandler  commands.RecordCommunicationEventCommandHandler
	publisher      ports.EventPublisher
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewCommunicationRelayJob creates a job relaying missed status change
// notifications once a minute.
func NewCommunicationRelayJob(
	pendingHandler queries.GetOrdersPendingNotificationQueryHandler,
	recordHandler commands.RecordCommunicationEventCommandHandler,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *CommunicationRelayJob {
	return &CommunicationRelayJob{
		pendingHandler: pendingHandler,
		recordHandler:  recordHandler,
		publisher:      publisher,
		cron:           cron.New(cron.WithSeconds()),
		logger:         logger.With("component", "communication_relay_job"),
	}
}

// Start begins the relay job to run at the start of every minute.
func (j *CommunicationRelayJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.relay(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Communication relay job started (running every minute)")
	return nil
}

// Stop stops the relay job.
func (j *CommunicationRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Communication relay job stopped")
}

// relay processes one batch of pending notifications. A failure on one order
// is logged and does not block the rest of the batch.
func (j *CommunicationRelayJob) relay(ctx context.Context) {
	query, err := queries.NewGetOrdersPendingNotificationQuery(StatusChangedCommunicationCode)
	if err != nil {
		j.logger.ErrorContext(ctx, "Communication relay query is invalid", "error", err)
		return
	}

	pending, err := j.pendingHandler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load orders pending notification", "error", err)
		return
	}

	for _, item := range pending {
		if err = j.relayOne(ctx, item); err != nil {
			j.logger.ErrorContext(ctx, "Failed to relay status notification",
				"order_number", item.Number, "error", err)
		}
	}
}

func (j *CommunicationRelayJob) relayOne(
	ctx context.Context, item queries.GetOrdersPendingNotificationQueryResponse,
) error {
	err := j.publisher.PublishOrderStatusChanged(ctx, order.StatusChanged{
		OrderID:     item.OrderID,
		OrderNumber: item.Number,
		OldStatus:   order.Status(item.OldStatus),
		NewStatus:   order.Status(item.NewStatus),
		At:          item.LastChanged,
	})
	if err != nil {
		return err
	}

	// Recorded only after a successful publish, so a failed publish keeps
	// the order in the pending set.
	cmd, err := commands.NewRecordCommunicationEventCommand(
		item.Number, kernel.NewUUID(), StatusChangedCommunicationCode, statusChangedCommunicationName)
	if err != nil {
		return err
	}
	return j.recordHandler.Handle(ctx, cmd)
}
