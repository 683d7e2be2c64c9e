package jobs

import (
	"context"
	"log/slog"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DeadLetterCounter reports how many outbox records sit in the dead letter
// state. Satisfied by the outbox repository.
type DeadLetterCounter interface {
	CountDeadLettered(ctx context.Context) (int64, error)
}

// OutboxRelayJob drains the transactional outbox on a schedule.
// Runs every second to publish pending records to the broker.
type OutboxRelayJob struct {
	handler     commands.RelayOutboxCommandHandler
	deadLetters DeadLetterCounter
	metrics     *metrics.RelayMetrics
	batchSize   int
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewOutboxRelayJob creates the relay job. Each tick it relays up to
// batchSize records through RelayOutboxCommandHandler and refreshes the
// relay metrics from the result.
func NewOutboxRelayJob(
	handler commands.RelayOutboxCommandHandler,
	deadLetters DeadLetterCounter,
	relayMetrics *metrics.RelayMetrics,
	batchSize int,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:     handler,
		deadLetters: deadLetters,
		metrics:     relayMetrics,
		batchSize:   batchSize,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "outbox_relay_job"),
	}
}

// Start begins the relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", j.tick)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops the relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) tick() {
	ctx := context.Background()

	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return
	}

	j.metrics.Published.Add(float64(result.Published))
	j.metrics.Failed.Add(float64(result.Failed))
	j.metrics.DeadLettered.Add(float64(result.DeadLettered))

	if result.DeadLettered > 0 {
		j.logger.ErrorContext(ctx, "Outbox records dead-lettered",
			"count", result.DeadLettered)
	}

	count, err := j.deadLetters.CountDeadLettered(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Dead letter count failed", "error", err)
		return
	}
	j.metrics.DeadLetters.Set(float64(count))
}
