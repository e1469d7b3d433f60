package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every second.
const DefaultOutboxRelaySchedule = "* * * * * *"

// OutboxRelayHandler publishes one batch and reports how many messages went out.
type OutboxRelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob periodically drains the transactional outbox to the broker.
// A tick keeps relaying full batches until the backlog is shorter than one
// batch or a publish fails.
type OutboxRelayJob struct {
	handler  OutboxRelayHandler
	schedule string
	cmd      commands.RelayOutboxCommand
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob validates batchSize up front. An empty schedule means
// DefaultOutboxRelaySchedule.
func NewOutboxRelayJob(
	handler OutboxRelayHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) (*OutboxRelayJob, error) {
	cmd, err := commands.NewRelayOutboxCommand(batchSize)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}

	return &OutboxRelayJob{
		handler:  handler,
		schedule: schedule,
		cmd:      cmd,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
	}, nil
}

// Start schedules the relay.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

// RunOnce performs a single tick and returns the number of messages published.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) int {
	total := 0
	for {
		published, err := j.handler.Handle(ctx, j.cmd)
		total += published
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay failed", "published", published, "error", err)
			break
		}
		if published < j.cmd.BatchSize() {
			break
		}
	}

	if total > 0 {
		j.logger.DebugContext(ctx, "Outbox relayed", "published", total)
	}
	return total
}
