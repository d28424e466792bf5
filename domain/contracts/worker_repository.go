package contracts

import (
	"context"

	"fieldops/domain/fieldwork"
)

// WorkerRepository resolves worker records. Read-mostly from the lifecycle
// engine's perspective; creation exists for backoffice administration.
type WorkerRepository interface {
	GetWorker(ctx context.Context, workerID string) (*fieldwork.Worker, error)
	ListWorkers(ctx context.Context) ([]*fieldwork.Worker, error)
	ListWorkersByIDs(ctx context.Context, ids []string) ([]*fieldwork.Worker, error)
	CreateWorker(ctx context.Context, worker *fieldwork.Worker) error
}
