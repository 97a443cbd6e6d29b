package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/roomserver/internal/login"
	"github.com/udisondev/roomserver/internal/messaging"
	"github.com/udisondev/roomserver/internal/protocol"
)

// ErrQueueFull is returned by Push when the request channel is saturated.
var ErrQueueFull = errors.New("task queue full")

// NoticeRecorder persists GM notices. Optional.
type NoticeRecorder interface {
	Record(ctx context.Context, userID, message string) error
}

// Config sizes the queue.
type Config struct {
	Workers       int
	QueueSize     int
	Timeout       time.Duration // per task
	NoticeSubject string
}

// Queue is the persistence collaborator of the packet processor.
type Queue struct {
	cfg      Config
	store    login.CredentialStore
	bus      messaging.Bus
	recorder NoticeRecorder

	requests  chan Task
	responses chan Task
}

// NewQueue creates a queue. recorder may be nil.
func NewQueue(cfg Config, store login.CredentialStore, bus messaging.Bus, recorder NoticeRecorder) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.NoticeSubject == "" {
		cfg.NoticeSubject = "roomserver.notice"
	}
	return &Queue{
		cfg:       cfg,
		store:     store,
		bus:       bus,
		recorder:  recorder,
		requests:  make(chan Task, cfg.QueueSize),
		responses: make(chan Task, cfg.QueueSize),
	}
}

// Push enqueues a request task without blocking.
func (q *Queue) Push(t Task) error {
	select {
	case q.requests <- t:
		return nil
	default:
		return fmt.Errorf("pushing %s: %w", t.Kind, ErrQueueFull)
	}
}

// TakeResponse returns the next completion, if any. Never blocks.
func (q *Queue) TakeResponse() (Task, bool) {
	select {
	case t := <-q.responses:
		return t, true
	default:
		return Task{}, false
	}
}

// Run subscribes to the notice subject and runs workers until ctx is cancelled.
func (q *Queue) Run(ctx context.Context) error {
	unsubscribe, err := q.bus.Subscribe(q.cfg.NoticeSubject, func(data []byte) {
		q.onNotice(ctx, data)
	})
	if err != nil {
		return fmt.Errorf("subscribing to notices: %w", err)
	}
	defer unsubscribe()

	g, gctx := errgroup.WithContext(ctx)
	for i := range q.cfg.Workers {
		g.Go(func() error {
			q.worker(gctx, i)
			return nil
		})
	}

	slog.Info("task workers started", "workers", q.cfg.Workers)
	return g.Wait()
}

func (q *Queue) worker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-q.requests:
			q.handle(ctx, t, id)
		}
	}
}

func (q *Queue) handle(ctx context.Context, t Task, workerID int) {
	tctx, cancel := context.WithTimeout(ctx, q.cfg.Timeout)
	defer cancel()

	switch t.Kind {
	case protocol.TaskRequestLogin:
		q.handleLogin(tctx, t)
	case protocol.TaskRequestNotice:
		q.handleNotice(tctx, t)
	default:
		slog.Warn("unknown task kind", "kind", t.Kind, "taskID", t.ID, "worker", workerID)
	}
}

func (q *Queue) handleLogin(ctx context.Context, t Task) {
	req, err := DecodeLoginRequest(t.Payload)
	if err != nil {
		slog.Error("decoding login task", "taskID", t.ID, "error", err)
		return
	}

	result := protocol.ResultNone
	if err := q.store.Authenticate(ctx, req.UserID, req.Password); err != nil {
		switch {
		case errors.Is(err, login.ErrInvalidPassword), errors.Is(err, login.ErrAccountNotFound):
			result = protocol.LoginUserInvalidPW
		default:
			slog.Error("credential store failure", "userID", req.UserID, "taskID", t.ID, "error", err)
			result = protocol.LoginStoreFailure
		}
	}

	q.complete(ctx, t.reply(protocol.TaskResponseLogin, EncodeLoginResult(LoginResult{
		UserID: req.UserID,
		Result: result,
	})))
}

func (q *Queue) handleNotice(ctx context.Context, t Task) {
	n, err := DecodeNotice(t.Payload)
	if err != nil {
		slog.Error("decoding notice task", "taskID", t.ID, "error", err)
		return
	}

	if q.recorder != nil {
		if err := q.recorder.Record(ctx, n.UserID, n.Message); err != nil {
			slog.Warn("recording notice", "userID", n.UserID, "error", err)
		}
	}

	if err := q.bus.Publish(q.cfg.NoticeSubject, t.Payload); err != nil {
		slog.Error("publishing notice", "taskID", t.ID, "error", err)
	}
}

// onNotice turns a bus message into a TaskResponseNotice completion.
func (q *Queue) onNotice(ctx context.Context, data []byte) {
	if _, err := DecodeNotice(data); err != nil {
		slog.Warn("malformed notice on bus", "error", err)
		return
	}
	q.complete(ctx, New(protocol.TaskResponseNotice, 0, data))
}

func (q *Queue) complete(ctx context.Context, t Task) {
	select {
	case q.responses <- t:
	case <-ctx.Done():
		slog.Warn("dropping task completion", "kind", t.Kind, "taskID", t.ID, "error", ctx.Err())
	}
}
