// internal/app/status_watcher.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/notification"
	domainTelegram "homework_status_bot/internal/domain/telegram"
	"homework_status_bot/internal/infra/practicum"
	infraTelegram "homework_status_bot/internal/infra/telegram"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const failurePrefix = "Сбой в работе программы: "

// Outcome describes how a poll cycle ended.
type Outcome string

const (
	OutcomeNoUpdates         Outcome = "NO_UPDATES"
	OutcomeUnchanged         Outcome = "UNCHANGED"
	OutcomeNotified          Outcome = "NOTIFIED"
	OutcomeFailureReported   Outcome = "FAILURE_REPORTED"
	OutcomeFailureSuppressed Outcome = "FAILURE_SUPPRESSED"
)

// CycleResult is the result of one poll cycle. Failure is set only for the
// two failure outcomes.
type CycleResult struct {
	ID      string
	Outcome Outcome
	Message string // status text or failure text, empty for OutcomeNoUpdates
	Failure *LoopFailure
}

// LoopFailure wraps the operational errors a cycle reports to the chat
// instead of stopping: fetch, decode, response shape, record fields,
// unknown status and a failed status notification.
type LoopFailure struct {
	Err error
}

func (e *LoopFailure) Error() string { return failurePrefix + e.Err.Error() }

func (e *LoopFailure) Unwrap() error { return e.Err }

// StatusFetcher returns the decoded homework statuses response.
type StatusFetcher interface {
	GetStatuses(ctx context.Context, fromDate int64) (interface{}, error)
}

// StatusWatcher polls homework statuses and reports changes to the chat.
// It is not safe for concurrent use; the scheduler never overlaps cycles.
type StatusWatcher struct {
	fetcher        StatusFetcher
	telegramClient domainTelegram.Client
	journal        notification.Repository
	logger         *logrus.Entry
	advanceCursor  bool
	now            func() time.Time

	cursor      int64
	lastStatus  string
	lastFailure string
}

func NewStatusWatcher(
	fetcher StatusFetcher,
	tc domainTelegram.Client,
	journal notification.Repository, // may be nil
	logger *logrus.Entry,
	advanceCursor bool,
) *StatusWatcher {
	if journal == nil {
		journal = nopJournal{}
	}
	w := &StatusWatcher{
		fetcher:        fetcher,
		telegramClient: tc,
		journal:        journal,
		logger:         logger,
		advanceCursor:  advanceCursor,
		now:            time.Now,
	}
	w.cursor = w.now().Unix()
	return w
}

// Cursor returns the from_date used for the next request.
func (w *StatusWatcher) Cursor() int64 { return w.cursor }

// RunCycle performs a single fetch/validate/extract/compare/notify pass.
// Operational failures are reported to the chat and do not produce an error.
// A non-nil error is fatal: the failure report itself could not be sent,
// the context was cancelled, or an error of an unknown kind surfaced.
func (w *StatusWatcher) RunCycle(ctx context.Context) (CycleResult, error) {
	res := CycleResult{ID: uuid.NewString()}
	cycleLogger := w.logger.WithFields(logrus.Fields{
		"cycle_id":  res.ID,
		"from_date": w.cursor,
	})

	err := w.check(ctx, cycleLogger, &res)
	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		cycleLogger.Info("Poll cycle cancelled")
		return res, ctxErr
	}

	failure, ok := asLoopFailure(err)
	if !ok {
		cycleLogger.WithError(err).Error("Unexpected error in poll cycle")
		return res, fmt.Errorf("poll cycle %s: %w", res.ID, err)
	}
	return w.reportFailure(ctx, cycleLogger, res, failure)
}

func (w *StatusWatcher) check(ctx context.Context, log *logrus.Entry, res *CycleResult) error {
	started := w.now()

	resp, err := w.fetcher.GetStatuses(ctx, w.cursor)
	if err != nil {
		return err
	}

	homeworks, err := homework.ValidateResponse(resp)
	if err != nil {
		return err
	}
	w.moveCursor(log, resp, started)

	if len(homeworks) == 0 {
		log.Info("No new status")
		res.Outcome = OutcomeNoUpdates
		return nil
	}
	if len(homeworks) > 1 {
		log.WithField("ignored", len(homeworks)-1).Warn("Several homeworks in response, only the first one is reported")
	}

	message, err := homework.ParseStatus(homeworks[0])
	if err != nil {
		return err
	}
	res.Message = message

	if message == w.lastStatus {
		log.Info(message)
		res.Outcome = OutcomeUnchanged
		return nil
	}

	w.lastStatus = message
	if err := w.send(ctx, log, res.ID, notification.KindStatus, message); err != nil {
		return err
	}
	log.WithField("message", message).Info("Status change sent")
	res.Outcome = OutcomeNotified
	return nil
}

func (w *StatusWatcher) moveCursor(log *logrus.Entry, resp interface{}, started time.Time) {
	if !w.advanceCursor {
		return
	}
	next, ok := homework.CurrentDate(resp)
	if !ok {
		next = started.Unix()
	}
	if next > w.cursor {
		log.WithField("next_from_date", next).Debug("Advancing cursor")
		w.cursor = next
	}
}

func (w *StatusWatcher) reportFailure(ctx context.Context, log *logrus.Entry, res CycleResult, failure *LoopFailure) (CycleResult, error) {
	message := failure.Error()
	log.WithError(failure.Err).Error(message)

	res.Failure = failure
	res.Message = message

	if message == w.lastFailure {
		log.Debug("Same failure already reported, notification suppressed")
		res.Outcome = OutcomeFailureSuppressed
		return res, nil
	}

	w.lastFailure = message
	if err := w.send(ctx, log, res.ID, notification.KindFailure, message); err != nil {
		log.WithError(err).Error("Could not report failure to the chat")
		return res, err
	}
	res.Outcome = OutcomeFailureReported
	return res, nil
}

func (w *StatusWatcher) send(ctx context.Context, log *logrus.Entry, cycleID string, kind notification.Kind, text string) error {
	sendErr := w.telegramClient.SendMessage(text)

	rec := &notification.Record{
		CycleID:   cycleID,
		Kind:      kind,
		Text:      text,
		Delivered: sendErr == nil,
	}
	if sendErr != nil {
		rec.DeliveryError = sql.NullString{String: sendErr.Error(), Valid: true}
	}
	if err := w.journal.Save(ctx, rec); err != nil {
		log.WithError(err).Warn("Failed to record notification in journal")
	}
	return sendErr
}

func asLoopFailure(err error) (*LoopFailure, bool) {
	var (
		fetchErr  *practicum.FetchError
		decodeErr *practicum.DecodeError
		shapeErr  *homework.ShapeError
		fieldErr  *homework.FieldError
		statusErr *homework.StatusError
		notifyErr *infraTelegram.NotifyError
	)
	switch {
	case errors.As(err, &fetchErr),
		errors.As(err, &decodeErr),
		errors.As(err, &shapeErr),
		errors.As(err, &fieldErr),
		errors.As(err, &statusErr),
		errors.As(err, &notifyErr):
		return &LoopFailure{Err: err}, true
	}
	return nil, false
}

type nopJournal struct{}

func (nopJournal) Save(context.Context, *notification.Record) error { return nil }
