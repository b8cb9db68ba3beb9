package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/facilityops/access-system/internal/api/metrics"
	"github.com/facilityops/access-system/internal/core/domain"
	"github.com/facilityops/access-system/internal/core/ports"
)

// DedupChecker abstracts the notification idempotency store (Redis). A
// duplicate is an intent with the same recipient, type, and correlation id
// already submitted within the dedup window.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, recipientUID, intentType, correlationID string) (bool, error)
	Mark(ctx context.Context, recipientUID, intentType, correlationID string) error
}

type dispatchService struct {
	profiles ports.ProfileRepository
	gateway  ports.PushGateway
	dedup    DedupChecker
	limiter  *rate.Limiter
	log      zerolog.Logger
}

// NewDispatchService returns a NotificationDispatcher. batchesPerSecond
// paces gateway calls; <= 0 disables pacing. The engine is stateless and
// holds no queue between invocations.
func NewDispatchService(
	profiles ports.ProfileRepository,
	gateway ports.PushGateway,
	dedup DedupChecker,
	batchesPerSecond float64,
	log zerolog.Logger,
) ports.NotificationDispatcher {
	var limiter *rate.Limiter
	if batchesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(batchesPerSecond), 1)
	}
	return &dispatchService{
		profiles: profiles,
		gateway:  gateway,
		dedup:    dedup,
		limiter:  limiter,
		log:      log,
	}
}

// outbound pairs a resolved message with the intent that produced it, so
// the dedup key can be marked after submission.
type outbound struct {
	intent domain.NotificationIntent
	msg    ports.PushMessage
}

// Dispatch resolves each intent's delivery address, drops unresolvable or
// duplicate intents, and submits the rest to the gateway in sequential
// batches of at most ports.PushGatewayBatchLimit. The contract is
// best-effort, fire-and-forget: per-recipient failures are counted and
// logged but never surfaced. Returns the number of intents attempted.
func (s *dispatchService) Dispatch(ctx context.Context, intents []domain.NotificationIntent) int {
	if len(intents) == 0 {
		return 0
	}
	start := time.Now()
	defer func() { metrics.DispatchCycleDuration.Observe(time.Since(start).Seconds()) }()

	resolved := make([]outbound, 0, len(intents))
	for _, intent := range intents {
		metrics.NotificationIntentsTotal.WithLabelValues(intent.Type()).Inc()

		// Dedup check failure is treated as a miss: better a repeat push
		// than a lost one.
		isDup, err := s.dedup.IsDuplicate(ctx, intent.RecipientUID, intent.Type(), intent.CorrelationID)
		if err != nil {
			s.log.Warn().Err(err).Str("recipient", intent.RecipientUID).Msg("dedup check failed, sending anyway")
		} else if isDup {
			metrics.NotificationsDroppedTotal.WithLabelValues("duplicate").Inc()
			s.log.Debug().Str("recipient", intent.RecipientUID).Str("type", intent.Type()).Msg("duplicate intent skipped")
			continue
		}

		// Any failure resolving a single recipient drops that intent only,
		// never the cycle.
		profile, err := s.profiles.Get(ctx, intent.RecipientUID)
		if err != nil {
			metrics.NotificationsDroppedTotal.WithLabelValues("resolve_failed").Inc()
			s.log.Debug().Err(err).Str("recipient", intent.RecipientUID).Msg("recipient not resolvable, intent dropped")
			continue
		}
		if profile.FCMToken == "" {
			// Absence of a registered device is expected steady state.
			metrics.NotificationsDroppedTotal.WithLabelValues("no_device").Inc()
			continue
		}

		resolved = append(resolved, outbound{
			intent: intent,
			msg: ports.PushMessage{
				Token: profile.FCMToken,
				Title: intent.Title,
				Body:  intent.Body,
				Data:  intent.Data,
			},
		})
	}

	attempted := 0
	for len(resolved) > 0 {
		n := len(resolved)
		if n > ports.PushGatewayBatchLimit {
			n = ports.PushGatewayBatchLimit
		}
		chunk := resolved[:n]
		resolved = resolved[n:]

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				s.log.Warn().Err(err).Int("remaining", n+len(resolved)).Msg("dispatch cycle interrupted")
				return attempted
			}
		}

		s.sendChunk(ctx, chunk)
		attempted += n
	}

	s.log.Info().Int("intents", len(intents)).Int("attempted", attempted).Msg("dispatch cycle complete")
	return attempted
}

func (s *dispatchService) sendChunk(ctx context.Context, chunk []outbound) {
	msgs := make([]ports.PushMessage, len(chunk))
	for i, o := range chunk {
		msgs[i] = o.msg
	}

	metrics.PushBatchesTotal.Inc()
	results, err := s.gateway.SendBatch(ctx, msgs)
	if err != nil {
		metrics.PushSendFailuresTotal.WithLabelValues("batch").Inc()
		s.log.Warn().Err(err).Int("size", len(chunk)).Msg("gateway batch call failed")
		return
	}

	for i, o := range chunk {
		if i < len(results) && !results[i].Delivered {
			metrics.PushSendFailuresTotal.WithLabelValues("message").Inc()
			s.log.Debug().
				Str("recipient", o.intent.RecipientUID).
				Str("reason", results[i].Error).
				Msg("per-message delivery failure, not retried")
		}
		if err := s.dedup.Mark(ctx, o.intent.RecipientUID, o.intent.Type(), o.intent.CorrelationID); err != nil {
			s.log.Warn().Err(err).Str("recipient", o.intent.RecipientUID).Msg("failed to set dedup key")
		}
	}
}
