package middleware

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/telegram/render"
)

// Sender is the part of the Bot API the middlewares talk to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// userLimit tracks rate limit state for a single user
type userLimit struct {
	tokens        float64
	lastRefill    time.Time
	warningsSent  int
	lastWarningAt time.Time
	mu            sync.Mutex
}

// RateLimiterMiddleware implements token bucket rate limiting per user.
// The bucket holds burstSize tokens and refills at requestsPerMinute.
type RateLimiterMiddleware struct {
	limits          map[int64]*userLimit
	mu              sync.Mutex
	maxTokens       float64
	refillRate      float64 // tokens per second
	warningInterval time.Duration
	idleTTL         time.Duration
	now             func() time.Time
	logger          *zap.Logger
	api             Sender
	stop            chan struct{}
	stopOnce        sync.Once
}

func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	logger *zap.Logger,
	api Sender,
) *RateLimiterMiddleware {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 20
	}
	if burstSize <= 0 {
		burstSize = requestsPerMinute
	}

	rl := &RateLimiterMiddleware{
		limits:          make(map[int64]*userLimit),
		maxTokens:       float64(burstSize),
		refillRate:      float64(requestsPerMinute) / 60.0,
		warningInterval: 30 * time.Second,
		idleTTL:         time.Hour,
		now:             time.Now,
		logger:          logger,
		api:             api,
		stop:            make(chan struct{}),
	}

	go rl.cleanupLoop(10 * time.Minute)

	return rl
}

// Handle drops the update when its sender is over the limit.
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID, ok := updateOrigin(update)
	if !ok {
		next(update)
		return
	}

	if !rl.allowRequest(userID, chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

// Close stops the cleanup goroutine.
func (rl *RateLimiterMiddleware) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiterMiddleware) allowRequest(userID, chatID int64) bool {
	now := rl.now()

	rl.mu.Lock()
	limit, exists := rl.limits[userID]
	if !exists {
		limit = &userLimit{
			tokens:     rl.maxTokens,
			lastRefill: now,
		}
		rl.limits[userID] = limit
	}
	rl.mu.Unlock()

	allowed, warning := rl.take(limit, now)
	if warning > 0 {
		rl.sendWarning(chatID, warning)
	}
	return allowed
}

// take spends a token from the bucket. When the request is denied and a
// warning is due, it returns the warning's escalation level.
func (rl *RateLimiterMiddleware) take(limit *userLimit, now time.Time) (allowed bool, warning int) {
	limit.mu.Lock()
	defer limit.mu.Unlock()

	elapsed := now.Sub(limit.lastRefill).Seconds()
	if elapsed > 0 {
		limit.tokens += elapsed * rl.refillRate
		if limit.tokens > rl.maxTokens {
			limit.tokens = rl.maxTokens
		}
		limit.lastRefill = now
	}

	if limit.tokens >= 1.0 {
		limit.tokens -= 1.0
		limit.warningsSent = 0
		return true, 0
	}

	if limit.lastWarningAt.IsZero() || now.Sub(limit.lastWarningAt) > rl.warningInterval {
		limit.warningsSent++
		limit.lastWarningAt = now
		return false, limit.warningsSent
	}

	return false, 0
}

func (rl *RateLimiterMiddleware) sendWarning(chatID int64, count int) {
	msg := tgbotapi.NewMessage(chatID, render.RateLimitWarning(count))
	if _, err := rl.api.Send(msg); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

func (rl *RateLimiterMiddleware) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

// cleanup removes users idle for longer than idleTTL.
func (rl *RateLimiterMiddleware) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for userID, limit := range rl.limits {
		limit.mu.Lock()
		idle := now.Sub(limit.lastRefill) > rl.idleTTL
		limit.mu.Unlock()

		if idle {
			delete(rl.limits, userID)
			rl.logger.Debug("cleaned up inactive user from rate limiter",
				zap.Int64("user_id", userID),
			)
		}
	}
}

// updateOrigin extracts user and chat ids from messages and callbacks.
func updateOrigin(update tgbotapi.Update) (userID, chatID int64, ok bool) {
	switch {
	case update.Message != nil && update.Message.From != nil && update.Message.Chat != nil:
		return update.Message.From.ID, update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil &&
		update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.From.ID, update.CallbackQuery.Message.Chat.ID, true
	}
	return 0, 0, false
}
