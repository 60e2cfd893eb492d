package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/repository"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
)

const intentTTL = time.Hour

// ErrIntentNotFound is returned when a payment intent has expired or never existed.
var ErrIntentNotFound = errors.New("payment intent not found")

// IntentStore holds mocked gateway intents until confirmation.
type IntentStore interface {
	Save(ctx context.Context, intent *model.PaymentIntent, ttl time.Duration) error
	Get(ctx context.Context, id string) (*model.PaymentIntent, error)
}

type redisIntentStore struct {
	client *redis.Client
}

func NewRedisIntentStore(client *redis.Client) IntentStore {
	return &redisIntentStore{client: client}
}

func (s *redisIntentStore) key(id string) string {
	return "payment_intent:" + id
}

func (s *redisIntentStore) Save(ctx context.Context, intent *model.PaymentIntent, ttl time.Duration) error {
	payload, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("failed to marshal payment intent: %w", err)
	}
	if err := s.client.Set(ctx, s.key(intent.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store payment intent: %w", err)
	}
	return nil
}

func (s *redisIntentStore) Get(ctx context.Context, id string) (*model.PaymentIntent, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrIntentNotFound
		}
		return nil, fmt.Errorf("failed to load payment intent: %w", err)
	}

	var intent model.PaymentIntent
	if err := json.Unmarshal(payload, &intent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment intent: %w", err)
	}
	return &intent, nil
}

type memoryIntentStore struct {
	cache *gocache.Cache
}

// NewMemoryIntentStore backs intents with an in-process cache. Used when no
// Redis instance is configured.
func NewMemoryIntentStore() IntentStore {
	return &memoryIntentStore{cache: gocache.New(intentTTL, 10*time.Minute)}
}

func (s *memoryIntentStore) Save(_ context.Context, intent *model.PaymentIntent, ttl time.Duration) error {
	s.cache.Set(intent.ID, intent, ttl)
	return nil
}

func (s *memoryIntentStore) Get(_ context.Context, id string) (*model.PaymentIntent, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrIntentNotFound
	}
	return v.(*model.PaymentIntent), nil
}

// Service implements the mocked payment flow. No gateway is involved; intents
// are random identifiers held in the intent store until confirmation.
type Service struct {
	appointmentRepo repository.AppointmentRepository
	serviceRepo     repository.ServiceRepository
	intents         IntentStore
}

func NewService(appointmentRepo repository.AppointmentRepository, serviceRepo repository.ServiceRepository, intents IntentStore) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		intents:         intents,
	}
}

func randomToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// CreateIntent mints a mock payment intent priced at the service's current price.
func (s *Service) CreateIntent(ctx context.Context, serviceID uuid.UUID) (*model.PaymentIntent, error) {
	svc, err := s.serviceRepo.Get(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, fmt.Errorf("failed to resolve service: %w", err)
	}

	intent := &model.PaymentIntent{
		ID:           "pi_" + randomToken(9),
		ClientSecret: "secret_" + randomToken(20),
		ServiceID:    svc.ID.String(),
		Amount:       svc.Price,
		Status:       "requires_payment_method",
	}

	if err := s.intents.Save(ctx, intent, intentTTL); err != nil {
		return nil, fmt.Errorf("failed to save payment intent: %w", err)
	}

	log.Debug().Str("intent_id", intent.ID).Msg("payment intent created")
	return intent, nil
}

// ConfirmPayment records the payment outcome on the appointment. Online
// payments are marked paid immediately; cash stays pending until the customer
// pays on site.
func (s *Service) ConfirmPayment(ctx context.Context, req *model.ConfirmPaymentRequest) (*model.Appointment, error) {
	aptID, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		return nil, apperrors.Validation("invalid appointment ID")
	}

	apt, err := s.appointmentRepo.Get(ctx, aptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if req.PaymentMethod == model.PaymentMethodOnline {
		now := time.Now()
		apt.PaymentMethod = model.PaymentMethodOnline
		apt.PaymentStatus = model.PaymentStatusPaid
		apt.PaidAt = &now
		if req.PaymentID != "" {
			apt.PaymentID = &req.PaymentID
		}
	} else {
		apt.PaymentMethod = model.PaymentMethodCash
		apt.PaymentStatus = model.PaymentStatusPending
	}

	if err := s.appointmentRepo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return apt, nil
}

// GetAppointmentPayment returns the payment sub-state of an appointment.
func (s *Service) GetAppointmentPayment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.appointmentRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return apt, nil
}
