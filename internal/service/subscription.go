package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gridshare/landing/internal/mailer"
	"github.com/gridshare/landing/internal/model"
	"github.com/gridshare/landing/internal/repository"
	"github.com/gridshare/landing/internal/validation"
)

var (
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrTokenMismatch = errors.New("confirmation token does not match")
)

// Dispatcher runs work detached from the request, with failures logged only.
type Dispatcher interface {
	Go(name string, fn func() error)
}

type SubscriptionService struct {
	repo       repository.SubscriptionRepository
	mail       mailer.Mailer
	dispatcher Dispatcher
}

func NewSubscriptionService(repo repository.SubscriptionRepository, mail mailer.Mailer, dispatcher Dispatcher) *SubscriptionService {
	return &SubscriptionService{
		repo:       repo,
		mail:       mail,
		dispatcher: dispatcher,
	}
}

// NormalizeEmail maps an email to its storage key: trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type SubscribeResult struct {
	Email            string
	AlreadyConfirmed bool
}

// Subscribe creates or refreshes a pending subscription and dispatches the
// confirmation email in the background. A repeat subscribe while pending
// reuses the existing token; an already confirmed email short-circuits
// without sending anything.
//
// Two simultaneous subscribes for the same new email race on check-then-insert
// and one insert can fail on the primary key. That duplicate write is accepted
// and surfaces as a storage error, it is not coordinated away.
func (s *SubscriptionService) Subscribe(email string) (*SubscribeResult, error) {
	email = NormalizeEmail(email)
	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, err)
	}

	var token string
	now := time.Now()

	existing, err := s.repo.ByEmail(email)
	switch {
	case err == nil && existing.Confirmed:
		return &SubscribeResult{Email: email, AlreadyConfirmed: true}, nil

	case err == nil:
		// Pending: keep the issued token, refresh the update timestamp. Rows
		// repaired from a database that predates the token columns are
		// unconfirmed without a token; mint one for them here.
		if existing.HasToken() {
			token = *existing.ConfirmationToken
			err = s.repo.Touch(email, now)
		} else {
			token = uuid.New().String()
			err = s.repo.SetToken(email, token, now)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to refresh subscription: %w", err)
		}

	case errors.Is(err, repository.ErrSubscriptionNotFound):
		token = uuid.New().String()
		sub := &model.Subscription{
			Email:             email,
			Confirmed:         false,
			ConfirmationToken: &token,
			TokenCreatedAt:    &now,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		err = s.repo.Create(sub)
		if err != nil {
			return nil, fmt.Errorf("failed to create subscription: %w", err)
		}

	default:
		return nil, fmt.Errorf("failed to look up subscription: %w", err)
	}

	// Fire and forget: the response never waits on the provider and a failed
	// send is logged by the dispatcher, not surfaced to the caller.
	sendToken := token
	s.dispatcher.Go("confirmation-email", func() error {
		return s.mail.SendConfirmation(email, sendToken)
	})

	return &SubscribeResult{Email: email}, nil
}

type ConfirmOutcome int

const (
	Confirmed ConfirmOutcome = iota
	AlreadyConfirmed
)

// Confirm transitions a pending subscription to its terminal confirmed state
// and clears the token. Confirming twice is an idempotent success; a token
// mismatch leaves the record unchanged.
func (s *SubscriptionService) Confirm(token, email string) (ConfirmOutcome, error) {
	email = NormalizeEmail(email)

	sub, err := s.repo.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to look up subscription: %w", err)
	}

	if sub.Confirmed {
		return AlreadyConfirmed, nil
	}

	if !sub.TokenMatches(token) {
		return 0, ErrTokenMismatch
	}

	err = s.repo.Confirm(email, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to confirm subscription: %w", err)
	}

	return Confirmed, nil
}

type CheckResult struct {
	Exists    bool
	Confirmed bool
}

// Check is a read-only probe of an email's subscription state.
func (s *SubscriptionService) Check(email string) (*CheckResult, error) {
	email = NormalizeEmail(email)
	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, err)
	}

	sub, err := s.repo.ByEmail(email)
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		return &CheckResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up subscription: %w", err)
	}

	return &CheckResult{Exists: true, Confirmed: sub.Confirmed}, nil
}
