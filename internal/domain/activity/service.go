package activity

import (
	"context"

	"signupservice/internal/domain"
)

type Service interface {
	List(ctx context.Context) ([]Activity, error)
	Signup(ctx context.Context, name, email string) (Activity, error)
	Unregister(ctx context.Context, name, email string) (Activity, error)
}

type service struct {
	uow    domain.UnitOfWork
	repo   Repository
	events domain.EventBus
}

func NewService(uow domain.UnitOfWork, repo Repository, events domain.EventBus) Service {
	return &service{
		uow:    uow,
		repo:   repo,
		events: events,
	}
}

func (s *service) List(ctx context.Context) ([]Activity, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Activity, 0, len(list))
	for _, a := range list {
		out = append(out, a.Clone())
	}
	return out, nil
}

func (s *service) Signup(ctx context.Context, name, email string) (Activity, error) {
	var res Activity

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		updated, err := s.repo.AddParticipant(ctx, name, email)
		if err != nil {
			return err
		}
		res = updated
		return nil
	})
	if err != nil {
		return Activity{}, err
	}

	s.publish(ctx, domain.EventActivitySignup, res, email)
	return res, nil
}

func (s *service) Unregister(ctx context.Context, name, email string) (Activity, error) {
	var res Activity

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		updated, err := s.repo.RemoveParticipant(ctx, name, email)
		if err != nil {
			return err
		}
		res = updated
		return nil
	})
	if err != nil {
		return Activity{}, err
	}

	s.publish(ctx, domain.EventActivityUnregister, res, email)
	return res, nil
}

// publish runs after commit so sinks never observe a rolled back change.
func (s *service) publish(ctx context.Context, eventType string, a Activity, email string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, domain.Event{
		Type: eventType,
		Payload: map[string]any{
			"activity":         a.Name,
			"email":            email,
			"participants":     len(a.Participants),
			"max_participants": a.MaxParticipants,
		},
	})
}
