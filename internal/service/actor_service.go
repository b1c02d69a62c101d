package service

import (
	"context"
	"fmt"
	"time"

	"github.com/healthnet/scheduling/internal/domain"
	"github.com/healthnet/scheduling/internal/domain/actor"
	"github.com/healthnet/scheduling/internal/domain/person"
)

// ActorService resolves authenticated claims into the role-typed actor the
// visibility policy dispatches on.
type ActorService struct {
	people         person.Registry
	nurseLookahead time.Duration
}

func NewActorService(people person.Registry, nurseLookahead time.Duration) *ActorService {
	return &ActorService{people: people, nurseLookahead: nurseLookahead}
}

func (s *ActorService) Resolve(ctx context.Context, claims *domain.Claims) (actor.Actor, error) {
	switch claims.Role {
	case domain.RolePatient:
		p, err := s.people.GetPatient(ctx, claims.PersonID)
		if err != nil {
			return nil, err
		}
		return actor.Patient{Record: p}, nil
	case domain.RoleDoctor:
		d, err := s.people.GetDoctor(ctx, claims.PersonID)
		if err != nil {
			return nil, err
		}
		return actor.Doctor{Record: d}, nil
	case domain.RoleNurse:
		n, err := s.people.GetNurse(ctx, claims.PersonID)
		if err != nil {
			return nil, err
		}
		return actor.Nurse{Record: n, Lookahead: s.nurseLookahead}, nil
	case domain.RoleAdmin:
		a, err := s.people.GetAdministrator(ctx, claims.PersonID)
		if err != nil {
			return nil, err
		}
		return actor.Administrator{Record: a}, nil
	default:
		return nil, fmt.Errorf("unknown role %q", claims.Role)
	}
}
