package app

import (
	"context"
	"strings"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/clock"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

type TeamRepository interface {
	List(ctx context.Context) ([]domain.TeamMember, error)
	Create(ctx context.Context, member domain.TeamMember) error
	Update(ctx context.Context, member domain.TeamMember) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (domain.TeamMember, error)
}

type TeamService struct {
	repo  TeamRepository
	feed  ChangePublisher
	clock clock.Clock
}

func NewTeamService(repo TeamRepository, feed ChangePublisher, clk clock.Clock) *TeamService {
	return &TeamService{
		repo:  repo,
		feed:  feed,
		clock: clk,
	}
}

type TeamMemberInput struct {
	Name     string
	Role     string
	ImageURL string
	LinkedIn string
	Position int
}

func (in TeamMemberInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Role) == "" {
		return domain.ErrMissingField
	}
	return nil
}

func (s *TeamService) List(ctx context.Context) ([]domain.TeamMember, error) {
	return s.repo.List(ctx)
}

func (s *TeamService) Create(ctx context.Context, in TeamMemberInput) (domain.TeamMember, error) {
	if err := in.validate(); err != nil {
		return domain.TeamMember{}, err
	}
	member := domain.TeamMember{
		ID:        newID(),
		Name:      strings.TrimSpace(in.Name),
		Role:      strings.TrimSpace(in.Role),
		ImageURL:  in.ImageURL,
		LinkedIn:  in.LinkedIn,
		Position:  in.Position,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return domain.TeamMember{}, err
	}
	s.feed.Publish("team_members", "INSERT", member.ID)
	return member, nil
}

func (s *TeamService) Update(ctx context.Context, id string, in TeamMemberInput) (domain.TeamMember, error) {
	if id == "" {
		return domain.TeamMember{}, domain.ErrInvalidID
	}
	if err := in.validate(); err != nil {
		return domain.TeamMember{}, err
	}

	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.TeamMember{}, err
	}
	member.Name = strings.TrimSpace(in.Name)
	member.Role = strings.TrimSpace(in.Role)
	member.ImageURL = in.ImageURL
	member.LinkedIn = in.LinkedIn
	member.Position = in.Position

	if err := s.repo.Update(ctx, member); err != nil {
		return domain.TeamMember{}, err
	}
	s.feed.Publish("team_members", "UPDATE", member.ID)
	return member, nil
}

func (s *TeamService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.feed.Publish("team_members", "DELETE", id)
	return nil
}
