package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vilafit/coachplan-backend/internal/apperr"
	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/repos"
	"github.com/vilafit/coachplan-backend/internal/schedule"
)

// PlannerService keeps one open planner session per assignment. The planner
// itself is single-threaded editing state; the registry only guards the map.
// Every entry point takes the authenticated coach and rejects assignments
// owned by anyone else.
type PlannerService interface {
	Open(ctx context.Context, coachID, assignmentID uuid.UUID) (*schedule.Planner, error)
	Save(ctx context.Context, coachID, assignmentID uuid.UUID) error
	Close(coachID, assignmentID uuid.UUID)
}

type plannerSession struct {
	planner *schedule.Planner
	coachID uuid.UUID
}

type plannerService struct {
	db          *gorm.DB
	log         *logger.Logger
	assignments repos.AssignmentRepo
	plans       repos.PlanRepo

	mu       sync.Mutex
	sessions map[uuid.UUID]*plannerSession
}

func NewPlannerService(db *gorm.DB, log *logger.Logger, assignments repos.AssignmentRepo, plans repos.PlanRepo) PlannerService {
	serviceLog := log.With("service", "PlannerService")
	return &plannerService{
		db:          db,
		log:         serviceLog,
		assignments: assignments,
		plans:       plans,
		sessions:    map[uuid.UUID]*plannerSession{},
	}
}

// Open loads the assignment's stored schedule, sanitizes it and starts a
// session over it. Reopening an already open assignment returns the live
// session unchanged. A coach other than the assignment's owner is refused.
func (ps *plannerService) Open(ctx context.Context, coachID, assignmentID uuid.UUID) (*schedule.Planner, error) {
	ps.mu.Lock()
	if existing, ok := ps.sessions[assignmentID]; ok {
		ps.mu.Unlock()
		if existing.coachID != coachID {
			return nil, fmt.Errorf("assignment %s: %w", assignmentID, apperr.ErrForbidden)
		}
		return existing.planner, nil
	}
	ps.mu.Unlock()

	assignment, err := ps.assignments.GetByID(ctx, nil, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load assignment: %w", err)
	}
	if assignment == nil {
		return nil, fmt.Errorf("assignment %s: %w", assignmentID, apperr.ErrNotFound)
	}
	if assignment.CoachID != coachID {
		ps.log.Warn("Refusing planner session for foreign assignment", "assignment_id", assignmentID, "coach_id", coachID)
		return nil, fmt.Errorf("assignment %s: %w", assignmentID, apperr.ErrForbidden)
	}

	limits := schedule.PlanLimits{}
	plan, err := ps.plans.GetByCoachID(ctx, nil, assignment.CoachID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load plan limits: %w", err)
	}
	if plan != nil {
		limits.WeeksLimit = plan.WeeksLimit
		limits.ActivitiesLimit = plan.ActivitiesLimit
	}

	decoded, err := schedule.DecodeSchedule(assignment.Schedule)
	if err != nil {
		return nil, fmt.Errorf("Failed to decode stored schedule: %w", err)
	}

	planner := schedule.NewPlanner(decoded, schedule.Category(assignment.Category), assignment.Periods, limits, ps.log)

	ps.mu.Lock()
	defer ps.mu.Unlock()
	if existing, ok := ps.sessions[assignmentID]; ok {
		if existing.coachID != coachID {
			return nil, fmt.Errorf("assignment %s: %w", assignmentID, apperr.ErrForbidden)
		}
		return existing.planner, nil
	}
	ps.sessions[assignmentID] = &plannerSession{planner: planner, coachID: coachID}
	return planner, nil
}

func (ps *plannerService) get(coachID, assignmentID uuid.UUID) (*schedule.Planner, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	session, ok := ps.sessions[assignmentID]
	if !ok {
		return nil, fmt.Errorf("planner session %s: %w", assignmentID, apperr.ErrNotFound)
	}
	if session.coachID != coachID {
		return nil, fmt.Errorf("assignment %s: %w", assignmentID, apperr.ErrForbidden)
	}
	return session.planner, nil
}

// Save writes the session's schedule back onto the assignment row.
func (ps *plannerService) Save(ctx context.Context, coachID, assignmentID uuid.UUID) error {
	planner, err := ps.get(coachID, assignmentID)
	if err != nil {
		return err
	}
	raw, err := schedule.EncodeSchedule(planner.Schedule())
	if err != nil {
		return fmt.Errorf("Failed to encode schedule: %w", err)
	}
	if err := ps.assignments.UpdateSchedule(ctx, nil, assignmentID, datatypes.JSON(raw)); err != nil {
		return fmt.Errorf("Failed to persist schedule: %w", err)
	}
	return nil
}

// Close drops the in-memory session; unsaved edits are discarded. Closing a
// foreign or absent session is a no-op.
func (ps *plannerService) Close(coachID, assignmentID uuid.UUID) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	session, ok := ps.sessions[assignmentID]
	if !ok || session.coachID != coachID {
		return
	}
	delete(ps.sessions, assignmentID)
}
