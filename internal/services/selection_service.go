package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/rangepick/internal/calendar"
	"github.com/terraincognita07/rangepick/internal/models"
	"github.com/terraincognita07/rangepick/internal/security"
	"github.com/terraincognita07/rangepick/internal/selection"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionLoadFailed   = errors.New("load session failed")
	ErrSessionCreateFailed = errors.New("create session failed")
	ErrSessionSaveFailed   = errors.New("save session failed")
	ErrSessionCorrupt      = errors.New("session state corrupt")
	ErrRangesLoadFailed    = errors.New("load ranges failed")
	ErrRangesClearFailed   = errors.New("clear ranges failed")
	ErrDateOutOfRange      = calendar.ErrDateOutOfRange
)

type SessionRepository interface {
	Create(session *models.Session) error
	FindByPublicID(publicID string) (models.Session, bool, error)
	SaveWithRange(session *models.Session, committed *models.CommittedRange) error
	DeleteIdleSince(cutoff time.Time) (int64, error)
}

type RangeRepository interface {
	ListBySession(sessionID uint) ([]models.CommittedRange, error)
	DeleteBySession(sessionID uint) error
}

// SessionSnapshot is the read-only view of a session handed to callers.
type SessionSnapshot struct {
	SessionID  string           `json:"session_id"`
	State      selection.State  `json:"state"`
	Selected   []selection.Date `json:"selected"`
	EventCount int              `json:"event_count"`
}

type SelectionService struct {
	sessions SessionRepository
	ranges   RangeRepository
	config   calendar.Config
	locks    *keyedMutex
	newID    func() (string, error)
}

func NewSelectionService(sessions SessionRepository, ranges RangeRepository, config calendar.Config) *SelectionService {
	return &SelectionService{
		sessions: sessions,
		ranges:   ranges,
		config:   config,
		locks:    newKeyedMutex(),
		newID:    security.NewSessionID,
	}
}

func (service *SelectionService) Config() calendar.Config {
	return service.config
}

func (service *SelectionService) CreateSession() (models.Session, error) {
	publicID, err := service.newID()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrSessionCreateFailed, err)
	}

	session := models.Session{PublicID: publicID, SelectedDays: []string{}}
	if err := service.sessions.Create(&session); err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrSessionCreateFailed, err)
	}
	return session, nil
}

// Apply feeds one host event through the session's controller. Activations
// and deactivations are persisted; a committed range is stored alongside.
func (service *SelectionService) Apply(publicID string, event selection.Event) (selection.Instruction, error) {
	if event.Kind != selection.EventDisplaying && !service.config.Contains(event.Date) {
		return selection.Instruction{}, ErrDateOutOfRange
	}

	unlock := service.locks.Lock(publicID)
	defer unlock()

	session, err := service.loadSession(publicID)
	if err != nil {
		return selection.Instruction{}, err
	}
	controller, err := restoreController(session)
	if err != nil {
		return selection.Instruction{}, err
	}

	instruction := controller.Handle(event)
	if event.Kind == selection.EventDisplaying {
		return instruction, nil
	}

	storeController(&session, controller)
	session.EventCount++

	var committed *models.CommittedRange
	if instruction.Committed != nil {
		committed = &models.CommittedRange{
			StartDay: instruction.Committed.Start.String(),
			EndDay:   instruction.Committed.End.String(),
		}
	}
	if err := service.sessions.SaveWithRange(&session, committed); err != nil {
		return selection.Instruction{}, fmt.Errorf("%w: %v", ErrSessionSaveFailed, err)
	}
	return instruction, nil
}

func (service *SelectionService) Snapshot(publicID string) (SessionSnapshot, error) {
	session, err := service.loadSession(publicID)
	if err != nil {
		return SessionSnapshot{}, err
	}
	controller, err := restoreController(session)
	if err != nil {
		return SessionSnapshot{}, err
	}
	return SessionSnapshot{
		SessionID:  session.PublicID,
		State:      controller.Snapshot(),
		Selected:   controller.Selected().Sorted(),
		EventCount: session.EventCount,
	}, nil
}

// Ranges returns every range the session committed, oldest first.
func (service *SelectionService) Ranges(publicID string) ([]selection.Range, error) {
	session, err := service.loadSession(publicID)
	if err != nil {
		return nil, err
	}

	rows, err := service.ranges.ListBySession(session.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRangesLoadFailed, err)
	}

	ranges := make([]selection.Range, 0, len(rows))
	for _, row := range rows {
		start, startErr := selection.ParseDate(row.StartDay)
		end, endErr := selection.ParseDate(row.EndDay)
		if startErr != nil || endErr != nil {
			return nil, fmt.Errorf("%w: range %d", ErrSessionCorrupt, row.ID)
		}
		ranges = append(ranges, selection.Range{Start: start, End: end})
	}
	return ranges, nil
}

// ClearRanges forgets the committed history of a session. The current
// gesture and selected days are left alone.
func (service *SelectionService) ClearRanges(publicID string) error {
	unlock := service.locks.Lock(publicID)
	defer unlock()

	session, err := service.loadSession(publicID)
	if err != nil {
		return err
	}
	if err := service.ranges.DeleteBySession(session.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrRangesClearFailed, err)
	}
	return nil
}

func (service *SelectionService) Month(publicID string, month selection.Date) (calendar.Month, error) {
	session, err := service.loadSession(publicID)
	if err != nil {
		return calendar.Month{}, err
	}
	controller, err := restoreController(session)
	if err != nil {
		return calendar.Month{}, err
	}
	return calendar.BuildMonth(service.config, month, controller.Selected())
}

func (service *SelectionService) PurgeIdleSessions(maxIdle time.Duration, now time.Time) (int64, error) {
	if maxIdle <= 0 {
		return 0, fmt.Errorf("max idle must be positive, got %s", maxIdle)
	}
	return service.sessions.DeleteIdleSince(now.Add(-maxIdle))
}

func (service *SelectionService) loadSession(publicID string) (models.Session, error) {
	trimmed := strings.TrimSpace(publicID)
	if trimmed == "" {
		return models.Session{}, ErrSessionNotFound
	}

	session, found, err := service.sessions.FindByPublicID(trimmed)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrSessionLoadFailed, err)
	}
	if !found {
		return models.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func restoreController(session models.Session) (*selection.Controller, error) {
	state := selection.State{}
	if session.PendingStart != nil {
		start, err := selection.ParseDate(*session.PendingStart)
		if err != nil {
			return nil, fmt.Errorf("%w: pending start %q", ErrSessionCorrupt, *session.PendingStart)
		}
		state.Start = &start
	}

	selected := selection.NewSet()
	for _, raw := range session.SelectedDays {
		day, err := selection.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: selected day %q", ErrSessionCorrupt, raw)
		}
		selected.Add(day)
	}
	return selection.Restore(state, selected), nil
}

func storeController(session *models.Session, controller *selection.Controller) {
	state := controller.Snapshot()
	session.PendingStart = nil
	if state.Start != nil {
		start := state.Start.String()
		session.PendingStart = &start
	}

	days := controller.Selected().Sorted()
	session.SelectedDays = make([]string, 0, len(days))
	for _, day := range days {
		session.SelectedDays = append(session.SelectedDays, day.String())
	}
}
