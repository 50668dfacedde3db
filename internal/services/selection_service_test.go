package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/terraincognita07/rangepick/internal/calendar"
	"github.com/terraincognita07/rangepick/internal/models"
	"github.com/terraincognita07/rangepick/internal/selection"
)

type sessionRepositoryStub struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	ranges   []models.CommittedRange
	nextID   uint
	findErr  error
	saveErr  error
	cutoff   time.Time
}

func newSessionRepositoryStub() *sessionRepositoryStub {
	return &sessionRepositoryStub{sessions: make(map[string]models.Session), nextID: 1}
}

func (stub *sessionRepositoryStub) Create(session *models.Session) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	session.ID = stub.nextID
	stub.nextID++
	stub.sessions[session.PublicID] = *session
	return nil
}

func (stub *sessionRepositoryStub) FindByPublicID(publicID string) (models.Session, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.findErr != nil {
		return models.Session{}, false, stub.findErr
	}
	session, ok := stub.sessions[publicID]
	if ok {
		session.SelectedDays = append([]string(nil), session.SelectedDays...)
	}
	return session, ok, nil
}

func (stub *sessionRepositoryStub) SaveWithRange(session *models.Session, committed *models.CommittedRange) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.sessions[session.PublicID] = *session
	if committed != nil {
		committed.SessionID = session.ID
		committed.ID = uint(len(stub.ranges) + 1)
		stub.ranges = append(stub.ranges, *committed)
	}
	return nil
}

func (stub *sessionRepositoryStub) DeleteIdleSince(cutoff time.Time) (int64, error) {
	stub.cutoff = cutoff
	return 3, nil
}

func (stub *sessionRepositoryStub) ListBySession(sessionID uint) ([]models.CommittedRange, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	rows := make([]models.CommittedRange, 0)
	for _, row := range stub.ranges {
		if row.SessionID == sessionID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (stub *sessionRepositoryStub) DeleteBySession(sessionID uint) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	kept := stub.ranges[:0]
	for _, row := range stub.ranges {
		if row.SessionID != sessionID {
			kept = append(kept, row)
		}
	}
	stub.ranges = kept
	return nil
}

func newSelectionServiceForTest(t *testing.T) (*SelectionService, *sessionRepositoryStub, string) {
	t.Helper()

	stub := newSessionRepositoryStub()
	service := NewSelectionService(stub, stub, calendar.DefaultConfig())
	session, err := service.CreateSession()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return service, stub, session.PublicID
}

func TestSelectionServiceGestureWorkflow(t *testing.T) {
	service, stub, sessionID := newSelectionServiceForTest(t)

	first, err := service.Apply(sessionID, selection.Activated(selection.MustParseDate("2018-03-10")))
	if err != nil {
		t.Fatalf("first tap: %v", err)
	}
	if !first.State.Pending() {
		t.Fatalf("expected pending state after first tap, got %+v", first.State)
	}
	if stored := stub.sessions[sessionID]; stored.PendingStart == nil || *stored.PendingStart != "2018-03-10" {
		t.Fatalf("expected pending start to be persisted, got %v", stored.PendingStart)
	}

	second, err := service.Apply(sessionID, selection.Activated(selection.MustParseDate("2018-03-05")))
	if err != nil {
		t.Fatalf("second tap: %v", err)
	}
	if second.Committed == nil || second.Committed.Start.String() != "2018-03-05" {
		t.Fatalf("expected committed [2018-03-05, 2018-03-10], got %+v", second.Committed)
	}

	stored := stub.sessions[sessionID]
	if stored.PendingStart != nil {
		t.Fatalf("expected pending start cleared, got %v", *stored.PendingStart)
	}
	if len(stored.SelectedDays) != 6 || stored.EventCount != 2 {
		t.Fatalf("unexpected stored session %+v", stored)
	}

	ranges, err := service.Ranges(sessionID)
	if err != nil {
		t.Fatalf("load ranges: %v", err)
	}
	if len(ranges) != 1 || ranges[0].End.String() != "2018-03-10" {
		t.Fatalf("unexpected ranges %+v", ranges)
	}

	third, err := service.Apply(sessionID, selection.Activated(selection.MustParseDate("2018-03-20")))
	if err != nil {
		t.Fatalf("third tap: %v", err)
	}
	if !third.ClearAll || len(third.Deselect) != 6 {
		t.Fatalf("expected new gesture to clear the committed range, got %+v", third)
	}

	snapshot, err := service.Snapshot(sessionID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot.State.Start == nil || snapshot.State.Start.String() != "2018-03-20" || len(snapshot.Selected) != 1 {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
}

func TestSelectionServiceDisplayingIsNotPersisted(t *testing.T) {
	service, stub, sessionID := newSelectionServiceForTest(t)

	instruction, err := service.Apply(sessionID, selection.Displaying(selection.MustParseDate("2030-01-01")))
	if err != nil {
		t.Fatalf("displaying: %v", err)
	}
	if instruction.Position != selection.PositionNone {
		t.Fatalf("expected none position, got %s", instruction.Position)
	}
	if stub.sessions[sessionID].EventCount != 0 {
		t.Fatalf("displaying should not count as a stored event")
	}
}

func TestSelectionServiceErrors(t *testing.T) {
	service, stub, sessionID := newSelectionServiceForTest(t)

	if _, err := service.Apply(sessionID, selection.Activated(selection.MustParseDate("2019-02-01"))); !errors.Is(err, ErrDateOutOfRange) {
		t.Fatalf("expected ErrDateOutOfRange, got %v", err)
	}
	if _, err := service.Apply("unknown", selection.Activated(selection.MustParseDate("2018-02-01"))); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := service.Snapshot("  "); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for blank id, got %v", err)
	}

	stub.saveErr = errors.New("disk full")
	if _, err := service.Apply(sessionID, selection.Activated(selection.MustParseDate("2018-02-01"))); !errors.Is(err, ErrSessionSaveFailed) {
		t.Fatalf("expected ErrSessionSaveFailed, got %v", err)
	}
	stub.saveErr = nil

	broken := stub.sessions[sessionID]
	broken.SelectedDays = []string{"not-a-day"}
	stub.sessions[sessionID] = broken
	if _, err := service.Snapshot(sessionID); !errors.Is(err, ErrSessionCorrupt) {
		t.Fatalf("expected ErrSessionCorrupt, got %v", err)
	}

	stub.findErr = errors.New("db down")
	if _, err := service.Ranges(sessionID); !errors.Is(err, ErrSessionLoadFailed) {
		t.Fatalf("expected ErrSessionLoadFailed, got %v", err)
	}
}

func TestSelectionServiceClearRanges(t *testing.T) {
	service, _, sessionID := newSelectionServiceForTest(t)

	for _, raw := range []string{"2018-03-05", "2018-03-10", "2018-03-20"} {
		if _, err := service.Apply(sessionID, selection.Activated(selection.MustParseDate(raw))); err != nil {
			t.Fatalf("tap %s: %v", raw, err)
		}
	}

	if err := service.ClearRanges(sessionID); err != nil {
		t.Fatalf("clear ranges: %v", err)
	}
	ranges, err := service.Ranges(sessionID)
	if err != nil {
		t.Fatalf("load ranges: %v", err)
	}
	if len(ranges) != 0 {
		t.Fatalf("expected empty history, got %+v", ranges)
	}

	snapshot, err := service.Snapshot(sessionID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot.State.Start == nil || snapshot.State.Start.String() != "2018-03-20" {
		t.Fatalf("expected pending gesture to survive, got %+v", snapshot.State)
	}

	if err := service.ClearRanges("unknown"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSelectionServiceMonthReflectsSelection(t *testing.T) {
	service, _, sessionID := newSelectionServiceForTest(t)

	for _, raw := range []string{"2018-03-10", "2018-03-12"} {
		if _, err := service.Apply(sessionID, selection.Activated(selection.MustParseDate(raw))); err != nil {
			t.Fatalf("tap %s: %v", raw, err)
		}
	}

	month, err := service.Month(sessionID, selection.MustParseDate("2018-03-01"))
	if err != nil {
		t.Fatalf("build month: %v", err)
	}

	positions := map[string]selection.Position{}
	for _, cell := range month.Cells {
		positions[cell.Date.String()] = cell.Position
	}
	if positions["2018-03-10"] != selection.PositionRangeStart ||
		positions["2018-03-11"] != selection.PositionRangeMiddle ||
		positions["2018-03-12"] != selection.PositionRangeEnd ||
		positions["2018-03-13"] != selection.PositionNone {
		t.Fatalf("unexpected positions %v", positions)
	}
}

func TestSelectionServiceSerializesConcurrentTaps(t *testing.T) {
	service, stub, sessionID := newSelectionServiceForTest(t)

	var wg sync.WaitGroup
	for offset := 0; offset < 20; offset++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			if _, err := service.Apply(sessionID, selection.Activated(selection.NewDate(2018, time.May, day))); err != nil {
				t.Errorf("tap: %v", err)
			}
		}(offset + 1)
	}
	wg.Wait()

	if stub.sessions[sessionID].EventCount != 20 {
		t.Fatalf("expected 20 stored events, got %d", stub.sessions[sessionID].EventCount)
	}
	if len(stub.ranges) != 10 {
		t.Fatalf("expected 10 committed ranges from 20 taps, got %d", len(stub.ranges))
	}
}

func TestPurgeIdleSessions(t *testing.T) {
	service, stub, _ := newSelectionServiceForTest(t)
	now := time.Date(2018, time.March, 10, 12, 0, 0, 0, time.UTC)

	deleted, err := service.PurgeIdleSessions(24*time.Hour, now)
	if err != nil || deleted != 3 {
		t.Fatalf("unexpected purge result deleted=%d err=%v", deleted, err)
	}
	if !stub.cutoff.Equal(now.Add(-24 * time.Hour)) {
		t.Fatalf("unexpected cutoff %s", stub.cutoff)
	}
	if _, err := service.PurgeIdleSessions(0, now); err == nil {
		t.Fatal("expected error for non-positive max idle")
	}
}
