package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/event"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/dateutil"
)

type EventRepository struct {
	mu     sync.RWMutex
	events map[string]event.EmployeeEvent
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]event.EmployeeEvent)}
}

func (r *EventRepository) Put(e event.EmployeeEvent) event.EmployeeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.UpdatedAt = time.Now()
	r.events[e.ID] = e
	return e
}

func (r *EventRepository) GetByID(_ context.Context, id string) (event.EmployeeEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return event.EmployeeEvent{}, event.ErrEventNotFound
	}
	return e, nil
}

func (r *EventRepository) ListCandidatesForPeriod(_ context.Context, start, end time.Time) ([]event.EmployeeEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []event.EmployeeEvent
	for _, e := range r.events {
		if e.Status != event.StatusActive || !e.AffectsPayroll {
			continue
		}
		switch e.RecurrenceType {
		case event.RecurrenceMonthly:
			if dateutil.Date(e.EventDate).After(dateutil.Date(end)) {
				continue
			}
			if e.RecurrenceEndDate != nil && dateutil.Date(*e.RecurrenceEndDate).Before(dateutil.Date(start)) {
				continue
			}
		default:
			if !dateutil.Overlaps(e.EventDate, e.EventDate, start, end) {
				continue
			}
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
