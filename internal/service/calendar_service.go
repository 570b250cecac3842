package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/employeehub/internal/model"
)

// EventTimeLayout is the datetime-local format the calendar posts.
const EventTimeLayout = "2006-01-02T15:04"

type CalendarService struct {
	events   EventStore
	location *time.Location
	now      func() time.Time
}

func NewCalendarService(events EventStore) *CalendarService {
	return &CalendarService{events: events, location: time.Local, now: time.Now}
}

// FeedEvent is the shape consumed by FullCalendar.
type FeedEvent struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	Start         string        `json:"start"`
	End           string        `json:"end"`
	ExtendedProps ExtendedProps `json:"extendedProps"`
}

type ExtendedProps struct {
	Group string `json:"group"`
}

type EventInput struct {
	Title     string
	StartTime string
	EndTime   string
	Group     string
}

func (s *CalendarService) Feed(ctx context.Context) ([]FeedEvent, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	feed := make([]FeedEvent, 0, len(events))
	for _, e := range events {
		group := "No Group"
		if e.Group != nil {
			group = e.Group.Name
		}
		feed = append(feed, FeedEvent{
			ID:            e.ID,
			Title:         e.Title,
			Start:         e.StartTime.In(s.location).Format(time.RFC3339),
			End:           e.EndTime.In(s.location).Format(time.RFC3339),
			ExtendedProps: ExtendedProps{Group: group},
		})
	}
	return feed, nil
}

// Today returns events overlapping the current calendar day.
func (s *CalendarService) Today(ctx context.Context) ([]model.Event, error) {
	now := s.now().In(s.location)
	y, m, d := now.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, s.location)
	return s.events.ListOverlapping(ctx, dayStart, dayStart.AddDate(0, 0, 1))
}

func (s *CalendarService) Groups(ctx context.Context) ([]model.Group, error) {
	return s.events.ListGroups(ctx)
}

func (s *CalendarService) Create(ctx context.Context, input EventInput) (*model.Event, error) {
	var v violations
	v.required("title", input.Title, 200)
	start, end := s.parseRange(&v, input)
	v.required("group", input.Group, 150)
	if err := v.err(); err != nil {
		return nil, err
	}

	group, err := s.events.GroupByName(ctx, strings.TrimSpace(input.Group))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	event := &model.Event{
		Title:     strings.TrimSpace(input.Title),
		StartTime: start,
		EndTime:   end,
		GroupID:   group.ID,
		Group:     group,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update replaces the time range; title and group change only when supplied.
func (s *CalendarService) Update(ctx context.Context, id uint, input EventInput) (*model.Event, error) {
	event, err := s.events.Get(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}

	var v violations
	if input.Title != "" {
		v.maxLength("title", input.Title, 200)
	}
	start, end := s.parseRange(&v, input)
	if err := v.err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) != "" {
		event.Title = strings.TrimSpace(input.Title)
	}
	event.StartTime = start
	event.EndTime = end
	if name := strings.TrimSpace(input.Group); name != "" {
		group, err := s.events.GroupByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}
		event.GroupID = group.ID
		event.Group = group
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, translateNotFound(err)
	}
	return event, nil
}

func (s *CalendarService) Delete(ctx context.Context, id uint) error {
	return translateNotFound(s.events.Delete(ctx, id))
}

func (s *CalendarService) parseRange(v *violations, input EventInput) (time.Time, time.Time) {
	start, startErr := time.ParseInLocation(EventTimeLayout, strings.TrimSpace(input.StartTime), s.location)
	if startErr != nil {
		v.add("start_time", "enter a valid date/time (YYYY-MM-DDTHH:MM)")
	}
	end, endErr := time.ParseInLocation(EventTimeLayout, strings.TrimSpace(input.EndTime), s.location)
	if endErr != nil {
		v.add("end_time", "enter a valid date/time (YYYY-MM-DDTHH:MM)")
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		v.add("end_time", "end must not be before start")
	}
	return start, end
}
