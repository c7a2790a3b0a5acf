package events

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the base interface for all domain events.
// Events represent something that has happened in the past.
type DomainEvent interface {
	GetEventID() string
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetEventID() string      { return e.EventID }
func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

func newBase(movieID int, eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		EventID:     uuid.New().String(),
		AggregateID: strconv.Itoa(movieID),
		EventType:   eventType,
		Timestamp:   timestamp,
		Version:     1,
	}
}

// Movie events

// MovieAdded is raised when a movie is written to the catalog
type MovieAdded struct {
	BaseEvent
	MovieID int    `json:"movie_id"`
	Title   string `json:"title"`
}

func NewMovieAdded(movieID int, title string, timestamp time.Time) MovieAdded {
	return MovieAdded{
		BaseEvent: newBase(movieID, "movie.added", timestamp),
		MovieID:   movieID,
		Title:     title,
	}
}

// MovieDeleted is raised after a delete request, whether or not the movie existed
type MovieDeleted struct {
	BaseEvent
	MovieID int `json:"movie_id"`
}

func NewMovieDeleted(movieID int, timestamp time.Time) MovieDeleted {
	return MovieDeleted{
		BaseEvent: newBase(movieID, "movie.deleted", timestamp),
		MovieID:   movieID,
	}
}

// Cast events

// CastAdded is raised when a cast member is attached to a movie
type CastAdded struct {
	BaseEvent
	MovieID   int    `json:"movie_id"`
	ActorName string `json:"actor_name"`
	RoleName  string `json:"role_name"`
}

func NewCastAdded(movieID int, actorName, roleName string, timestamp time.Time) CastAdded {
	return CastAdded{
		BaseEvent: newBase(movieID, "cast.added", timestamp),
		MovieID:   movieID,
		ActorName: actorName,
		RoleName:  roleName,
	}
}

// Review events

// ReviewAdded is raised when a review is stored
type ReviewAdded struct {
	BaseEvent
	MovieID  int     `json:"movie_id"`
	ReviewID int     `json:"review_id"`
	Rating   float64 `json:"rating"`
}

func NewReviewAdded(movieID, reviewID int, rating float64, timestamp time.Time) ReviewAdded {
	return ReviewAdded{
		BaseEvent: newBase(movieID, "review.added", timestamp),
		MovieID:   movieID,
		ReviewID:  reviewID,
		Rating:    rating,
	}
}

// ReviewUpdated is raised when a review comment is replaced
type ReviewUpdated struct {
	BaseEvent
	MovieID      int    `json:"movie_id"`
	ReviewID     int    `json:"review_id"`
	ReviewerName string `json:"reviewer_name"`
}

func NewReviewUpdated(movieID, reviewID int, reviewerName string, timestamp time.Time) ReviewUpdated {
	return ReviewUpdated{
		BaseEvent:    newBase(movieID, "review.updated", timestamp),
		MovieID:      movieID,
		ReviewID:     reviewID,
		ReviewerName: reviewerName,
	}
}
