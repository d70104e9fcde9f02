package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morocco-events/backend/internal/i18n"
	"github.com/morocco-events/backend/internal/metrics"
	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/apperr"
	"github.com/morocco-events/backend/pkg/database"
)

// ListFilter narrows what the store returns before the query engine runs.
type ListFilter struct {
	Status  models.Status
	OwnerID uuid.UUID
}

// StatusGuard decides whether the stored status may move to the requested one.
type StatusGuard func(from models.Status) error

// Repository is the durable event store. List returns events in insertion order
// with their subscribers loaded.
type Repository interface {
	Create(ctx context.Context, e *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	List(ctx context.Context, f ListFilter) ([]models.Event, error)
	Update(ctx context.Context, e *models.Event) error
	UpdateStatus(ctx context.Context, id uuid.UUID, to models.Status, at time.Time, guard StatusGuard) (*models.Event, error)
	AppendSubscriber(ctx context.Context, s *models.Subscriber) error
}

// ActivityRecorder stores feed entries. Failures must not fail the caller.
type ActivityRecorder interface {
	Record(ctx context.Context, userID uuid.UUID, e *models.Event, typ models.ActivityType)
}

// Notifier pushes live updates to connected clients.
type Notifier interface {
	SubscriberCount(eventID uuid.UUID, count int)
	StatusChanged(eventID uuid.UUID, status models.Status)
}

// CreateInput holds the fields an organizer submits.
type CreateInput struct {
	Title       string              `json:"title" binding:"required,max=200"`
	Subtitle    string              `json:"subtitle" binding:"max=300"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Images      []string            `json:"images" binding:"max=10"`
	StartDate   time.Time           `json:"startDate" binding:"required"`
	EndDate     time.Time           `json:"endDate" binding:"required"`
	City        string              `json:"city" binding:"required"`
	Location    string              `json:"location"`
	Category    string              `json:"category"`
	Organizer   string              `json:"organizer"`
	Coordinates *models.Coordinates `json:"coordinates"`
}

// UpdateInput is a partial edit. Nil fields are left unchanged.
type UpdateInput struct {
	Title       *string             `json:"title" binding:"omitempty,min=1,max=200"`
	Subtitle    *string             `json:"subtitle" binding:"omitempty,max=300"`
	Description *string             `json:"description"`
	Image       *string             `json:"image"`
	Images      *[]string           `json:"images" binding:"omitempty,max=10"`
	StartDate   *time.Time          `json:"startDate"`
	EndDate     *time.Time          `json:"endDate"`
	City        *string             `json:"city" binding:"omitempty,min=1"`
	Location    *string             `json:"location"`
	Category    *string             `json:"category"`
	Organizer   *string             `json:"organizer"`
	Coordinates *models.Coordinates `json:"coordinates"`
}

// SubscribeInput is an anonymous subscription request.
type SubscribeInput struct {
	Name     string `json:"name"`
	WhatsApp string `json:"whatsapp"`
}

// Service implements event creation, moderation, listing and subscriptions.
type Service struct {
	repo     Repository
	activity ActivityRecorder
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

// NewService creates an event service. activity, notifier and m may be nil.
func NewService(repo Repository, activity ActivityRecorder, notifier Notifier, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		activity: activity,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// SetClock replaces the time source (tests, fixed "now" for sorting).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Now returns the service clock reading.
func (s *Service) Now() time.Time { return s.now() }

// Create validates in and stores a pending event owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*models.Event, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.City = strings.TrimSpace(in.City)
	details := map[string]string{}
	if in.Title == "" {
		details["title"] = "is required"
	}
	if in.City == "" {
		details["city"] = "is required"
	}
	if in.StartDate.IsZero() {
		details["startDate"] = "is required"
	}
	if in.EndDate.IsZero() {
		details["endDate"] = "is required"
	}
	if len(details) > 0 {
		return nil, apperr.Validation(i18n.ErrValidation).WithDetails(details)
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, endBeforeStart()
	}

	now := s.now().UTC()
	id := s.newID()
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = models.DefaultCategory
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}
	e := &models.Event{
		ID:          id,
		Slug:        Slug(in.Title, id),
		Title:       in.Title,
		Subtitle:    in.Subtitle,
		Description: in.Description,
		Image:       in.Image,
		Images:      images,
		StartDate:   in.StartDate.UTC(),
		EndDate:     in.EndDate.UTC(),
		City:        in.City,
		Location:    in.Location,
		Category:    category,
		Organizer:   in.Organizer,
		UserID:      ownerID,
		Status:      models.StatusPending,
		Coordinates: in.Coordinates,
		Subscribers: []models.Subscriber{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if e.Image == "" && len(images) > 0 {
		e.Image = images[0]
	}
	err := s.repo.Create(ctx, e)
	if errors.Is(err, database.ErrDuplicate) {
		// slug suffix collided with another event; one retry with a fresh id
		e.ID = s.newID()
		e.Slug = Slug(in.Title, e.ID)
		err = s.repo.Create(ctx, e)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	s.metrics.EventCreated()
	s.record(ctx, e.UserID, e, models.ActivityEventCreated)
	s.logger.Info("event created", zap.String("event_id", e.ID.String()), zap.String("slug", e.Slug))
	return e, nil
}

// Get returns an event by id for its owner or an admin.
func (s *Service) Get(ctx context.Context, id, callerID uuid.UUID, role models.Role) (*models.Event, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && e.UserID != callerID {
		return nil, apperr.Forbidden(i18n.ErrNotOwner)
	}
	return e, nil
}

// GetPublicBySlug returns an approved event by slug. Other statuses are reported as not found.
func (s *Service) GetPublicBySlug(ctx context.Context, slug string) (*models.Event, error) {
	e, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !e.Status.IsPublic() {
		return nil, apperr.NotFound(i18n.ErrEventNotFound)
	}
	return e, nil
}

// List runs q against the store.
func (s *Service) List(ctx context.Context, q Query) ([]models.Event, error) {
	var f ListFilter
	switch q.Audience {
	case AudiencePublic:
		f.Status = models.StatusApproved
	case AudienceModeration:
		f.Status = models.StatusPending
	case AudienceOwner:
		f.OwnerID = q.CallerID
	}
	all, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return Apply(all, q, s.now()), nil
}

// Update applies a partial edit by the owner. Slug and status never change.
func (s *Service) Update(ctx context.Context, id, callerID uuid.UUID, in UpdateInput) (*models.Event, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.UserID != callerID {
		return nil, apperr.Forbidden(i18n.ErrNotOwner)
	}

	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, apperr.Validation(i18n.ErrValidation).WithDetails(map[string]string{"title": "is required"})
		}
		e.Title = t
	}
	if in.City != nil {
		c := strings.TrimSpace(*in.City)
		if c == "" {
			return nil, apperr.Validation(i18n.ErrValidation).WithDetails(map[string]string{"city": "is required"})
		}
		e.City = c
	}
	setString(&e.Subtitle, in.Subtitle)
	setString(&e.Description, in.Description)
	setString(&e.Image, in.Image)
	setString(&e.Location, in.Location)
	setString(&e.Organizer, in.Organizer)
	if in.Category != nil {
		e.Category = strings.TrimSpace(*in.Category)
		if e.Category == "" {
			e.Category = models.DefaultCategory
		}
	}
	if in.Images != nil {
		e.Images = append([]string{}, (*in.Images)...)
	}
	if in.StartDate != nil {
		e.StartDate = in.StartDate.UTC()
	}
	if in.EndDate != nil {
		e.EndDate = in.EndDate.UTC()
	}
	if in.Coordinates != nil {
		c := *in.Coordinates
		e.Coordinates = &c
	}
	if e.EndDate.Before(e.StartDate) {
		return nil, endBeforeStart()
	}
	e.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, notFoundOr(err)
	}
	s.record(ctx, e.UserID, e, models.ActivityEventUpdated)
	return e, nil
}

// UpdateStatus moves a pending event to approved or rejected.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Event, error) {
	to, err := ParseTargetStatus(status)
	if err != nil {
		return nil, err
	}
	e, err := s.repo.UpdateStatus(ctx, id, to, s.now().UTC(), func(from models.Status) error {
		return checkTransition(from, to)
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, notFoundOr(err)
	}
	s.metrics.Moderated(string(to))
	s.record(ctx, e.UserID, e, activityFor(to))
	if s.notifier != nil {
		s.notifier.StatusChanged(e.ID, e.Status)
	}
	s.logger.Info("event moderated", zap.String("event_id", e.ID.String()), zap.String("status", string(to)))
	return e, nil
}

// Subscribe appends a subscriber and returns the updated event. Any status accepts subscribers.
func (s *Service) Subscribe(ctx context.Context, eventID uuid.UUID, in SubscribeInput) (*models.Event, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.WhatsApp)
	if name == "" || phone == "" {
		details := map[string]string{}
		if name == "" {
			details["name"] = "is required"
		}
		if phone == "" {
			details["whatsapp"] = "is required"
		}
		return nil, apperr.Validation(i18n.ErrSubscriberRequired).WithDetails(details)
	}

	sub := &models.Subscriber{
		ID:        s.newID(),
		EventID:   eventID,
		Name:      name,
		WhatsApp:  phone,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.AppendSubscriber(ctx, sub); err != nil {
		return nil, notFoundOr(err)
	}
	e, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	s.metrics.Subscribed()
	s.record(ctx, e.UserID, e, models.ActivitySubscriberJoined)
	if s.notifier != nil {
		s.notifier.SubscriberCount(e.ID, e.SubscriberCount())
	}
	return e, nil
}

// PublicSubscriberCount returns the subscriber count of an approved event.
// Unknown, pending and rejected events are all reported as not found.
func (s *Service) PublicSubscriberCount(ctx context.Context, id uuid.UUID) (int, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return 0, err
	}
	if !e.Status.IsPublic() {
		return 0, apperr.NotFound(i18n.ErrEventNotFound)
	}
	return e.SubscriberCount(), nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return e, nil
}

func (s *Service) record(ctx context.Context, userID uuid.UUID, e *models.Event, typ models.ActivityType) {
	if s.activity != nil {
		s.activity.Record(ctx, userID, e, typ)
	}
}

func notFoundOr(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound(i18n.ErrEventNotFound)
	}
	return apperr.Internal(err)
}

func endBeforeStart() error {
	return apperr.Validation(i18n.ErrEndBeforeStart).WithDetails(map[string]string{"endDate": "must not be before startDate"})
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
