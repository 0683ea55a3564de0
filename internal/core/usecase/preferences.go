package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okruhlystol/catalog/internal/core/model"
	"github.com/okruhlystol/catalog/internal/core/ports"
)

// weightStep is how much a single like or dislike moves a category weight.
const weightStep = 0.2

// PreferenceServiceArgs contains the mandatory arguments for the PreferenceService.
type PreferenceServiceArgs struct {
	Repository ports.PreferenceRepository

	// Sender publishes recorded interactions.
	Sender ports.Sender
}

// PreferenceServiceOptArgs are the optional arguments for building a PreferenceService.
type PreferenceServiceOptArgs = func(*PreferenceService)

// WithNowFunc can be used to override the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) PreferenceServiceOptArgs {
	return func(s *PreferenceService) {
		s.nowFunc = nowFunc
	}
}

// NewPreferenceService creates a new PreferenceService.
func NewPreferenceService(args PreferenceServiceArgs, optArgs ...PreferenceServiceOptArgs) *PreferenceService {
	s := &PreferenceService{
		repository: args.Repository,
		sender:     args.Sender,
		nowFunc:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range optArgs {
		opt(s)
	}
	return s
}

// PreferenceService stores explicit preferences and records interactions.
type PreferenceService struct {
	repository ports.PreferenceRepository
	sender     ports.Sender
	nowFunc    func() time.Time
}

// SavePreferences replaces the preferences of a user.
func (s *PreferenceService) SavePreferences(ctx context.Context, args model.SavePreferencesArgs) error {
	if args.UserID == uuid.Nil {
		return model.NewValidationError("user_id is required")
	}
	if err := s.repository.SavePreferences(ctx, args.UserID, args.Preferences); err != nil {
		return fmt.Errorf("error saving preferences: %w", err)
	}
	return nil
}

// GetPreferences returns the preferences of a user.
func (s *PreferenceService) GetPreferences(ctx context.Context, userID uuid.UUID) (*model.Preferences, error) {
	if userID == uuid.Nil {
		return nil, model.NewValidationError("user_id is required")
	}
	prefs, err := s.repository.GetPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error reading preferences: %w", err)
	}
	return prefs, nil
}

// RecordInteraction stores the latest reaction of a user to an event and publishes it.
func (s *PreferenceService) RecordInteraction(ctx context.Context, args model.InteractionArgs) error {
	if args.UserID == uuid.Nil || args.EventID <= 0 || strings.TrimSpace(args.ActionType) == "" {
		return model.NewValidationError("user_id, event_id and action_type are required")
	}

	interaction := model.Interaction{
		UserID:     args.UserID,
		EventID:    args.EventID,
		ActionType: args.ActionType,
		At:         s.nowFunc(),
	}
	if err := s.repository.SaveInteraction(ctx, interaction); err != nil {
		return fmt.Errorf("error saving interaction: %w", err)
	}

	if err := s.sender.Send(ctx, model.InteractionEvent{
		UserID:     interaction.UserID,
		EventID:    interaction.EventID,
		ActionType: interaction.ActionType,
		At:         interaction.At,
	}); err != nil {
		return fmt.Errorf("error sending interaction of user [%s]: %w", args.UserID, err)
	}
	return nil
}

// NewPreferenceLearner builds a new PreferenceLearner.
func NewPreferenceLearner(preferences ports.PreferenceRepository, events ports.EventRepository) *PreferenceLearner {
	return &PreferenceLearner{preferences: preferences, events: events}
}

// PreferenceLearner moves category weights according to interactions.
type PreferenceLearner struct {
	preferences ports.PreferenceRepository
	events      ports.EventRepository
}

// Handle adjusts the weight of the category of the event the user reacted to. Actions
// that are neither positive nor negative, uncategorized events and categories the user
// never chose are ignored.
func (l *PreferenceLearner) Handle(ctx context.Context, event model.InteractionEvent) error {
	delta := actionDelta(event.ActionType)
	if delta == 0 {
		return nil
	}

	rec, err := l.events.GetEvent(ctx, event.EventID)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading event %d: %w", event.EventID, err)
	}
	if rec.EventType == nil || *rec.EventType == "" {
		return nil
	}

	if _, err := l.preferences.AdjustWeight(ctx, event.UserID, *rec.EventType, delta); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("error adjusting weight of [%s]: %w", *rec.EventType, err)
	}
	return nil
}

func actionDelta(action string) float64 {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "interested", "like", "liked":
		return weightStep
	case "not_interested", "dislike", "disliked":
		return -weightStep
	default:
		return 0
	}
}

// NewLocalDispatcher builds a Sender that hands events straight to handler, for
// deployments without a message bus.
func NewLocalDispatcher(handler ports.InteractionEventHandler) *LocalDispatcher {
	return &LocalDispatcher{handler: handler}
}

// LocalDispatcher delivers interaction events in-process.
type LocalDispatcher struct {
	handler ports.InteractionEventHandler
}

// Send implements ports.Sender.
func (d *LocalDispatcher) Send(ctx context.Context, event model.InteractionEvent) error {
	return d.handler.Handle(ctx, event)
}
