package usecase

import (
	"net/url"
	"strings"

	"github.com/okruhlystol/catalog/internal/core/calendar"
	"github.com/okruhlystol/catalog/internal/core/model"
)

const (
	// listShortText is the rune budget of short texts in listings.
	listShortText = 100

	// detailShortText is the rune budget of short texts in single event views.
	detailShortText = 150

	// DefaultMapURL points at the organisation's office, used when an event has no usable location.
	DefaultMapURL = "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d2641.8383484567!2d21.2353986!3d48.9977246!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x473eed62a563a9ef%3A0xb18994e09e7a9e06!2sJarkov%C3%A1%203110%2F77%2C%20080%2001%20Pre%C5%A1ov!5e0!3m2!1ssk!2ssk!4v1709912345678!5m2!1ssk!2ssk"

	placeEmbedURL = "https://www.google.com/maps/embed/v1/place"
)

// unknownLocations are stored location values that carry no place.
var unknownLocations = map[string]struct{}{
	"Unknown":             {},
	model.UnknownLocation: {},
	"Miesto Neznáme":      {},
	"Miesto neznáme":      {},
}

// mapper shapes stored records into the external event representation.
type mapper struct {
	mapsKey string
}

func (m mapper) toEvents(records []model.EventRecord, shortLen int) []model.Event {
	events := make([]model.Event, len(records))
	for i, r := range records {
		events[i] = m.toEvent(r, shortLen)
	}
	return events
}

func (m mapper) toEvent(r model.EventRecord, shortLen int) model.Event {
	e := model.Event{
		ID:             r.ID,
		Title:          r.Title,
		Category:       orDefault(r.EventType, model.Uncategorized),
		Location:       orDefault(r.Location, model.UnknownLocation),
		MapURL:         m.mapURL(r.Location),
		Year:           calendar.YearString(r.EventStartDate),
		Month:          calendar.MonthName(r.EventStartDate.Month()),
		ShortText:      shortText(r.Description, shortLen),
		FullText:       orDefault(r.Description, ""),
		Image:          orDefault(r.ImageURL, model.DefaultImageURL),
		EventStartDate: r.EventStartDate.Format(model.DateLayout),
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Tickets:        r.Tickets,
		LinkTo:         r.LinkTo,
	}
	if r.EventEndDate != nil {
		end := r.EventEndDate.Format(model.DateLayout)
		e.EventEndDate = &end
	}
	return e
}

func (m mapper) mapURL(location *string) string {
	if location == nil {
		return DefaultMapURL
	}
	loc := strings.TrimSpace(*location)
	if loc == "" {
		return DefaultMapURL
	}
	if _, unknown := unknownLocations[loc]; unknown {
		return DefaultMapURL
	}
	q := url.Values{}
	q.Set("key", m.mapsKey)
	q.Set("q", loc)
	q.Set("zoom", "15")
	return placeEmbedURL + "?" + q.Encode()
}

// shortText cuts the description to n runes. The ellipsis is appended to every
// non-empty description, as clients expect a teaser marker.
func shortText(description *string, n int) string {
	if description == nil || *description == "" {
		return ""
	}
	runes := []rune(*description)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
