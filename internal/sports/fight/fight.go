// Package fight normalizes fight cards from the UFC.com events page, with
// the ESPN MMA scoreboard as a fallback tier when scraping yields nothing.
package fight

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/providers/espn"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/providers/ufcweb"
	"github.com/XavierBriggs/fortuna/services/livesports-api/internal/sports/espnx"
	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

const (
	// WindowDays keeps cards from today through the next month; PPV cards
	// are booked far out.
	WindowDays = 30

	// MaxCards caps how many listing sections one fetch walks.
	MaxCards = 20

	// minNameLen rejects stray listing fragments masquerading as events.
	minNameLen = 5

	SourceWeb  = "UFC.com (Official - Live)"
	SourceESPN = "ESPN (Official)"
)

// dateRe loosely matches "December 14, 2025" style date text.
var dateRe = regexp.MustCompile(`(\w+)\s+(\d{1,2}),?\s+(\d{4})`)

// Client fetches and normalizes fight events.
type Client struct {
	web  *ufcweb.Client
	espn *espn.Client
	now  func() time.Time
}

// New creates a fight-event client.
func New(webClient *ufcweb.Client, espnClient *espn.Client) *Client {
	return &Client{web: webClient, espn: espnClient, now: time.Now}
}

// SetClock overrides the wall clock, for window tests.
func (c *Client) SetClock(now func() time.Time) {
	c.now = now
}

// Fetch returns normalized fight events. The UFC.com HTML tier runs first;
// when it yields zero events (network failure, selector drift, or a bare
// page) the ESPN scoreboard tier takes over. It never fails: every error
// path surfaces as an empty list.
func (c *Client) Fetch(ctx context.Context) []models.FightEvent {
	events := c.fetchFromWeb(ctx)
	if len(events) > 0 {
		return events
	}

	log.Printf("[fight] UFC.com yielded no events, falling back to ESPN")
	return c.fetchFromESPN(ctx)
}

func (c *Client) fetchFromWeb(ctx context.Context) []models.FightEvent {
	doc, err := c.web.FetchEventsPage(ctx)
	if err != nil {
		log.Printf("[fight] events page fetch failed: %v", err)
		return []models.FightEvent{}
	}
	return c.ParseEventsPage(doc)
}

// ParseEventsPage scrapes fight cards from the events listing document.
func (c *Client) ParseEventsPage(doc *goquery.Document) []models.FightEvent {
	today := c.now()
	events := []models.FightEvent{}

	sections := doc.Find("div.c-card-event--result")
	if sections.Length() == 0 {
		// The site periodically reshuffles card markup.
		sections = doc.Find("article.c-card-event")
	}

	sections.EachWithBreak(func(idx int, section *goquery.Selection) bool {
		if idx >= MaxCards {
			return false
		}

		name := eventName(section)
		if len(name) < minNameLen {
			return true
		}

		dateText := eventDateText(section)
		withinWindow, isToday := c.checkWindow(dateText, today)
		if !withinWindow {
			return true
		}

		venue, city, country := splitLocation(section)
		fighter1, fighter2 := fighterNames(section)
		eventType := classifyEvent(name)

		status := "Upcoming"
		if isToday {
			status = models.StatusLiveToday
		}

		broadcast := "ESPN+"
		if eventType == "PPV" {
			broadcast = "ESPN+ PPV"
		}

		events = append(events, models.FightEvent{
			ID:          fmt.Sprintf("fight_%d_%s", idx, today.Format("20060102")),
			Sport:       models.SportFight,
			EventName:   name,
			EventType:   eventType,
			Date:        dateText,
			Venue:       venue,
			City:        city,
			Country:     country,
			Status:      status,
			Fighter1:    fighter1,
			Fighter2:    fighter2,
			Broadcast:   broadcast,
			Source:      SourceWeb,
			LastUpdated: today,
		})
		return true
	})

	return events
}

// checkWindow parses the listing's date text and applies the 30-day
// horizon. Unparseable dates are kept: dropping a card over date drift
// is worse than listing one extra.
func (c *Client) checkWindow(dateText string, today time.Time) (withinWindow, isToday bool) {
	m := dateRe.FindStringSubmatch(dateText)
	if m == nil {
		return true, false
	}

	eventDate, err := time.Parse("January 2 2006", fmt.Sprintf("%s %s %s", m[1], m[2], m[3]))
	if err != nil {
		return true, false
	}

	days := espnx.DaysUntil(eventDate, today)
	return days >= 0 && days <= WindowDays, days == 0
}

func eventName(section *goquery.Selection) string {
	name := strings.TrimSpace(section.Find("h3").First().Text())
	if name == "" {
		name = section.Find("a.c-card-event--result__logo").First().AttrOr("aria-label", "")
	}
	return strings.Join(strings.Fields(name), " ")
}

func eventDateText(section *goquery.Selection) string {
	if text := strings.TrimSpace(section.Find("div.c-card-event--result__date").First().Text()); text != "" {
		return text
	}
	if text := strings.TrimSpace(section.Find("time").First().Text()); text != "" {
		return text
	}
	return "TBA"
}

// splitLocation breaks "Venue, City, Country" text into positional parts.
func splitLocation(section *goquery.Selection) (venue, city, country string) {
	location := strings.TrimSpace(section.Find("div.c-card-event--result__location").First().Text())
	if location == "" {
		return "Venue TBA", "", ""
	}

	parts := strings.Split(location, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	venue = parts[0]
	if len(parts) > 1 {
		city = parts[1]
		country = parts[len(parts)-1]
	}
	return venue, city, country
}

func fighterNames(section *goquery.Selection) (fighter1, fighter2 string) {
	fighter1, fighter2 = "Main Event TBA", "TBA"

	corners := section.Find("div.c-card-event--result__info").First().
		Find("div.c-listing-fight__corner")
	if corners.Length() < 2 {
		return fighter1, fighter2
	}

	if name := strings.TrimSpace(corners.Eq(0).Find("div.c-listing-fight__corner-name").Text()); name != "" {
		fighter1 = strings.Join(strings.Fields(name), " ")
	}
	if name := strings.TrimSpace(corners.Eq(1).Find("div.c-listing-fight__corner-name").Text()); name != "" {
		fighter2 = strings.Join(strings.Fields(name), " ")
	}
	return fighter1, fighter2
}

// classifyEvent labels numbered cards ("UFC 310: ...") as PPV and
// everything else as a Fight Night card.
func classifyEvent(name string) string {
	rest, ok := strings.CutPrefix(name, "UFC ")
	if ok && rest != "" && rest[0] >= '0' && rest[0] <= '9' {
		return "PPV"
	}
	return "Fight Night"
}

// fetchFromESPN is the secondary tier: the ESPN MMA scoreboard with its
// own normalization. Unlike the games feeds, a card with an unparseable
// date is kept here too.
func (c *Client) fetchFromESPN(ctx context.Context) []models.FightEvent {
	doc, err := c.espn.FetchScoreboard(ctx, espn.PathMMA)
	if err != nil {
		log.Printf("[fight] ESPN scoreboard fetch failed: %v", err)
		return []models.FightEvent{}
	}
	return c.ParseScoreboard(doc)
}

// ParseScoreboard normalizes the ESPN MMA scoreboard document.
func (c *Client) ParseScoreboard(doc map[string]interface{}) []models.FightEvent {
	today := c.now()
	events := []models.FightEvent{}

	for _, ei := range espnx.ExtractArray(doc, "events") {
		event, ok := ei.(map[string]interface{})
		if !ok {
			continue
		}

		dateStr := espnx.ExtractString(event, "date")
		isToday := false
		if eventDate, err := espnx.ParseEventDate(dateStr); err == nil {
			if !espnx.WithinWindow(eventDate, today, WindowDays) {
				continue
			}
			isToday = espnx.DaysUntil(eventDate, today) == 0
		}

		name := espnx.ExtractString(event, "name")
		if name == "" {
			name = "UFC Event"
		}

		var competition map[string]interface{}
		if comps := espnx.ExtractArray(event, "competitions"); len(comps) > 0 {
			competition, _ = comps[0].(map[string]interface{})
		}
		if competition == nil {
			competition = map[string]interface{}{}
		}

		status := espnx.ExtractString(
			espnx.ExtractMap(espnx.ExtractMap(competition, "status"), "type"), "shortDetail")
		if status == "" {
			status = "Upcoming"
		}
		if isToday {
			status = models.StatusLiveToday
		}

		venue := espnx.ExtractMap(competition, "venue")
		venueName := espnx.ExtractString(venue, "fullName")
		if venueName == "" {
			venueName = "TBA"
		}
		address := espnx.ExtractMap(venue, "address")

		id := espnx.ExtractString(event, "id")
		if id == "" {
			id = fmt.Sprintf("fight_%d_%s", len(events), today.Format("20060102"))
		}

		events = append(events, models.FightEvent{
			ID:          id,
			Sport:       models.SportFight,
			EventName:   name,
			EventType:   classifyEvent(name),
			Date:        dateStr,
			Venue:       venueName,
			City:        espnx.ExtractString(address, "city"),
			Country:     espnx.ExtractString(address, "country"),
			Status:      status,
			Fighter1:    "Main Event TBA",
			Fighter2:    "TBA",
			Broadcast:   espnx.FirstBroadcast(competition, "ESPN+"),
			Source:      SourceESPN,
			LastUpdated: today,
		})
	}

	return events
}
