// README: Navigation assistance for delivery agents and drivers.
package maps

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

// Navigator turns free-text navigation complaints into actionable guidance:
// a live route estimate when the Directions API is reachable, deep links to
// Google Maps and Waze otherwise. It never fails the caller; degraded output
// is still useful output.
type Navigator struct {
	client *maps.Client
}

// NewNavigator creates a Navigator. An empty API key yields a link-only
// Navigator, which keeps local development working without credentials.
func NewNavigator(apiKey string) (*Navigator, error) {
	if apiKey == "" {
		return &Navigator{}, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Navigator{client: client}, nil
}

var (
	originPattern      = regexp.MustCompile(`(?i)(?:from|currently at|starting from|stuck at|i am at)\s+([^,.!?]+)`)
	destinationPattern = regexp.MustCompile(`(?i)(?:deliver(?:ing)? to|going to|destination is|customer at|address is)\s+([^,.!?]+)`)
)

// Assist answers a navigation query. Origin defaults to the agent's current
// position when the text names none.
func (n *Navigator) Assist(ctx context.Context, query string) string {
	origin := extract(originPattern, query)
	if origin == "" {
		origin = "Current Location"
	}
	destination := extract(destinationPattern, query)

	var b strings.Builder
	b.WriteString("Navigation Assistance\n\n")

	if destination != "" {
		if est := n.estimate(ctx, origin, destination); est != "" {
			b.WriteString(est)
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("Google Maps: %s\n", googleMapsLink(origin, destination)))
		b.WriteString(fmt.Sprintf("Waze: %s\n\n", wazeLink(destination)))
	}

	b.WriteString(`Immediate steps:
1. Call the customer for real-time directions and nearby landmarks.
2. Ask for a live location pin if the address cannot be found.
3. If stuck in traffic, use the alternate-route option in your navigation app and update the customer with a new ETA.
4. Escalate to delivery support if the location is not found within 15 minutes.

Time spent resolving navigation issues is excused from delivery-time metrics.`)
	return b.String()
}

// estimate queries the Directions API; empty string on any failure.
func (n *Navigator) estimate(ctx context.Context, origin, destination string) string {
	if n.client == nil {
		return ""
	}
	routes, _, err := n.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
	})
	if err != nil {
		log.Printf("maps: directions lookup failed: %v", err)
		return ""
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return ""
	}
	leg := routes[0].Legs[0]
	return fmt.Sprintf("Live route: %s, about %s from %s to %s.\n",
		leg.Distance.HumanReadable, leg.Duration.Round(time.Minute), leg.StartAddress, leg.EndAddress)
}

func extract(re *regexp.Regexp, query string) string {
	m := re.FindStringSubmatch(query)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func googleMapsLink(origin, destination string) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/%s/%s/",
		url.PathEscape(origin), url.PathEscape(destination))
}

func wazeLink(destination string) string {
	return "https://waze.com/ul?q=" + url.QueryEscape(destination) + "&navigate=yes"
}
