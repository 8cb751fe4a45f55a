package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/honeynil/BlackMarketService/internal/models"
)

const (
	defaultColor = 0xFFFFFF
	timeLayout   = "2006-01-02 15:04:05"
)

// Embed is the configurable look of one event type. Description may use the
// %item%, %price%, %time%, %buyer% and %seller% placeholders.
type Embed struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

func DefaultEmbeds() map[models.EventType]Embed {
	return map[models.EventType]Embed{
		models.EventPurchaseCompleted: {
			Title:       "Marketplace purchase",
			Description: "%buyer% bought %item% from %seller% for %price% at %time%",
			Color:       "#00FF00",
		},
		models.EventListingRotated: {
			Title:       "Black market",
			Description: "%item% from %seller% is now on the black market for %price%",
			Color:       "#000000",
		},
		models.EventOperatorAlert: {
			Title:       "Operator attention required",
			Description: "Purchase of %item% by %buyer% from %seller% for %price% failed at %time%",
			Color:       "#FF0000",
		},
	}
}

type Discord struct {
	url    string
	embeds map[models.EventType]Embed
	client *http.Client
}

func NewDiscord(url string, embeds map[models.EventType]Embed, client *http.Client) *Discord {
	merged := DefaultEmbeds()
	for k, v := range embeds {
		merged[k] = v
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Discord{url: url, embeds: merged, client: client}
}

type embedPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

type webhookPayload struct {
	Embeds []embedPayload `json:"embeds"`
}

// ParseColor accepts "#RRGGBB" or "RRGGBB" and falls back to white.
func ParseColor(hex string) int {
	v, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(hex), "#"), 16, 32)
	if err != nil || v < 0 || v > 0xFFFFFF {
		return defaultColor
	}
	return int(v)
}

func Render(template string, event models.Event) string {
	description := strings.NewReplacer(
		"%item%", string(event.ItemPayload),
		"%price%", event.Price.StringFixed(2),
		"%time%", event.OccurredAt.UTC().Format(timeLayout),
		"%buyer%", event.BuyerID,
		"%seller%", event.SellerID,
	).Replace(template)
	if event.Type == models.EventOperatorAlert && event.Message != "" {
		description += "\n" + event.Message
	}
	return description
}

// Handle posts one event as a Discord embed. It satisfies the Kafka
// consumer's EventHandler.
func (d *Discord) Handle(ctx context.Context, event models.Event) error {
	embed, ok := d.embeds[event.Type]
	if !ok {
		return fmt.Errorf("no embed configured for event type %q", event.Type)
	}

	body, err := json.Marshal(webhookPayload{Embeds: []embedPayload{{
		Title:       embed.Title,
		Description: Render(embed.Description, event),
		Color:       ParseColor(embed.Color),
	}}})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	slog.Debug("webhook delivered", "type", event.Type, "listing_id", event.ListingID)
	return nil
}
