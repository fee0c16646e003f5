// Package assist drafts text with a hosted generative model. Every operation
// performs one outbound call, never retries, and turns any failure into a
// fixed fallback so callers can treat it as "assist unavailable".
package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUnavailable is returned by a Client without a configured backend.
var ErrUnavailable = errors.New("assist backend not configured")

// DefaultTone is used when a bulletin draft is requested without a tone.
const DefaultTone = "professional"

// Fallback values returned when the backend fails.
const (
	FallbackBulletinTitle   = "Error"
	FallbackBulletinContent = "Unable to generate the message."
	FallbackReply           = "Thanks for your message."
	EmptyReply              = "Received, I'll get back to you shortly."
	FallbackEmail           = "Unable to generate the email draft."
	EmptyEmail              = "Dear customer, your order is being reshipped."
)

// Operation names used for logs and metrics.
const (
	OpDraftBulletin   = "draft_bulletin"
	OpSuggestReply    = "suggest_reply"
	OpReshipmentEmail = "reshipment_email"
	OpParseEvent      = "parse_event"
)

// Property is one string field of a structured response.
type Property struct {
	Name        string
	Description string
}

// Schema declares the JSON object a structured request must return.
type Schema struct {
	Name       string
	Properties []Property
	Required   []string
}

// Generator is a text/JSON completion backend.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, schema Schema) (string, error)
}

// Recorder counts assist outcomes.
type Recorder interface {
	RecordAssist(operation string, ok bool)
}

// BulletinDraft is a generated bulletin post. Generated is false when the
// values are the fallback.
type BulletinDraft struct {
	Title     string
	Content   string
	Generated bool
}

// ParsedEvent is the structured result of natural-language event parsing.
// Fields are not validated; a partially populated value may be returned.
type ParsedEvent struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
}

// EventSchema is the response schema used by ParseEventFromText.
var EventSchema = Schema{
	Name: "calendar_event",
	Properties: []Property{
		{Name: "title", Description: "Short title of the event"},
		{Name: "date", Description: "Date as YYYY-MM-DD"},
		{Name: "startTime", Description: "Start time as HH:mm"},
		{Name: "endTime", Description: "End time as HH:mm"},
		{Name: "description", Description: "Optional details"},
	},
	Required: []string{"title", "date", "startTime"},
}

var titleLabel = regexp.MustCompile(`(?i)^title:\s*`)

// Client exposes the four drafting operations.
type Client struct {
	gen     Generator
	logger  *zap.Logger
	metrics Recorder
	now     func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.metrics = r }
}

// WithClock overrides the date injected into event parsing prompts.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient wraps gen. A nil gen produces a client that always falls back.
func NewClient(gen Generator, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{gen: gen, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether a backend is configured.
func (c *Client) Available() bool {
	return c != nil && c.gen != nil
}

// DraftBulletinMessage writes a bulletin post about topic. The first line of
// the response becomes the title, the rest the content.
func (c *Client) DraftBulletinMessage(ctx context.Context, topic, tone string) BulletinDraft {
	if strings.TrimSpace(tone) == "" {
		tone = DefaultTone
	}
	prompt := fmt.Sprintf("Write a short company message for a bulletin board about: %q. "+
		"The tone must be %s. Return plain text with a catchy title on the first line followed by the content.", topic, tone)

	text, err := c.text(ctx, OpDraftBulletin, prompt)
	if err != nil {
		return BulletinDraft{Title: FallbackBulletinTitle, Content: FallbackBulletinContent}
	}
	title, content := splitTitle(text)
	return BulletinDraft{Title: title, Content: content, Generated: true}
}

// SuggestReply proposes a reply to a colleague's message.
func (c *Client) SuggestReply(ctx context.Context, incoming string) string {
	prompt := fmt.Sprintf("Analyze this message received from a colleague: %q. "+
		"Suggest a professional, friendly and concise reply. Return only the text of the reply.", incoming)

	text, err := c.text(ctx, OpSuggestReply, prompt)
	if err != nil {
		return FallbackReply
	}
	if text = strings.TrimSpace(text); text == "" {
		return EmptyReply
	}
	return text
}

// DraftReshipmentEmail writes a customer email announcing a reshipment.
func (c *Client) DraftReshipmentEmail(ctx context.Context, customerName, reason, trackingNumber string) string {
	tracking := "Say that they will receive the tracking number shortly."
	if strings.TrimSpace(trackingNumber) != "" {
		tracking = fmt.Sprintf("Include the tracking number: %s.", trackingNumber)
	}
	prompt := fmt.Sprintf("Write a professional and courteous email to the customer %s. "+
		"The subject is the reshipment of their order because of: %q. %s "+
		"The tone must be reassuring and focused on high-quality customer service.", customerName, reason, tracking)

	text, err := c.text(ctx, OpReshipmentEmail, prompt)
	if err != nil {
		return FallbackEmail
	}
	if text = strings.TrimSpace(text); text == "" {
		return EmptyEmail
	}
	return text
}

// ParseEventFromText extracts calendar event fields from free text. It
// returns nil on any failure.
func (c *Client) ParseEventFromText(ctx context.Context, freeText string) *ParsedEvent {
	prompt := fmt.Sprintf("Extract the information for a calendar event from this text: %q. "+
		"Today's date is %s. Format times as HH:mm and the date as YYYY-MM-DD.", freeText, c.now().Format("2006-01-02"))

	if !c.Available() {
		c.record(OpParseEvent, ErrUnavailable)
		return nil
	}
	raw, err := c.gen.GenerateJSON(ctx, prompt, EventSchema)
	if err == nil {
		var parsed *ParsedEvent
		if strings.TrimSpace(raw) == "" {
			raw = "{}"
		}
		if err = json.Unmarshal([]byte(raw), &parsed); err == nil {
			c.record(OpParseEvent, nil)
			return parsed
		}
	}
	c.record(OpParseEvent, err)
	return nil
}

func (c *Client) text(ctx context.Context, op, prompt string) (string, error) {
	if !c.Available() {
		c.record(op, ErrUnavailable)
		return "", ErrUnavailable
	}
	text, err := c.gen.GenerateText(ctx, prompt)
	c.record(op, err)
	return text, err
}

func (c *Client) record(op string, err error) {
	if c.metrics != nil {
		c.metrics.RecordAssist(op, err == nil)
	}
	if err != nil && !errors.Is(err, ErrUnavailable) {
		c.logger.Warn("assist request failed", zap.String("operation", op), zap.Error(err))
	}
}

func splitTitle(text string) (string, string) {
	first, rest, _ := strings.Cut(text, "\n")
	title := strings.TrimSpace(titleLabel.ReplaceAllString(strings.TrimSpace(first), ""))
	return title, strings.TrimSpace(rest)
}
