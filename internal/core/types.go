package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// JSONMimeType is the response format every checklist prompt asks for.
const JSONMimeType = "application/json"

// Item is one checkable entry of a checklist.
type Item struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Details map[string]any `json:"details,omitempty"` // optional descriptive fields keyed by wire name
	Done    bool           `json:"done"`
}

// Field returns the optional field as display text, or "" when absent.
func (it Item) Field(name string) string {
	v, ok := it.Details[name]
	if !ok || v == nil {
		return ""
	}
	return formatValue(v)
}

// Group is a labeled, ordered run of items.
type Group struct {
	Key   string `json:"key"`
	Items []Item `json:"items"`
}

// Checklist is the normalized result of one generation.
type Checklist struct {
	Domain Domain  `json:"domain"`
	Groups []Group `json:"groups"`
}

// IsEmpty reports whether the checklist has no groups.
func (c Checklist) IsEmpty() bool {
	return len(c.Groups) == 0
}

// Counts returns the number of items and how many are done.
func (c Checklist) Counts() (total, done int) {
	for _, g := range c.Groups {
		for _, it := range g.Items {
			total++
			if it.Done {
				done++
			}
		}
	}
	return total, done
}

// Clone returns a deep copy safe to hand across goroutines.
func (c Checklist) Clone() Checklist {
	out := Checklist{Domain: c.Domain}
	if c.Groups == nil {
		return out
	}
	out.Groups = make([]Group, len(c.Groups))
	for i, g := range c.Groups {
		items := make([]Item, len(g.Items))
		for j, it := range g.Items {
			if it.Details != nil {
				details := make(map[string]any, len(it.Details))
				for k, v := range it.Details {
					details[k] = v
				}
				it.Details = details
			}
			items[j] = it
		}
		out.Groups[i] = Group{Key: g.Key, Items: items}
	}
	return out
}

// GenerationRequest is the gateway wire request.
type GenerationRequest struct {
	Prompt           string   `json:"prompt"`
	ModelName        string   `json:"modelName,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
}

// Requester sends one generation request and returns the decoded JSON value.
// Implemented by the gateway HTTP client and by the in-process llm requester.
type Requester interface {
	Request(ctx context.Context, req GenerationRequest) (any, error)
}

// Details is a domain's form input.
type Details interface {
	Domain() Domain
	Validate() error
	Prompt() string
}

// NewDetails returns a zero details record for d, ready to be decoded into.
func NewDetails(d Domain) (Details, bool) {
	switch d {
	case DomainTrip:
		return &TripDetails{}, true
	case DomainMoving:
		return &MovingDetails{}, true
	case DomainPet:
		return &PetDetails{}, true
	case DomainEvent:
		return &EventDetails{}, true
	case DomainNewBeginnings:
		return &NewBeginningsDetails{}, true
	case DomainProjectGoal:
		return &ProjectGoalDetails{}, true
	}
	return nil, false
}

// GenerationFailedMessage is shown when a failure carries no message of its own.
const GenerationFailedMessage = "Failed to generate content from the AI."

// UserMessage returns the text a user sees for a failed generation. Errors
// that know their user-facing text implement UserMessage() string; anything
// else collapses to GenerationFailedMessage.
func UserMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return GenerationFailedMessage
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
