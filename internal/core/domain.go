package core

import (
	"fmt"
	"strings"
)

// Domain identifies one checklist scenario.
type Domain string

const (
	DomainTrip          Domain = "trip"
	DomainMoving        Domain = "moving"
	DomainPet           Domain = "pet"
	DomainEvent         Domain = "event"
	DomainNewBeginnings Domain = "new_beginnings"
	DomainProjectGoal   Domain = "project_goal"
)

// Domains lists every domain in display order.
var Domains = []Domain{
	DomainTrip,
	DomainMoving,
	DomainPet,
	DomainEvent,
	DomainNewBeginnings,
	DomainProjectGoal,
}

// Column is an export column backed by an optional item field.
type Column struct {
	Header string
	Field  string
}

// DomainSpec describes the JSON contract and presentation of one domain.
type DomainSpec struct {
	Domain      Domain
	Title       string
	Description string

	// Wire contract.
	RootKey        string
	GroupField     string
	ItemsField     string
	NameField      string
	OptionalFields []string

	GroupPlaceholder string
	ItemPlaceholder  string

	Temperature float64

	// Export layout. NameHeader labels the first column.
	NameHeader string
	Columns    []Column
}

var domainSpecs = map[Domain]DomainSpec{
	DomainTrip: {
		Domain:           DomainTrip,
		Title:            "Craft Your Perfect Trip Packing List",
		Description:      "Packing list for a trip",
		RootKey:          "categories",
		GroupField:       "name",
		ItemsField:       "items",
		NameField:        "itemName",
		OptionalFields:   []string{"quantitySuggestion"},
		GroupPlaceholder: "Unnamed Category",
		ItemPlaceholder:  "Unnamed Item",
		Temperature:      0.5,
		NameHeader:       "Item",
		Columns: []Column{
			{Header: "Quantity", Field: "quantitySuggestion"},
		},
	},
	DomainMoving: {
		Domain:           DomainMoving,
		Title:            "Plan Your Smoothest Move Yet",
		Description:      "Week-by-week moving timeline",
		RootKey:          "timeline",
		GroupField:       "week",
		ItemsField:       "tasks",
		NameField:        "taskName",
		OptionalFields:   []string{"notes", "deadline"},
		GroupPlaceholder: "Unnamed Week",
		ItemPlaceholder:  "Unnamed Task",
		Temperature:      0.6,
		NameHeader:       "Task",
		Columns: []Column{
			{Header: "Notes", Field: "notes"},
			{Header: "Deadline", Field: "deadline"},
		},
	},
	DomainPet: {
		Domain:           DomainPet,
		Title:            "Assemble Your New Pet's Welcome Kit",
		Description:      "Starter kit for a new pet",
		RootKey:          "sections",
		GroupField:       "sectionName",
		ItemsField:       "items",
		NameField:        "itemName",
		OptionalFields:   []string{"notes", "quantitySuggestion"},
		GroupPlaceholder: "Unnamed Section",
		ItemPlaceholder:  "Unnamed Item",
		Temperature:      0.65,
		NameHeader:       "Item",
		Columns: []Column{
			{Header: "Quantity", Field: "quantitySuggestion"},
			{Header: "Notes", Field: "notes"},
		},
	},
	DomainEvent: {
		Domain:           DomainEvent,
		Title:            "Design Your Unforgettable Event",
		Description:      "Event planning checklist",
		RootKey:          "eventPlanSections",
		GroupField:       "sectionName",
		ItemsField:       "tasks",
		NameField:        "taskName",
		OptionalFields:   []string{"notes", "suggestedTimeline"},
		GroupPlaceholder: "Unnamed Section",
		ItemPlaceholder:  "Unnamed Task",
		Temperature:      0.5,
		NameHeader:       "Task",
		Columns: []Column{
			{Header: "Timeline", Field: "suggestedTimeline"},
			{Header: "Notes", Field: "notes"},
		},
	},
	DomainNewBeginnings: {
		Domain:           DomainNewBeginnings,
		Title:            "Navigate Your New Beginning with Confidence",
		Description:      "Action plan for a life transition",
		RootKey:          "actionPlanSections",
		GroupField:       "sectionName",
		ItemsField:       "tasks",
		NameField:        "taskName",
		OptionalFields:   []string{"notes", "suggestedTimeline", "importance"},
		GroupPlaceholder: "Unnamed Section",
		ItemPlaceholder:  "Unnamed Task",
		Temperature:      0.6,
		NameHeader:       "Task",
		Columns: []Column{
			{Header: "Importance", Field: "importance"},
			{Header: "Timeline", Field: "suggestedTimeline"},
			{Header: "Notes", Field: "notes"},
		},
	},
	DomainProjectGoal: {
		Domain:           DomainProjectGoal,
		Title:            "Chart Your Path to Project Success",
		Description:      "Phased plan for a personal project or goal",
		RootKey:          "projectPhases",
		GroupField:       "phaseName",
		ItemsField:       "tasks",
		NameField:        "taskName",
		OptionalFields:   []string{"details", "suggestedTimelineOrEffort", "priority"},
		GroupPlaceholder: "Unnamed Phase",
		ItemPlaceholder:  "Unnamed Task",
		Temperature:      0.6,
		NameHeader:       "Task",
		Columns: []Column{
			{Header: "Priority", Field: "priority"},
			{Header: "Timeline/Effort", Field: "suggestedTimelineOrEffort"},
			{Header: "Details", Field: "details"},
		},
	},
}

// Spec returns the configuration record for d.
func (d Domain) Spec() (DomainSpec, bool) {
	spec, ok := domainSpecs[d]
	return spec, ok
}

// Slug renders the domain for file names ("new_beginnings" -> "new-beginnings").
func (d Domain) Slug() string {
	return strings.ReplaceAll(string(d), "_", "-")
}

func (d Domain) String() string {
	return string(d)
}

// ParseDomain accepts a domain name in either snake or kebab case.
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := domainSpecs[d]; !ok {
		return "", fmt.Errorf("unknown domain: %q", s)
	}
	return d, nil
}
