package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/pflag"

	"github.com/dhabedank/genchecklist/internal/core"
)

// detailFlags holds every domain's form fields. Only the fields of the
// requested domain are read.
type detailFlags struct {
	file string

	// trip
	destination string
	days        int
	activities  string

	// moving
	moveType string
	pets     bool
	kids     bool

	// pet
	petType  string
	petName  string
	rescue   bool
	petNeeds string

	// event
	eventType string
	guests    int
	budget    string
	venue     string
	audience  string
	when      string

	// new_beginnings
	lifeEvent string

	// project_goal
	goalType       string
	goal           string
	timeline       string
	considerations string

	// shared free text: moving/event additional info, new beginnings context
	info string
}

func (f *detailFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.file, "details", "", "JSON file with the form fields (overrides the flags below)")

	fs.StringVar(&f.destination, "destination", "", "trip: destination type (Beach/City/Hiking/Business Trip/Family Visit)")
	fs.IntVar(&f.days, "days", 0, "trip: duration in days")
	fs.StringVar(&f.activities, "activities", "", "trip: planned activities")

	fs.StringVar(&f.moveType, "move-type", "", "moving: Local or Long-Distance")
	fs.BoolVar(&f.pets, "pets", false, "moving: moving with pets")
	fs.BoolVar(&f.kids, "kids", false, "moving: moving with kids")

	fs.StringVar(&f.petType, "pet-type", "", "pet: Dog/Cat/Hamster/Bird/Fish/Reptile/Other")
	fs.StringVar(&f.petName, "pet-name", "", "pet: the pet's name")
	fs.BoolVar(&f.rescue, "rescue", false, "pet: rescue animal")
	fs.StringVar(&f.petNeeds, "needs", "", "pet: additional needs")

	fs.StringVar(&f.eventType, "event-type", "", "event: type of event (prefix match, e.g. wedding)")
	fs.IntVar(&f.guests, "guests", 0, "event: number of guests")
	fs.StringVar(&f.budget, "budget", "", "event: budget description")
	fs.StringVar(&f.venue, "venue", "", "event: Indoor/Outdoor/Mixed")
	fs.StringVar(&f.audience, "audience", "", "event: children/adults/mixed/teenagers")
	fs.StringVar(&f.when, "when", "", "event: date or timeline")

	fs.StringVar(&f.lifeEvent, "life-event", "", "new_beginnings: the transition (prefix match, e.g. starting college)")

	fs.StringVar(&f.goalType, "goal-type", "", "project_goal: kind of goal (prefix match, e.g. start a podcast)")
	fs.StringVar(&f.goal, "goal", "", "project_goal: goal statement")
	fs.StringVar(&f.timeline, "timeline", "", "project_goal: target timeline")
	fs.StringVar(&f.considerations, "considerations", "", "project_goal: key considerations")

	fs.StringVar(&f.info, "info", "", "moving/event/new_beginnings: additional information")
}

// build returns the details record for d. It does not validate.
func (f *detailFlags) build(d core.Domain) (core.Details, error) {
	if f.file != "" {
		return readDetailsFile(d, f.file)
	}

	var err error
	pick := func(value string, pickFn func(string) (string, error)) string {
		if value == "" || err != nil {
			return value
		}
		var out string
		out, err = pickFn(value)
		return out
	}

	switch d {
	case core.DomainTrip:
		out := &core.TripDetails{DurationInDays: f.days, Activities: f.activities}
		out.DestinationType = core.DestinationType(pick(f.destination, optionPicker(core.DestinationTypes)))
		return out, err
	case core.DomainMoving:
		out := &core.MovingDetails{HasPets: f.pets, HasKids: f.kids, AdditionalInfo: f.info}
		out.MoveType = core.MoveType(pick(f.moveType, optionPicker(core.MoveTypes)))
		return out, err
	case core.DomainPet:
		out := &core.PetDetails{PetName: f.petName, IsRescue: f.rescue, AdditionalNeeds: f.petNeeds}
		out.PetType = core.PetType(pick(f.petType, optionPicker(core.PetTypes)))
		return out, err
	case core.DomainEvent:
		out := &core.EventDetails{
			GuestCount:          f.guests,
			BudgetDescription:   f.budget,
			EventDateOrTimeline: f.when,
			AdditionalInfo:      f.info,
		}
		out.EventType = core.EventType(pick(f.eventType, optionPicker(core.EventTypes)))
		out.VenueType = core.VenueType(pick(f.venue, optionPicker(core.VenueTypes)))
		out.Audience = core.Audience(pick(f.audience, audiencePicker))
		return out, err
	case core.DomainNewBeginnings:
		out := &core.NewBeginningsDetails{AdditionalContext: f.info}
		out.EventType = core.LifeEvent(pick(f.lifeEvent, optionPicker(core.LifeEvents)))
		return out, err
	case core.DomainProjectGoal:
		out := &core.ProjectGoalDetails{
			GoalStatement:     f.goal,
			TargetTimeline:    f.timeline,
			KeyConsiderations: f.considerations,
		}
		out.GoalType = core.GoalType(pick(f.goalType, optionPicker(core.GoalTypes)))
		return out, err
	}
	return nil, fmt.Errorf("unknown domain: %q", d)
}

func readDetailsFile(d core.Domain, path string) (core.Details, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read details file: %w", err)
	}
	details, ok := core.NewDetails(d)
	if !ok {
		return nil, fmt.Errorf("unknown domain: %q", d)
	}
	if err := sonic.Unmarshal(data, details); err != nil {
		return nil, fmt.Errorf("failed to parse details file: %w", err)
	}
	return details, nil
}

// optionPicker matches user input against a fixed option list: exact match
// first (case-insensitive), then a unique prefix.
func optionPicker[T ~string](options []T) func(string) (string, error) {
	return func(value string) (string, error) {
		want := strings.ToLower(strings.TrimSpace(value))
		var matches []string
		for _, o := range options {
			opt := strings.ToLower(string(o))
			if opt == want {
				return string(o), nil
			}
			if strings.HasPrefix(opt, want) {
				matches = append(matches, string(o))
			}
		}
		if len(matches) == 1 {
			return matches[0], nil
		}
		names := make([]string, len(options))
		for i, o := range options {
			names[i] = string(o)
		}
		if len(matches) > 1 {
			return "", fmt.Errorf("%q is ambiguous: %s", value, strings.Join(matches, ", "))
		}
		return "", fmt.Errorf("%q is not one of: %s", value, strings.Join(names, ", "))
	}
}

// audiencePicker also accepts the short forms shown in --help.
func audiencePicker(value string) (string, error) {
	short := map[string]core.Audience{
		"children":  core.AudienceChildren,
		"adults":    core.AudienceAdults,
		"mixed":     core.AudienceMixedAges,
		"teenagers": core.AudienceTeenagers,
	}
	if a, ok := short[strings.ToLower(strings.TrimSpace(value))]; ok {
		return string(a), nil
	}
	return optionPicker(core.Audiences)(value)
}
