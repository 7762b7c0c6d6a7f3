package core

import "strings"

// DestinationType is the kind of trip.
type DestinationType string

const (
	DestinationBeach    DestinationType = "Beach"
	DestinationCity     DestinationType = "City"
	DestinationHiking   DestinationType = "Hiking"
	DestinationBusiness DestinationType = "Business Trip"
	DestinationFamily   DestinationType = "Family Visit"
)

var DestinationTypes = []DestinationType{DestinationBeach, DestinationCity, DestinationHiking, DestinationBusiness, DestinationFamily}

// MoveType is the distance class of a move.
type MoveType string

const (
	MoveLocal        MoveType = "Local"
	MoveLongDistance MoveType = "Long-Distance"
)

var MoveTypes = []MoveType{MoveLocal, MoveLongDistance}

type PetType string

const (
	PetDog     PetType = "Dog"
	PetCat     PetType = "Cat"
	PetHamster PetType = "Hamster"
	PetBird    PetType = "Bird"
	PetFish    PetType = "Fish"
	PetReptile PetType = "Reptile"
	PetOther   PetType = "Other"
)

var PetTypes = []PetType{PetDog, PetCat, PetHamster, PetBird, PetFish, PetReptile, PetOther}

type EventType string

const (
	EventBirthdayParty EventType = "Birthday Party"
	EventWedding       EventType = "Wedding"
	EventBabyShower    EventType = "Baby Shower"
	EventHolidayDinner EventType = "Holiday Dinner (e.g., Thanksgiving, Christmas)"
	EventBBQ           EventType = "BBQ / Casual Gathering"
	EventCorporate     EventType = "Corporate Event"
	EventAnniversary   EventType = "Anniversary Celebration"
	EventGraduation    EventType = "Graduation Party"
	EventOther         EventType = "Other (Specify in details)"
)

var EventTypes = []EventType{
	EventBirthdayParty, EventWedding, EventBabyShower, EventHolidayDinner, EventBBQ,
	EventCorporate, EventAnniversary, EventGraduation, EventOther,
}

type VenueType string

const (
	VenueIndoor  VenueType = "Indoor"
	VenueOutdoor VenueType = "Outdoor"
	VenueMixed   VenueType = "Mixed (Indoor & Outdoor)"
)

var VenueTypes = []VenueType{VenueIndoor, VenueOutdoor, VenueMixed}

type Audience string

const (
	AudienceChildren  Audience = "Primarily Children"
	AudienceAdults    Audience = "Primarily Adults"
	AudienceMixedAges Audience = "Mixed Ages (Children & Adults)"
	AudienceTeenagers Audience = "Primarily Teenagers"
)

var Audiences = []Audience{AudienceChildren, AudienceAdults, AudienceMixedAges, AudienceTeenagers}

// LifeEvent is a "new beginnings" transition.
type LifeEvent string

const (
	LifeStartingCollege LifeEvent = "Starting College"
	LifeNewBaby         LifeEvent = "Preparing for a New Baby"
	LifeNewJob          LifeEvent = "Starting a New Job"
	LifeNewCity         LifeEvent = "Moving to a New City (Not just a local move)"
	LifeRecovery        LifeEvent = "Recovering from a Major Illness or Surgery"
	LifePostBreakup     LifeEvent = "Navigating Life Post-Breakup/Divorce"
	LifeCareerChange    LifeEvent = "Making a Significant Career Change"
	LifeEmptyNest       LifeEvent = "Adjusting to an Empty Nest"
	LifeOther           LifeEvent = "Other Significant Life Change"
)

var LifeEvents = []LifeEvent{
	LifeStartingCollege, LifeNewBaby, LifeNewJob, LifeNewCity, LifeRecovery,
	LifePostBreakup, LifeCareerChange, LifeEmptyNest, LifeOther,
}

type GoalType string

const (
	GoalPodcast GoalType = "Start a Podcast"
	GoalBlog    GoalType = "Launch a Blog/Website"
	GoalFitness GoalType = "Train for a Fitness Event (e.g., 5k, Marathon)"
	GoalClean   GoalType = "Deep Clean and Organize House (e.g., Spring Cleaning)"
	GoalSkill   GoalType = "Learn a New Skill (e.g., Coding, Language, Instrument)"
	GoalBook    GoalType = "Write a Book/Novel"
	GoalTrip    GoalType = "Plan a Large or Complex Trip"
	GoalFinance GoalType = "Achieve a Personal Finance Goal (e.g., Save for Downpayment)"
	GoalCustom  GoalType = "Other Custom Project/Goal"
)

var GoalTypes = []GoalType{GoalPodcast, GoalBlog, GoalFitness, GoalClean, GoalSkill, GoalBook, GoalTrip, GoalFinance, GoalCustom}

// TripDetails is the trip form.
type TripDetails struct {
	DestinationType DestinationType `json:"destinationType"`
	DurationInDays  int             `json:"durationInDays"`
	Activities      string          `json:"activities"`
}

func (TripDetails) Domain() Domain { return DomainTrip }

func (d TripDetails) Validate() error {
	if d.DestinationType == "" {
		return &ValidationError{Field: "destinationType", Message: "required"}
	}
	if d.DurationInDays <= 0 {
		return &ValidationError{Field: "durationInDays", Message: "must be greater than 0"}
	}
	return nil
}

// MovingDetails is the moving form.
type MovingDetails struct {
	MoveType       MoveType `json:"moveType"`
	HasPets        bool     `json:"hasPets"`
	HasKids        bool     `json:"hasKids"`
	AdditionalInfo string   `json:"additionalInfo,omitempty"`
}

func (MovingDetails) Domain() Domain { return DomainMoving }

func (d MovingDetails) Validate() error {
	if d.MoveType == "" {
		return &ValidationError{Field: "moveType", Message: "required"}
	}
	return nil
}

// PetDetails is the new-pet form.
type PetDetails struct {
	PetType         PetType `json:"petType"`
	PetName         string  `json:"petName,omitempty"`
	IsRescue        bool    `json:"isRescue"`
	AdditionalNeeds string  `json:"additionalNeeds,omitempty"`
}

func (PetDetails) Domain() Domain { return DomainPet }

func (d PetDetails) Validate() error {
	if d.PetType == "" {
		return &ValidationError{Field: "petType", Message: "required"}
	}
	return nil
}

// EventDetails is the event planning form.
type EventDetails struct {
	EventType           EventType `json:"eventType"`
	GuestCount          int       `json:"guestCount"`
	BudgetDescription   string    `json:"budgetDescription"`
	VenueType           VenueType `json:"venueType"`
	Audience            Audience  `json:"audience"`
	EventDateOrTimeline string    `json:"eventDateOrTimeline,omitempty"`
	AdditionalInfo      string    `json:"additionalInfo,omitempty"`
}

func (EventDetails) Domain() Domain { return DomainEvent }

func (d EventDetails) Validate() error {
	switch {
	case d.EventType == "":
		return &ValidationError{Field: "eventType", Message: "required"}
	case d.GuestCount <= 0:
		return &ValidationError{Field: "guestCount", Message: "must be greater than 0"}
	case d.VenueType == "":
		return &ValidationError{Field: "venueType", Message: "required"}
	case d.Audience == "":
		return &ValidationError{Field: "audience", Message: "required"}
	}
	return nil
}

// NewBeginningsDetails is the life transition form.
type NewBeginningsDetails struct {
	EventType         LifeEvent `json:"eventType"`
	AdditionalContext string    `json:"additionalContext,omitempty"`
}

func (NewBeginningsDetails) Domain() Domain { return DomainNewBeginnings }

func (d NewBeginningsDetails) Validate() error {
	if d.EventType == "" {
		return &ValidationError{Field: "eventType", Message: "required"}
	}
	return nil
}

// ProjectGoalDetails is the project/goal form.
type ProjectGoalDetails struct {
	GoalType          GoalType `json:"goalType"`
	GoalStatement     string   `json:"goalStatement"`
	TargetTimeline    string   `json:"targetTimeline,omitempty"`
	KeyConsiderations string   `json:"keyConsiderations,omitempty"`
}

func (ProjectGoalDetails) Domain() Domain { return DomainProjectGoal }

func (d ProjectGoalDetails) Validate() error {
	if d.GoalType == "" {
		return &ValidationError{Field: "goalType", Message: "required"}
	}
	if strings.TrimSpace(d.GoalStatement) == "" {
		return &ValidationError{Field: "goalStatement", Message: "required"}
	}
	return nil
}
