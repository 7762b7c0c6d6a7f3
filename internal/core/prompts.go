package core

import (
	"fmt"
	"strings"
)

// strictJSONClause is appended to every prompt. Only the root key varies.
func strictJSONClause(rootKey string) string {
	return fmt.Sprintf(`The response MUST be EXCLUSIVELY a single, valid JSON object as described.
ABSOLUTELY NO conversational text, summaries of the request, comments, explanations, or any other non-JSON content should be present in the output, neither before, after, nor embedded within the JSON structure.
Do not wrap the JSON in markdown code fences.
The output must be parsable as JSON without any modification. Only include "%s" at the root.`, rootKey)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// optionalLine renders "- label: value\n" or nothing when value is blank.
func optionalLine(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return fmt.Sprintf("- %s: %s\n", label, value)
}

// BuildTripPrompt builds the packing list prompt.
func BuildTripPrompt(d TripDetails) string {
	return fmt.Sprintf(`You are an expert trip packing assistant. Based on the following trip details, generate a comprehensive, categorized packing checklist.

Trip Details:
- Destination Type: %[1]s
- Trip Duration: %[2]d days
- Planned Activities: %[3]s

Provide the checklist in JSON format. The JSON must have a root key "categories", which is an array of objects. Each category object must have a "name" (string) and an "items" (array) property. Each item in the "items" array must be an object with an "itemName" (string) property, and an optional "quantitySuggestion" (string) property.
Ensure categories are distinct (e.g., "Clothing", "Toiletries", "Electronics", "Documents", "Health & Safety", "Miscellaneous").
Do not include empty categories or categories with no items.
%[4]s

Example of STRICTLY JSON output:
{
  "categories": [
    { "name": "Clothing", "items": [{ "itemName": "T-shirts", "quantitySuggestion": "%[2]d" }, { "itemName": "Pants" }] },
    { "name": "Toiletries", "items": [{ "itemName": "Toothbrush" }, { "itemName": "Toothpaste" }] }
  ]
}
Be practical and tailor the list to the details provided.
`,
		d.DestinationType,
		d.DurationInDays,
		orDefault(d.Activities, "General tourism and leisure"),
		strictJSONClause("categories"),
	)
}

// BuildMovingPrompt builds the moving timeline prompt.
func BuildMovingPrompt(d MovingDetails) string {
	return fmt.Sprintf(`You are an expert moving coordinator. Based on the following moving details, generate a comprehensive, week-by-week moving checklist/timeline.

Moving Details:
- Type of Move: %[1]s
- Moving with Pets: %[2]s
- Moving with Kids: %[3]s
- Additional Information: %[4]s

Provide the checklist in JSON format. The JSON must have a root key "timeline", which is an array of objects. Each object in the "timeline" array represents a period and must have a "week" (string) property indicating the time frame (e.g., "8 Weeks Before Move", "4 Weeks Before Move", "1 Week Before Move", "Moving Day", "First Week After Move"), and a "tasks" (array) property. Each task in the "tasks" array must be an object with a "taskName" (string) property, an optional "notes" (string) property for extra details or tips, and an optional "deadline" (string) property.
Ensure the timeline is practical, detailed, and tailored. If pets or kids are involved, include specific tasks for them. Start from ~8 weeks before the move and continue through the moving day and the first week after the move.
%[5]s

Example of STRICTLY JSON output:
{
  "timeline": [
    {
      "week": "8 Weeks Before Move",
      "tasks": [
        { "taskName": "Create detailed moving budget", "notes": "Factor in all potential costs like movers, supplies, insurance." },
        { "taskName": "Research and get quotes from moving companies", "deadline": "End of 7th week before move" }
      ]
    },
    { "week": "Moving Day", "tasks": [{ "taskName": "Final walkthrough of old home" }, { "taskName": "Supervise movers or loading" }] }
  ]
}
Be specific and actionable.
`,
		d.MoveType,
		yesNo(d.HasPets),
		yesNo(d.HasKids),
		orDefault(d.AdditionalInfo, "None"),
		strictJSONClause("timeline"),
	)
}

// BuildPetPrompt builds the new pet starter kit prompt.
func BuildPetPrompt(d PetDetails) string {
	return fmt.Sprintf(`You are an expert advisor for new pet owners. Based on the following pet details, generate a comprehensive starter kit checklist.

Pet Details:
- Type of Pet: %[1]s
%[2]s- Is the pet a rescue?: %[3]s
- Additional Needs/Considerations: %[4]s

Provide the checklist in JSON format. The JSON must have a root key "sections", which is an array of objects. Each section object must have a "sectionName" (string) (e.g., "Essential Supplies", "Initial Veterinary Care", "Home Preparation", "Feeding Plan", "Basic Training & Socialization", "Safety & Emergency") and an "items" (array) property. Each item in the "items" array must be an object with an "itemName" (string) property, and optional "notes" (string) and "quantitySuggestion" (string) properties.

Tailor the checklist specifically for the given pet type. For example:
- For a %[1]s, list appropriate food, housing, toys, and care items.
- If it's a rescue, include notes about patience, adjustment period, and consulting with the rescue organization for history.
- Address any "Additional Needs" provided.
- Include categories for vet check-ups, vaccinations, and legal requirements (like microchipping or registration if applicable for the pet type).
- Suggest initial training steps relevant to the pet type.
%[5]s

Example of STRICTLY JSON output:
{
  "sections": [
    {
      "sectionName": "Essential Supplies",
      "items": [
        { "itemName": "Appropriate food for %[1]s", "notes": "Consult vet for recommendations, consider age and breed if relevant.", "quantitySuggestion": "1 small bag to start" },
        { "itemName": "Food and water bowls", "notes": "Choose material like stainless steel or ceramic." }
      ]
    },
    {
      "sectionName": "Initial Veterinary Care",
      "items": [
        { "itemName": "Schedule first vet check-up", "notes": "Within the first week if possible." },
        { "itemName": "Discuss vaccination schedule" }
      ]
    }
  ]
}
Be thorough, practical, and empathetic to a new pet owner.
`,
		d.PetType,
		optionalLine("Pet's Name (if known)", d.PetName),
		yesNo(d.IsRescue),
		orDefault(d.AdditionalNeeds, "None specified"),
		strictJSONClause("sections"),
	)
}

// BuildEventPrompt builds the event planning prompt.
func BuildEventPrompt(d EventDetails) string {
	return fmt.Sprintf(`You are an expert event planning assistant. Based on the following event details, generate a comprehensive, categorized event planning checklist.

Event Details:
- Type of Event: %[1]s
- Estimated Guest Count: %[2]d
- Budget Description: %[3]s
- Venue Type: %[4]s
- Primary Audience: %[5]s
%[6]s- Additional Information: %[7]s

Provide the checklist in JSON format. The JSON must have a root key "eventPlanSections", which is an array of objects. Each section object must have a "sectionName" (string) (e.g., "Initial Planning & Budgeting", "Guest List & Invitations", "Venue Selection & Logistics", "Food & Beverage Planning", "Decorations & Ambiance", "Entertainment & Activities", "Day-Of Coordination", "Post-Event Tasks") and a "tasks" (array) property. Each task in the "tasks" array must be an object with a "taskName" (string) property, and optional "notes" (string) for extra details or tips, and an optional "suggestedTimeline" (string) property (e.g., "ASAP", "6-8 Weeks Out", "1 Week Before", "Event Day").

Tailor the checklist specifically for the given event type, audience, and other details. For example:
- For a "%[1]s", include relevant planning steps, vendor considerations, and activity ideas.
- If the audience is "%[5]s", suggest age-appropriate tasks.
- Consider the "%[3]s" when suggesting options.
- Address any "Additional Information" provided.
- Tasks should be actionable and cover the full lifecycle of event planning from initial thoughts to post-event wrap-up.
%[8]s

Example of STRICTLY JSON output:
{
  "eventPlanSections": [
    {
      "sectionName": "Initial Planning & Budgeting",
      "tasks": [
        { "taskName": "Define event goals and objectives", "notes": "What is the purpose of this %[1]s?", "suggestedTimeline": "ASAP" },
        { "taskName": "Set a preliminary budget based on description: %[3]s", "notes": "Allocate funds to different categories like venue, food, decor." }
      ]
    },
    {
      "sectionName": "Guest List & Invitations",
      "tasks": [
        { "taskName": "Compile guest list (approx %[2]d guests)", "suggestedTimeline": "Soon after initial planning" },
        { "taskName": "Design and send invitations" }
      ]
    }
  ]
}
Be thorough, practical, and provide a clear, organized plan.
`,
		d.EventType,
		d.GuestCount,
		d.BudgetDescription,
		d.VenueType,
		d.Audience,
		optionalLine("Event Date/Timeline", d.EventDateOrTimeline),
		orDefault(d.AdditionalInfo, "None specified"),
		strictJSONClause("eventPlanSections"),
	)
}

// BuildNewBeginningsPrompt builds the life transition action plan prompt.
func BuildNewBeginningsPrompt(d NewBeginningsDetails) string {
	additional := orDefault(d.AdditionalContext, "General guidance requested.")
	return fmt.Sprintf(`You are an empathetic and practical life coach, specializing in helping people navigate significant life transitions. Based on the following "New Beginnings" event details, generate a comprehensive, categorized action plan.

Life Event Details:
- Type of Event: %[1]s
- Additional Context: %[2]s

Provide the action plan in JSON format. The JSON must have a root key "actionPlanSections", which is an array of objects. Each section object must have a "sectionName" (string) (e.g., "Preparatory Steps", "First 30 Days", "Emotional & Mental Well-being", "Financial Adjustments", "Building Support Systems", "Long-Term Integration") and a "tasks" (array) property. Each task in the "tasks" array must be an object with a "taskName" (string) property, and optional "notes" (string) for extra details or tips, an optional "suggestedTimeline" (string) property (e.g., "ASAP", "Month 1", "Ongoing", "Before X date"), and an optional "importance" (string, values: "High", "Medium", "Low").

Tailor the action plan specifically for the given life event ("%[1]s") and any "additionalContext" provided.
- For "%[1]s", include relevant practical tasks, considerations for emotional adjustment, and resources if applicable.
- If the context is "%[2]s", incorporate advice related to those specifics.
- Tasks should be actionable and cover various aspects of the transition: logistical, emotional, social, and financial.
- Emphasize self-care and resilience-building where appropriate.
%[3]s

Example of STRICTLY JSON output for "Starting College":
{
  "actionPlanSections": [
    {
      "sectionName": "Academic & Logistical Preparation (Pre-Arrival)",
      "tasks": [
        { "taskName": "Finalize course registration", "suggestedTimeline": "1-2 months before", "importance": "High" },
        { "taskName": "Arrange housing and meal plan", "notes": "Confirm move-in dates and procedures." },
        { "taskName": "Purchase textbooks and supplies" }
      ]
    },
    {
      "sectionName": "First Month on Campus",
      "tasks": [
        { "taskName": "Attend orientation sessions", "importance": "High" },
        { "taskName": "Explore campus and locate key buildings (library, student health, etc.)" },
        { "taskName": "Introduce yourself to RAs/dorm mates and professors" }
      ]
    }
  ]
}
Be thorough, supportive, and provide a clear, organized action plan to help the user feel prepared and empowered.
`,
		d.EventType,
		additional,
		strictJSONClause("actionPlanSections"),
	)
}

// BuildProjectGoalPrompt builds the phased project plan prompt.
func BuildProjectGoalPrompt(d ProjectGoalDetails) string {
	considerations := orDefault(d.KeyConsiderations, "None specified, general guidance requested.")
	return fmt.Sprintf(`You are an expert project manager and productivity coach. Based on the following project or goal details, generate a comprehensive, phased action plan.

Project/Goal Details:
- Goal Type: %[1]s
- Goal Statement: %[2]s
%[3]s- Key Considerations/Specifics: %[4]s

Provide the action plan in JSON format. The JSON must have a root key "projectPhases", which is an array of objects. Each phase object must have a "phaseName" (string) (e.g., "Phase 1: Planning & Research", "Phase 2: Development & Creation", "Milestone: MVP Launch") and a "tasks" (array) property. Each task in the "tasks" array must be an object with:
- "taskName" (string): A clear, actionable task.
- "details" (string, optional): Further explanation, tips, or sub-steps for the task.
- "suggestedTimelineOrEffort" (string, optional): Estimated time (e.g., "Approx. 3 hours", "Due by end of Week 2").
- "priority" (string, optional, values: "High", "Medium", "Low"): The importance of the task.

Tailor the action plan specifically for the given "%[1]s" and "%[2]s".
- Break down the goal into logical, manageable phases.
- Within each phase, list specific, actionable tasks.
- Consider the "%[4]s" provided by the user (e.g., budget, resources, specific sub-goals) and incorporate them into the plan.
- For example, if Goal Type is "Start a Podcast", phases might include: Concept & Niche Definition, Equipment Setup, Content Planning, Recording & Editing, Publishing & Distribution, Marketing & Growth.
- If Goal Type is "Train for a Fitness Event", phases might be: Baseline Assessment & Goal Setting, Training Block 1, Training Block 2, Tapering & Race Prep, Post-Event Recovery.
- Ensure tasks are practical and help the user make tangible progress.
%[5]s

Example of STRICTLY JSON output for "Start a Podcast":
{
  "projectPhases": [
    {
      "phaseName": "Phase 1: Concept & Planning",
      "tasks": [
        { "taskName": "Define podcast niche and target audience", "details": "Research existing podcasts in your area of interest. Identify unique angles.", "priority": "High", "suggestedTimelineOrEffort": "Week 1" },
        { "taskName": "Choose podcast name and branding elements", "details": "Check for name availability (domain, social media). Sketch logo ideas." },
        { "taskName": "Outline first 5-10 episode ideas", "priority": "Medium" }
      ]
    },
    {
      "phaseName": "Phase 2: Equipment & Software Setup",
      "tasks": [
        { "taskName": "Research and purchase microphone", "details": "Consider budget from key considerations. USB mics are good for beginners.", "priority": "High" },
        { "taskName": "Select and learn recording/editing software", "details": "Audacity (free), GarageBand (free on Mac), or Descript/Adobe Audition (paid)." }
      ]
    }
  ]
}
Be thorough, motivating, and provide a clear roadmap to achievement.
`,
		d.GoalType,
		d.GoalStatement,
		optionalLine("Target Timeline", d.TargetTimeline),
		considerations,
		strictJSONClause("projectPhases"),
	)
}

func (d TripDetails) Prompt() string          { return BuildTripPrompt(d) }
func (d MovingDetails) Prompt() string        { return BuildMovingPrompt(d) }
func (d PetDetails) Prompt() string           { return BuildPetPrompt(d) }
func (d EventDetails) Prompt() string         { return BuildEventPrompt(d) }
func (d NewBeginningsDetails) Prompt() string { return BuildNewBeginningsPrompt(d) }
func (d ProjectGoalDetails) Prompt() string   { return BuildProjectGoalPrompt(d) }
