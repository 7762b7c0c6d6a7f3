package core

import (
	"context"
	"errors"
	"testing"
)

type fakeRequester struct {
	calls    int
	last     GenerationRequest
	response any
	err      error
}

func (f *fakeRequester) Request(ctx context.Context, req GenerationRequest) (any, error) {
	f.calls++
	f.last = req
	return f.response, f.err
}

func TestGenerate(t *testing.T) {
	req := &fakeRequester{
		response: decode(t, `{"categories":[{"name":"Clothing","items":[{"itemName":"Shirts"}]}]}`),
	}
	details := TripDetails{DestinationType: DestinationBeach, DurationInDays: 3, Activities: "swimming"}

	cl, err := Generate(context.Background(), req, details, GenerateOptions{Model: "test-model", Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if req.calls != 1 {
		t.Errorf("calls = %d, want exactly 1", req.calls)
	}
	if req.last.ModelName != "test-model" {
		t.Errorf("model = %q, want test-model", req.last.ModelName)
	}
	if req.last.ResponseMimeType != JSONMimeType {
		t.Errorf("mime = %q, want %q", req.last.ResponseMimeType, JSONMimeType)
	}
	if req.last.Temperature == nil || *req.last.Temperature != 0.5 {
		t.Errorf("temperature = %v, want 0.5", req.last.Temperature)
	}
	if req.last.Prompt != details.Prompt() {
		t.Error("request should carry the domain prompt")
	}
	if cl.Domain != DomainTrip || len(cl.Groups) != 1 || cl.Groups[0].Items[0].Name != "Shirts" {
		t.Errorf("unexpected checklist %+v", cl)
	}
}

func TestGenerateTemperatureOverride(t *testing.T) {
	req := &fakeRequester{response: map[string]any{}}
	temp := 0.9

	_, err := Generate(context.Background(), req, PetDetails{PetType: PetFish}, GenerateOptions{Temperature: &temp, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if *req.last.Temperature != 0.9 {
		t.Errorf("temperature = %v, want 0.9", *req.last.Temperature)
	}
}

func TestGenerateValidationSkipsNetwork(t *testing.T) {
	tests := []struct {
		name    string
		details Details
		field   string
	}{
		{"zero duration", TripDetails{DestinationType: DestinationCity}, "durationInDays"},
		{"negative guests", EventDetails{EventType: EventWedding, GuestCount: -1, VenueType: VenueIndoor, Audience: AudienceAdults}, "guestCount"},
		{"blank goal", ProjectGoalDetails{GoalType: GoalPodcast, GoalStatement: "   "}, "goalStatement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &fakeRequester{}
			_, err := Generate(context.Background(), req, tt.details, GenerateOptions{Logger: quietLogger()})

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
			if req.calls != 0 {
				t.Errorf("calls = %d, want 0", req.calls)
			}
		})
	}
}

func TestGenerateWrapsRequestError(t *testing.T) {
	upstream := errors.New("quota exceeded")
	req := &fakeRequester{err: upstream}

	_, err := Generate(context.Background(), req, MovingDetails{MoveType: MoveLocal}, GenerateOptions{Logger: quietLogger()})
	if !errors.Is(err, upstream) {
		t.Errorf("err = %v, want wrapped upstream error", err)
	}
}
