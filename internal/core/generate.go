package core

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// GenerateOptions configures a single generation.
type GenerateOptions struct {
	// Model overrides the gateway's default model when set.
	Model string

	// Temperature overrides the domain default when set.
	Temperature *float64

	Logger log.FieldLogger
}

// Generate validates details, builds the domain prompt, sends exactly one
// request and normalizes the response. Validation failures return a
// *ValidationError without touching the network.
func Generate(ctx context.Context, requester Requester, details Details, opts GenerateOptions) (Checklist, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	if err := details.Validate(); err != nil {
		return Checklist{}, err
	}

	domain := details.Domain()
	spec, ok := domain.Spec()
	if !ok {
		return Checklist{}, fmt.Errorf("unknown domain: %q", domain)
	}

	temperature := spec.Temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	req := GenerationRequest{
		Prompt:           details.Prompt(),
		ModelName:        opts.Model,
		ResponseMimeType: JSONMimeType,
		Temperature:      &temperature,
	}

	fields := log.Fields{"domain": domain, "model": opts.Model, "prompt_chars": len(req.Prompt)}
	logger.WithFields(fields).Debug("requesting checklist")

	start := time.Now()
	raw, err := requester.Request(ctx, req)
	if err != nil {
		return Checklist{}, fmt.Errorf("generate %s checklist: %w", domain, err)
	}

	checklist := Normalize(domain, raw, logger)
	total, _ := checklist.Counts()
	logger.WithFields(fields).WithFields(log.Fields{
		"groups":   len(checklist.Groups),
		"items":    total,
		"duration": time.Since(start).Round(time.Millisecond).String(),
	}).Info("checklist generated")

	return checklist, nil
}
