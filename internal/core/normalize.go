package core

import (
	"math"
	"strconv"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// newItemID mints item ids. Replaced in tests.
var newItemID = uuid.NewString

// Normalize converts a decoded model response into a checklist for domain d.
//
// raw is the output of a JSON decode into any (maps, slices, float64, string,
// bool, nil). Missing names fall back to the domain placeholders, optional
// fields are copied only when present and non-null, and groups left without
// items are dropped. Normalize never fails; a response of the wrong shape
// yields an empty checklist and a warning.
func Normalize(d Domain, raw any, logger log.FieldLogger) Checklist {
	if logger == nil {
		logger = log.StandardLogger()
	}
	out := Checklist{Domain: d}

	spec, ok := d.Spec()
	if !ok {
		logger.WithField("domain", d).Warn("normalize: unknown domain")
		return out
	}

	root, ok := raw.(map[string]any)
	if !ok {
		logger.WithFields(log.Fields{"domain": d, "type": typeName(raw)}).
			Warn("unexpected response structure: root is not an object")
		return out
	}
	rawGroups, ok := root[spec.RootKey].([]any)
	if !ok {
		logger.WithFields(log.Fields{"domain": d, "root_key": spec.RootKey}).
			Warn("unexpected response structure: root key is not an array")
		return out
	}

	dropped := 0
	for _, rg := range rawGroups {
		g := spec.normalizeGroup(rg)
		if g.Key == "" || len(g.Items) == 0 {
			dropped++
			continue
		}
		out.Groups = append(out.Groups, g)
	}
	if dropped > 0 {
		logger.WithFields(log.Fields{"domain": d, "dropped": dropped}).Debug("dropped empty groups")
	}
	return out
}

func (s DomainSpec) normalizeGroup(v any) Group {
	obj, _ := v.(map[string]any)
	g := Group{Key: truthyText(obj[s.GroupField], s.GroupPlaceholder)}

	rawItems, _ := obj[s.ItemsField].([]any)
	if len(rawItems) == 0 {
		return g
	}
	g.Items = make([]Item, 0, len(rawItems))
	for _, ri := range rawItems {
		g.Items = append(g.Items, s.normalizeItem(ri))
	}
	return g
}

func (s DomainSpec) normalizeItem(v any) Item {
	obj, _ := v.(map[string]any)
	it := Item{
		ID:   newItemID(),
		Name: truthyText(obj[s.NameField], s.ItemPlaceholder),
	}
	for _, field := range s.OptionalFields {
		fv, ok := obj[field]
		if !ok || fv == nil {
			continue
		}
		if it.Details == nil {
			it.Details = make(map[string]any, len(s.OptionalFields))
		}
		it.Details[field] = fv
	}
	return it
}

// truthyText returns v as text when it is a truthy scalar, else fallback.
// Objects and arrays count as absent.
func truthyText(v any, fallback string) string {
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		if t != 0 && !math.IsNaN(t) {
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	case bool:
		if t {
			return "true"
		}
	}
	return fallback
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	}
	return "unknown"
}
