package output

import (
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"

	"github.com/dhabedank/genchecklist/internal/core"
)

// JSONAdapter writes the normalized checklist as indented JSON.
type JSONAdapter struct{}

// NewJSONAdapter creates a JSON adapter.
func NewJSONAdapter() *JSONAdapter {
	return &JSONAdapter{}
}

func (a *JSONAdapter) Name() string {
	return "json"
}

func (a *JSONAdapter) Extension() string {
	return "json"
}

type jsonDocument struct {
	Title       string       `json:"title"`
	Domain      core.Domain  `json:"domain"`
	GeneratedOn string       `json:"generatedOn"`
	Groups      []core.Group `json:"groups"`
}

func (a *JSONAdapter) Write(w io.Writer, checklist core.Checklist, config Config) (*Result, error) {
	doc := jsonDocument{
		Title:       config.Title,
		Domain:      checklist.Domain,
		GeneratedOn: config.GeneratedAt.Format(time.DateOnly),
		Groups:      checklist.Groups,
	}
	if doc.Groups == nil {
		doc.Groups = []core.Group{}
	}

	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("failed to write JSON: %w", err)
	}

	total, _ := checklist.Counts()
	return &Result{
		Tables: len(checklist.Groups),
		Rows:   total,
		Empty:  checklist.IsEmpty(),
	}, nil
}
