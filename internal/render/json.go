// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSON writes each payload as one JSON document tagged with its kind.
type JSON struct {
	W io.Writer

	// Indent pretty-prints documents; otherwise one document per line.
	Indent bool

	// ShowLoading emits Loading payloads.
	ShowLoading bool
}

// NewJSON returns an indenting JSON renderer writing to w.
func NewJSON(w io.Writer) *JSON {
	return &JSON{W: w, Indent: true}
}

type envelope struct {
	Kind string  `json:"kind"`
	Data Payload `json:"data"`
}

// Render encodes p to j.W.
func (j *JSON) Render(p Payload) error {
	if _, ok := p.(Loading); ok && !j.ShowLoading {
		return nil
	}
	enc := json.NewEncoder(j.W)
	if j.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(envelope{Kind: p.Kind(), Data: p}); err != nil {
		return fmt.Errorf("encoding %s payload: %w", p.Kind(), err)
	}
	return nil
}
