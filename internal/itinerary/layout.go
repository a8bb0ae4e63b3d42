package itinerary

import (
	json "github.com/goccy/go-json"
)

// Node is an element of the rendered document tree.
// Backends walk the tree with a type switch over the concrete node types.
type Node interface {
	node()
}

// Document is the root of a rendered itinerary.
type Document struct {
	Title    string `json:"title"`
	Children []Node `json:"children"`
}

// AtomicBlock is a unit a page-layout backend must never split across a
// page boundary. Breaks are allowed between sibling blocks.
type AtomicBlock struct {
	Class    string `json:"class,omitempty"`
	Children []Node `json:"children"`
}

// Section groups nodes without any layout constraint.
type Section struct {
	Class    string `json:"class,omitempty"`
	Children []Node `json:"children"`
}

// Heading is a title line. Level 1 is the document title.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Text is a plain line. Muted lines carry secondary metadata.
type Text struct {
	Text  string `json:"text"`
	Muted bool   `json:"muted,omitempty"`
}

// Field is a labelled value.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Badge is a short tag such as "Main", "VIP" or an event type.
type Badge struct {
	Text string `json:"text"`
	Tone string `json:"tone,omitempty"`
}

// Icon names a pictogram; backends map the name to their own glyphs.
type Icon struct {
	Name string `json:"name"`
}

func (AtomicBlock) node() {}
func (Section) node()     {}
func (Heading) node()     {}
func (Text) node()        {}
func (Field) node()       {}
func (Badge) node()       {}
func (Icon) node()        {}

// The MarshalJSON methods add a "type" discriminator so a preview client
// can rebuild the tree.

func (n AtomicBlock) MarshalJSON() ([]byte, error) {
	type alias AtomicBlock
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"atomic", alias(n)})
}

func (n Section) MarshalJSON() ([]byte, error) {
	type alias Section
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"section", alias(n)})
}

func (n Heading) MarshalJSON() ([]byte, error) {
	type alias Heading
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"heading", alias(n)})
}

func (n Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"text", alias(n)})
}

func (n Field) MarshalJSON() ([]byte, error) {
	type alias Field
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"field", alias(n)})
}

func (n Badge) MarshalJSON() ([]byte, error) {
	type alias Badge
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"badge", alias(n)})
}

func (n Icon) MarshalJSON() ([]byte, error) {
	type alias Icon
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{"icon", alias(n)})
}
