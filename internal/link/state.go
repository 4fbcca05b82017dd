package link

import (
	"encoding/json"
	"fmt"
)

// stateVersion is bumped whenever the saved layout changes incompatibly.
const stateVersion = 1

// ComponentState is the saved form of a ComponentID.
type ComponentState struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// LinkState is the saved form of a ComponentLink; components are referenced by ID.
type LinkState struct {
	To    string   `json:"to"`
	From  []string `json:"from"`
	Using string   `json:"using"`
}

// State is a self-contained, JSON-serialisable set of links.
type State struct {
	Version    int              `json:"version"`
	Components []ComponentState `json:"components"`
	Links      []LinkState      `json:"links"`
}

// SaveState captures links. Components shared between links are recorded once.
func SaveState(links []*ComponentLink) State {
	st := State{Version: stateVersion}
	ids := make(map[*ComponentID]string)
	ref := func(c *ComponentID) string {
		if id, ok := ids[c]; ok {
			return id
		}
		id := fmt.Sprintf("ComponentID_%d", len(ids))
		ids[c] = id
		st.Components = append(st.Components, ComponentState{ID: id, Label: c.Label()})
		return id
	}

	for _, l := range links {
		ls := LinkState{Using: l.using, From: make([]string, len(l.from))}
		for i, c := range l.from {
			ls.From[i] = ref(c)
		}
		ls.To = ref(l.to)
		st.Links = append(st.Links, ls)
	}
	return st
}

// Restore rebuilds the links in st. Fresh ComponentIDs are created, shared
// across the restored links exactly as they were in the saved set.
func (st State) Restore(resolver FuncResolver) ([]*ComponentLink, error) {
	if st.Version != stateVersion {
		return nil, fmt.Errorf("link: unsupported state version %d", st.Version)
	}
	comps := make(map[string]*ComponentID, len(st.Components))
	for _, cs := range st.Components {
		if _, dup := comps[cs.ID]; dup {
			return nil, fmt.Errorf("link: duplicate component id %q in state", cs.ID)
		}
		comps[cs.ID] = NewComponentID(cs.Label)
	}
	lookup := func(id string) (*ComponentID, error) {
		c, ok := comps[id]
		if !ok {
			return nil, fmt.Errorf("link: state references unknown component %q", id)
		}
		return c, nil
	}

	links := make([]*ComponentLink, 0, len(st.Links))
	for _, ls := range st.Links {
		fn, ok := resolver.ResolveFunc(ls.Using)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFunc, ls.Using)
		}
		to, err := lookup(ls.To)
		if err != nil {
			return nil, err
		}
		from := make([]*ComponentID, len(ls.From))
		for i, id := range ls.From {
			if from[i], err = lookup(id); err != nil {
				return nil, err
			}
		}
		l, err := NewComponentLink(from, to, ls.Using, fn)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, nil
}

// MarshalLinks serialises links to JSON.
func MarshalLinks(links []*ComponentLink) ([]byte, error) {
	return json.Marshal(SaveState(links))
}

// UnmarshalLinks restores links previously produced by MarshalLinks.
func UnmarshalLinks(data []byte, resolver FuncResolver) ([]*ComponentLink, error) {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("link: decode state: %w", err)
	}
	return st.Restore(resolver)
}

// Clone round-trips a single link through its serialised form.
func Clone(l *ComponentLink, resolver FuncResolver) (*ComponentLink, error) {
	data, err := MarshalLinks([]*ComponentLink{l})
	if err != nil {
		return nil, err
	}
	links, err := UnmarshalLinks(data, resolver)
	if err != nil {
		return nil, err
	}
	return links[0], nil
}
