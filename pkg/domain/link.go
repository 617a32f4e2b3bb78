package domain

import "strings"

// LinkType is the wire tag of a Link.
const LinkType = "link_by_uid"

// Link stands in for the entity that has ID under Scope.
// It carries no pointer and is never traversed.
type Link struct {
	Scope string `json:"scope" yaml:"scope"`
	ID    string `json:"id" yaml:"id"`
}

// Key returns the link with its scope lowercased, as used by indexes.
func (l Link) Key() Link {
	return Link{Scope: strings.ToLower(l.Scope), ID: l.ID}
}

func (l Link) String() string {
	return l.Scope + ":" + l.ID
}

// LinkTo builds a Link for e, using the preferred scope when e has it
// and the first scope it was given otherwise.
func LinkTo(e Entity, preferred string) (Link, error) {
	uids := e.UIDs()
	if uids.Len() == 0 {
		return Link{}, &MissingIdentifierError{Type: e.Type()}
	}
	if preferred != "" {
		if id, ok := uids.Get(preferred); ok {
			return Link{Scope: uids.Scope(preferred), ID: id}, nil
		}
	}
	return uids.Items()[0], nil
}
