package symbol

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Parcel represents a single compilation unit, which owns a set of classes and
// the prefix used to make their symbols globally unique
type Parcel struct {
	name     string
	nickname string
	// The three spellings of the prefix, e.g. "cfish_", "Cfish_", "CFISH_"
	prefix      string
	upperPrefix string
	capsPrefix  string
	// If the parcel was found in an include directory rather than a source one
	included bool

	prereqs   []*Parcel
	inherited []*Parcel
	// The short struct symbols of every class registered in this parcel
	structSyms []string
}

// NewParcel creates a parcel. An empty nickname defaults to the name, and the
// nickname must be a valid identifier
func NewParcel(name, nickname string, included bool) (*Parcel, error) {
	if !isIdentifier(name) {
		return nil, newError(ErrInvalidName, "", "invalid parcel name '%s'", name)
	}
	if nickname == "" {
		nickname = name
	}
	if !isIdentifier(nickname) {
		return nil, newError(ErrInvalidName, "", "invalid parcel nickname '%s'", nickname)
	}
	return newParcel(name, nickname, included), nil
}

func newParcel(name, nickname string, included bool) *Parcel {
	p := &Parcel{name: name, nickname: nickname, included: included}
	if nickname != "" {
		p.prefix = strings.ToLower(nickname) + "_"
		p.upperPrefix = nickname + "_"
		p.capsPrefix = strings.ToUpper(nickname) + "_"
	}
	return p
}

func (p *Parcel) String() string {
	return fmt.Sprintf("Parcel: %s (%s)", p.name, p.nickname)
}

// Name returns the full name of the parcel
func (p *Parcel) Name() string {
	return p.name
}

// Nickname returns the short name used to build the prefix
func (p *Parcel) Nickname() string {
	return p.nickname
}

// Prefix returns the lower-case prefix, e.g. "cfish_"
func (p *Parcel) Prefix() string {
	return p.prefix
}

// UpperPrefix returns the title-case prefix, e.g. "Cfish_"
func (p *Parcel) UpperPrefix() string {
	return p.upperPrefix
}

// CapsPrefix returns the all-caps prefix, e.g. "CFISH_"
func (p *Parcel) CapsPrefix() string {
	return p.capsPrefix
}

// Included reports whether the parcel comes from an include directory
func (p *Parcel) Included() bool {
	return p.included
}

// AddPrereq declares that this parcel depends on another one
func (p *Parcel) AddPrereq(other *Parcel) {
	if other == nil || other == p || slices.Contains(p.prereqs, other) {
		return
	}
	p.prereqs = append(p.prereqs, other)
}

// Prereqs returns the direct prerequisites, in declaration order
func (p *Parcel) Prereqs() []*Parcel {
	return p.prereqs
}

// HasPrereq reports whether other is this parcel or one of its direct
// prerequisites
func (p *Parcel) HasPrereq(other *Parcel) bool {
	if other == nil {
		return false
	}
	if other == p || other.name == p.name {
		return true
	}
	return slices.ContainsFunc(p.prereqs, func(prereq *Parcel) bool {
		return prereq.name == other.name
	})
}

// AddInheritedParcel records that a class in this parcel inherits from a class
// in the other parcel
func (p *Parcel) AddInheritedParcel(other *Parcel) {
	if other == nil || other == p || slices.Contains(p.inherited, other) {
		return
	}
	p.inherited = append(p.inherited, other)
}

// InheritedParcels returns every other parcel that this parcel's classes
// inherit from
func (p *Parcel) InheritedParcels() []*Parcel {
	return p.inherited
}

// AddClassStructSym records the short struct symbol of a registered class
func (p *Parcel) AddClassStructSym(structSym string) {
	p.structSyms = append(p.structSyms, structSym)
}

// ClassStructSyms returns every struct symbol registered in this parcel
func (p *Parcel) ClassStructSyms() []string {
	return p.structSyms
}

// LookupStructSym searches this parcel and then its prerequisites for a class
// with the given short struct symbol, and returns the parcel it belongs to, or
// nil if none was found
func (p *Parcel) LookupStructSym(structSym string) *Parcel {
	if slices.Contains(p.structSyms, structSym) {
		return p
	}
	for _, prereq := range p.prereqs {
		if slices.Contains(prereq.structSyms, structSym) {
			return prereq
		}
	}
	return nil
}
