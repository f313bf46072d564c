package calendar

import (
	"strings"
)

type RefKind int

const (
	refNone RefKind = iota
	RefService
	RefStyle
)

func (k RefKind) String() string {
	switch k {
	case RefService:
		return "service"
	case RefStyle:
		return "style"
	default:
		return "none"
	}
}

// ServiceRef names what a client asked for: either a plain catalog service
// or a special style. The zero value refers to nothing.
type ServiceRef struct {
	kind RefKind
	name string
}

func PlainService(name string) ServiceRef {
	return ServiceRef{kind: RefService, name: strings.TrimSpace(name)}
}

func SpecialStyle(name string) ServiceRef {
	return ServiceRef{kind: RefStyle, name: strings.TrimSpace(name)}
}

func (r ServiceRef) Kind() RefKind { return r.kind }
func (r ServiceRef) Name() string  { return r.name }
func (r ServiceRef) IsZero() bool  { return r.kind == refNone }

func (r ServiceRef) String() string {
	return r.kind.String() + ":" + r.name
}
