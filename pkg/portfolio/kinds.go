package portfolio

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/typed"
)

// Entity kinds served by the portfolio API.
var (
	IntroKind = typed.Kind{
		Entity:     "intro",
		Collection: "intros",
		Singleton:  true,
		Fields: []typed.Field{
			{Name: "welcomeText", Required: true},
			{Name: "firstName", Required: true},
			{Name: "lastName", Required: true},
			{Name: "caption", Required: true},
			{Name: "description", Required: true},
		},
	}

	AboutKind = typed.Kind{
		Entity:     "about",
		Collection: "abouts",
		Singleton:  true,
		Fields: []typed.Field{
			{Name: "lottieURL", Required: true},
			{Name: "description1", Required: true},
			{Name: "description2"},
			{Name: "skills", List: true},
		},
	}

	ExperienceKind = typed.Kind{
		Entity:     "experience",
		Collection: "experiences",
		Fields: []typed.Field{
			{Name: "title", Required: true},
			{Name: "period", Required: true},
			{Name: "company", Required: true},
			{Name: "description", Required: true},
		},
	}

	ProjectKind = typed.Kind{
		Entity:     "project",
		Collection: "projects",
		Fields: []typed.Field{
			{Name: "title", Required: true},
			{Name: "imageURL", Wire: "image", Required: true},
			{Name: "description", Required: true},
			{Name: "link", Required: true},
			{Name: "technologies", List: true},
		},
	}

	CourseKind = typed.Kind{
		Entity:     "course",
		Collection: "courses",
		Fields: []typed.Field{
			{Name: "title", Required: true},
			{Name: "imageURL", Wire: "image", Required: true},
			{Name: "description", Required: true},
			{Name: "link", Required: true},
			{Name: "technologies", List: true},
		},
	}

	ContactKind = typed.Kind{
		Entity:     "contact",
		Collection: "contacts",
		Singleton:  true,
		Fields: []typed.Field{
			{Name: "name", Required: true},
			{Name: "gender"},
			{Name: "email", Required: true},
			{Name: "mobile"},
			{Name: "age"},
			{Name: "address"},
		},
	}
)

// Kinds returns every built-in kind keyed by entity name.
func Kinds() map[string]typed.Kind {
	return map[string]typed.Kind{
		IntroKind.Entity:      IntroKind,
		AboutKind.Entity:      AboutKind,
		ExperienceKind.Entity: ExperienceKind,
		ProjectKind.Entity:    ProjectKind,
		CourseKind.Entity:     CourseKind,
		ContactKind.Entity:    ContactKind,
	}
}

// Mutator is the untyped surface shared by every kind's repository.
type Mutator interface {
	Kind() typed.Kind
	Create(ctx context.Context, form typed.Form) error
	Update(ctx context.Context, id string, form typed.Form) error
	Delete(ctx context.Context, id string) error
	Items() []core.Item
}

// Admin holds one mutation lifecycle per entity kind, all sharing one service.
type Admin struct {
	Intro       *typed.Repository[Intro]
	About       *typed.Repository[About]
	Experiences *typed.Repository[Experience]
	Projects    *typed.Repository[Project]
	Courses     *typed.Repository[Course]
	Contact     *typed.Repository[Contact]
}

// NewAdmin instantiates the repositories of every built-in kind.
func NewAdmin(svc *core.Service) *Admin {
	return &Admin{
		Intro:       typed.NewRepository[Intro](svc, IntroKind),
		About:       typed.NewRepository[About](svc, AboutKind),
		Experiences: typed.NewRepository[Experience](svc, ExperienceKind),
		Projects:    typed.NewRepository[Project](svc, ProjectKind),
		Courses:     typed.NewRepository[Course](svc, CourseKind),
		Contact:     typed.NewRepository[Contact](svc, ContactKind),
	}
}

// Lookup resolves the repository for an entity name ("course") or collection key ("courses").
func (a *Admin) Lookup(name string) (Mutator, error) {
	for _, e := range a.mutators() {
		k := e.Kind()
		if k.Entity == name || k.Collection == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("unknown entity kind %q (known: %v)", name, EntityNames())
}

func (a *Admin) mutators() []Mutator {
	return []Mutator{a.Intro, a.About, a.Experiences, a.Projects, a.Courses, a.Contact}
}

// EntityNames lists the built-in entity names in lexical order.
func EntityNames() []string {
	names := make([]string, 0, 6)
	for name := range Kinds() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
