package scope

// KindTag identifies a component kind without its type parameters.
// Two tags are the same kind exactly when they are the same *Kind.
type KindTag interface {
	Name() string
	kindTag()
}

// Kind describes a component type: its name and how to create instances.
// The pointer is the kind's identity; create one per component type and
// share it.
type Kind[P, M any] struct {
	name   string
	create func(props P, s *Scope[P, M]) Component[P, M]
}

// NewKind defines a component kind. create builds an instance from its
// initial properties and a scope the instance may keep to message itself.
func NewKind[P, M any](name string, create func(props P, s *Scope[P, M]) Component[P, M]) *Kind[P, M] {
	if create == nil {
		panic("scope: NewKind requires a create function")
	}
	return &Kind[P, M]{name: name, create: create}
}

// Name returns the kind's name.
func (k *Kind[P, M]) Name() string {
	return k.name
}

// Create runs the kind's create hook. Scopes call it when mounting; it is
// exported so wrappers can build kinds around other kinds.
func (k *Kind[P, M]) Create(props P, s *Scope[P, M]) Component[P, M] {
	return k.create(props, s)
}

func (k *Kind[P, M]) String() string {
	return k.name
}

func (k *Kind[P, M]) kindTag() {}
