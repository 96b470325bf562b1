package scope

import "github.com/go-drift/vscope/pkg/noderef"

// UpdateKind selects the variant of an Update.
type UpdateKind int

const (
	// UpdateForce renders unconditionally.
	UpdateForce UpdateKind = iota
	// UpdateMessage applies a single message.
	UpdateMessage
	// UpdateMessageBatch applies a sequence of messages in order.
	UpdateMessageBatch
	// UpdateProperties applies new properties and links a new node reference.
	UpdateProperties
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateForce:
		return "force"
	case UpdateMessage:
		return "message"
	case UpdateMessageBatch:
		return "batch"
	case UpdateProperties:
		return "properties"
	default:
		return "unknown"
	}
}

// Update is the payload of an Update unit. Only the fields of its Kind are
// meaningful; build values with the constructors below.
type Update[P, M any] struct {
	Kind    UpdateKind
	Message M
	Batch   []M
	Props   P
	NodeRef *noderef.Ref
}

// ForceUpdate renders without changing state.
func ForceUpdate[P, M any]() Update[P, M] {
	return Update[P, M]{Kind: UpdateForce}
}

// MessageUpdate applies msg.
func MessageUpdate[P, M any](msg M) Update[P, M] {
	return Update[P, M]{Kind: UpdateMessage, Message: msg}
}

// BatchUpdate applies every message in msgs, in order.
func BatchUpdate[P, M any](msgs []M) Update[P, M] {
	return Update[P, M]{Kind: UpdateMessageBatch, Batch: msgs}
}

// PropertiesUpdate applies props. ref, the node reference the parent now
// holds for this component, is linked to the component's existing one.
func PropertiesUpdate[P, M any](props P, ref *noderef.Ref) Update[P, M] {
	return Update[P, M]{Kind: UpdateProperties, Props: props, NodeRef: ref}
}
