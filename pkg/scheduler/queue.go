package scheduler

// QueueClass selects the queue a unit is pushed into.
type QueueClass int

const (
	// ClassUpdate holds state mutations: messages, property changes, forced renders.
	ClassUpdate QueueClass = iota
	// ClassRender holds render work queued by patch engines.
	ClassRender
	// ClassRendered holds post-render notifications.
	ClassRendered
	// ClassDestroy holds component teardown.
	ClassDestroy
	// ClassMain holds plain tasks submitted through Dispatch.
	ClassMain

	numClasses
)

// drainOrder is the priority in which Flush picks classes.
var drainOrder = [numClasses]QueueClass{ClassDestroy, ClassUpdate, ClassRender, ClassRendered, ClassMain}

func (c QueueClass) String() string {
	switch c {
	case ClassUpdate:
		return "update"
	case ClassRender:
		return "render"
	case ClassRendered:
		return "rendered"
	case ClassDestroy:
		return "destroy"
	case ClassMain:
		return "main"
	default:
		return "unknown"
	}
}

// Valid reports whether c names a queue.
func (c QueueClass) Valid() bool {
	return c >= ClassUpdate && c < numClasses
}

// ComponentID identifies the component a unit belongs to.
// Zero is used for work not tied to a component.
type ComponentID uint64

// Runnable is a unit of deferred work. Run is called at most once.
type Runnable interface {
	Run()
}

// RunnableFunc adapts a function to Runnable.
type RunnableFunc func()

// Run calls f.
func (f RunnableFunc) Run() {
	f()
}

type entry struct {
	id   ComponentID
	unit Runnable
}

// fifo is a slice-backed queue that reuses its backing array once drained.
type fifo struct {
	items []entry
	head  int
}

func (q *fifo) push(e entry) {
	q.items = append(q.items, e)
}

func (q *fifo) pop() (entry, bool) {
	if q.head >= len(q.items) {
		return entry{}, false
	}
	e := q.items[q.head]
	q.items[q.head] = entry{}
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return e, true
}

func (q *fifo) len() int {
	return len(q.items) - q.head
}
