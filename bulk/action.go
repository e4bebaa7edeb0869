package godasticbulk

// Action tags what a queued operation does to its document. The update
// action is what makes the store treat the body as a partial patch rather
// than a full replace; it is never inferred from the payload shape.
type Action string

const (
	ActionIndex  Action = "index"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) String() string {
	return string(a)
}
