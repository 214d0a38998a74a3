package evaluation

import (
	"github.com/felixgeelhaar/statekit"
)

// State is the evaluation state of one project.
type State string

const (
	pending     = "pending"
	configuring = "configuring"
	configured  = "configured"
	failed      = "failed"
)

// Project evaluation states.
const (
	StatePending     State = pending
	StateConfiguring State = configuring
	StateConfigured  State = configured
	StateFailed      State = failed
)

// Lifecycle events.
const (
	EventBegin  = "BEGIN"
	EventFinish = "FINISH"
	EventFail   = "FAIL"
)

// lifecycle is the statekit context; the walker keeps no per-project data
// beyond the state itself.
type lifecycle struct {
	Project string
}

// newLifecycle starts a state machine for one project.
//
//	pending --BEGIN--> configuring --FINISH--> configured
//	                        |
//	                        +------FAIL-----> failed
func newLifecycle(name string) (*statekit.Interpreter[lifecycle], error) {
	machine, err := statekit.NewMachine[lifecycle]("project-evaluation").
		WithInitial(pending).
		WithContext(lifecycle{Project: name}).
		State(pending).
		On(EventBegin).Target(configuring).Done().
		State(configuring).
		On(EventFinish).Target(configured).
		On(EventFail).Target(failed).Done().
		State(configured).Done().
		State(failed).Done().
		Build()
	if err != nil {
		return nil, err
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return interp, nil
}

func currentState(interp *statekit.Interpreter[lifecycle]) State {
	return State(interp.State().Value)
}
