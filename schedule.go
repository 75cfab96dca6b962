package fchessg

import "fmt"

type State int

// Stage is one slot of the frame. Stages run in the order of defaultStages.
type Stage struct {
	Name string
}

var (
	Prelude    = Stage{Name: "Prelude"}
	PreUpdate  = Stage{Name: "PreUpdate"}
	Update     = Stage{Name: "Update"}
	PostUpdate = Stage{Name: "PostUpdate"}
	PreRender  = Stage{Name: "PreRender"}
	Render     = Stage{Name: "Render"}
	PostRender = Stage{Name: "PostRender"}
	Finale     = Stage{Name: "Finale"}
)

var defaultStages = []Stage{Prelude, PreUpdate, Update, PostUpdate, PreRender, Render, PostRender, Finale}

type statePhase int

const (
	enter statePhase = iota
	execute
	exit
)

var statePhases = [...]statePhase{enter, execute, exit}

type stateScheduleBuilder struct {
	state State
	phase statePhase
}

func OnEnter(state State) stateScheduleBuilder {
	return stateScheduleBuilder{state: state, phase: enter}
}

func OnExecute(state State) stateScheduleBuilder {
	return stateScheduleBuilder{state: state, phase: execute}
}

func OnExit(state State) stateScheduleBuilder {
	return stateScheduleBuilder{state: state, phase: exit}
}

// systemScheduleBuilder says where a system runs. Without InState, or with
// RunAlways, it runs every frame regardless of state.
type systemScheduleBuilder struct {
	system    systemFn
	stage     Stage
	state     *stateScheduleBuilder
	runAlways bool
}

func System(system systemFn) systemScheduleBuilder {
	return systemScheduleBuilder{system: system, stage: Update}
}

func (sched systemScheduleBuilder) InStage(s Stage) systemScheduleBuilder {
	sched.stage = s
	return sched
}

func (sched systemScheduleBuilder) InState(s stateScheduleBuilder) systemScheduleBuilder {
	sched.state = &s
	return sched
}

func (sched systemScheduleBuilder) RunAlways() systemScheduleBuilder {
	sched.runAlways = true
	return sched
}

func (app *App) UseSystem(system systemScheduleBuilder) *App {
	stage := system.stage.Name
	if system.runAlways || system.state == nil {
		if _, ok := app.systemsStateless[stage]; !ok {
			panic(fmt.Sprintf("Stage %v doesn't exist", stage))
		}
		app.systemsStateless[stage] = append(app.systemsStateless[stage], system.system)
		return app
	}

	if !app.stateful {
		panic("Trying to use a stateful system in a stateless app.")
	}
	systemsInStage, ok := app.systems[stage]
	if !ok {
		panic(fmt.Sprintf("Stage %v doesn't exist", stage))
	}
	systemsInState, ok := systemsInStage[system.state.state]
	if !ok {
		panic(fmt.Sprintf("State %v doesn't exist", system.state.state))
	}
	systemsInState[system.state.phase] = append(systemsInState[system.state.phase], system.system)
	return app
}

func (app *App) initStatefulStage(stage Stage) {
	app.systemsStateless[stage.Name] = make([]systemFn, 0)
	if !app.stateful {
		return
	}

	app.systems[stage.Name] = make(map[State]map[statePhase][]systemFn)
	for state := app.initialState; state <= app.finalState; state++ {
		phases := make(map[statePhase][]systemFn, len(statePhases))
		for _, phase := range statePhases {
			phases[phase] = make([]systemFn, 0)
		}
		app.systems[stage.Name][state] = phases
	}
}
