package fchessg

import (
	"fmt"
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_changeState(t *testing.T) {
	app := &App{
		stateful:     true,
		initialState: 1,
		state:        1,
		finalState:   2,
	}

	app.changeState(2)
	assert.Equal(t, State(2), app.nextState)
	assert.True(t, app.stateTransitioning)

	app.executeChangeState(2)
	assert.Equal(t, State(2), app.state)
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	assert.Same(t, resource2, Resource[MockResource2](app))
	assert.Nil(t, Resource[Config](app))
}

// recorder logs system calls as "<tag>" strings.
type recorder struct {
	calls []string
}

func (r *recorder) system(tag string) func(*recorder) {
	return func(rec *recorder) {
		rec.calls = append(rec.calls, tag)
	}
}

func newRecordingApp() (*App, *recorder) {
	rec := &recorder{}
	app := NewAppBuilder().UseStates(StateMenu, StateExit).Build()
	app.addResources(rec)
	return app, rec
}

func TestApp_Step_StatePhases(t *testing.T) {
	app, rec := newRecordingApp()
	app.UseSystem(System(rec.system("menu enter")).InStage(Update).InState(OnEnter(StateMenu)))
	app.UseSystem(System(rec.system("menu execute")).InStage(Update).InState(OnExecute(StateMenu)))
	app.UseSystem(System(rec.system("menu exit")).InStage(Update).InState(OnExit(StateMenu)))
	app.UseSystem(System(rec.system("loading enter")).InStage(Update).InState(OnEnter(StateLoading)))
	app.UseSystem(System(rec.system("always")).InStage(Prelude).RunAlways())
	app.UseSystem(System(func(cmd *Commands, rec *recorder) {
		if len(rec.calls) == 5 {
			cmd.ChangeState(StateLoading)
		}
	}).InStage(Finale).InState(OnExecute(StateMenu)))

	require.True(t, app.Step())
	assert.Equal(t, StateMenu, app.State())
	require.True(t, app.Step())
	assert.Equal(t, StateLoading, app.State())

	assert.Equal(t, []string{
		"menu enter",
		"always", "menu execute",
		"always", "menu execute",
		"menu exit", "loading enter",
	}, rec.calls)
}

func TestApp_Exit_PassesThroughFinalState(t *testing.T) {
	app, rec := newRecordingApp()
	app.UseSystem(System(func(cmd *Commands) { cmd.Exit() }).InStage(Update).InState(OnExecute(StateMenu)))
	app.UseSystem(System(rec.system("menu exit")).InStage(Update).InState(OnExit(StateMenu)))
	app.UseSystem(System(rec.system("exit enter")).InStage(Update).InState(OnEnter(StateExit)))
	app.UseSystem(System(rec.system("exit exit")).InStage(Finale).InState(OnExit(StateExit)))

	assert.False(t, app.Step())
	assert.Equal(t, StateExit, app.State())
	assert.Equal(t, []string{"menu exit", "exit enter", "exit exit"}, rec.calls)
}

func TestApp_Run_StopsAtFinalState(t *testing.T) {
	app, rec := newRecordingApp()
	frames := 0
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 5 {
			cmd.ChangeState(StateExit)
		}
	}).InStage(Update).RunAlways())
	app.UseSystem(System(rec.system("exit")).InStage(Update).InState(OnExit(StateExit)))

	app.Run()

	assert.Equal(t, 5, frames)
	assert.Equal(t, []string{"exit"}, rec.calls)
}

func TestApp_Stateless(t *testing.T) {
	app := NewAppBuilder().Build()
	frames := 0
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 3 {
			cmd.Exit()
		}
	}).InStage(Update))

	app.Run()
	assert.Equal(t, 3, frames)

	assert.Panics(t, func() {
		app.UseSystem(System(func() {}).InState(OnEnter(StateMenu)))
	})
}

func TestApp_callSystem_UnresolvedDependency(t *testing.T) {
	app := NewAppBuilder().Build()
	app.UseSystem(System(func(r *MockResource1) {}).InStage(Update))

	assert.Panics(t, func() { app.Step() })
}

func TestApp_Logger_FallsBackToNop(t *testing.T) {
	var app *App
	require.NotNil(t, app.Logger())
	assert.False(t, app.Logger().DebugEnabled())

	built := NewAppBuilder().UseModule(LoggingModule{Debug: true, Output: io.Discard}).Build()
	assert.True(t, built.Logger().DebugEnabled())
}
