package fchessg

import "strconv"

const (
	StateMenu State = iota
	StateLoading
	StateGameplay
	StateExit
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateLoading:
		return "loading"
	case StateGameplay:
		return "gameplay"
	case StateExit:
		return "exit"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}
