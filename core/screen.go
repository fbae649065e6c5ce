package core

// Screen is the region of the page currently visible
type Screen string

const (
	ScreenInitializing   Screen = "initializing"
	ScreenLoading        Screen = "loading"
	ScreenAuthenticating Screen = "authenticating"
	ScreenAuthenticated  Screen = "authenticated"
)

// ControlStatus is the state of one wallet selection control
type ControlStatus string

const (
	ControlIdle    ControlStatus = "idle"
	ControlBusy    ControlStatus = "busy"
	ControlSuccess ControlStatus = "success"
	ControlError   ControlStatus = "error"
)

// Labels rendered on wallet controls
const (
	LabelIdle    = "Connect"
	LabelBusy    = "Connecting..."
	LabelSuccess = "Connected!"
)

// ControlState describes how a wallet control is rendered
type ControlState struct {
	Status   ControlStatus `json:"status"`
	Label    string        `json:"label"`
	Disabled bool          `json:"disabled"`
}

// IdleControl is the resting state of a control
func IdleControl() ControlState {
	return ControlState{Status: ControlIdle, Label: LabelIdle}
}

// BusyControl is shown while a connect attempt is in flight
func BusyControl() ControlState {
	return ControlState{Status: ControlBusy, Label: LabelBusy, Disabled: true}
}

// SuccessControl is shown between a successful connect and the content reveal
func SuccessControl() ControlState {
	return ControlState{Status: ControlSuccess, Label: LabelSuccess, Disabled: true}
}

// ErrorControl is shown for a while after a failed connect
func ErrorControl(err error) ControlState {
	return ControlState{Status: ControlError, Label: ErrorLabel(err), Disabled: true}
}
