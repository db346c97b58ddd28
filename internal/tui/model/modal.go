package model

// Modal is one of ConfirmUnban, ConfirmUnbanAll or NewBanInput. The set is
// closed: only types in this package implement it.
type Modal interface {
	JailName() string
	modal()
}

// ConfirmUnban asks before removing one address.
type ConfirmUnban struct {
	Jail string
	IP   string
}

// UnbanAllStep is the stage of the two-step bulk unban confirmation.
type UnbanAllStep int

const (
	UnbanAllFirst UnbanAllStep = iota
	UnbanAllFinal
)

// ConfirmUnbanAll asks twice before removing every address of a jail.
type ConfirmUnbanAll struct {
	Jail string
	Step UnbanAllStep
}

// NewBanInput collects an address to ban. Err is the inline error shown
// under the input, empty when there is none.
type NewBanInput struct {
	Jail  string
	Input string
	Err   string
}

func (ConfirmUnban) modal()    {}
func (ConfirmUnbanAll) modal() {}
func (NewBanInput) modal()     {}

func (c ConfirmUnban) JailName() string    { return c.Jail }
func (c ConfirmUnbanAll) JailName() string { return c.Jail }
func (n NewBanInput) JailName() string     { return n.Jail }
