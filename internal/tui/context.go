package tui

// ModalContext provides read-only context to modals, replacing direct
// access to *DashboardModel.
type ModalContext struct {
	ReverseScrollWheel bool
}
