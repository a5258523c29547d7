package cli

import (
	"fmt"
	"io"
	"sync"

	"staybook/internal/modules/booking"
)

// TerminalUI prints alerts and remembers the last route it was sent to.
type TerminalUI struct {
	mu    sync.Mutex
	out   io.Writer
	route string
}

func NewTerminalUI(out io.Writer) *TerminalUI {
	return &TerminalUI{out: out}
}

func (u *TerminalUI) Alert(a booking.Alert) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, "[%s] %s\n", a.Title, a.Message)
}

func (u *TerminalUI) Navigate(route string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.route = route
}

func (u *TerminalUI) Route() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.route
}
