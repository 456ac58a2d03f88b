package linedit

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joeycumines/go-linedit/debug"
)

// handleSignals forwards termination signals to exitCh, and terminal size
// changes to winSizeCh, until stop is closed.
func (p *Prompt) handleSignals(exitCh chan<- os.Signal, winSizeCh chan<- *WinSize, stop <-chan struct{}) {
	in := p.reader

	signals := []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	}
	if syscallSIGWINCH != 0 {
		signals = append(signals, syscallSIGWINCH)
	}

	var resizeCh <-chan struct{}
	if n, ok := in.(ResizeNotifier); ok {
		resizeCh = n.ResizeNotify()
	}

	// we can avoid missing up to 128 signals
	sigCh := make(chan os.Signal, 128)
	signal.Notify(sigCh, signals...)
	defer signal.Stop(sigCh)

	sendWinSize := func() bool {
		select {
		case winSizeCh <- in.GetWinSize():
			return true
		case <-stop:
			return false
		}
	}

	for {
		select {
		case <-stop:
			debug.Log("stop handleSignals")
			return

		case <-resizeCh:
			debug.Log("Catch resize")
			if !sendWinSize() {
				return
			}

		case s := <-sigCh:
			if s == syscallSIGWINCH {
				debug.Log("Catch SIGWINCH")
				if !sendWinSize() {
					return
				}
				continue
			}

			debug.Logger().Info().Str("signal", s.String()).Log("Catch signal")
			select {
			case exitCh <- s:
			case <-stop:
				return
			}
		}
	}
}
