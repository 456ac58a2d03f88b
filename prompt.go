package linedit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-linedit/debug"
)

const (
	inputBufferSize = 1024
	// readPollInterval is how long the reader goroutine sleeps when no input
	// is available.
	readPollInterval = 10 * time.Millisecond

	defaultDebugToken        = "0123456789"
	defaultCursorPosTimeout  = time.Second
	inputBufferChannelLength = 128
)

// Prompt is a single-line editor. Each call to Input runs one editing
// session, returning the accepted line.
type Prompt struct {
	prefix     string
	reader     Reader
	writer     Writer
	buffer     *Buffer
	renderer   *Renderer
	decoder    Decoder
	debugToken string
	cprTimeout time.Duration
	running    atomic.Bool
}

// New returns a Prompt that displays prefix before the editable text.
func New(prefix string, opts ...Option) (*Prompt, error) {
	if containsControl(prefix) {
		return nil, errors.New("linedit: prefix contains control characters")
	}
	p := &Prompt{
		prefix:     prefix,
		debugToken: defaultDebugToken,
		cprTimeout: defaultCursorPosTimeout,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.reader == nil {
		p.reader = NewStdinReader()
	}
	if p.writer == nil {
		p.writer = NewStderrWriter()
	}
	p.buffer = NewBuffer()
	p.renderer = NewRenderer(p.writer)
	return p, nil
}

// Buffer returns the buffer of the current (or last) session.
func (p *Prompt) Buffer() *Buffer {
	return p.buffer
}

// Input runs an editing session, until Enter is pressed, returning the text.
// The terminal is put into raw mode for the duration, and is always
// restored before Input returns, including on error.
func (p *Prompt) Input() (result string, err error) {
	if !p.running.CompareAndSwap(false, true) {
		debug.Log("run error: prompt already running")
		return "", ErrRunning
	}
	defer p.running.Store(false)

	debug.Logger().Info().Str("prefix", p.prefix).Log("start prompt")
	p.buffer = NewBuffer()
	p.decoder = Decoder{}
	p.renderer = NewRenderer(p.writer)

	if err := p.reader.Open(); err != nil {
		return "", fmt.Errorf("linedit: open terminal: %w", err)
	}
	defer func() {
		if cerr := p.reader.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("linedit: restore terminal: %w", cerr))
		}
		if err != nil {
			debug.Logger().Err().Err(err).Log("stop prompt")
		} else {
			debug.Logger().Info().Int("len", int(p.buffer.Len())).Log("stop prompt")
		}
	}()

	p.renderer.UpdateWinSize(p.reader.GetWinSize())

	origin, typeahead, err := p.queryCursorPosition()
	if err != nil {
		return "", err
	}
	if err := p.renderer.Setup(origin, p.prefix); err != nil {
		return "", fmt.Errorf("linedit: write prompt: %w", err)
	}
	defer func() {
		if err != nil {
			// the caller's diagnostic gets a line of its own
			_ = p.renderer.BreakLine(p.buffer)
		}
	}()

	if done, err := p.feed(typeahead); err != nil {
		return "", err
	} else if done {
		return p.accept()
	}

	bufCh := make(chan []byte, inputBufferChannelLength)
	stopReadBufCh := make(chan chan []byte)
	go p.readBuffer(bufCh, stopReadBufCh)
	defer func() {
		pongCh := make(chan []byte, 1)
		stopReadBufCh <- pongCh
		if leftover := <-pongCh; len(leftover) != 0 {
			debug.Logger().Debug().Int("len", len(leftover)).Log("discarding input after accept")
		}
	}()

	exitCh := make(chan os.Signal, 1)
	winSizeCh := make(chan *WinSize, 1)
	stopHandleSignalCh := make(chan struct{})
	var wg sync.WaitGroup
	wg.Go(func() { p.handleSignals(exitCh, winSizeCh, stopHandleSignalCh) })
	defer func() {
		close(stopHandleSignalCh)
		wg.Wait()
	}()

	for {
		select {
		case b, ok := <-bufCh:
			if !ok {
				return "", ErrInputClosed
			}
			done, err := p.feed(p.decoder.Decode(b))
			if err != nil {
				return "", err
			}
			if done {
				return p.accept()
			}

		case size := <-winSizeCh:
			if _, err := p.dispatch(ResizeEvent{Size: size}); err != nil {
				return "", err
			}

		case s := <-exitCh:
			return "", fmt.Errorf("linedit: %w by signal: %v", ErrTerminated, s)
		}
	}
}

// feed dispatches events in order, stopping at the first that ends the
// session. Events after an accepted line are dropped.
func (p *Prompt) feed(events []Event) (done bool, err error) {
	for _, ev := range events {
		if done, err = p.dispatch(ev); done || err != nil {
			return
		}
	}
	return false, nil
}

func (p *Prompt) accept() (string, error) {
	if err := p.renderer.BreakLine(p.buffer); err != nil {
		return "", fmt.Errorf("linedit: write line break: %w", err)
	}
	return p.buffer.Text(), nil
}

// queryCursorPosition asks the terminal where the cursor is, waiting up to
// the configured timeout for the reply. Any input that arrives before (or
// alongside) the reply is returned as typeahead, to be dispatched once the
// prompt is painted.
func (p *Prompt) queryCursorPosition() (origin CursorPositionEvent, typeahead []Event, err error) {
	p.decoder.ExpectCursorPosition(p.cprTimeout)
	if err := p.renderer.RequestPosition(); err != nil {
		return origin, nil, fmt.Errorf("linedit: request cursor position: %w", err)
	}

	deadline := time.Now().Add(p.cprTimeout)
	buf := make([]byte, inputBufferSize)
	var found bool
	for {
		n, rerr := p.reader.Read(buf)
		if n > 0 {
			for _, ev := range p.decoder.Decode(buf[:n]) {
				if cpr, ok := ev.(CursorPositionEvent); ok && !found {
					origin, found = cpr, true
					continue
				}
				typeahead = append(typeahead, ev)
			}
		}
		if found {
			debug.Logger().Debug().
				Int("row", origin.Row).
				Int("col", origin.Col).
				Int("typeahead", len(typeahead)).
				Log("cursor position")
			return origin, typeahead, nil
		}
		if rerr == io.EOF {
			return origin, nil, ErrInputClosed
		}
		if time.Now().After(deadline) {
			return origin, nil, fmt.Errorf("linedit: %w within %v", ErrCursorPosition, p.cprTimeout)
		}
		if n == 0 {
			time.Sleep(readPollInterval)
		}
	}
}

// readBuffer forwards input to bufCh until a pong channel is received on
// stopCh, which is then sent any data read but not forwarded. On EOF, bufCh
// is closed.
func (p *Prompt) readBuffer(bufCh chan<- []byte, stopCh <-chan chan []byte) {
	debug.Log("start reading buffer")
	defer debug.Log("stop reading buffer")

	for {
		select {
		case pongCh := <-stopCh:
			pongCh <- nil
			return

		default:
			buf := make([]byte, inputBufferSize)
			n, err := p.reader.Read(buf)
			if n > 0 {
				select {
				case bufCh <- buf[:n]:
				case pongCh := <-stopCh:
					pongCh <- buf[:n]
					return
				}
			}
			if err == io.EOF {
				close(bufCh)
				pongCh := <-stopCh
				pongCh <- nil
				return
			}
			// A read error is expected for non-blocking I/O when no input is ready.
			if n == 0 {
				time.Sleep(readPollInterval)
			}
		}
	}
}
