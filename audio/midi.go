package audio

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	log "github.com/sirupsen/logrus"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"drumdrill/debug"
	"drumdrill/pattern"
)

const (
	// DefaultChannel is the GM percussion channel (10), zero based.
	DefaultChannel uint8 = 9
	defaultGate          = 100 * time.Millisecond
	portScanTimeout      = 3 * time.Second
)

// PortEvent is emitted when the configured output appears or disappears.
type PortEvent struct {
	Port      string
	Connected bool
}

// MIDIVoice sends one drum note per symbol to a MIDI output port. Notes are
// resolved from the kit once, at construction.
type MIDIVoice struct {
	portName string
	channel  uint8
	velocity uint8
	gate     time.Duration
	notes    map[pattern.Symbol]uint8

	mu     sync.RWMutex
	send   func(msg gomidi.Message) error
	opened string

	events   chan PortEvent
	pollRate time.Duration
}

// NewMIDIVoice creates an unconnected voice. An empty portName matches the
// first available output port.
func NewMIDIVoice(portName string, channel uint8, kit Kit) *MIDIVoice {
	notes := make(map[pattern.Symbol]uint8, len(kit.Notes))
	for sym, n := range kit.Notes {
		notes[sym] = n
	}
	return &MIDIVoice{
		portName: portName,
		channel:  channel,
		velocity: 100,
		gate:     defaultGate,
		notes:    notes,
		events:   make(chan PortEvent, 16),
		pollRate: time.Second,
	}
}

// Note returns the MIDI note used for sym.
func (v *MIDIVoice) Note(sym pattern.Symbol) (uint8, bool) {
	n, ok := v.notes[sym]
	return n, ok
}

// Events returns a channel of port connect/disconnect events
func (v *MIDIVoice) Events() <-chan PortEvent {
	return v.events
}

// Port returns the name of the open port, or "".
func (v *MIDIVoice) Port() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.opened
}

// Trigger sends note on now and note off after the gate time.
func (v *MIDIVoice) Trigger(sym pattern.Symbol) error {
	note, ok := v.notes[sym]
	if !ok {
		return fault.Wrap(ErrNoSound, fmsg.With("no kit note for "+string(sym)))
	}

	v.mu.RLock()
	send := v.send
	v.mu.RUnlock()
	if send == nil {
		return fault.Wrap(ErrNoSound, fmsg.With("no MIDI output open"))
	}

	if err := send(gomidi.NoteOn(v.channel, note, v.velocity)); err != nil {
		return err
	}
	go func(s func(gomidi.Message) error, ch, n uint8, gate time.Duration) {
		time.Sleep(gate)
		s(gomidi.NoteOff(ch, n))
	}(send, v.channel, note, v.gate)
	return nil
}

// Connect opens the configured port if it is present.
func (v *MIDIVoice) Connect() error {
	outs, err := scanOutPorts()
	if err != nil {
		return err
	}
	v.reconcile(outs)
	if v.Port() == "" {
		return fault.Wrap(ErrNoSound,
			fmsg.WithDesc("output port not found: "+v.portName, "MIDI output not found, connect a device"))
	}
	return nil
}

// Run polls for the port appearing or disappearing until ctx is done
// (blocking - run in goroutine)
func (v *MIDIVoice) Run(ctx context.Context) {
	ticker := time.NewTicker(v.pollRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			v.setSender("", nil)
			close(v.events)
			return
		case <-ticker.C:
			outs, err := scanOutPorts()
			if err != nil {
				// CoreMIDI is hung - skip this scan
				debug.Log("midi", "port scan: %v", err)
				continue
			}
			v.reconcile(outs)
		}
	}
}

func (v *MIDIVoice) reconcile(outs []drivers.Out) {
	current := v.Port()

	var match drivers.Out
	for _, out := range outs {
		if matchPort(out.String(), v.portName) {
			match = out
			break
		}
	}

	switch {
	case match == nil && current != "":
		v.setSender("", nil)
		v.emit(PortEvent{Port: current, Connected: false})
	case match != nil && current == "":
		send, err := gomidi.SendTo(match)
		if err != nil {
			log.WithFields(log.Fields{
				"function": "MIDIVoice.reconcile",
				"port":     match.String(),
			}).Warn(err.Error())
			return
		}
		v.setSender(match.String(), send)
		v.emit(PortEvent{Port: match.String(), Connected: true})
	}
}

func (v *MIDIVoice) setSender(name string, send func(gomidi.Message) error) {
	v.mu.Lock()
	v.opened = name
	v.send = send
	v.mu.Unlock()
	debug.Log("midi", "output port=%q", name)
}

func (v *MIDIVoice) emit(e PortEvent) {
	select {
	case v.events <- e:
	default:
	}
}

func matchPort(name, want string) bool {
	if want == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(want))
}

// scanOutPorts lists output ports with a timeout (CoreMIDI can hang)
func scanOutPorts() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(portScanTimeout):
		return nil, fault.New("MIDI port scan timed out",
			fmsg.WithDesc("port scan timeout", "MIDI system is not responding"))
	}
}

// OutPorts returns the names of all MIDI output ports.
func OutPorts() ([]string, error) {
	outs, err := scanOutPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}
	return names, nil
}

// CloseDriver releases the MIDI driver.
func CloseDriver() {
	gomidi.CloseDriver()
}
