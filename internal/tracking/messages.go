package tracking

import (
	"encoding/json"
	"fmt"

	"github.com/iburimskiy/gesture-particles/internal/sim"
)

// Envelope is the wire shape of every tracker message.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	TypeHands    = "hands"
	TypeTemplate = "template"
	TypeColor    = "color"
)

type templateData struct {
	Name string `json:"name"`
}

type colorData struct {
	Value string `json:"value"`
}

// CommandKind identifies a UI command from the tracker page.
type CommandKind int

const (
	CommandTemplate CommandKind = iota
	CommandColor
)

// Command is a UI request; Value is the template name or color string.
type Command struct {
	Kind  CommandKind
	Value string
}

// decoded is what one inbound message turned into. Exactly one of obs or cmd
// is set.
type decoded struct {
	obs *sim.Observation
	cmd *Command
}

func decode(raw []byte) (decoded, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return decoded{}, err
	}
	switch env.Type {
	case TypeHands:
		var obs sim.Observation
		if err := json.Unmarshal(env.Data, &obs); err != nil {
			return decoded{}, err
		}
		return decoded{obs: &obs}, nil
	case TypeTemplate:
		var d templateData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return decoded{}, err
		}
		return decoded{cmd: &Command{Kind: CommandTemplate, Value: d.Name}}, nil
	case TypeColor:
		var d colorData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return decoded{}, err
		}
		return decoded{cmd: &Command{Kind: CommandColor, Value: d.Value}}, nil
	default:
		return decoded{}, &UnknownTypeError{Type: env.Type}
	}
}

type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown message type %q", e.Type)
}
