package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLDebugMessage is one entry from the driver's KHR_debug stream.
type GLDebugMessage struct {
	ID       uint32
	Source   uint32
	Type     uint32
	Severity uint32
	Message  string
}

var severityNames = map[uint32]string{
	gl.DEBUG_SEVERITY_HIGH:         "high",
	gl.DEBUG_SEVERITY_MEDIUM:       "medium",
	gl.DEBUG_SEVERITY_LOW:          "low",
	gl.DEBUG_SEVERITY_NOTIFICATION: "note",
}

func (dm GLDebugMessage) SeverityString() string {
	return severityNames[dm.Severity]
}

func (dm GLDebugMessage) String() string {
	return fmt.Sprintf("[%s] %s", dm.SeverityString(), dm.Message)
}

// GLDebugOutput switches on KHR_debug reporting for the current context
// and returns the stream of driver messages. The channel is never
// closed. A message arriving while the buffer is full is dropped: the
// callback runs on a driver thread and must not block.
func GLDebugOutput() <-chan GLDebugMessage {
	out := make(chan GLDebugMessage, 64)
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.DebugMessageControl(gl.DONT_CARE, gl.DONT_CARE, gl.DONT_CARE, 0, nil, true)
	gl.DebugMessageCallback(func(source, typ, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		dm := GLDebugMessage{
			ID:       id,
			Source:   source,
			Type:     typ,
			Severity: severity,
			Message:  message,
		}
		select {
		case out <- dm:
		default:
		}
	}, nil)
	return out
}
