// Package broker wraps the MQTT client library behind the two-method
// Handler callback contract the rest of mqttviz is written against.
package broker

// Handler receives connection results and inbound messages. OnMessage is
// called from the client's network goroutine, one message at a time.
type Handler interface {
	// OnConnected receives 0 on success or the CONNACK refusal code
	OnConnected(code byte)
	OnMessage(topic string, payload []byte)
}

// Publisher is the publishing half of a connected client
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// Conn is what sessions need from a connected client
type Conn interface {
	Publisher
	Subscribe(topic string) error
	Disconnect()
}

// Connection result codes as reported to Handler.OnConnected. Codes 1-5 are
// the MQTT 3.1.1 CONNACK refusals; the rest mean no CONNACK was received.
const (
	CodeAccepted           byte = 0x00
	CodeBadProtocolVersion byte = 0x01
	CodeIdentifierRejected byte = 0x02
	CodeServerUnavailable  byte = 0x03
	CodeBadCredentials     byte = 0x04
	CodeNotAuthorized      byte = 0x05
	CodeTimeout            byte = 0xFD
	CodeNetworkError       byte = 0xFE
)

// CodeText describes a connection result code
func CodeText(code byte) string {
	switch code {
	case CodeAccepted:
		return "connection accepted"
	case CodeBadProtocolVersion:
		return "unacceptable protocol version"
	case CodeIdentifierRejected:
		return "identifier rejected"
	case CodeServerUnavailable:
		return "server unavailable"
	case CodeBadCredentials:
		return "bad user name or password"
	case CodeNotAuthorized:
		return "not authorized"
	case CodeTimeout:
		return "connect timed out"
	case CodeNetworkError:
		return "network error"
	default:
		return "unknown result code"
	}
}
