package room

import (
	"headsupholdem-server/pkg/protocol"
)

const logMessageLimit = 25

// addLogMessages buffers the most recent hand log messages and broadcasts the
// new ones to every connected client.
// NOTE: this must only be called from within the run loop
func (c *Croupier) addLogMessages(messages []*protocol.LogMessage) {
	m := append(c.logMessages, messages...)
	if count := len(m); count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	c.logMessages = m

	for _, client := range c.Clients() {
		client.Send(&protocol.Response{
			Key:  "logs",
			Data: messages,
		})
	}
}
