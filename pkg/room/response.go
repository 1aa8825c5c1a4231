package room

import (
	"headsupholdem-server/pkg/protocol"
)

func newErrorResponse(ctx string, err error) *protocol.Response {
	return &protocol.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
