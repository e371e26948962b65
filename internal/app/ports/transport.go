package ports

import "context"

// TransportPort opens a text frame connection to the chat server.
type TransportPort interface {
	Connect(ctx context.Context, url string) (ConnPort, error)
}

// ConnPort is one live connection. Receive returns one frame (one IRC line)
// per call and domain.ErrConnectionClosed once the server closed normally.
// Send may be called concurrently with Receive but not with itself.
type ConnPort interface {
	Send(ctx context.Context, frame string) error
	Receive(ctx context.Context) (string, error)
	Close() error
}
