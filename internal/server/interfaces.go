package server

// Server runs the inbound transport until shutdown.
type Server interface {
	RunServer()
	Shutdown()
}
