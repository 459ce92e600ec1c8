package runtime

import (
	"io"
	"os"
)

type ServiceOption func(*ServiceCtx)

func WithServiceTermination(ch chan os.Signal) ServiceOption {
	return func(s *ServiceCtx) {
		s.shutdownChannel = ch
	}
}

// WithWaitingForServer makes WaitForServer block until the webhook listener is bound.
func WithWaitingForServer() ServiceOption {
	return func(s *ServiceCtx) {
		s.serverReady = make(chan struct{})
	}
}

// WithStreams replaces stdin and stdout as the rpc transport.
func WithStreams(in io.Reader, out io.Writer) ServiceOption {
	return func(s *ServiceCtx) {
		s.in = in
		s.out = out
	}
}

// WithDependencies appends options applied after the defaults.
func WithDependencies(opts ...DependencyOption) ServiceOption {
	return func(s *ServiceCtx) {
		s.depOpts = append(s.depOpts, opts...)
	}
}
