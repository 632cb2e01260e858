// Package debugger resolves debug ports and issues debugger-attach
// requests to the surrounding tooling.
package debugger

import (
	"encoding/json"
	"fmt"
	"io"
	"net"

	"github.com/sirupsen/logrus"
)

// AttachRequest is the fixed protocol shape of a debugger session request.
type AttachRequest struct {
	Type     string `json:"type"`
	Request  string `json:"request"`
	HostName string `json:"hostName"`
	Port     int    `json:"port"`
	Root     string `json:"root,omitempty"`
}

// FreePort asks the OS for an unused TCP port.
func FreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("resolve free port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// EmitAttacher writes the attach request as one JSON line for the
// surrounding IDE tooling to consume, and logs it.
type EmitAttacher struct {
	out io.Writer
	log logrus.FieldLogger
}

// NewEmitAttacher creates an EmitAttacher writing to out.
func NewEmitAttacher(out io.Writer, log logrus.FieldLogger) *EmitAttacher {
	return &EmitAttacher{out: out, log: log}
}

// Attach issues the attach request. Fire-and-forget from the caller's
// point of view; errors only surface in the log.
func (a *EmitAttacher) Attach(rootDir, host string, port int) error {
	req := AttachRequest{
		Type:     "java",
		Request:  "attach",
		HostName: host,
		Port:     port,
		Root:     rootDir,
	}
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal attach request: %w", err)
	}
	if _, err := fmt.Fprintln(a.out, string(data)); err != nil {
		return fmt.Errorf("emit attach request: %w", err)
	}
	a.log.WithFields(logrus.Fields{"host": host, "port": port}).Info("debugger attach requested")
	return nil
}
