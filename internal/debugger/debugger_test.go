package debugger

import (
	"encoding/json"
	"io"
	"net"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestFreePort(t *testing.T) {
	port, err := FreePort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port <= 0 || port > 65535 {
		t.Fatalf("invalid port %d", port)
	}
	// The port must be bindable right after resolution.
	l, err := net.Listen("tcp", "127.0.0.1:"+strconv.Itoa(port))
	if err != nil {
		t.Fatalf("resolved port not bindable: %v", err)
	}
	l.Close()
}

func TestEmitAttacher_Attach(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	var out strings.Builder
	a := NewEmitAttacher(&out, log)

	if err := a.Attach("/work", "localhost", 5005); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var req AttachRequest
	if err := json.Unmarshal([]byte(out.String()), &req); err != nil {
		t.Fatalf("attach request is not valid JSON: %v", err)
	}
	if req.Type != "java" || req.Request != "attach" {
		t.Errorf("unexpected request shape: %+v", req)
	}
	if req.HostName != "localhost" || req.Port != 5005 {
		t.Errorf("unexpected target: %+v", req)
	}
}
