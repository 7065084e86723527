package ingest

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/corvidsec/matchengine/event"
)

// SyslogCollector listens for RFC3164-style UDP syslog datagrams
// ("<priority>message") and publishes one event.Event per datagram.
// Anything that isn't a recognizable "<NN>..." frame is still published,
// with priority left unset, rather than dropped.
type SyslogCollector struct {
	Addr    string
	Publish Publisher
}

func NewSyslogCollector(addr string, publish Publisher) *SyslogCollector {
	return &SyslogCollector{Addr: addr, Publish: publish}
}

// Run listens until ctx is cancelled or the socket fails.
func (c *SyslogCollector) Run(ctx context.Context) error {
	conn, err := net.ListenPacket("udp", c.Addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	buf := make([]byte, 64*1024)
	for {
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		ev := parseSyslogDatagram(string(buf[:n]))
		c.Publish(ev)
	}
}

func parseSyslogDatagram(line string) event.Event {
	priority, message := -1, line
	if strings.HasPrefix(line, "<") {
		if end := strings.IndexByte(line, '>'); end > 0 {
			if p, err := strconv.Atoi(line[1:end]); err == nil {
				priority = p
				message = line[end+1:]
			}
		}
	}

	payload := map[string]any{"message": message}
	if priority >= 0 {
		payload["priority"] = priority
		payload["facility"] = priority / 8
		payload["severity"] = priority % 8
	}
	return event.New("syslog", time.Now().UnixMilli(), payload)
}
