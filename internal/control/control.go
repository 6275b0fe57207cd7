package control

import (
	"context"
	"net/url"
	"time"

	"github.com/supby/relay2mqtt/internal/logger"
)

// Interface queues operator requests for the scheduler. Transports call
// Submit from their own goroutines; the scheduler handles at most one
// request per tick through Service.
type Interface struct {
	queue  chan *Request
	logger logger.Logger
}

func New(capacity int, log logger.Logger) *Interface {
	if capacity <= 0 {
		capacity = 1
	}

	return &Interface{
		queue:  make(chan *Request, capacity),
		logger: log,
	}
}

// Submit queues a request and waits for its response or for ctx.
func (i *Interface) Submit(ctx context.Context, route string, args url.Values) (Response, error) {
	req := &Request{
		Route: route,
		Args:  args,
		reply: make(chan Response, 1),
	}

	select {
	case i.queue <- req:
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}

	select {
	case resp := <-req.reply:
		return resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Service handles one pending request, if any, and reports whether it did.
// A restart is requested from core only after the response was handed back.
func (i *Interface) Service(now time.Time, core Core) bool {
	var req *Request

	select {
	case req = <-i.queue:
	default:
		return false
	}

	resp, after := i.handle(now, core, req)
	req.reply <- resp

	if after != nil {
		after()
	}

	return true
}

func (i *Interface) handle(now time.Time, core Core, req *Request) (Response, func()) {
	switch req.Route {
	case RouteRoot, RouteIndex:
		return jsonResponse(statusPage(now, core)), nil
	case RouteWiFiConfig:
		return jsonResponse(wifiForm(core.Configuration())), nil
	case RouteBrokerConfig:
		return jsonResponse(brokerForm(core.Configuration())), nil
	case RouteStore:
		return i.store(core, req.Args), nil
	case RouteReboot:
		i.logger.Info("/reboot()")
		return textResponse(200, "Rebooting..."), core.Restart
	case RouteData:
		return jsonResponse(data(core.Status(now))), nil
	}

	return textResponse(404, "FileNotFound"), nil
}
