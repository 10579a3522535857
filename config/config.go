// Package config validates the small pieces of configuration a service
// client needs before it ever opens a socket: the caller/endpoint/service
// identity triple and optional dial/read/write deadlines.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"tcpros/service"
)

var validate = validator.New()

// DialOptions carries the connect timeout and optional read/write deadlines
// for a single service call. The zero value blocks indefinitely on every
// step: a call runs to completion or until the peer or transport fails.
type DialOptions struct {
	ConnectTimeout time.Duration `validate:"gte=0"`
	ReadTimeout    time.Duration `validate:"gte=0"`
	WriteTimeout   time.Duration `validate:"gte=0"`
}

// DefaultDialOptions blocks indefinitely on every step.
var DefaultDialOptions = DialOptions{}

// NewDialOptions validates and returns a DialOptions value. Negative
// durations are rejected; the zero duration means "no deadline".
func NewDialOptions(connectTimeout, readTimeout, writeTimeout time.Duration) (DialOptions, error) {
	opts := DialOptions{
		ConnectTimeout: connectTimeout,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
	}
	if err := validate.Struct(opts); err != nil {
		return DialOptions{}, fmt.Errorf("config: invalid dial options: %w", err)
	}
	return opts, nil
}

type clientInfoInput struct {
	CallerID string `validate:"required"`
	URI      string `validate:"required"`
	Service  string `validate:"required"`
}

// NewClientInfo validates and constructs the immutable {caller identity,
// endpoint URI, service name} triple a Client shares across every call.
func NewClientInfo(callerID, uri, serviceName string) (service.ClientInfo, error) {
	input := clientInfoInput{CallerID: callerID, URI: uri, Service: serviceName}
	if err := validate.Struct(input); err != nil {
		return service.ClientInfo{}, fmt.Errorf("config: invalid client info: %w", err)
	}
	return service.ClientInfo{CallerID: callerID, URI: uri, Service: serviceName}, nil
}
