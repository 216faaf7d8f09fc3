// Package tbv provides the typed query catalogue of the Turbo-BrainVoyager
// network plugin on top of the core protocol client.
//
// Client embeds *client.Connection: framing, echo validation, timeouts, and
// middleware all live there. The methods here only pack arguments and decode
// the typed payload of each request, mirroring the plugin's catalogue of
// project, design-matrix/GLM, ROI, volume, classifier, and functional
// connectivity queries.
//
// Every query returns its decoded value together with the measured round
// trip; the second return is the place experiment scripts read their timing
// bookkeeping from.
package tbv

import (
	"time"

	"tbv-rpc/client"
	"tbv-rpc/codec"
)

// Client is a session to a Turbo-BrainVoyager server.
type Client struct {
	*client.Connection
}

// Dial connects to a Turbo-BrainVoyager server.
func Dial(host string, port int, opts ...client.Option) (*Client, error) {
	c, err := client.Dial(host, port, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{Connection: c}, nil
}

// Wrap puts the typed catalogue on top of an existing connection, e.g. one
// obtained through client.DialService.
func Wrap(c *client.Connection) *Client {
	return &Client{Connection: c}
}

// Basic project queries

// GetCurrentTimePoint returns the current time point (1-based).
func (c *Client) GetCurrentTimePoint() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetCurrentTimePoint")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetExpectedNrOfTimePoints returns the expected number of time points of
// the running measurement.
func (c *Client) GetExpectedNrOfTimePoints() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetExpectedNrOfTimePoints")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetDimsOfFunctionalData returns the [x, y, z] dimensions of the
// functional volume.
func (c *Client) GetDimsOfFunctionalData() ([3]int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetDimsOfFunctionalData")
	if err != nil {
		return [3]int32{}, rt, err
	}
	dims, err := codec.DecodeInt32Triple(data)
	return dims, rt, err
}

// GetProjectName returns the project name.
func (c *Client) GetProjectName() (string, time.Duration, error) {
	data, rt, err := c.RequestData("tGetProjectName")
	if err != nil {
		return "", rt, err
	}
	name, err := codec.DecodeString(data)
	return name, rt, err
}

// GetWatchFolder returns the folder the server watches for incoming data.
func (c *Client) GetWatchFolder() (string, time.Duration, error) {
	data, rt, err := c.RequestData("tGetWatchFolder")
	if err != nil {
		return "", rt, err
	}
	folder, err := codec.DecodeString(data)
	return folder, rt, err
}

// GetTargetFolder returns the target folder.
func (c *Client) GetTargetFolder() (string, time.Duration, error) {
	data, rt, err := c.RequestData("tGetTargetFolder")
	if err != nil {
		return "", rt, err
	}
	folder, err := codec.DecodeString(data)
	return folder, rt, err
}

// GetFeedbackFolder returns the feedback folder.
func (c *Client) GetFeedbackFolder() (string, time.Duration, error) {
	data, rt, err := c.RequestData("tGetFeedbackFolder")
	if err != nil {
		return "", rt, err
	}
	folder, err := codec.DecodeString(data)
	return folder, rt, err
}
