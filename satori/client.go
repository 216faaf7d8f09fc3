// Package satori provides the typed query catalogue of the Turbo-Satori
// fNIRS server on top of the core protocol client.
//
// The catalogue overlaps the Turbo-BrainVoyager one in a few names with
// different shapes (tGetCurrentClassifierOutput is a scalar here, the
// design matrix takes a chromophore index), which is why each server gets
// its own facade over *client.Connection.
package satori

import (
	"time"

	"tbv-rpc/client"
	"tbv-rpc/codec"
)

// Chromophore selects the oxygenated or deoxygenated haemoglobin signal in
// queries that carry a chromophore argument.
const (
	ChromophoreDeoxy int32 = 0
	ChromophoreOxy   int32 = 1
)

// Client is a session to a Turbo-Satori server.
type Client struct {
	*client.Connection
}

// Dial connects to a Turbo-Satori server.
func Dial(host string, port int, opts ...client.Option) (*Client, error) {
	c, err := client.Dial(host, port, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{Connection: c}, nil
}

// Wrap puts the typed catalogue on top of an existing connection.
func Wrap(c *client.Connection) *Client {
	return &Client{Connection: c}
}

// GetCurrentTimePoint returns the current frame (1-based).
func (c *Client) GetCurrentTimePoint() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetCurrentTimePoint")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetSamplingRate returns the acquisition sampling rate in Hz.
func (c *Client) GetSamplingRate() (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetSamplingRate")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetValuesFeedbackFolder returns the folder feedback value files are
// written to.
func (c *Client) GetValuesFeedbackFolder() (string, time.Duration, error) {
	data, rt, err := c.RequestData("tGetValuesFeedbackFolder")
	if err != nil {
		return "", rt, err
	}
	folder, err := codec.DecodeString(data)
	return folder, rt, err
}

// GetImagesFeedbackFolder returns the folder feedback image files are
// written to.
func (c *Client) GetImagesFeedbackFolder() (string, time.Duration, error) {
	data, rt, err := c.RequestData("tGetImagesFeedbackFolder")
	if err != nil {
		return "", rt, err
	}
	folder, err := codec.DecodeString(data)
	return folder, rt, err
}

// GetProtocolCondition returns the protocol condition active at the given
// frame.
func (c *Client) GetProtocolCondition(frame int32) (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetProtocolCondition", codec.Int32(frame))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}
