package satori

import (
	"time"

	"tbv-rpc/codec"
)

// GetBaselineOfChannel returns the neurofeedback baseline level of a
// channel and chromophore.
func (c *Client) GetBaselineOfChannel(channel, chromophore int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetBaselineOfChannel",
		codec.Int32(channel), codec.Int32(chromophore))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetCurrentFeedbackLevel returns the feedback level the server computed
// for the current frame, normalized to [0, 1].
func (c *Client) GetCurrentFeedbackLevel() (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetCurrentFeedbackLevel")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}
