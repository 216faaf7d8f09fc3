package tbv

import (
	"time"

	"tbv-rpc/codec"
)

// SVM classifier access.

// GetNumberOfClasses returns the number of classifier classes.
func (c *Client) GetNumberOfClasses() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetNumberOfClasses")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetCurrentClassifierOutput returns the current classifier output, one
// value per class (1-based on the server side).
func (c *Client) GetCurrentClassifierOutput() ([]float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetCurrentClassifierOutput")
	if err != nil {
		return nil, rt, err
	}
	return codec.DecodeFloat32Slice(data), rt, nil
}
