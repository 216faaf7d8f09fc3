package satori

import (
	"time"

	"tbv-rpc/codec"
)

// IsDataOxyDeoxyConverted reports whether the server has converted raw
// wavelength data to oxy/deoxy concentrations.
func (c *Client) IsDataOxyDeoxyConverted() (bool, time.Duration, error) {
	data, rt, err := c.RequestData("tIsDataOxyDeoxyConverted")
	if err != nil {
		return false, rt, err
	}
	v, err := codec.DecodeBool(data)
	return v, rt, err
}

// GetOxyDataScaleFactor returns the factor concentration data was scaled
// by.
func (c *Client) GetOxyDataScaleFactor() (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetOxyDataScaleFactor")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetDataOxy returns the oxygenated haemoglobin sample of a channel at a
// frame.
func (c *Client) GetDataOxy(channel, frame int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetDataOxy",
		codec.Int32(channel), codec.Int32(frame))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetDataDeoxy returns the deoxygenated haemoglobin sample of a channel at
// a frame.
func (c *Client) GetDataDeoxy(channel, frame int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetDataDeoxy",
		codec.Int32(channel), codec.Int32(frame))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}
