package satori

import (
	"time"

	"tbv-rpc/codec"
)

// GetNrOfChannels returns the total number of montage channels.
func (c *Client) GetNrOfChannels() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetNrOfChannels")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetNrOfSelectedChannels returns the number of channels selected in the
// GUI.
func (c *Client) GetNrOfSelectedChannels() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetNrOfSelectedChannels")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetSelectedChannels returns the zero-based indices of the selected
// channels.
func (c *Client) GetSelectedChannels() ([]int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetSelectedChannels")
	if err != nil {
		return nil, rt, err
	}
	return codec.DecodeInt32Slice(data), rt, nil
}

// GetRawDataScaleFactor returns the factor raw wavelength data was scaled
// by.
func (c *Client) GetRawDataScaleFactor() (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetRawDataScaleFactor")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetRawDataWL1 returns the raw first-wavelength sample of a channel at a
// frame.
func (c *Client) GetRawDataWL1(channel, frame int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetRawDataWL1",
		codec.Int32(channel), codec.Int32(frame))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetRawDataWL2 returns the raw second-wavelength sample of a channel at a
// frame.
func (c *Client) GetRawDataWL2(channel, frame int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetRawDataWL2",
		codec.Int32(channel), codec.Int32(frame))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// OxyDataOfSelectedChannels returns the oxy sample at the given frame for
// every selected channel, in the order tGetSelectedChannels reports them.
// The round trip sums over all issued requests.
func (c *Client) OxyDataOfSelectedChannels(frame int32) ([]float32, time.Duration, error) {
	return c.dataOfSelectedChannels(frame, c.GetDataOxy)
}

// DeoxyDataOfSelectedChannels is OxyDataOfSelectedChannels for the deoxy
// signal.
func (c *Client) DeoxyDataOfSelectedChannels(frame int32) ([]float32, time.Duration, error) {
	return c.dataOfSelectedChannels(frame, c.GetDataDeoxy)
}

func (c *Client) dataOfSelectedChannels(frame int32, get func(channel, frame int32) (float32, time.Duration, error)) ([]float32, time.Duration, error) {
	channels, total, err := c.GetSelectedChannels()
	if err != nil {
		return nil, total, err
	}
	out := make([]float32, 0, len(channels))
	for _, ch := range channels {
		v, rt, err := get(ch, frame)
		total += rt
		if err != nil {
			return nil, total, err
		}
		out = append(out, v)
	}
	return out, total, nil
}
