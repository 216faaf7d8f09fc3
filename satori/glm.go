package satori

import (
	"time"

	"tbv-rpc/codec"
)

// GetNumberOfClasses returns the number of classes of the loaded
// classifier.
func (c *Client) GetNumberOfClasses() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetNumberOfClasses")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetCurrentClassifierOutput returns the classifier output for the current
// frame. Unlike the volume-based server, Turbo-Satori reports a single
// value.
func (c *Client) GetCurrentClassifierOutput() (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetCurrentClassifierOutput")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetFullNrOfPredictors returns the number of predictors of the design
// matrix.
func (c *Client) GetFullNrOfPredictors() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetFullNrOfPredictors")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetValueOfDesignMatrix returns the design matrix cell for a predictor,
// frame, and chromophore.
func (c *Client) GetValueOfDesignMatrix(pred, frame, chromophore int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetValueOfDesignMatrix",
		codec.Int32(pred), codec.Int32(frame), codec.Int32(chromophore))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetPredictionOfChannel returns the GLM model prediction of a channel and
// chromophore. The wire name carries the server's own misspelling.
func (c *Client) GetPredictionOfChannel(channel, chromophore int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetPredicitonOfChannel",
		codec.Int32(channel), codec.Int32(chromophore))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetBetaOfChannel returns the estimated beta of a predictor for a channel
// and chromophore.
func (c *Client) GetBetaOfChannel(channel, beta, chromophore int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetBetaOfChannel",
		codec.Int32(channel), codec.Int32(beta), codec.Int32(chromophore))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetTValueOfChannel returns the t statistic of a contrast for a channel
// and chromophore. The contrast vector travels as its length followed by
// its elements.
func (c *Client) GetTValueOfChannel(channel, chromophore int32, contrast []int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGettValueOfChannel",
		codec.Int32(channel), codec.Int32(chromophore),
		codec.Int32(int32(len(contrast))), codec.Int32Slice(contrast))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}
