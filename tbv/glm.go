package tbv

import (
	"time"

	"tbv-rpc/codec"
)

// Protocol, design matrix, and GLM queries.

// GetCurrentProtocolCondition returns the protocol condition at the current
// time point.
func (c *Client) GetCurrentProtocolCondition() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetCurrentProtocolCondition")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetFullNrOfPredictors returns the full number of predictors of the design
// matrix.
func (c *Client) GetFullNrOfPredictors() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetFullNrOfPredictors")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetCurrentNrOfPredictors returns the number of predictors in use at the
// current time point. Predictors that so far contain only zeros are not
// counted.
func (c *Client) GetCurrentNrOfPredictors() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetCurrentNrOfPredictors")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetNrOfConfoundPredictors returns the number of confound predictors.
func (c *Client) GetNrOfConfoundPredictors() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetNrOfConfoundPredictors")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetValueOfDesignMatrix returns the design matrix cell for a predictor at
// a time point.
func (c *Client) GetValueOfDesignMatrix(pred, timePoint int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetValueOfDesignMatrix",
		codec.Int32(pred), codec.Int32(timePoint))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetNrOfContrasts returns the number of contrasts.
func (c *Client) GetNrOfContrasts() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetNrOfContrasts")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}
