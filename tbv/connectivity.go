package tbv

import (
	"time"

	"tbv-rpc/codec"
)

// Functional connectivity queries. Every correlation query returns one
// value per unordered ROI pair, ordered (1,2), (1,3), ..., (n-1,n); use
// CorrelationPairs to plan how many values to expect.

// GetPearsonCorrelation returns the Pearson correlations between all ROI
// pairs over a sliding window ending at the current time point.
func (c *Client) GetPearsonCorrelation(windowSize int32) ([]float32, time.Duration, error) {
	return c.correlation("tGetPearsonCorrelation", codec.Int32(windowSize))
}

// GetPearsonCorrelationAtTimePoint returns the Pearson correlations over a
// window ending at the given time point.
func (c *Client) GetPearsonCorrelationAtTimePoint(windowSize, timePoint int32) ([]float32, time.Duration, error) {
	return c.correlation("tGetPearsonCorrelationAtTimePoint",
		codec.Int32(windowSize), codec.Int32(timePoint))
}

// GetPartialCorrelation returns the partial correlations between all ROI
// pairs, controlling for the remaining ROIs.
func (c *Client) GetPartialCorrelation(windowSize int32) ([]float32, time.Duration, error) {
	return c.correlation("tGetPartialCorrelation", codec.Int32(windowSize))
}

// GetPartialCorrelationAtTimePoint returns the partial correlations over a
// window ending at the given time point.
func (c *Client) GetPartialCorrelationAtTimePoint(windowSize, timePoint int32) ([]float32, time.Duration, error) {
	return c.correlation("tGetPartialCorrelationAtTimePoint",
		codec.Int32(windowSize), codec.Int32(timePoint))
}

// GetDetrendedPearsonCorrelation is GetPearsonCorrelation on linearly
// detrended time courses.
func (c *Client) GetDetrendedPearsonCorrelation(windowSize int32) ([]float32, time.Duration, error) {
	return c.correlation("tGetDetrendedPearsonCorrelation", codec.Int32(windowSize))
}

// GetDetrendedPearsonCorrelationAtTimePoint is the detrended variant of
// GetPearsonCorrelationAtTimePoint.
func (c *Client) GetDetrendedPearsonCorrelationAtTimePoint(windowSize, timePoint int32) ([]float32, time.Duration, error) {
	return c.correlation("tGetDetrendedPearsonCorrelationAtTimePoint",
		codec.Int32(windowSize), codec.Int32(timePoint))
}

// GetDetrendedPartialCorrelation is GetPartialCorrelation on linearly
// detrended time courses.
func (c *Client) GetDetrendedPartialCorrelation(windowSize int32) ([]float32, time.Duration, error) {
	return c.correlation("tGetDetrendedPartialCorrelation", codec.Int32(windowSize))
}

// GetDetrendedPartialCorrelationAtTimePoint is the detrended variant of
// GetPartialCorrelationAtTimePoint.
func (c *Client) GetDetrendedPartialCorrelationAtTimePoint(windowSize, timePoint int32) ([]float32, time.Duration, error) {
	return c.correlation("tGetDetrendedPartialCorrelationAtTimePoint",
		codec.Int32(windowSize), codec.Int32(timePoint))
}

// CorrelationPairs queries the ROI count and returns the number of values a
// correlation query will deliver: n*(n-1)/2.
func (c *Client) CorrelationPairs() (int, time.Duration, error) {
	n, rt, err := c.GetNrOfROIs()
	if err != nil {
		return 0, rt, err
	}
	return int(n) * (int(n) - 1) / 2, rt, nil
}

func (c *Client) correlation(name string, args ...[]byte) ([]float32, time.Duration, error) {
	data, rt, err := c.RequestData(name, args...)
	if err != nil {
		return nil, rt, err
	}
	return codec.DecodeFloat32Slice(data), rt, nil
}
