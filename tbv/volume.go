package tbv

import (
	"time"

	"tbv-rpc/codec"
)

// Volume data access queries.

// GetValueOfVoxelAtTime returns the value of one voxel at a time point.
func (c *Client) GetValueOfVoxelAtTime(coords [3]int32, timePoint int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetValueOfVoxelAtTime",
		codec.Int32(coords[0]), codec.Int32(coords[1]), codec.Int32(coords[2]),
		codec.Int32(timePoint))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetValueOfAllVoxelsAtTime returns the whole preprocessed volume at a time
// point as int16 samples in x-fastest order; the value of a single voxel
// sits at z*dimX*dimY + y*dimX + x.
func (c *Client) GetValueOfAllVoxelsAtTime(timePoint int32) ([]int16, time.Duration, error) {
	data, rt, err := c.RequestData("tGetValueOfAllVoxelsAtTime", codec.Int32(timePoint))
	if err != nil {
		return nil, rt, err
	}
	return codec.DecodeInt16Slice(data), rt, nil
}

// GetRawValueOfAllVoxelsAtTime returns the raw (unpreprocessed) volume at a
// time point, laid out like GetValueOfAllVoxelsAtTime.
func (c *Client) GetRawValueOfAllVoxelsAtTime(timePoint int32) ([]int16, time.Duration, error) {
	data, rt, err := c.RequestData("tGetRawValueOfAllVoxelsAtTime", codec.Int32(timePoint))
	if err != nil {
		return nil, rt, err
	}
	return codec.DecodeInt16Slice(data), rt, nil
}

// GetBetaOfVoxel returns one beta value of a voxel as a double.
func (c *Client) GetBetaOfVoxel(beta int32, coords [3]int32) (float64, time.Duration, error) {
	data, rt, err := c.RequestData("tGetBetaOfVoxel",
		codec.Int32(beta),
		codec.Int32(coords[0]), codec.Int32(coords[1]), codec.Int32(coords[2]))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat64(data)
	return v, rt, err
}

// GetBetaMaps returns all beta maps as doubles; the beta of one predictor
// and voxel sits at beta*dimXYZ + z*dimXY + y*dimX + x.
func (c *Client) GetBetaMaps() ([]float64, time.Duration, error) {
	data, rt, err := c.RequestData("tGetBetaMaps")
	if err != nil {
		return nil, rt, err
	}
	return codec.DecodeFloat64Slice(data), rt, nil
}

// GetMapValueOfVoxel returns one statistical map value of a voxel.
func (c *Client) GetMapValueOfVoxel(mapIndex int32, coords [3]int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetMapValueOfVoxel",
		codec.Int32(mapIndex),
		codec.Int32(coords[0]), codec.Int32(coords[1]), codec.Int32(coords[2]))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetContrastMaps returns all contrast maps; the t value of one map and
// voxel sits at map*dimXYZ + z*dimXY + y*dimX + x.
func (c *Client) GetContrastMaps() ([]float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetContrastMaps")
	if err != nil {
		return nil, rt, err
	}
	return codec.DecodeFloat32Slice(data), rt, nil
}
