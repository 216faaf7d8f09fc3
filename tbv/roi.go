package tbv

import (
	"time"

	"tbv-rpc/codec"
)

// ROI queries. ROIs are addressed by the opaque integer index the server
// assigned them; the client never interprets it.

// GetNrOfROIs returns the number of currently loaded ROIs.
func (c *Client) GetNrOfROIs() (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetNrOfROIs")
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetMeanOfROI returns the mean signal of a ROI at the current time point.
func (c *Client) GetMeanOfROI(roi int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetMeanOfROI", codec.Int32(roi))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetExistingMeansOfROI returns all means of a ROI up to the given time
// point.
func (c *Client) GetExistingMeansOfROI(roi, toTimePoint int32) ([]float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetExistingMeansOfROI",
		codec.Int32(roi), codec.Int32(toTimePoint))
	if err != nil {
		return nil, rt, err
	}
	return codec.DecodeFloat32Slice(data), rt, nil
}

// GetMeanOfROIAtTimePoint returns the mean signal of a ROI at a time point
// (0-based).
func (c *Client) GetMeanOfROIAtTimePoint(roi, timePoint int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetMeanOfROIAtTimePoint",
		codec.Int32(roi), codec.Int32(timePoint))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetNrOfVoxelsOfROI returns the voxel count of a ROI.
func (c *Client) GetNrOfVoxelsOfROI(roi int32) (int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetNrOfVoxelsOfROI", codec.Int32(roi))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeInt32(data)
	return v, rt, err
}

// GetBetaOfROI returns one beta value of a ROI.
func (c *Client) GetBetaOfROI(roi, beta int32) (float32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetBetaOfROI",
		codec.Int32(roi), codec.Int32(beta))
	if err != nil {
		return 0, rt, err
	}
	v, err := codec.DecodeFloat32(data)
	return v, rt, err
}

// GetCoordsOfVoxelOfROI returns the [x, y, z] coordinates of one voxel of a
// ROI.
func (c *Client) GetCoordsOfVoxelOfROI(roi, voxel int32) ([3]int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetCoordsOfVoxelOfROI",
		codec.Int32(roi), codec.Int32(voxel))
	if err != nil {
		return [3]int32{}, rt, err
	}
	coords, err := codec.DecodeInt32Triple(data)
	return coords, rt, err
}

// GetAllCoordsOfVoxelsOfROI returns the coordinates of every voxel of a
// ROI.
func (c *Client) GetAllCoordsOfVoxelsOfROI(roi int32) ([][3]int32, time.Duration, error) {
	data, rt, err := c.RequestData("tGetAllCoordsOfVoxelsOfROI", codec.Int32(roi))
	if err != nil {
		return nil, rt, err
	}
	return codec.GroupTriples(codec.DecodeInt32Slice(data)), rt, nil
}

// AllBetasOfROI reads every beta of a ROI: it first asks the server for the
// current predictor count, then queries the betas one by one in index
// order. The returned round trip is the sum over all sub-queries.
func (c *Client) AllBetasOfROI(roi int32) ([]float32, time.Duration, error) {
	n, total, err := c.GetCurrentNrOfPredictors()
	if err != nil {
		return nil, total, err
	}

	betas := make([]float32, 0, n)
	for b := int32(0); b < n; b++ {
		v, rt, err := c.GetBetaOfROI(roi, b)
		total += rt
		if err != nil {
			return nil, total, err
		}
		betas = append(betas, v)
	}
	return betas, total, nil
}

// VoxelCoordsOfROIs reads the voxel coordinates of every loaded ROI: the
// ROI count is queried first, then each ROI's coordinate array in index
// order. The result has one [][x, y, z] slice per ROI.
func (c *Client) VoxelCoordsOfROIs() ([][][3]int32, time.Duration, error) {
	n, total, err := c.GetNrOfROIs()
	if err != nil {
		return nil, total, err
	}

	rois := make([][][3]int32, 0, n)
	for roi := int32(0); roi < n; roi++ {
		coords, rt, err := c.GetAllCoordsOfVoxelsOfROI(roi)
		total += rt
		if err != nil {
			return nil, total, err
		}
		rois = append(rois, coords)
	}
	return rois, total, nil
}
