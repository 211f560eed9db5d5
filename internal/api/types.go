package api

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

type TracksResponse struct {
	Object string   `json:"object"`
	Tracks []string `json:"tracks"`
}

type LayoutResponse struct {
	Object        string        `json:"object"`
	FrameType     string        `json:"frame_type"`
	IsFullFrames  bool          `json:"isfullframes"`
	FrameCount    int32         `json:"frame_count"`
	DataOffset    uint32        `json:"data_offset"`
	PayloadSize   int32         `json:"payload_size"`
	PayloadValues int64         `json:"payload_values"`
	FileSize      int           `json:"file_size"`
	Tracks        []TrackLayout `json:"tracks"`
}

type TrackLayout struct {
	Name       string `json:"name"`
	Count      int32  `json:"count"`
	Start      int32  `json:"start"`
	Selector   int32  `json:"selector"`
	Offset     int64  `json:"offset"`
	Values     int64  `json:"values"`
	SharedWith string `json:"shared_with,omitempty"`
}
