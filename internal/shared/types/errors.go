package types

import "errors"

var (
	ErrMissingColumn         = errors.New("required column not found in dataset header")
	ErrRowTooLong            = errors.New("row has more fields than the header")
	ErrInvalidDate           = errors.New("value is not a valid date")
	ErrInvalidNumber         = errors.New("value is not a valid number")
	ErrUndefinedMetric       = errors.New("metric is undefined for this dataset")
	ErrEmptySeries           = errors.New("series has no data points")
	ErrInvalidS3URI          = errors.New("invalid S3 URI, expected s3://bucket/key")
	ErrUnsupportedReportType = errors.New("unsupported report type")
)
