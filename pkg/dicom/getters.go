package dicom

import (
	"time"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/uid"
)

// The Get helpers wrap the TryGet methods, returning def when the index is
// out of range or the value does not convert.

func GetInt16(a Attribute, i int, def int16) int16 {
	if v, ok := a.TryGetInt16(i); ok {
		return v
	}
	return def
}

func GetInt32(a Attribute, i int, def int32) int32 {
	if v, ok := a.TryGetInt32(i); ok {
		return v
	}
	return def
}

func GetInt64(a Attribute, i int, def int64) int64 {
	if v, ok := a.TryGetInt64(i); ok {
		return v
	}
	return def
}

func GetUInt16(a Attribute, i int, def uint16) uint16 {
	if v, ok := a.TryGetUInt16(i); ok {
		return v
	}
	return def
}

func GetUInt32(a Attribute, i int, def uint32) uint32 {
	if v, ok := a.TryGetUInt32(i); ok {
		return v
	}
	return def
}

func GetUInt64(a Attribute, i int, def uint64) uint64 {
	if v, ok := a.TryGetUInt64(i); ok {
		return v
	}
	return def
}

func GetFloat32(a Attribute, i int, def float32) float32 {
	if v, ok := a.TryGetFloat32(i); ok {
		return v
	}
	return def
}

func GetFloat64(a Attribute, i int, def float64) float64 {
	if v, ok := a.TryGetFloat64(i); ok {
		return v
	}
	return def
}

func GetString(a Attribute, i int, def string) string {
	if v, ok := a.TryGetString(i); ok {
		return v
	}
	return def
}

func GetDateTime(a Attribute, i int, def time.Time) time.Time {
	if v, ok := a.TryGetDateTime(i); ok {
		return v
	}
	return def
}

func GetUID(a Attribute, i int, def *uid.UID) *uid.UID {
	if v, ok := a.TryGetUID(i); ok {
		return v
	}
	return def
}
