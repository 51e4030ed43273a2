package staff

import "errors"

var (
	ErrStaffNotFound = errors.New("staff profile not found")
)
