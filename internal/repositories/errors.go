package repositories

import "errors"

// ErrProductNotFound is returned when a referenced product id does not
// exist in the store. Callers test for it with errors.Is.
var ErrProductNotFound = errors.New("product not found")
