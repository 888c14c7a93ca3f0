package driver

import "errors"

var ErrNoAlgorithm = errors.New("driver: no algorithm selected")
