package perceptron

import "github.com/pkg/errors"

var ErrUnknownRule = errors.New("perceptron: unknown update rule")
