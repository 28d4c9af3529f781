package conf

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Training holds the settings of a training run.
type Training struct {
	Iterations     int     `yaml:"iterations"`
	Rule           string  `yaml:"rule"`
	Aggressiveness float64 `yaml:"aggressiveness"`
	Extended       bool    `yaml:"extended features"`
	Intermediate   bool    `yaml:"intermediate models"`
	Limit          int     `yaml:"limit"`
	Workers        int     `yaml:"workers"`
}

func DefaultTraining() *Training {
	return &Training{
		Iterations:     10,
		Rule:           "perceptron",
		Aggressiveness: 0.1,
	}
}

// ReadTraining reads YAML settings over the defaults. Unknown keys are an
// error.
func ReadTraining(reader io.Reader) (*Training, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "reading training conf")
	}
	training := DefaultTraining()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(training); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "parsing training conf")
	}
	if training.Iterations < 0 || training.Aggressiveness < 0 || training.Limit < 0 {
		return nil, errors.Errorf("negative setting in training conf: %+v", *training)
	}
	return training, nil
}

func ReadTrainingFile(filename string) (*Training, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening training conf")
	}
	defer file.Close()

	return ReadTraining(file)
}

func (t *Training) String() string {
	out, err := yaml.Marshal(t)
	if err != nil {
		return err.Error()
	}
	return string(out)
}
