package model

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFile is returned when a model file fails struct validation.
var ErrInvalidFile = errors.New("model: invalid model file")

// fileValidate is the validator instance for model files.
var fileValidate = validator.New()

// File is the on-disk YAML form of a model plus the frequencies to solve for.
//
//	name: two-layer
//	layers:
//	  - {alpha: 519.6, beta: 300, rho: 1800, thickness: 20}
//	  - {alpha: 1125.8, beta: 650, rho: 2000}
//	frequencies: [1, 2, 5, 10]
type File struct {
	Name        string      `yaml:"name,omitempty"`
	Layers      []FileLayer `yaml:"layers" validate:"required,min=1,dive"`
	Frequencies []float64   `yaml:"frequencies,omitempty" validate:"dive,gt=0"`
}

// FileLayer is one layer entry of a File. Thickness is omitted for the half-space.
type FileLayer struct {
	Alpha     float64 `yaml:"alpha" validate:"gt=0,gtfield=Beta"`
	Beta      float64 `yaml:"beta" validate:"gt=0"`
	Rho       float64 `yaml:"rho" validate:"gt=0"`
	Thickness float64 `yaml:"thickness,omitempty" validate:"gte=0"`
}

// Load reads and validates a YAML model file.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a YAML model from r and validates it structurally.
// Physical validation (thickness of finite layers etc.) happens in File.Model.
func Decode(r io.Reader) (*File, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("model: decode: %w", err)
	}
	if err := fileValidate.Struct(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	return &file, nil
}

// Model converts the file layers into a validated Model.
func (f *File) Model() (*Model, error) {
	if f == nil || len(f.Layers) == 0 {
		return nil, ErrNoLayers
	}
	m := &Model{Layers: make([]Layer, len(f.Layers))}
	for i, l := range f.Layers {
		m.Layers[i] = Layer{Alpha: l.Alpha, Beta: l.Beta, Rho: l.Rho, Thickness: l.Thickness}
	}
	m.Layers[len(m.Layers)-1].Thickness = 0
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Encode writes m (and optional frequencies) as a YAML model file.
func Encode(w io.Writer, name string, m *Model, freqs []float64) error {
	if err := m.Validate(); err != nil {
		return err
	}
	file := File{Name: name, Frequencies: freqs, Layers: make([]FileLayer, len(m.Layers))}
	for i, l := range m.Layers {
		file.Layers[i] = FileLayer{Alpha: l.Alpha, Beta: l.Beta, Rho: l.Rho, Thickness: l.Thickness}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return fmt.Errorf("model: encode: %w", err)
	}

	return enc.Close()
}
