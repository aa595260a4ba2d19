// Package dataset loads the tabulated cascade data from disk into the
// Source structs consumed by package cascade. The on-disk layout is a YAML
// manifest naming gob/gzip payload files per data kind; decompression and
// decoding happen here so the core tables never touch the filesystem.
package dataset

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/cascade-sim/cascade-sim/cascade"
)

// Manifest describes one dataset directory. Paths are relative to the
// manifest's directory.
type Manifest struct {
	Grid struct {
		Centers []float64 `yaml:"centers"`
		Edges   []float64 `yaml:"edges"`
	} `yaml:"grid"`
	Yields        map[string]string `yaml:"yields"`         // model name -> payload file
	Decays        string            `yaml:"decays"`         // payload file
	CrossSections map[string]string `yaml:"cross_sections"` // model name -> payload file
	Particles     string            `yaml:"particles"`      // particle property YAML
}

// Dataset is a fully loaded data directory.
type Dataset struct {
	Yields        *cascade.YieldSource
	Decays        *cascade.DecaySource
	CrossSections *cascade.CrossSectionSource
	Particles     *ParticleTable
}

// matrixPayload is the gob wire form of one dense matrix, row-major.
type matrixPayload struct {
	Rows int
	Cols int
	Data []float64
}

// yieldPayload is the gob wire form of one model's record dictionary.
type yieldPayload struct {
	Records map[cascade.Pair]matrixPayload
}

// crossSectionPayload is the gob wire form of one model's curve set.
type crossSectionPayload struct {
	Curves map[int][]float64
}

// Load reads manifest.yaml from dir and loads every payload it names.
func Load(dir string) (*Dataset, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	ds := &Dataset{
		Yields: &cascade.YieldSource{
			Centers: m.Grid.Centers,
			Edges:   m.Grid.Edges,
			Models:  make(map[string]map[cascade.Pair]*mat.Dense, len(m.Yields)),
		},
		CrossSections: &cascade.CrossSectionSource{
			Centers: m.Grid.Centers,
			Models:  make(map[string]map[int][]float64, len(m.CrossSections)),
		},
	}

	for model, file := range m.Yields {
		records, err := loadYieldPayload(filepath.Join(dir, file))
		if err != nil {
			return nil, fmt.Errorf("load yields %s: %w", model, err)
		}
		ds.Yields.Models[model] = records
		logrus.Infof("dataset: loaded %d yield records for %s", len(records), model)
	}

	if m.Decays != "" {
		records, err := loadYieldPayload(filepath.Join(dir, m.Decays))
		if err != nil {
			return nil, fmt.Errorf("load decays: %w", err)
		}
		ds.Decays = &cascade.DecaySource{Records: records}
		logrus.Infof("dataset: loaded %d decay records", len(records))
	}

	for model, file := range m.CrossSections {
		curves, err := loadCrossSectionPayload(filepath.Join(dir, file))
		if err != nil {
			return nil, fmt.Errorf("load cross-sections %s: %w", model, err)
		}
		ds.CrossSections.Models[model] = curves
		logrus.Infof("dataset: loaded %d cross-section curves for %s", len(curves), model)
	}

	if m.Particles != "" {
		ds.Particles, err = LoadParticleTable(filepath.Join(dir, m.Particles))
		if err != nil {
			return nil, fmt.Errorf("load particles: %w", err)
		}
	}
	return ds, nil
}

func loadYieldPayload(path string) (map[cascade.Pair]*mat.Dense, error) {
	var payload yieldPayload
	if err := readGobGz(path, &payload); err != nil {
		return nil, err
	}
	records := make(map[cascade.Pair]*mat.Dense, len(payload.Records))
	for key, p := range payload.Records {
		if p.Rows*p.Cols != len(p.Data) {
			return nil, fmt.Errorf("record %d -> %d: %dx%d with %d values", key.Src, key.Prod, p.Rows, p.Cols, len(p.Data))
		}
		records[key] = mat.NewDense(p.Rows, p.Cols, p.Data)
	}
	return records, nil
}

func loadCrossSectionPayload(path string) (map[int][]float64, error) {
	var payload crossSectionPayload
	if err := readGobGz(path, &payload); err != nil {
		return nil, err
	}
	return payload.Curves, nil
}

func readGobGz(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open payload: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("gzip %s: %w", filepath.Base(path), err)
	}
	defer zr.Close()

	if err := gob.NewDecoder(zr).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteYieldPayload writes a record dictionary in the payload format.
// Used by dataset preparation tooling and tests.
func WriteYieldPayload(path string, records map[cascade.Pair]*mat.Dense) error {
	payload := yieldPayload{Records: make(map[cascade.Pair]matrixPayload, len(records))}
	for key, m := range records {
		r, c := m.Dims()
		data := make([]float64, 0, r*c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				data = append(data, m.At(i, j))
			}
		}
		payload.Records[key] = matrixPayload{Rows: r, Cols: c, Data: data}
	}
	return writeGobGz(path, payload)
}

// WriteCrossSectionPayload writes a curve set in the payload format.
func WriteCrossSectionPayload(path string, curves map[int][]float64) error {
	return writeGobGz(path, crossSectionPayload{Curves: curves})
}

func writeGobGz(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create payload: %w", err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if err := gob.NewEncoder(zw).Encode(v); err != nil {
		zw.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush %s: %w", filepath.Base(path), err)
	}
	return nil
}
