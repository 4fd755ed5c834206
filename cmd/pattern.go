package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vtrack/vtrack"
	"github.com/vtrack/vtrack/engine"
)

// LoadPattern reads a pattern document and the direct sample bank it names.
// Bank files are relative to the document; empty names leave a slot empty.
func LoadPattern(filename string) (vtrack.Pattern, vtrack.Matrix, *engine.Bank, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return vtrack.Pattern{}, vtrack.Matrix{}, nil, fmt.Errorf("could not read file %v: %w", filename, err)
	}
	p, err := vtrack.ReadPattern(data)
	if err != nil {
		return vtrack.Pattern{}, vtrack.Matrix{}, nil, err
	}
	m, err := p.Matrix()
	if err != nil {
		return vtrack.Pattern{}, vtrack.Matrix{}, nil, fmt.Errorf("invalid pattern %v: %w", filename, err)
	}
	bank, err := LoadBank(filepath.Dir(filename), p.Bank)
	if err != nil {
		return vtrack.Pattern{}, vtrack.Matrix{}, nil, err
	}
	return p, m, bank, nil
}

// LoadBank reads raw float32 files into a direct sample bank.
func LoadBank(dir string, files []string) (*engine.Bank, error) {
	if len(files) > vtrack.MaxSampleIndex+1 {
		return nil, fmt.Errorf("bank has %d samples, at most %d fit", len(files), vtrack.MaxSampleIndex+1)
	}
	samples := make([][]float32, len(files))
	for i, name := range files {
		if name == "" {
			continue
		}
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		s, err := LoadRaw(name)
		if err != nil {
			return nil, fmt.Errorf("bank sample %d: %w", i, err)
		}
		samples[i] = s
	}
	return engine.NewBank(samples), nil
}

// LoadRaw reads a mono raw float32 little-endian file.
func LoadRaw(filename string) ([]float32, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read file %v: %w", filename, err)
	}
	return vtrack.ReadRaw(data)
}

// LoadInputs reads up to vtrack.NumInputs raw files; an empty name is a
// silent input.
func LoadInputs(files []string) ([][]float32, error) {
	if len(files) > vtrack.NumInputs {
		return nil, fmt.Errorf("%d input files given, there are only %d inputs", len(files), vtrack.NumInputs)
	}
	ret := make([][]float32, len(files))
	for i, name := range files {
		if name == "" {
			continue
		}
		s, err := LoadRaw(name)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		ret[i] = s
	}
	return ret, nil
}

// ParseChannels parses a comma separated list of channel numbers, e.g. the
// value of an -arm flag.
func ParseChannels(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var ret []int
	for _, f := range strings.Split(s, ",") {
		c, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%q is not a channel number", f)
		}
		ret = append(ret, c)
	}
	return ret, nil
}

// ParseParams parses a comma separated list of raw=value parameter changes,
// e.g. "0x0c0400=0.5". Raw ids are packed as type<<16 | track<<8 | step and
// may be given in any base strconv understands.
func ParseParams(s string) ([]vtrack.ParamChange, error) {
	if s == "" {
		return nil, nil
	}
	var ret []vtrack.ParamChange
	for _, f := range strings.Split(s, ",") {
		id, value, ok := strings.Cut(strings.TrimSpace(f), "=")
		if !ok {
			return nil, fmt.Errorf("%q is not of the form id=value", f)
		}
		raw, err := strconv.ParseUint(id, 0, 24)
		if err != nil {
			return nil, fmt.Errorf("parameter id %q: %w", id, err)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parameter value %q: %w", value, err)
		}
		ret = append(ret, vtrack.ParamChange{ID: vtrack.DecodeParamID(uint32(raw)), Value: v})
	}
	return ret, nil
}
