package gen

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// An Option is one fuzzable solver option read from an option file.
type Option struct {
	Name  string
	Value int // Default value
	Min   int
	Max   int
}

// An OptionFile is the content of an option file.
// A non-nil, empty OptionFile still triggers the option draws.
type OptionFile struct {
	Path    string
	Options []Option
}

// An OptionFileError is returned when an option file cannot be read.
type OptionFileError struct {
	Path string
	Err  error
}

func (e *OptionFileError) Error() string {
	return fmt.Sprintf("can not read '%s': %v", e.Path, e.Err)
}

// Cause returns the underlying error.
func (e *OptionFileError) Cause() error { return e.Err }

func (e *OptionFileError) Unwrap() error { return e.Err }

// ReadOptionFile reads the option file at path.
func ReadOptionFile(path string) (*OptionFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OptionFileError{Path: path, Err: err}
	}
	defer f.Close()
	opts, err := ParseOptions(f)
	if err != nil {
		return nil, &OptionFileError{Path: path, Err: err}
	}
	return &OptionFile{Path: path, Options: opts}, nil
}

// ParseOptions parses lines of the form "name value min max [ignored...]".
// Lines with fewer than four fields, or whose value and bounds are not integers, are ignored.
// Bounds given in decreasing order are swapped.
func ParseOptions(r io.Reader) ([]Option, error) {
	var opts []Option
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			continue
		}
		opt, ok := parseOption(fields)
		if !ok {
			continue
		}
		opts = append(opts, opt)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "could not parse options")
	}
	return opts, nil
}

func parseOption(fields []string) (Option, bool) {
	var vals [3]int
	for i := range vals {
		v, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return Option{}, false
		}
		vals[i] = v
	}
	opt := Option{Name: fields[0], Value: vals[0], Min: vals[1], Max: vals[2]}
	if opt.Min > opt.Max {
		opt.Min, opt.Max = opt.Max, opt.Min
	}
	return opt, true
}

// OptionFuzz records how option values were chosen.
type OptionFuzz struct {
	Spread int  // Each option is changed with probability 1/(Spread+1)
	AllMin bool // Changed options take their minimum
	AllMax bool // Changed options take their maximum
	Values []Option
}

// fuzzOptions draws the spread and min/max policy, then the value of each option.
func fuzzOptions(r *Rand, opts []Option) *OptionFuzz {
	fz := &OptionFuzz{Spread: r.Pick(0, 10)}
	fz.AllMin = r.Pick(0, 1) == 1
	if !fz.AllMin {
		fz.AllMax = r.Pick(0, 1) == 1
	}
	fz.Values = make([]Option, len(opts))
	for i, opt := range opts {
		if r.Pick(0, fz.Spread) == 0 {
			switch {
			case fz.AllMin:
				opt.Value = opt.Min
			case fz.AllMax:
				opt.Value = opt.Max
			default:
				opt.Value = r.Pick(opt.Min, opt.Max)
			}
		}
		fz.Values[i] = opt
	}
	return fz
}

func (fz *OptionFuzz) comments() []string {
	var res []string
	if fz.AllMin {
		res = append(res, "allmin")
	} else if fz.AllMax {
		res = append(res, "allmax")
	}
	res = append(res, fmt.Sprintf("%d ospread", fz.Spread))
	for _, opt := range fz.Values {
		res = append(res, fmt.Sprintf("--%s=%d", opt.Name, opt.Value))
	}
	return res
}
