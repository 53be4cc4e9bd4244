// Package batch writes many generated formulas to a directory, one file per seed.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/crillab/cnfuzz/gen"
)

// A Summary sums up a batch run.
type Summary struct {
	FirstSeed int64
	Files     []string
	Vars      int64 // Total number of variables over all files
	Clauses   int64 // Total number of clauses over all files
}

// FileName returns the name of the ith file of a batch, starting at 1.
func FileName(i int) string {
	return fmt.Sprintf("cnf_%04d.cnf", i)
}

// A Driver runs batches.
type Driver struct {
	Log logrus.FieldLogger
	Now func() time.Time // Clock used to derive the first seed when none is configured
}

// NewDriver returns a driver logging to log.
func NewDriver(log logrus.FieldLogger) *Driver {
	return &Driver{Log: log, Now: time.Now}
}

// Run writes cfg.Count formulas to cfg.Out.
// The ith file (from 1) is generated with seed FirstSeed + i - 1.
func (d *Driver) Run(ctx context.Context, cfg Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var opts *gen.OptionFile
	if cfg.Options != "" {
		var err error
		if opts, err = gen.ReadOptionFile(cfg.Options); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		return nil, errors.Wrapf(err, "could not create %q", cfg.Out)
	}
	var first int64
	if cfg.FirstSeed != nil {
		first = *cfg.FirstSeed
	} else {
		first = d.Now().UnixNano() % (math.MaxInt64 - int64(cfg.Count))
	}
	sum := &Summary{FirstSeed: first, Files: make([]string, cfg.Count)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 1; i <= cfg.Count; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(cfg.Out, FileName(i))
			seed := first + int64(i-1)
			f, err := gen.Generate(gen.Config{Seed: seed, QBF: cfg.QBF, Options: opts})
			if err != nil {
				return err
			}
			if err := writeFile(path, f); err != nil {
				return err
			}
			d.Log.WithFields(logrus.Fields{
				"file":    path,
				"seed":    seed,
				"vars":    f.NbVars,
				"clauses": len(f.Clauses),
			}).Info("formula written")
			mu.Lock()
			sum.Files[i-1] = path
			sum.Vars += int64(f.NbVars)
			sum.Clauses += int64(len(f.Clauses))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sum, nil
}

func writeFile(path string, wt io.WriterTo) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %q", path)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "could not close %q", path)
		}
	}()
	bw := bufio.NewWriter(out)
	if _, err := wt.WriteTo(bw); err != nil {
		return errors.Wrapf(err, "could not write %q", path)
	}
	return errors.Wrapf(bw.Flush(), "could not write %q", path)
}
