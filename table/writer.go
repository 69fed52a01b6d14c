package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/chewbite/cblabels/labels"
)

// WriteIntervals writes ivs to path as tab separated rows without header.
func WriteIntervals(path string, ivs []labels.Interval) error {
	return writeFile(path, func(w io.Writer) error { return EncodeIntervals(w, ivs) })
}

// EncodeIntervals writes one "start\tend\tlabel" row per interval.
func EncodeIntervals(w io.Writer, ivs []labels.Interval) error {
	bw := bufio.NewWriter(w)
	for _, iv := range ivs {
		if _, err := fmt.Fprintf(bw, "%d\t%d\t%s\n", iv.Start, iv.End, iv.Label); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFrames writes frames to path in the interval row format.
func WriteFrames(path string, frames []labels.Frame) error {
	return writeFile(path, func(w io.Writer) error { return EncodeFrames(w, frames) })
}

// EncodeFrames writes one row per frame with the shortest exact times.
func EncodeFrames(w io.Writer, frames []labels.Frame) error {
	bw := bufio.NewWriter(w)
	for _, f := range frames {
		row := strconv.FormatFloat(f.Start, 'f', -1, 64) + "\t" +
			strconv.FormatFloat(f.End, 'f', -1, 64) + "\t" + f.Label + "\n"
		if _, err := bw.WriteString(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := encode(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}
