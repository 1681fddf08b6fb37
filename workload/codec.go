package workload

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// The on-disk representation is UTF-8 text: a header line of
// "<n_elements> <n_operations>", followed by exactly n_operations
// lines of "<kind> <a> <b>", newline terminated.

// Encoder streams a workload sequence into its on-disk representation.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder creates a new Encoder over the provided writer and
// writes the header line.
func NewEncoder(w io.Writer, numElements, numOps int) (*Encoder, error) {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", numElements, numOps); err != nil {
		return nil, fmt.Errorf("workload: failed to write header: %w", err)
	}
	return &Encoder{w: bw}, nil
}

// Encode appends a single operation line.
func (e *Encoder) Encode(op Op) error {
	if _, err := fmt.Fprintf(e.w, "%d %d %d\n", int(op.Kind), op.A, op.B); err != nil {
		return fmt.Errorf("workload: failed to write operation: %w", err)
	}
	return nil
}

// Flush flushes all buffered output to the underlying writer.
func (e *Encoder) Flush() error {
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("workload: failed to flush output: %w", err)
	}
	return nil
}

// Decoder reads a workload sequence back from its on-disk
// representation, validating each operation against the header.
type Decoder struct {
	s *bufio.Scanner

	numElements int
	numOps      int
	read        int
}

// NewDecoder creates a new Decoder over the provided reader and
// parses the header line.
func NewDecoder(r io.Reader) (*Decoder, error) {
	s := bufio.NewScanner(r)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("workload: failed to read header: %w", err)
		}
		return nil, fmt.Errorf("workload: missing header: %w", io.ErrUnexpectedEOF)
	}

	fields := strings.Fields(s.Text())
	if len(fields) != 2 {
		return nil, fmt.Errorf("workload: malformed header: '%s'", s.Text())
	}

	numElements, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("workload: malformed element count: %w", err)
	}
	numOps, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("workload: malformed operation count: %w", err)
	}
	if numElements <= 0 || numOps < 0 {
		return nil, fmt.Errorf("workload: invalid header counts: %d %d", numElements, numOps)
	}

	return &Decoder{
		s:           s,
		numElements: numElements,
		numOps:      numOps,
	}, nil
}

// NumElements returns the element universe size from the header.
func (d *Decoder) NumElements() int {
	return d.numElements
}

// NumOps returns the operation count from the header.
func (d *Decoder) NumOps() int {
	return d.numOps
}

// Next returns the next operation in the sequence, or io.EOF once all
// header-declared operations have been consumed.  A file that ends
// before yielding the declared number of operations is treated as
// truncated and invalid.
func (d *Decoder) Next() (Op, error) {
	if d.read >= d.numOps {
		return Op{}, io.EOF
	}

	if !d.s.Scan() {
		if err := d.s.Err(); err != nil {
			return Op{}, fmt.Errorf("workload: failed to read operation %d: %w", d.read, err)
		}
		return Op{}, fmt.Errorf("workload: truncated file after %d of %d operations: %w", d.read, d.numOps, io.ErrUnexpectedEOF)
	}

	fields := strings.Fields(d.s.Text())
	if len(fields) != 3 {
		return Op{}, fmt.Errorf("workload: malformed operation line %d: '%s'", d.read, d.s.Text())
	}

	var raw [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Op{}, fmt.Errorf("workload: malformed operation line %d: %w", d.read, err)
		}
		raw[i] = v
	}

	kind, err := kindFromInt(raw[0])
	if err != nil {
		return Op{}, fmt.Errorf("workload: operation line %d: %w", d.read, err)
	}

	op := Op{Kind: kind, A: raw[1], B: raw[2]}
	if op.A < 0 || op.A >= d.numElements {
		return Op{}, fmt.Errorf("workload: operation line %d: operand A out of range [0,%d): %d", d.read, d.numElements, op.A)
	}
	if op.Kind != KindFind {
		if op.B < 0 || op.B >= d.numElements {
			return Op{}, fmt.Errorf("workload: operation line %d: operand B out of range [0,%d): %d", d.read, d.numElements, op.B)
		}
		if op.A == op.B && d.numElements > 1 {
			return Op{}, fmt.Errorf("workload: operation line %d: %s with identical operands: %d", d.read, op.Kind, op.A)
		}
	}

	d.read++

	return op, nil
}
