package compare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sdejongh/cmpgroups/pkg/storage"
)

// BinaryComparator compares files byte-by-byte in process.
// It is used for grouping when no external comparator is wanted.
type BinaryComparator struct {
	backend    storage.Backend
	bufferSize int
	bufferPool *sync.Pool
}

// NewBinaryComparator creates a new byte-by-byte comparator reading
// files through backend
func NewBinaryComparator(backend storage.Backend, bufferSize int) *BinaryComparator {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &BinaryComparator{
		backend:    backend,
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// Compare compares two files byte-by-byte
func (c *BinaryComparator) Compare(ctx context.Context, fileA, fileB string) (*Comparison, error) {
	infoA, err := c.backend.Stat(ctx, fileA)
	if err != nil {
		return nil, c.fail(fileA, fileB, err)
	}
	infoB, err := c.backend.Stat(ctx, fileB)
	if err != nil {
		return nil, c.fail(fileA, fileB, err)
	}

	// Quick check: if sizes differ, files are different
	if infoA.Size != infoB.Size {
		return &Comparison{
			FileA:  fileA,
			FileB:  fileB,
			Result: Different,
			Reason: fmt.Sprintf("size mismatch: %d != %d", infoA.Size, infoB.Size),
		}, nil
	}

	readerA, err := c.backend.Read(ctx, fileA)
	if err != nil {
		return nil, c.fail(fileA, fileB, err)
	}
	defer readerA.Close()

	readerB, err := c.backend.Read(ctx, fileB)
	if err != nil {
		return nil, c.fail(fileA, fileB, err)
	}
	defer readerB.Close()

	bufAPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(bufAPtr)
	bufA := *bufAPtr

	bufBPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(bufBPtr)
	bufB := *bufBPtr

	var offset int64
	for {
		select {
		case <-ctx.Done():
			return nil, c.fail(fileA, fileB, ctx.Err())
		default:
		}

		nA, errA := io.ReadFull(readerA, bufA)
		nB, errB := io.ReadFull(readerB, bufB)
		if errA != nil && !isEOF(errA) {
			return nil, c.fail(fileA, fileB, errA)
		}
		if errB != nil && !isEOF(errB) {
			return nil, c.fail(fileA, fileB, errB)
		}

		if !bytes.Equal(bufA[:nA], bufB[:nB]) {
			n := min(nA, nB)
			i := 0
			for i < n && bufA[i] == bufB[i] {
				i++
			}
			return &Comparison{
				FileA:  fileA,
				FileB:  fileB,
				Result: Different,
				Reason: fmt.Sprintf("content differs at byte offset %d", offset+int64(i)),
			}, nil
		}
		offset += int64(nA)

		if isEOF(errA) || isEOF(errB) {
			break
		}
	}

	return &Comparison{
		FileA:  fileA,
		FileB:  fileB,
		Result: Same,
		Reason: "binary content identical",
	}, nil
}

// Name returns the comparator name
func (c *BinaryComparator) Name() string {
	return "binary"
}

func (c *BinaryComparator) fail(fileA, fileB string, err error) error {
	return &ComparisonError{
		Command:  c.Name(),
		FileA:    fileA,
		FileB:    fileB,
		ExitCode: -1,
		Err:      err,
	}
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
