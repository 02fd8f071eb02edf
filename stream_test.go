package areq

import (
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func TestChunkReaderDeliversInOrder(t *testing.T) {
	src := make(chan Chunk, 2)
	src <- Chunk{Data: []byte("abc")}
	src <- Chunk{Data: []byte("def")}
	close(src)

	r := newChunkReader(src)
	buf := make([]byte, 2)

	var reads []string
	for {
		n, err := r.Read(buf)
		if n > 0 {
			reads = append(reads, string(buf[:n]))
		}
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
	}

	require.Equal(t, []string{"ab", "c", "de", "f"}, reads)

	// EOF is sticky.
	n, err := r.Read(buf)
	require.Zero(t, n)
	require.ErrorIs(t, err, io.EOF)
}

func TestChunkReaderContract(t *testing.T) {
	src := make(chan Chunk, 2)
	src <- Chunk{Data: []byte("abc")}
	src <- Chunk{Data: []byte("def")}
	close(src)

	require.NoError(t, iotest.TestReader(newChunkReader(src), []byte("abcdef")))
}

func TestChunkReaderImmediateError(t *testing.T) {
	boom := errors.New("boom")

	src := make(chan Chunk, 1)
	src <- Chunk{Err: boom}
	close(src)

	r := newChunkReader(src)

	n, err := r.Read(make([]byte, 8))
	require.Zero(t, n)
	require.ErrorIs(t, err, boom)

	// The error is sticky.
	n, err = r.Read(make([]byte, 8))
	require.Zero(t, n)
	require.ErrorIs(t, err, boom)
}

func TestChunkReaderTrailingDataWithError(t *testing.T) {
	boom := errors.New("boom")

	src := make(chan Chunk, 1)
	src <- Chunk{Data: []byte("tail"), Err: boom}
	close(src)

	data, err := io.ReadAll(newChunkReader(src))
	require.Equal(t, "tail", string(data))
	require.ErrorIs(t, err, boom)
}

func TestChunkReaderSkipsEmptyChunks(t *testing.T) {
	src := make(chan Chunk, 4)
	src <- Chunk{}
	src <- Chunk{Data: []byte{}}
	src <- Chunk{Data: []byte("x")}
	close(src)

	r := newChunkReader(src)

	// The empty chunks never surface as zero-byte reads.
	n, err := r.Read(make([]byte, 8))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = r.Read(make([]byte, 8))
	require.Zero(t, n)
	require.ErrorIs(t, err, io.EOF)
}
