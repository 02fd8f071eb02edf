package areq

import "io"

// Chunk is one item produced by an asynchronous body source. A source sends
// zero or more chunks and then either closes the channel, which reads as end
// of body, or sends a chunk with Err set, which is terminal. Data may
// accompany Err; those bytes surface before the error does. The receiver owns
// Data once the chunk is sent.
type Chunk struct {
	Data []byte
	Err  error
}

// chunkReader adapts a chunk source to the io.Read the blocking HTTP library
// expects. Read parks its goroutine on the channel receive, so a chunkReader
// lives only inside pool-executed closures and never escapes them.
type chunkReader struct {
	src  <-chan Chunk
	rest []byte
	err  error
}

func newChunkReader(src <-chan Chunk) *chunkReader {
	return &chunkReader{src: src}
}

// Read drains bytes left over from the previous chunk first, then blocks for
// the next one. A closed source reads as io.EOF; a source error is sticky.
// Empty chunks without an error are skipped rather than reported as a
// zero-byte read.
func (r *chunkReader) Read(p []byte) (int, error) {
	for {
		if len(r.rest) > 0 {
			n := copy(p, r.rest)
			r.rest = r.rest[n:]

			return n, nil
		}

		if r.err != nil {
			return 0, r.err
		}

		chunk, ok := <-r.src
		if !ok {
			r.err = io.EOF

			return 0, io.EOF
		}

		if chunk.Err != nil {
			r.rest = chunk.Data
			r.err = chunk.Err

			continue
		}

		r.rest = chunk.Data
	}
}
