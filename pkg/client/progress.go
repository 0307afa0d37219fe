package client

import "io"

// ProgressFunc receives the number of bytes transferred since the
// previous call. The sum over all calls equals the total transferred.
type ProgressFunc func(n int64)

// progressReader reports bytes read through it to fn.
type progressReader struct {
	r  io.Reader
	fn ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.fn(int64(n))
	}
	return n, err
}
