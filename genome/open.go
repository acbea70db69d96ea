package genome

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// openReader opens path for reading, transparently decompressing gzip.
// Detection is by magic number (1F 8B) or .gz suffix. The second return
// reports whether the stream is compressed, in which case it cannot be
// seeked.
func openReader(path string) (io.ReadCloser, bool, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		fh.Close()
		return nil, false, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, false, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, true, nil
	}
	return fh, false, nil
}
