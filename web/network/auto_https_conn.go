// Package network lets the HTTPS listener answer plain HTTP requests with a
// redirect to the same URL over HTTPS.
package network

import (
	"bufio"
	"bytes"
	"net"
	"net/http"
	"net/url"
	"sync"
)

// AutoHttpsConn peeks at the first bytes of a connection. A readable HTTP
// request gets a 307 to its https:// URL and the connection is closed;
// anything else (a TLS handshake) is replayed to the reader untouched.
type AutoHttpsConn struct {
	net.Conn

	firstBuf []byte
	bufStart int

	readRequestOnce sync.Once
}

func NewAutoHttpsConn(conn net.Conn) net.Conn {
	return &AutoHttpsConn{
		Conn: conn,
	}
}

// readRequest reports whether the first read was plain HTTP and has been
// answered.
func (c *AutoHttpsConn) readRequest() bool {
	c.firstBuf = make([]byte, 2048)
	n, err := c.Conn.Read(c.firstBuf)
	c.firstBuf = c.firstBuf[:n]
	if err != nil {
		return false
	}
	request, err := http.ReadRequest(bufio.NewReader(bytes.NewReader(c.firstBuf)))
	if err != nil {
		return false
	}

	target := url.URL{Scheme: "https", Host: request.Host, Path: request.URL.Path, RawQuery: request.URL.RawQuery}
	resp := http.Response{
		StatusCode: http.StatusTemporaryRedirect,
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{},
	}
	resp.Header.Set("Location", target.String())
	resp.Header.Set("Connection", "close")
	_ = resp.Write(c.Conn)
	_ = c.Close()
	c.firstBuf = nil
	return true
}

// Read replays the peeked bytes first, then reads from the connection.
func (c *AutoHttpsConn) Read(buf []byte) (int, error) {
	c.readRequestOnce.Do(func() {
		c.readRequest()
	})

	if c.firstBuf != nil {
		n := copy(buf, c.firstBuf[c.bufStart:])
		c.bufStart += n
		if c.bufStart >= len(c.firstBuf) {
			c.firstBuf = nil
		}
		return n, nil
	}

	return c.Conn.Read(buf)
}
