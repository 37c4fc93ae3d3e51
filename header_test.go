package httpd

import (
	"bytes"
	"testing"
)

func TestHeaderWriteOrder(t *testing.T) {
	h := make(Header)
	h.Set("X-Extra", "2")
	h.Set("Connection", "close")
	h.Set("Content-Length", "3")
	h.Add("Set-Cookie", "a=1")
	h.Set("Date", "d")
	h.Set("Content-Type", "text/html")
	h.Set("A-First", "1")

	w := new(bytes.Buffer)
	if err := h.write(w); err != nil {
		t.Fatal(err)
	}
	expect := "Date: d\r\n" +
		"Content-Type: text/html\r\n" +
		"Content-Length: 3\r\n" +
		"Set-Cookie: a=1\r\n" +
		"Connection: close\r\n" +
		"A-First: 1\r\n" +
		"X-Extra: 2\r\n"
	expectEqual(t, expect, w.String())
}

func TestHeaderDel(t *testing.T) {
	h := Header{"Set-Cookie": {"a=1"}}
	h.Add("Set-Cookie", "b=2")
	if len(h["Set-Cookie"]) != 2 {
		t.Errorf("Add gave %v", h["Set-Cookie"])
	}
	h.Del("Set-Cookie")
	if h.Get("Set-Cookie") != "" {
		t.Error("Del left the field in place")
	}
}
