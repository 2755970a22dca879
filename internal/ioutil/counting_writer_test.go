package ioutil_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/navurl/internal/ioutil"
)

var errWrite = errors.New("write failed")

type limitWriter struct {
	sb    strings.Builder
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.sb.Len()+len(p) > w.limit {
		return 0, errWrite
	}
	return w.sb.Write(p)
}

func TestCountingWriter(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	cw := ioutil.GetCountingWriter(&sb)
	defer ioutil.FreeCountingWriter(cw)

	cw.WriteString("http")           //nolint:errcheck
	cw.Fprint("://", "h", ":", 8080) //nolint:errcheck
	cw.Call(func(w io.Writer) (int, error) { return io.WriteString(w, "/x") })

	num, err := cw.Result()
	if err != nil {
		t.Fatalf("cw.Result() error = %v, want nil", err)
	}
	if want := "http://h:8080/x"; sb.String() != want {
		t.Errorf("written %q, want %q", sb.String(), want)
	}
	if num != sb.Len() {
		t.Errorf("cw.Result() = %d, want %d", num, sb.Len())
	}
}

func TestCountingWriter_Error(t *testing.T) {
	t.Parallel()

	w := &limitWriter{limit: 4}
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	if _, err := cw.WriteString("abc"); err != nil {
		t.Fatalf("cw.WriteString(\"abc\") error = %v, want nil", err)
	}
	if _, err := cw.WriteString("def"); !errors.Is(err, errWrite) {
		t.Fatalf("cw.WriteString(\"def\") error = %v, want %v", err, errWrite)
	}

	var called bool
	cw.Call(func(io.Writer) (int, error) {
		called = true
		return 0, nil
	})
	if called {
		t.Error("cw.Call() invoked the function after an error")
	}
	if n, err := cw.Fprint("g"); n != 0 || !errors.Is(err, errWrite) {
		t.Errorf("cw.Fprint(\"g\") = %d, %v, want 0, %v", n, err, errWrite)
	}

	num, err := cw.Result()
	if diff := cmp.Diff(err, errWrite, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("cw.Result() error = %v, want %v\ndiff (-got +want):\n%v", err, errWrite, diff)
	}
	if num != 3 {
		t.Errorf("cw.Result() = %d, want 3", num)
	}
	if w.sb.String() != "abc" {
		t.Errorf("written %q, want \"abc\"", w.sb.String())
	}
}

func TestFreeCountingWriter(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	cw := ioutil.GetCountingWriter(&sb)
	cw.WriteString("abc") //nolint:errcheck
	ioutil.FreeCountingWriter(cw)

	cw = ioutil.GetCountingWriter(&sb)
	defer ioutil.FreeCountingWriter(cw)
	if num, err := cw.Result(); num != 0 || err != nil {
		t.Errorf("cw.Result() of a fresh writer = %d, %v, want 0, nil", num, err)
	}
}
